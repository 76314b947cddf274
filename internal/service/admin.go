package service

import (
	"context"
	"fmt"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/validation"
)

// AdminStore is the part of the store used by moderation.
type AdminStore interface {
	UserByID(id string) (domain.User, bool)
	Users() []domain.User
	SwapRequests() []domain.SwapRequest
	BanUser(ctx context.Context, userID string) bool
	CreateAdminMessage(ctx context.Context, draft domain.AdminMessageDraft) domain.AdminMessage
	AdminMessages() []domain.AdminMessage
	ActiveAdminMessages() []domain.AdminMessage
	Stats() store.Stats
	ResetDemoData(ctx context.Context) error
}

// AdminService implements moderation. Every method that changes or exposes
// platform-wide data requires an admin actor.
type AdminService struct {
	store AdminStore
}

func NewAdminService(st AdminStore) *AdminService {
	return &AdminService{store: st}
}

func requireAdmin(actor domain.User) error {
	if !actor.IsAdmin() || !actor.IsActive {
		return domain.ErrForbidden
	}
	return nil
}

// Ban deactivates userID. Administrators cannot be banned.
func (s *AdminService) Ban(ctx context.Context, actor domain.User, userID string) (domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.User{}, err
	}
	target, ok := s.store.UserByID(userID)
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if target.IsAdmin() {
		return domain.User{}, fmt.Errorf("%w: administrators cannot be banned", domain.ErrForbidden)
	}
	s.store.BanUser(ctx, userID)
	banned, _ := s.store.UserByID(userID)
	return banned, nil
}

// Broadcast publishes a platform-wide message.
func (s *AdminService) Broadcast(ctx context.Context, actor domain.User, draft domain.AdminMessageDraft) (domain.AdminMessage, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.AdminMessage{}, err
	}
	draft.Title = validation.SanitizeInput(draft.Title)
	draft.Content = validation.SanitizeInput(draft.Content)

	var errs validation.Errors
	if draft.Title == "" {
		errs = append(errs, validation.FieldError{Field: "title", Message: "Title is required", Code: validation.CodeRequired})
	}
	if draft.Content == "" {
		errs = append(errs, validation.FieldError{Field: "content", Message: "Content is required", Code: validation.CodeRequired})
	}
	if err := errs.Err(); err != nil {
		return domain.AdminMessage{}, err
	}
	return s.store.CreateAdminMessage(ctx, draft), nil
}

func (s *AdminService) Stats(actor domain.User) (store.Stats, error) {
	if err := requireAdmin(actor); err != nil {
		return store.Stats{}, err
	}
	return s.store.Stats(), nil
}

func (s *AdminService) Users(actor domain.User) ([]domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.Users(), nil
}

func (s *AdminService) Swaps(actor domain.User) ([]domain.SwapRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.SwapRequests(), nil
}

// Messages lists all broadcasts, including inactive ones.
func (s *AdminService) Messages(actor domain.User) ([]domain.AdminMessage, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.AdminMessages(), nil
}

// ActiveMessages is public.
func (s *AdminService) ActiveMessages() []domain.AdminMessage {
	return s.store.ActiveAdminMessages()
}

// Reset wipes all data back to the seeded administrator.
func (s *AdminService) Reset(ctx context.Context, actor domain.User) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.store.ResetDemoData(ctx); err != nil {
		return fmt.Errorf("reset demo data: %w", err)
	}
	return nil
}
