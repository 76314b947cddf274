package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/validation"
)

// SwapStore is the part of the store the swap workflow needs.
type SwapStore interface {
	UserByID(id string) (domain.User, bool)
	SwapRequestByID(id string) (domain.SwapRequest, bool)
	SwapRequestsForUser(userID string) []domain.SwapRequest
	CreateSwapRequest(ctx context.Context, draft domain.SwapDraft) domain.SwapRequest
	TransitionSwapRequest(ctx context.Context, id string, status domain.SwapStatus, guard store.SwapGuard) (domain.SwapRequest, error)
	DeleteSwapRequestIf(ctx context.Context, id string, guard store.SwapGuard) error
}

// TransitionRecorder counts applied status changes.
type TransitionRecorder interface {
	SwapTransition(status string)
}

type noopTransitions struct{}

func (noopTransitions) SwapTransition(string) {}

// SwapService enforces the swap request lifecycle:
//
//	pending  -> accepted | rejected   (recipient)
//	accepted -> completed             (either participant)
//	pending  -> withdrawn             (sender; the request is deleted)
type SwapService struct {
	store       SwapStore
	transitions TransitionRecorder
}

func NewSwapService(st SwapStore, transitions TransitionRecorder) *SwapService {
	if transitions == nil {
		transitions = noopTransitions{}
	}
	return &SwapService{store: st, transitions: transitions}
}

// SwapInput is what a sender supplies when proposing a swap.
type SwapInput struct {
	ToUserID         string
	OfferedSkillID   string
	RequestedSkillID string
	Message          string
}

// Create proposes a swap from actorID. The offered skill must be one of the
// sender's offered skills and the requested skill one of the recipient's.
func (s *SwapService) Create(ctx context.Context, actorID string, in SwapInput) (domain.SwapRequest, error) {
	in.Message = validation.SanitizeInput(in.Message)
	if err := validation.SwapRequest(in.OfferedSkillID, in.RequestedSkillID, in.Message).Err(); err != nil {
		return domain.SwapRequest{}, err
	}
	if in.ToUserID == actorID {
		return domain.SwapRequest{}, fmt.Errorf("%w: cannot request a swap with yourself", domain.ErrInvalidInput)
	}

	from, ok := s.store.UserByID(actorID)
	if !ok || !from.IsActive {
		return domain.SwapRequest{}, domain.ErrUnauthorized
	}
	to, ok := s.store.UserByID(in.ToUserID)
	if !ok || !to.IsActive {
		return domain.SwapRequest{}, fmt.Errorf("recipient %s: %w", in.ToUserID, domain.ErrNotFound)
	}
	if !from.OffersSkill(in.OfferedSkillID) {
		return domain.SwapRequest{}, validation.Errors{{Field: "offeredSkill", Message: "Offered skill is not one of your skills", Code: validation.CodeInvalidFormat}}
	}
	if !to.OffersSkill(in.RequestedSkillID) {
		return domain.SwapRequest{}, validation.Errors{{Field: "requestedSkill", Message: "Requested skill is not offered by this user", Code: validation.CodeInvalidFormat}}
	}

	req := s.store.CreateSwapRequest(ctx, domain.SwapDraft{
		FromUserID:       actorID,
		ToUserID:         in.ToUserID,
		OfferedSkillID:   in.OfferedSkillID,
		RequestedSkillID: in.RequestedSkillID,
		Message:          in.Message,
	})
	s.transitions.SwapTransition(string(domain.SwapPending))
	return req, nil
}

// List returns every request the actor sent or received, newest first.
// Requests created at the same instant keep reverse insertion order.
func (s *SwapService) List(actorID string) []domain.SwapRequest {
	reqs := s.store.SwapRequestsForUser(actorID)
	slices.Reverse(reqs)
	slices.SortStableFunc(reqs, func(a, b domain.SwapRequest) int {
		return b.CreatedDate.Compare(a.CreatedDate)
	})
	return reqs
}

// Get returns a request visible to the actor.
func (s *SwapService) Get(actorID, id string) (domain.SwapRequest, error) {
	req, ok := s.store.SwapRequestByID(id)
	if !ok {
		return domain.SwapRequest{}, fmt.Errorf("swap %s: %w", id, domain.ErrNotFound)
	}
	if !req.Involves(actorID) {
		return domain.SwapRequest{}, domain.ErrForbidden
	}
	return req, nil
}

func (s *SwapService) Accept(ctx context.Context, actorID, id string) (domain.SwapRequest, error) {
	return s.transition(ctx, id, domain.SwapAccepted, recipientOf(actorID), inStatus(domain.SwapPending))
}

func (s *SwapService) Reject(ctx context.Context, actorID, id string) (domain.SwapRequest, error) {
	return s.transition(ctx, id, domain.SwapRejected, recipientOf(actorID), inStatus(domain.SwapPending))
}

func (s *SwapService) Complete(ctx context.Context, actorID, id string) (domain.SwapRequest, error) {
	return s.transition(ctx, id, domain.SwapCompleted, participant(actorID), inStatus(domain.SwapAccepted))
}

// Withdraw deletes a pending request on behalf of its sender.
func (s *SwapService) Withdraw(ctx context.Context, actorID, id string) error {
	err := s.store.DeleteSwapRequestIf(ctx, id, all(senderOf(actorID), inStatus(domain.SwapPending)))
	if err != nil {
		return fmt.Errorf("withdraw swap %s: %w", id, err)
	}
	s.transitions.SwapTransition("withdrawn")
	return nil
}

func (s *SwapService) transition(ctx context.Context, id string, to domain.SwapStatus, guards ...store.SwapGuard) (domain.SwapRequest, error) {
	req, err := s.store.TransitionSwapRequest(ctx, id, to, all(guards...))
	if err != nil {
		return domain.SwapRequest{}, fmt.Errorf("%s swap %s: %w", to, id, err)
	}
	s.transitions.SwapTransition(string(to))
	return req, nil
}

func all(guards ...store.SwapGuard) store.SwapGuard {
	return func(r domain.SwapRequest) error {
		for _, g := range guards {
			if err := g(r); err != nil {
				return err
			}
		}
		return nil
	}
}

func inStatus(status domain.SwapStatus) store.SwapGuard {
	return func(r domain.SwapRequest) error {
		if r.Status != status {
			return fmt.Errorf("%w: request is %s", domain.ErrInvalidTransition, r.Status)
		}
		return nil
	}
}

func recipientOf(actorID string) store.SwapGuard {
	return func(r domain.SwapRequest) error {
		if r.ToUserID != actorID {
			return domain.ErrForbidden
		}
		return nil
	}
}

func senderOf(actorID string) store.SwapGuard {
	return func(r domain.SwapRequest) error {
		if r.FromUserID != actorID {
			return domain.ErrForbidden
		}
		return nil
	}
}

func participant(actorID string) store.SwapGuard {
	return func(r domain.SwapRequest) error {
		if !r.Involves(actorID) {
			return domain.ErrForbidden
		}
		return nil
	}
}
