package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/validation"
)

// DefaultTokenTTL is the lifetime of an issued session token.
const DefaultTokenTTL = 24 * time.Hour

// Accounts is the part of the store used for identity.
type Accounts interface {
	Authenticate(ctx context.Context, email, password string) (domain.User, bool)
	RegisterUser(ctx context.Context, draft domain.UserDraft) (domain.User, bool)
	UpdateUserProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (domain.User, bool)
	UserByID(id string) (domain.User, bool)
}

// LoginRecorder counts login outcomes.
type LoginRecorder interface {
	LoginAttempt(outcome string)
}

type noopLogins struct{}

func (noopLogins) LoginAttempt(string) {}

// AuthService handles registration, login, profile edits and JWT tokens.
type AuthService struct {
	accounts  Accounts
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
	logins    LoginRecorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts Accounts, jwtSecret string, logins LoginRecorder) *AuthService {
	if logins == nil {
		logins = noopLogins{}
	}
	return &AuthService{
		accounts:  accounts,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  DefaultTokenTTL,
		now:       time.Now,
		logins:    logins,
	}
}

// Registration is the sign-up payload.
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Location        string
	SkillsOffered   []domain.Skill
	SkillsWanted    []domain.Skill
	Availability    []string
	IsPublic        *bool
}

// Register validates the form and creates the account.
func (s *AuthService) Register(ctx context.Context, in Registration) (domain.User, error) {
	in.Name = validation.SanitizeInput(in.Name)
	in.Location = validation.SanitizeInput(in.Location)

	form := validation.Registration{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		Location:        in.Location,
	}
	errs := form.Validate()
	errs = append(errs, validation.Profile(domain.ProfilePatch{
		SkillsOffered: &in.SkillsOffered,
		SkillsWanted:  &in.SkillsWanted,
		Availability:  &in.Availability,
	})...)
	if err := errs.Err(); err != nil {
		return domain.User{}, err
	}

	user, ok := s.accounts.RegisterUser(ctx, domain.UserDraft{
		Name:          in.Name,
		Email:         in.Email,
		Password:      in.Password,
		Location:      in.Location,
		SkillsOffered: withSkillIDs(in.SkillsOffered),
		SkillsWanted:  withSkillIDs(in.SkillsWanted),
		Availability:  in.Availability,
		IsPublic:      in.IsPublic,
	})
	if !ok {
		return domain.User{}, fmt.Errorf("register %s: %w", in.Email, domain.ErrDuplicateEmail)
	}
	return user, nil
}

// Login verifies credentials and returns a signed token with the user.
// Banned accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, ok := s.accounts.Authenticate(ctx, email, password)
	if !ok {
		s.logins.LoginAttempt("rejected")
		return "", domain.User{}, domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("generate jwt: %w", err)
	}
	s.logins.LoginAttempt("success")
	return token, user, nil
}

// ValidateToken parses a token and returns the user ID from its sub claim.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}
	return sub, nil
}

// UserByID returns the account behind a session. Banned accounts are
// reported as unauthorized so their sessions end.
func (s *AuthService) UserByID(ctx context.Context, id string) (domain.User, error) {
	user, ok := s.accounts.UserByID(id)
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	if !user.IsActive {
		return domain.User{}, domain.ErrUnauthorized
	}
	return user, nil
}

// UpdateProfile validates and applies patch to userID.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (domain.User, error) {
	if patch.Name != nil {
		v := validation.SanitizeInput(*patch.Name)
		patch.Name = &v
	}
	if patch.Location != nil {
		v := validation.SanitizeInput(*patch.Location)
		patch.Location = &v
	}
	if err := validation.Profile(patch).Err(); err != nil {
		return domain.User{}, err
	}
	if patch.SkillsOffered != nil {
		v := withSkillIDs(*patch.SkillsOffered)
		patch.SkillsOffered = &v
	}
	if patch.SkillsWanted != nil {
		v := withSkillIDs(*patch.SkillsWanted)
		patch.SkillsWanted = &v
	}

	user, ok := s.accounts.UpdateUserProfile(ctx, userID, patch)
	if !ok {
		return domain.User{}, fmt.Errorf("update profile %s: %w", userID, domain.ErrNotFound)
	}
	return user, nil
}

func (s *AuthService) generateJWT(user domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// withSkillIDs assigns an id to every skill that lacks one.
func withSkillIDs(skills []domain.Skill) []domain.Skill {
	out := slices.Clone(skills)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = newSkillID()
		}
	}
	return out
}

func newSkillID() string {
	return "skill-" + uuid.NewString()
}
