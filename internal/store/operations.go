package store

import (
	"context"
	"slices"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// Seeded administrator credentials.
const (
	AdminID       = "admin-1"
	AdminName     = "Admin User"
	AdminEmail    = "admin@skillswap.com"
	AdminPassword = "admin123"
)

func (s *Store) seedAdmin() (domain.User, error) {
	hash, err := s.hasher.Hash(AdminPassword)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:            AdminID,
		Name:          AdminName,
		Email:         AdminEmail,
		PasswordHash:  hash,
		SkillsOffered: []domain.Skill{},
		SkillsWanted:  []domain.Skill{},
		Availability:  []string{},
		IsPublic:      true,
		Rating:        5,
		TotalRatings:  1,
		IsActive:      true,
		JoinDate:      s.now().UTC(),
		Role:          domain.RoleAdmin,
	}, nil
}

// Authenticate returns the active user whose email and password match,
// without changing the session.
func (s *Store) Authenticate(ctx context.Context, email, password string) (domain.User, bool) {
	u, ok := s.current().userByEmail(email)
	if !ok || !u.IsActive {
		return domain.User{}, false
	}
	if !s.hasher.Compare(u.PasswordHash, password) {
		return domain.User{}, false
	}
	return u.Clone(), true
}

// Login sets the current user when an active account matches the
// credentials. On failure the current user is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.Dispatch(ctx, SetLoading{Loading: true})
	defer s.Dispatch(ctx, SetLoading{Loading: false})

	u, ok := s.Authenticate(ctx, email, password)
	if !ok {
		return false
	}

	var logged bool
	s.transact(ctx, func(cur State) []Action {
		// The account could have been banned since Authenticate read it.
		i := cur.userIndex(u.ID)
		if i < 0 || !cur.Users[i].IsActive {
			return nil
		}
		logged = true
		return []Action{SetCurrentUser{User: &cur.Users[i]}}
	})
	return logged
}

// RegisterUser creates an account without touching the session. It reports
// false when the email is already taken by any user, active or not.
func (s *Store) RegisterUser(ctx context.Context, draft domain.UserDraft) (domain.User, bool) {
	if _, taken := s.current().userByEmail(draft.Email); taken {
		return domain.User{}, false
	}

	hash, err := s.hasher.Hash(draft.Password)
	if err != nil {
		s.log.ErrorContext(ctx, "register user", "error", err)
		return domain.User{}, false
	}

	isPublic := true
	if draft.IsPublic != nil {
		isPublic = *draft.IsPublic
	}
	user := domain.User{
		ID:            s.newID("user"),
		Name:          draft.Name,
		Email:         draft.Email,
		PasswordHash:  hash,
		Location:      draft.Location,
		ProfilePhoto:  draft.ProfilePhoto,
		SkillsOffered: nonNil(slices.Clone(draft.SkillsOffered)),
		SkillsWanted:  nonNil(slices.Clone(draft.SkillsWanted)),
		Availability:  nonNil(slices.Clone(draft.Availability)),
		IsPublic:      isPublic,
		IsActive:      true,
		JoinDate:      s.now().UTC(),
		Role:          domain.RoleUser,
	}

	var created bool
	s.transact(ctx, func(cur State) []Action {
		if _, taken := cur.userByEmail(draft.Email); taken {
			return nil
		}
		created = true
		return []Action{AddUser{User: user}}
	})
	if !created {
		return domain.User{}, false
	}
	return user.Clone(), true
}

// Register creates an account and logs it in. It reports false when the
// email already exists.
func (s *Store) Register(ctx context.Context, draft domain.UserDraft) bool {
	s.Dispatch(ctx, SetLoading{Loading: true})
	defer s.Dispatch(ctx, SetLoading{Loading: false})

	user, ok := s.RegisterUser(ctx, draft)
	if !ok {
		return false
	}
	s.Dispatch(ctx, SetCurrentUser{User: &user})
	return true
}

// Logout clears the current user.
func (s *Store) Logout(ctx context.Context) {
	s.Dispatch(ctx, SetCurrentUser{User: nil})
}

// CurrentUser returns the logged-in user of the local session, if any.
func (s *Store) CurrentUser() (domain.User, bool) {
	cu := s.current().CurrentUser
	if cu == nil {
		return domain.User{}, false
	}
	return cu.Clone(), true
}

// UpdateUserProfile applies patch to the given user. It reports false when
// the user does not exist.
func (s *Store) UpdateUserProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (domain.User, bool) {
	var updated domain.User
	var found bool
	s.transact(ctx, func(cur State) []Action {
		i := cur.userIndex(userID)
		if i < 0 {
			return nil
		}
		updated = patch.Apply(cur.Users[i])
		found = true
		return []Action{UpdateUser{User: updated}}
	})
	return updated, found
}

// UpdateProfile applies patch to the current user; without one it does nothing.
func (s *Store) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) {
	cu, ok := s.CurrentUser()
	if !ok {
		return
	}
	s.UpdateUserProfile(ctx, cu.ID, patch)
}

// CreateSwapRequest records a new pending request. Skill and user ids are
// not checked here.
func (s *Store) CreateSwapRequest(ctx context.Context, draft domain.SwapDraft) domain.SwapRequest {
	req := domain.SwapRequest{
		ID:               s.newID("swap"),
		FromUserID:       draft.FromUserID,
		ToUserID:         draft.ToUserID,
		OfferedSkillID:   draft.OfferedSkillID,
		RequestedSkillID: draft.RequestedSkillID,
		Message:          draft.Message,
		Status:           domain.SwapPending,
		CreatedDate:      s.now().UTC(),
	}
	s.Dispatch(ctx, AddSwapRequest{Request: req})
	return req
}

// SwapGuard inspects the committed request before a guarded change and
// returns a non-nil error to veto it.
type SwapGuard func(domain.SwapRequest) error

// UpdateSwapRequest sets the status of request id. responseDate is stamped
// for any non-pending status and completedDate for completed. It does not
// check whether the transition is legal. A missing id is a no-op and
// reports false.
func (s *Store) UpdateSwapRequest(ctx context.Context, id string, status domain.SwapStatus) (domain.SwapRequest, bool) {
	updated, err := s.TransitionSwapRequest(ctx, id, status, nil)
	return updated, err == nil
}

// TransitionSwapRequest is UpdateSwapRequest with guard evaluated against the
// committed request under the write lock. It returns domain.ErrNotFound for
// a missing id and the guard's error when vetoed.
func (s *Store) TransitionSwapRequest(ctx context.Context, id string, status domain.SwapStatus, guard SwapGuard) (domain.SwapRequest, error) {
	var updated domain.SwapRequest
	err := domain.ErrNotFound
	s.transact(ctx, func(cur State) []Action {
		i := cur.swapIndex(id)
		if i < 0 {
			return nil
		}
		if guard != nil {
			if err = guard(cur.SwapRequests[i]); err != nil {
				return nil
			}
		}
		err = nil
		updated = cur.SwapRequests[i]
		now := s.now().UTC()
		updated.Status = status
		if status != domain.SwapPending {
			updated.ResponseDate = &now
		}
		if status == domain.SwapCompleted {
			completed := now
			updated.CompletedDate = &completed
		}
		return []Action{UpdateSwapRequest{Request: updated}}
	})
	return updated, err
}

// DeleteSwapRequest removes request id if present.
func (s *Store) DeleteSwapRequest(ctx context.Context, id string) {
	_ = s.DeleteSwapRequestIf(ctx, id, nil)
}

// DeleteSwapRequestIf removes request id when guard allows it. It returns
// domain.ErrNotFound for a missing id.
func (s *Store) DeleteSwapRequestIf(ctx context.Context, id string, guard SwapGuard) error {
	err := domain.ErrNotFound
	s.transact(ctx, func(cur State) []Action {
		i := cur.swapIndex(id)
		if i < 0 {
			return nil
		}
		if guard != nil {
			if err = guard(cur.SwapRequests[i]); err != nil {
				return nil
			}
		}
		err = nil
		return []Action{DeleteSwapRequest{ID: id}}
	})
	return err
}

// AddRating records a rating and folds it into the target's running mean.
// The rating is kept even when the target user is unknown.
func (s *Store) AddRating(ctx context.Context, draft domain.RatingDraft) domain.Rating {
	r, _ := s.addRating(ctx, draft, false)
	return r
}

// AddRatingOnce is AddRating that refuses a second rating of the same swap
// by the same user. It reports false when one already exists.
func (s *Store) AddRatingOnce(ctx context.Context, draft domain.RatingDraft) (domain.Rating, bool) {
	return s.addRating(ctx, draft, true)
}

func (s *Store) addRating(ctx context.Context, draft domain.RatingDraft, once bool) (domain.Rating, bool) {
	r := domain.Rating{
		ID:            s.newID("rating"),
		SwapRequestID: draft.SwapRequestID,
		FromUserID:    draft.FromUserID,
		ToUserID:      draft.ToUserID,
		Rating:        draft.Rating,
		Feedback:      draft.Feedback,
		CreatedDate:   s.now().UTC(),
	}
	added := false
	s.transact(ctx, func(cur State) []Action {
		if once && cur.hasRated(r.SwapRequestID, r.FromUserID) {
			return nil
		}
		added = true
		actions := []Action{AddRating{Rating: r}}
		if i := cur.userIndex(r.ToUserID); i >= 0 {
			u := cur.Users[i].Clone()
			total := u.TotalRatings + 1
			u.Rating = (u.Rating*float64(u.TotalRatings) + float64(r.Rating)) / float64(total)
			u.TotalRatings = total
			actions = append(actions, UpdateUser{User: u})
		}
		return actions
	})
	if !added {
		return domain.Rating{}, false
	}
	return r, true
}

// SearchUsers stores the shared search term and category. Filtering is done
// by readers, see FilterDirectory.
func (s *Store) SearchUsers(ctx context.Context, term, category string) {
	s.Dispatch(ctx, SetSearch{Term: term, Category: category})
}

// BanUser deactivates userID. Admins cannot be banned. It reports whether
// the user was deactivated.
func (s *Store) BanUser(ctx context.Context, userID string) bool {
	var banned bool
	s.transact(ctx, func(cur State) []Action {
		i := cur.userIndex(userID)
		if i < 0 || cur.Users[i].IsAdmin() {
			return nil
		}
		u := cur.Users[i].Clone()
		u.IsActive = false
		banned = true
		return []Action{UpdateUser{User: u}}
	})
	return banned
}

// CreateAdminMessage appends a broadcast message.
func (s *Store) CreateAdminMessage(ctx context.Context, draft domain.AdminMessageDraft) domain.AdminMessage {
	msg := domain.AdminMessage{
		ID:          s.newID("msg"),
		Title:       draft.Title,
		Content:     draft.Content,
		CreatedDate: s.now().UTC(),
		IsActive:    draft.IsActive,
	}
	s.Dispatch(ctx, AddAdminMessage{Message: msg})
	return msg
}
