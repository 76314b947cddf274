package store

import (
	"slices"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// Action is a named intent understood by Reduce.
type Action interface {
	Name() string
	// keys lists the persisted snapshot keys the action can change.
	keys() []string
}

type (
	SetLoading        struct{ Loading bool }
	SetCurrentUser    struct{ User *domain.User }
	SetUsers          struct{ Users []domain.User }
	AddUser           struct{ User domain.User }
	UpdateUser        struct{ User domain.User }
	SetSwapRequests   struct{ Requests []domain.SwapRequest }
	AddSwapRequest    struct{ Request domain.SwapRequest }
	UpdateSwapRequest struct{ Request domain.SwapRequest }
	DeleteSwapRequest struct{ ID string }
	SetRatings        struct{ Ratings []domain.Rating }
	AddRating         struct{ Rating domain.Rating }
	SetSearch         struct{ Term, Category string }
	SetAdminMessages  struct{ Messages []domain.AdminMessage }
	AddAdminMessage   struct{ Message domain.AdminMessage }
)

func (SetLoading) Name() string        { return "SET_LOADING" }
func (SetCurrentUser) Name() string    { return "SET_CURRENT_USER" }
func (SetUsers) Name() string          { return "SET_USERS" }
func (AddUser) Name() string           { return "ADD_USER" }
func (UpdateUser) Name() string        { return "UPDATE_USER" }
func (SetSwapRequests) Name() string   { return "SET_SWAP_REQUESTS" }
func (AddSwapRequest) Name() string    { return "ADD_SWAP_REQUEST" }
func (UpdateSwapRequest) Name() string { return "UPDATE_SWAP_REQUEST" }
func (DeleteSwapRequest) Name() string { return "DELETE_SWAP_REQUEST" }
func (SetRatings) Name() string        { return "SET_RATINGS" }
func (AddRating) Name() string         { return "ADD_RATING" }
func (SetSearch) Name() string         { return "SET_SEARCH" }
func (SetAdminMessages) Name() string  { return "SET_ADMIN_MESSAGES" }
func (AddAdminMessage) Name() string   { return "ADD_ADMIN_MESSAGE" }

func (SetLoading) keys() []string        { return nil }
func (SetCurrentUser) keys() []string    { return []string{domain.KeyCurrentUser} }
func (SetUsers) keys() []string          { return []string{domain.KeyUsers, domain.KeyCurrentUser} }
func (AddUser) keys() []string           { return []string{domain.KeyUsers} }
func (UpdateUser) keys() []string        { return []string{domain.KeyUsers, domain.KeyCurrentUser} }
func (SetSwapRequests) keys() []string   { return []string{domain.KeySwapRequests} }
func (AddSwapRequest) keys() []string    { return []string{domain.KeySwapRequests} }
func (UpdateSwapRequest) keys() []string { return []string{domain.KeySwapRequests} }
func (DeleteSwapRequest) keys() []string { return []string{domain.KeySwapRequests} }
func (SetRatings) keys() []string        { return []string{domain.KeyRatings} }
func (AddRating) keys() []string         { return []string{domain.KeyRatings} }
func (SetSearch) keys() []string         { return nil }
func (SetAdminMessages) keys() []string  { return []string{domain.KeyAdminMessages} }
func (AddAdminMessage) keys() []string   { return []string{domain.KeyAdminMessages} }

// Reduce returns the state that results from applying a to s.
// It never modifies s; unknown actions return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.IsLoading = a.Loading
	case SetCurrentUser:
		if a.User == nil {
			s.CurrentUser = nil
		} else {
			u := a.User.Clone()
			s.CurrentUser = &u
		}
	case SetUsers:
		s.Users = cloneUsers(a.Users)
		if s.CurrentUser != nil {
			i := s.userIndex(s.CurrentUser.ID)
			if i < 0 {
				s.CurrentUser = nil
			} else {
				u := s.Users[i].Clone()
				s.CurrentUser = &u
			}
		}
	case AddUser:
		s.Users = append(slices.Clip(s.Users), a.User.Clone())
	case UpdateUser:
		users := make([]domain.User, len(s.Users))
		for i, u := range s.Users {
			if u.ID == a.User.ID {
				u = a.User.Clone()
			}
			users[i] = u
		}
		s.Users = users
		if s.CurrentUser != nil && s.CurrentUser.ID == a.User.ID {
			u := a.User.Clone()
			s.CurrentUser = &u
		}
	case SetSwapRequests:
		s.SwapRequests = slices.Clone(a.Requests)
	case AddSwapRequest:
		s.SwapRequests = append(slices.Clip(s.SwapRequests), a.Request)
	case UpdateSwapRequest:
		reqs := slices.Clone(s.SwapRequests)
		for i := range reqs {
			if reqs[i].ID == a.Request.ID {
				reqs[i] = a.Request
			}
		}
		s.SwapRequests = reqs
	case DeleteSwapRequest:
		s.SwapRequests = slices.DeleteFunc(slices.Clone(s.SwapRequests), func(r domain.SwapRequest) bool {
			return r.ID == a.ID
		})
	case SetRatings:
		s.Ratings = slices.Clone(a.Ratings)
	case AddRating:
		s.Ratings = append(slices.Clip(s.Ratings), a.Rating)
	case SetSearch:
		s.SearchTerm = a.Term
		s.SelectedCategory = a.Category
	case SetAdminMessages:
		s.AdminMessages = slices.Clone(a.Messages)
	case AddAdminMessage:
		s.AdminMessages = append(slices.Clip(s.AdminMessages), a.Message)
	}
	return s
}

func cloneUsers(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}
