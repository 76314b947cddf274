// Package store holds the marketplace aggregate. Every change goes through a
// named action applied by a pure reducer; the Store type serializes
// dispatches, publishes the result atomically, persists it and notifies
// subscribers.
package store

import (
	"slices"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// State is the whole marketplace aggregate. A committed State is never
// modified in place; the reducer always builds a new one.
type State struct {
	CurrentUser      *domain.User          `json:"currentUser"`
	Users            []domain.User         `json:"users"`
	SwapRequests     []domain.SwapRequest  `json:"swapRequests"`
	Ratings          []domain.Rating       `json:"ratings"`
	AdminMessages    []domain.AdminMessage `json:"adminMessages"`
	IsLoading        bool                  `json:"isLoading"`
	SearchTerm       string                `json:"searchTerm"`
	SelectedCategory string                `json:"selectedCategory"`
}

// Clone returns a deep copy that shares nothing with s.
func (s State) Clone() State {
	out := s
	if s.CurrentUser != nil {
		u := s.CurrentUser.Clone()
		out.CurrentUser = &u
	}
	out.Users = make([]domain.User, len(s.Users))
	for i, u := range s.Users {
		out.Users[i] = u.Clone()
	}
	out.SwapRequests = slices.Clone(s.SwapRequests)
	out.Ratings = slices.Clone(s.Ratings)
	out.AdminMessages = slices.Clone(s.AdminMessages)
	return out
}

func (s *State) userIndex(id string) int {
	return slices.IndexFunc(s.Users, func(u domain.User) bool { return u.ID == id })
}

func (s *State) userByEmail(email string) (domain.User, bool) {
	i := slices.IndexFunc(s.Users, func(u domain.User) bool { return u.Email == email })
	if i < 0 {
		return domain.User{}, false
	}
	return s.Users[i], true
}

func (s *State) swapIndex(id string) int {
	return slices.IndexFunc(s.SwapRequests, func(r domain.SwapRequest) bool { return r.ID == id })
}

func (s *State) hasRated(swapID, fromUserID string) bool {
	return slices.ContainsFunc(s.Ratings, func(r domain.Rating) bool {
		return r.SwapRequestID == swapID && r.FromUserID == fromUserID
	})
}
