package store

import (
	"slices"
	"strings"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// UserByID returns the user with the given id.
func (s *Store) UserByID(id string) (domain.User, bool) {
	st := s.current()
	i := st.userIndex(id)
	if i < 0 {
		return domain.User{}, false
	}
	return st.Users[i].Clone(), true
}

// UserByEmail returns the user registered with email.
func (s *Store) UserByEmail(email string) (domain.User, bool) {
	u, ok := s.current().userByEmail(email)
	if !ok {
		return domain.User{}, false
	}
	return u.Clone(), true
}

// Users returns every user, active or not.
func (s *Store) Users() []domain.User {
	return cloneUsers(s.current().Users)
}

// SwapRequestByID returns the request with the given id.
func (s *Store) SwapRequestByID(id string) (domain.SwapRequest, bool) {
	st := s.current()
	i := st.swapIndex(id)
	if i < 0 {
		return domain.SwapRequest{}, false
	}
	return st.SwapRequests[i], true
}

// SwapRequestsForUser returns requests sent or received by userID.
func (s *Store) SwapRequestsForUser(userID string) []domain.SwapRequest {
	var out []domain.SwapRequest
	for _, r := range s.current().SwapRequests {
		if r.Involves(userID) {
			out = append(out, r)
		}
	}
	return out
}

// SwapRequests returns every request.
func (s *Store) SwapRequests() []domain.SwapRequest {
	return slices.Clone(s.current().SwapRequests)
}

// RatingsForUser returns ratings received by userID.
func (s *Store) RatingsForUser(userID string) []domain.Rating {
	var out []domain.Rating
	for _, r := range s.current().Ratings {
		if r.ToUserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// HasRated reports whether fromUserID already rated swap swapID.
func (s *Store) HasRated(swapID, fromUserID string) bool {
	return s.current().hasRated(swapID, fromUserID)
}

// AdminMessages returns every broadcast message in creation order.
func (s *Store) AdminMessages() []domain.AdminMessage {
	return slices.Clone(s.current().AdminMessages)
}

// ActiveAdminMessages returns active broadcasts, newest first.
func (s *Store) ActiveAdminMessages() []domain.AdminMessage {
	var out []domain.AdminMessage
	for _, m := range s.current().AdminMessages {
		if m.IsActive {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.AdminMessage) int {
		return b.CreatedDate.Compare(a.CreatedDate)
	})
	return out
}

// Search returns the shared search term and category.
func (s *Store) Search() (term, category string) {
	st := s.current()
	return st.SearchTerm, st.SelectedCategory
}

// Stats summarizes the marketplace for the admin panel.
type Stats struct {
	ActiveUsers    int `json:"activeUsers"`
	BannedUsers    int `json:"bannedUsers"`
	PendingSwaps   int `json:"pendingSwaps"`
	AcceptedSwaps  int `json:"acceptedSwaps"`
	CompletedSwaps int `json:"completedSwaps"`
	Ratings        int `json:"ratings"`
	AdminMessages  int `json:"adminMessages"`
}

func (s *Store) Stats() Stats {
	st := s.current()
	var out Stats
	for _, u := range st.Users {
		if u.IsActive {
			out.ActiveUsers++
		} else {
			out.BannedUsers++
		}
	}
	for _, r := range st.SwapRequests {
		switch r.Status {
		case domain.SwapPending:
			out.PendingSwaps++
		case domain.SwapAccepted:
			out.AcceptedSwaps++
		case domain.SwapCompleted:
			out.CompletedSwaps++
		}
	}
	out.Ratings = len(st.Ratings)
	out.AdminMessages = len(st.AdminMessages)
	return out
}

// Directory lists the users viewerID may browse under q.
func (s *Store) Directory(viewerID string, q DirectoryQuery) []domain.User {
	return FilterDirectory(s.current().Users, viewerID, q)
}

// DirectoryQuery holds the browse filters. Empty fields, and "All" for
// category and availability, disable the corresponding filter.
type DirectoryQuery struct {
	Term         string `json:"term"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	Availability string `json:"availability"`
}

// Key is a stable identifier for caching results of q.
func (q DirectoryQuery) Key(viewerID string) string {
	return strings.Join([]string{viewerID, strings.ToLower(q.Term), q.Category, strings.ToLower(q.Location), q.Availability}, "\x1f")
}
