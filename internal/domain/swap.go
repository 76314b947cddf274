package domain

import "time"

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected, SwapCompleted, SwapCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s SwapStatus) Terminal() bool {
	return s == SwapCompleted || s == SwapRejected || s == SwapCancelled
}

// SwapRequest proposes exchanging one of the sender's skills for one of the recipient's.
type SwapRequest struct {
	ID               string     `json:"id"`
	FromUserID       string     `json:"fromUserId"`
	ToUserID         string     `json:"toUserId"`
	OfferedSkillID   string     `json:"offeredSkillId"`
	RequestedSkillID string     `json:"requestedSkillId"`
	Message          string     `json:"message"`
	Status           SwapStatus `json:"status"`
	CreatedDate      time.Time  `json:"createdDate"`
	ResponseDate     *time.Time `json:"responseDate,omitempty"`
	CompletedDate    *time.Time `json:"completedDate,omitempty"`
}

// Involves reports whether userID is the sender or the recipient.
func (r *SwapRequest) Involves(userID string) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// Counterpart returns the other participant relative to userID.
func (r *SwapRequest) Counterpart(userID string) string {
	if r.FromUserID == userID {
		return r.ToUserID
	}
	return r.FromUserID
}

// SwapDraft is the caller-supplied part of a new swap request.
type SwapDraft struct {
	FromUserID       string
	ToUserID         string
	OfferedSkillID   string
	RequestedSkillID string
	Message          string
}
