package domain

import "time"

// Rating is feedback left by one participant of a swap for the other.
type Rating struct {
	ID            string    `json:"id"`
	SwapRequestID string    `json:"swapRequestId"`
	FromUserID    string    `json:"fromUserId"`
	ToUserID      string    `json:"toUserId"`
	Rating        int       `json:"rating"`
	Feedback      string    `json:"feedback"`
	CreatedDate   time.Time `json:"createdDate"`
}

type RatingDraft struct {
	SwapRequestID string
	FromUserID    string
	ToUserID      string
	Rating        int
	Feedback      string
}
