package domain

import "time"

// AdminMessage is a platform-wide broadcast banner.
type AdminMessage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedDate time.Time `json:"createdDate"`
	IsActive    bool      `json:"isActive"`
}

type AdminMessageDraft struct {
	Title    string
	Content  string
	IsActive bool
}
