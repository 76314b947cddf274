package handler

import (
	"time"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server and the email is only shown to its owner and admins.
type UserDTO struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email,omitempty"`
	Location      string         `json:"location,omitempty"`
	ProfilePhoto  string         `json:"profilePhoto,omitempty"`
	SkillsOffered []domain.Skill `json:"skillsOffered"`
	SkillsWanted  []domain.Skill `json:"skillsWanted"`
	Availability  []string       `json:"availability"`
	IsPublic      bool           `json:"isPublic"`
	Rating        float64        `json:"rating"`
	TotalRatings  int            `json:"totalRatings"`
	IsActive      bool           `json:"isActive"`
	JoinDate      string         `json:"joinDate"`
	Role          domain.Role    `json:"role"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Location:      u.Location,
		ProfilePhoto:  u.ProfilePhoto,
		SkillsOffered: nonNil(u.SkillsOffered),
		SkillsWanted:  nonNil(u.SkillsWanted),
		Availability:  nonNil(u.Availability),
		IsPublic:      u.IsPublic,
		Rating:        u.Rating,
		TotalRatings:  u.TotalRatings,
		IsActive:      u.IsActive,
		JoinDate:      u.JoinDate.Format(time.RFC3339),
		Role:          u.Role,
	}
}

// toUserDTOFor renders u for viewer, hiding the email from other members.
func toUserDTOFor(viewer *domain.User, u *domain.User) UserDTO {
	dto := toUserDTO(u)
	if viewer == nil || (viewer.ID != u.ID && !viewer.IsAdmin()) {
		dto.Email = ""
	}
	return dto
}

func toUserDTOs(viewer *domain.User, users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTOFor(viewer, &users[i])
	}
	return dtos
}

// SwapDTO is the JSON representation of a swap request.
type SwapDTO struct {
	ID               string            `json:"id"`
	FromUserID       string            `json:"fromUserId"`
	ToUserID         string            `json:"toUserId"`
	OfferedSkillID   string            `json:"offeredSkillId"`
	RequestedSkillID string            `json:"requestedSkillId"`
	Message          string            `json:"message"`
	Status           domain.SwapStatus `json:"status"`
	CreatedDate      string            `json:"createdDate"`
	ResponseDate     *string           `json:"responseDate,omitempty"`
	CompletedDate    *string           `json:"completedDate,omitempty"`
}

func toSwapDTO(s domain.SwapRequest) SwapDTO {
	return SwapDTO{
		ID:               s.ID,
		FromUserID:       s.FromUserID,
		ToUserID:         s.ToUserID,
		OfferedSkillID:   s.OfferedSkillID,
		RequestedSkillID: s.RequestedSkillID,
		Message:          s.Message,
		Status:           s.Status,
		CreatedDate:      s.CreatedDate.Format(time.RFC3339),
		ResponseDate:     formatOptional(s.ResponseDate),
		CompletedDate:    formatOptional(s.CompletedDate),
	}
}

func toSwapDTOs(swaps []domain.SwapRequest) []SwapDTO {
	dtos := make([]SwapDTO, len(swaps))
	for i, s := range swaps {
		dtos[i] = toSwapDTO(s)
	}
	return dtos
}

// RatingDTO is the JSON representation of a rating.
type RatingDTO struct {
	ID            string `json:"id"`
	SwapRequestID string `json:"swapRequestId"`
	FromUserID    string `json:"fromUserId"`
	ToUserID      string `json:"toUserId"`
	Rating        int    `json:"rating"`
	Feedback      string `json:"feedback"`
	CreatedDate   string `json:"createdDate"`
}

func toRatingDTO(r domain.Rating) RatingDTO {
	return RatingDTO{
		ID:            r.ID,
		SwapRequestID: r.SwapRequestID,
		FromUserID:    r.FromUserID,
		ToUserID:      r.ToUserID,
		Rating:        r.Rating,
		Feedback:      r.Feedback,
		CreatedDate:   r.CreatedDate.Format(time.RFC3339),
	}
}

func toRatingDTOs(ratings []domain.Rating) []RatingDTO {
	dtos := make([]RatingDTO, len(ratings))
	for i, r := range ratings {
		dtos[i] = toRatingDTO(r)
	}
	return dtos
}

// MessageDTO is the JSON representation of an admin broadcast.
type MessageDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CreatedDate string `json:"createdDate"`
	IsActive    bool   `json:"isActive"`
}

func toMessageDTO(m domain.AdminMessage) MessageDTO {
	return MessageDTO{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		CreatedDate: m.CreatedDate.Format(time.RFC3339),
		IsActive:    m.IsActive,
	}
}

func toMessageDTOs(msgs []domain.AdminMessage) []MessageDTO {
	dtos := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		dtos[i] = toMessageDTO(m)
	}
	return dtos
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
