package service

import (
	"context"
	"fmt"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/validation"
)

// RatingStore is the part of the store used for feedback.
type RatingStore interface {
	SwapRequestByID(id string) (domain.SwapRequest, bool)
	AddRatingOnce(ctx context.Context, draft domain.RatingDraft) (domain.Rating, bool)
	RatingsForUser(userID string) []domain.Rating
}

// RatingService lets each participant of a completed swap rate the other
// participant once.
type RatingService struct {
	store RatingStore
}

func NewRatingService(st RatingStore) *RatingService {
	return &RatingService{store: st}
}

func (s *RatingService) Rate(ctx context.Context, actorID, swapID string, rating int, feedback string) (domain.Rating, error) {
	feedback = validation.SanitizeInput(feedback)
	if err := validation.Rating(rating, feedback).Err(); err != nil {
		return domain.Rating{}, err
	}

	req, ok := s.store.SwapRequestByID(swapID)
	if !ok {
		return domain.Rating{}, fmt.Errorf("swap %s: %w", swapID, domain.ErrNotFound)
	}
	if !req.Involves(actorID) {
		return domain.Rating{}, domain.ErrForbidden
	}
	if req.Status != domain.SwapCompleted {
		return domain.Rating{}, fmt.Errorf("%w: only completed swaps can be rated", domain.ErrInvalidTransition)
	}

	r, ok := s.store.AddRatingOnce(ctx, domain.RatingDraft{
		SwapRequestID: swapID,
		FromUserID:    actorID,
		ToUserID:      req.Counterpart(actorID),
		Rating:        rating,
		Feedback:      feedback,
	})
	if !ok {
		return domain.Rating{}, domain.ErrAlreadyRated
	}
	return r, nil
}

// ForUser lists ratings received by userID.
func (s *RatingService) ForUser(userID string) []domain.Rating {
	return s.store.RatingsForUser(userID)
}
