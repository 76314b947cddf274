package handler

import (
	"context"
	"net/http"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/apperror"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
)

// SwapHandler handles swap request and rating HTTP requests.
type SwapHandler struct {
	swaps   *service.SwapService
	ratings *service.RatingService
	errs    *apperror.Handler
}

// NewSwapHandler creates a new SwapHandler.
func NewSwapHandler(swaps *service.SwapService, ratings *service.RatingService, errs *apperror.Handler) *SwapHandler {
	return &SwapHandler{swaps: swaps, ratings: ratings, errs: errs}
}

// HandleList returns the caller's sent and received requests, newest first.
// GET /api/swaps
func (h *SwapHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"swaps": toSwapDTOs(h.swaps.List(user.ID)),
	})
}

// HandleCreate proposes a new swap.
// POST /api/swaps
// Request: {"toUserId":"...","offeredSkillId":"...","requestedSkillId":"...","message":"..."}
func (h *SwapHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		ToUserID         string `json:"toUserId"`
		OfferedSkillID   string `json:"offeredSkillId"`
		RequestedSkillID string `json:"requestedSkillId"`
		Message          string `json:"message"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	swap, err := h.swaps.Create(r.Context(), user.ID, service.SwapInput{
		ToUserID:         req.ToUserID,
		OfferedSkillID:   req.OfferedSkillID,
		RequestedSkillID: req.RequestedSkillID,
		Message:          req.Message,
	})
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"swap": toSwapDTO(swap),
	})
}

// HandleGet returns one request the caller takes part in.
// GET /api/swaps/{id}
func (h *SwapHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	swap, err := h.swaps.Get(user.ID, r.PathValue("id"))
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"swap": toSwapDTO(swap),
	})
}

type transitionFunc func(ctx context.Context, actorID, id string) (domain.SwapRequest, error)

// transition runs fn for the caller on the request named in the path.
func (h *SwapHandler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	swap, err := fn(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"swap": toSwapDTO(swap),
	})
}

// HandleAccept is POST /api/swaps/{id}/accept.
func (h *SwapHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.swaps.Accept)
}

// HandleReject is POST /api/swaps/{id}/reject.
func (h *SwapHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.swaps.Reject)
}

// HandleComplete is POST /api/swaps/{id}/complete.
func (h *SwapHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.swaps.Complete)
}

// HandleWithdraw deletes a pending request the caller sent.
// DELETE /api/swaps/{id}
// Response: 204 No Content
func (h *SwapHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	if err := h.swaps.Withdraw(r.Context(), user.ID, r.PathValue("id")); err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRate records the caller's feedback on a completed swap.
// POST /api/swaps/{id}/rating
// Request: {"rating":5,"feedback":"..."}
func (h *SwapHandler) HandleRate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Rating   int    `json:"rating"`
		Feedback string `json:"feedback"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	rating, err := h.ratings.Rate(r.Context(), user.ID, r.PathValue("id"), req.Rating, req.Feedback)
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"rating": toRatingDTO(rating),
	})
}
