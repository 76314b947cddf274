package handler

import (
	"net/http"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/apperror"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
)

// AdminHandler handles the admin panel endpoints. Routes are mounted behind
// RequireAdmin; the service checks the role again.
type AdminHandler struct {
	admin *service.AdminService
	errs  *apperror.Handler
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService, errs *apperror.Handler) *AdminHandler {
	return &AdminHandler{admin: admin, errs: errs}
}

// HandleStats is GET /api/admin/stats.
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(*UserFromContext(r.Context()))
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// HandleUsers lists every account, banned ones included.
// GET /api/admin/users
func (h *AdminHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	actor := UserFromContext(r.Context())
	users, err := h.admin.Users(*actor)
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": toUserDTOs(actor, users)})
}

// HandleBan deactivates an account.
// POST /api/admin/users/{id}/ban
func (h *AdminHandler) HandleBan(w http.ResponseWriter, r *http.Request) {
	actor := UserFromContext(r.Context())
	user, err := h.admin.Ban(r.Context(), *actor, r.PathValue("id"))
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTOFor(actor, &user)})
}

// HandleSwaps lists every swap request.
// GET /api/admin/swaps
func (h *AdminHandler) HandleSwaps(w http.ResponseWriter, r *http.Request) {
	swaps, err := h.admin.Swaps(*UserFromContext(r.Context()))
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"swaps": toSwapDTOs(swaps)})
}

// HandleMessages lists every broadcast, inactive ones included.
// GET /api/admin/messages
func (h *AdminHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.admin.Messages(*UserFromContext(r.Context()))
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": toMessageDTOs(msgs)})
}

// HandleBroadcast creates a platform-wide message.
// POST /api/admin/messages
// Request: {"title":"...","content":"...","isActive":true}
func (h *AdminHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		IsActive *bool  `json:"isActive"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	draft := domain.AdminMessageDraft{Title: req.Title, Content: req.Content, IsActive: true}
	if req.IsActive != nil {
		draft.IsActive = *req.IsActive
	}
	msg, err := h.admin.Broadcast(r.Context(), *UserFromContext(r.Context()), draft)
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": toMessageDTO(msg)})
}

// HandleReset restores the demo data set.
// POST /api/admin/reset
// Response: 204 No Content
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Reset(r.Context(), *UserFromContext(r.Context())); err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleErrors returns the most recent classified request failures.
// GET /api/admin/errors
func (h *AdminHandler) HandleErrors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"errors": nonNil(h.errs.Log())})
}
