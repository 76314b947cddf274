package handler

import (
	"net/http"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/apperror"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

// DirectoryHandler serves member browsing and public profiles.
type DirectoryHandler struct {
	directory *service.DirectoryService
	ratings   *service.RatingService
	errs      *apperror.Handler
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directory *service.DirectoryService, ratings *service.RatingService, errs *apperror.Handler) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, ratings: ratings, errs: errs}
}

// HandleBrowse lists the members the caller may see.
// GET /api/users?q=&category=&location=&availability=
func (h *DirectoryHandler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	query := r.URL.Query()
	users, err := h.directory.Browse(r.Context(), user.ID, store.DirectoryQuery{
		Term:         query.Get("q"),
		Category:     query.Get("category"),
		Location:     query.Get("location"),
		Availability: query.Get("availability"),
	})
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": toUserDTOs(user, users),
	})
}

// HandleProfile returns one member with the ratings they have received.
// GET /api/users/{id}
func (h *DirectoryHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	profile, err := h.directory.Profile(*user, r.PathValue("id"))
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    toUserDTOFor(user, &profile),
		"ratings": toRatingDTOs(h.ratings.ForUser(profile.ID)),
	})
}
