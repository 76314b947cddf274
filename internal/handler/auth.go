package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/apperror"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/validation"
)

// AuthHandler handles authentication and profile HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	limiter      *service.TokenBucket
	errs         *apperror.Handler
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. A nil limiter disables login
// throttling.
func NewAuthHandler(auth *service.AuthService, limiter *service.TokenBucket, errs *apperror.Handler, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter, errs: errs, cookieSecure: cookieSecure}
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(service.DefaultTokenTTL.Seconds()),
	})
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow(clientIP(r)) {
		writeAppError(w, r, h.errs, domain.ErrRateLimited)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			err = &apperror.AppError{
				Type:         apperror.TypeAuthentication,
				Message:      "Invalid email or password.",
				UserFriendly: true,
				Err:          err,
			}
		}
		writeAppError(w, r, h.errs, err)
		return
	}

	h.setSession(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(&user),
	})
}

type registerRequest struct {
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Password        string         `json:"password"`
	ConfirmPassword string         `json:"confirmPassword"`
	Location        string         `json:"location"`
	SkillsOffered   []domain.Skill `json:"skillsOffered"`
	SkillsWanted    []domain.Skill `json:"skillsWanted"`
	Availability    []string       `json:"availability"`
	IsPublic        *bool          `json:"isPublic"`
}

// HandleRegister processes a JSON registration request and starts a session
// for the new account.
// POST /api/auth/register
// Response: 201 {"user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	_, err := h.auth.Register(r.Context(), service.Registration{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Location:        req.Location,
		SkillsOffered:   req.SkillsOffered,
		SkillsWanted:    req.SkillsWanted,
		Availability:    req.Availability,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	h.setSession(w, token)
	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(&user),
	})
}

// HandleLogout clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

type profileRequest struct {
	Name          *string         `json:"name"`
	Location      *string         `json:"location"`
	SkillsOffered *[]domain.Skill `json:"skillsOffered"`
	SkillsWanted  *[]domain.Skill `json:"skillsWanted"`
	Availability  *[]string       `json:"availability"`
	IsPublic      *bool           `json:"isPublic"`
}

// HandleUpdateProfile applies a partial profile update. Omitted fields are
// left unchanged.
// PATCH /api/profile
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req profileRequest
	if err := readJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, domain.ProfilePatch{
		Name:          req.Name,
		Location:      req.Location,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Availability:  req.Availability,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(&updated),
	})
}

// HandleUploadPhoto stores a multipart "photo" upload as the profile photo,
// encoded as a data URL.
// POST /api/profile/photo
func (h *AuthHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, validation.DefaultMaxUploadSize+maxBodyBytes)
	file, _, err := r.FormFile("photo")
	if err != nil {
		writeAppError(w, r, h.errs, validation.Errors{{Field: "file", Message: "No photo provided", Code: validation.CodeRequired}})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, validation.DefaultMaxUploadSize+1))
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	// Detect content type from file bytes (more reliable than multipart header).
	contentType := http.DetectContentType(data)
	if fe := validation.FileUpload(contentType, int64(len(data)), 0); fe != nil {
		writeAppError(w, r, h.errs, validation.Errors{*fe})
		return
	}

	photo := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, domain.ProfilePatch{ProfilePhoto: &photo})
	if err != nil {
		writeAppError(w, r, h.errs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(&updated),
	})
}
