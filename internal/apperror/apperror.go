// Package apperror classifies failures into the categories the API reports
// and keeps a bounded log of recent ones.
package apperror

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/validation"
)

// Type is the category of an AppError.
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeNetwork        Type = "NETWORK"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeServer         Type = "SERVER"
	TypeRateLimit      Type = "RATE_LIMIT"
	TypeUnknown        Type = "UNKNOWN"
)

// AppError is the classified form of an error as shown to clients.
type AppError struct {
	Type         Type      `json:"type"`
	Message      string    `json:"message"`
	Code         string    `json:"code,omitempty"`
	Field        string    `json:"field,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	UserFriendly bool      `json:"-"`
	Err          error     `json:"-"`
}

func (e *AppError) Error() string {
	return string(e.Type) + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// DefaultLogSize bounds the number of remembered errors.
const DefaultLogSize = 100

// Handler converts errors to AppErrors and remembers the most recent ones.
type Handler struct {
	mu      sync.Mutex
	entries []AppError
	max     int
	log     *slog.Logger
	now     func() time.Time
}

// NewHandler returns a Handler keeping up to maxLog entries. A non-positive
// maxLog selects DefaultLogSize.
func NewHandler(logger *slog.Logger, maxLog int) *Handler {
	if maxLog <= 0 {
		maxLog = DefaultLogSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{max: maxLog, log: logger, now: time.Now}
}

// Classify maps err to an AppError without recording it.
func (h *Handler) Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	var existing *AppError
	if errors.As(err, &existing) {
		return existing
	}

	ae := &AppError{Err: err, Timestamp: h.now(), UserFriendly: true}
	var fields validation.Errors
	switch {
	case errors.As(err, &fields) && len(fields) > 0:
		ae.Type = TypeValidation
		ae.Message = fields[0].Message
		ae.Code = fields[0].Code
		ae.Field = fields[0].Field
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyRated), errors.Is(err, domain.ErrDuplicateEmail):
		ae.Type = TypeValidation
		ae.Message = err.Error()
		ae.Code = "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrUnauthorized):
		ae.Type = TypeAuthentication
		ae.Message = "Authentication failed"
	case errors.Is(err, domain.ErrForbidden):
		ae.Type = TypeAuthorization
		ae.Message = "You are not authorized to perform this action"
	case errors.Is(err, domain.ErrNotFound):
		ae.Type = TypeNotFound
		ae.Message = "Resource not found"
	case errors.Is(err, domain.ErrRateLimited):
		ae.Type = TypeRateLimit
		ae.Message = "Too many requests. Please try again later"
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		ae.Type = TypeNetwork
		ae.Message = "Network connection failed"
	default:
		ae.Type = TypeUnknown
		ae.Message = err.Error()
		ae.UserFriendly = false
	}
	return ae
}

// Handle classifies err, logs it and appends it to the bounded log.
func (h *Handler) Handle(ctx context.Context, err error) *AppError {
	ae := h.Classify(err)
	if ae == nil {
		return nil
	}
	level := slog.LevelWarn
	if !ae.UserFriendly {
		level = slog.LevelError
	}
	h.log.Log(ctx, level, "request failed", "type", ae.Type, "error", err)

	h.mu.Lock()
	h.entries = append(h.entries, *ae)
	if over := len(h.entries) - h.max; over > 0 {
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
	h.mu.Unlock()
	return ae
}

// Log returns a copy of the remembered errors, oldest first.
func (h *Handler) Log() []AppError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]AppError(nil), h.entries...)
}

func (h *Handler) ClearLog() {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()
}

// UserMessage returns text safe to show a user.
func UserMessage(e *AppError) string {
	if e.UserFriendly {
		return e.Message
	}
	switch e.Type {
	case TypeServer:
		return "Something went wrong on our end. Please try again later."
	case TypeUnknown:
		return "An unexpected error occurred. Please try again."
	}
	return "Something went wrong. Please try again."
}

// IsRetryable reports whether repeating the operation later may succeed.
func IsRetryable(e *AppError) bool {
	return e.Type == TypeNetwork || e.Type == TypeRateLimit
}

// RetryDelay is how long a client should wait before retrying.
func RetryDelay(e *AppError) time.Duration {
	switch e.Type {
	case TypeRateLimit:
		return time.Minute
	case TypeNetwork:
		return 5 * time.Second
	}
	return 0
}

// HTTPStatus maps the error category to a response status.
func HTTPStatus(e *AppError) int {
	switch e.Type {
	case TypeValidation:
		if errors.Is(e.Err, domain.ErrDuplicateEmail) || errors.Is(e.Err, domain.ErrInvalidTransition) || errors.Is(e.Err, domain.ErrAlreadyRated) {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeRateLimit:
		return http.StatusTooManyRequests
	case TypeNetwork:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
