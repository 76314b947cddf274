package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/apperror"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// readJSON decodes the request body into the given destination. Decoding
// failures wrap domain.ErrInvalidInput.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", domain.ErrInvalidInput)
	}
	return nil
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Type   apperror.Type           `json:"type,omitempty"`
	Code   string                  `json:"code,omitempty"`
	Field  string                  `json:"field,omitempty"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// writeAppError classifies err, records it and writes the matching response.
func writeAppError(w http.ResponseWriter, r *http.Request, errs *apperror.Handler, err error) {
	ae := errs.Handle(r.Context(), err)
	body := errorResponse{
		Error: apperror.UserMessage(ae),
		Type:  ae.Type,
		Code:  ae.Code,
		Field: ae.Field,
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		body.Fields = fields
	}
	if apperror.IsRetryable(ae) {
		w.Header().Set("Retry-After", strconv.Itoa(int(apperror.RetryDelay(ae).Seconds())))
	}
	writeJSON(w, apperror.HTTPStatus(ae), body)
}
