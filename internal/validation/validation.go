// Package validation checks user input before it reaches the store and
// reports every problem as a FieldError.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// Error codes carried by FieldError.Code.
const (
	CodeRequired      = "REQUIRED"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeTooShort      = "TOO_SHORT"
	CodeTooLong       = "TOO_LONG"
	CodeInvalidRange  = "INVALID_RANGE"
	CodeMismatch      = "MISMATCH"
	CodeInvalidType   = "INVALID_TYPE"
	CodeTooLarge      = "TOO_LARGE"
)

const (
	maxEmailLength    = 254
	minPasswordLength = 8
	maxLocationLength = 100
	maxMessageLength  = 500
	maxFeedbackLength = 1000
	minSkillName      = 2
	minSkillDesc      = 10

	// DefaultMaxUploadSize bounds profile photos.
	DefaultMaxUploadSize = 5 * 1024 * 1024
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`)
)

const passwordSpecials = "@$!%*?&"

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects field errors. A non-empty Errors matches
// domain.ErrInvalidInput with errors.Is.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e Errors) Unwrap() error {
	return domain.ErrInvalidInput
}

// Err returns e as an error, or nil when there are no field errors.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e *Errors) add(fe *FieldError) {
	if fe != nil {
		*e = append(*e, *fe)
	}
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func Email(email string) *FieldError {
	switch {
	case email == "":
		return &FieldError{Field: "email", Message: "Email is required", Code: CodeRequired}
	case !emailPattern.MatchString(email):
		return &FieldError{Field: "email", Message: "Please enter a valid email address", Code: CodeInvalidFormat}
	case len(email) > maxEmailLength:
		return &FieldError{Field: "email", Message: "Email is too long", Code: CodeTooLong}
	}
	return nil
}

// Password requires at least eight characters including an ASCII lowercase
// letter, an ASCII uppercase letter, a digit and one of @$!%*?&. The first
// character must itself be one of those.
func Password(password string) Errors {
	if password == "" {
		return Errors{{Field: "password", Message: "Password is required", Code: CodeRequired}}
	}

	var errs Errors
	if runeLen(password) < minPasswordLength {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters long", minPasswordLength),
			Code:    CodeTooShort,
		})
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	lead, _ := utf8.DecodeRuneInString(password)
	if !lower || !upper || !digit || !special || !passwordRune(lead) {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
			Code:    CodeInvalidFormat,
		})
	}
	return errs
}

// passwordRune reports whether r is an ASCII letter, a digit or one of
// the accepted special characters.
func passwordRune(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' ||
		strings.ContainsRune(passwordSpecials, r)
}

func Name(name string) *FieldError {
	if name == "" {
		return &FieldError{Field: "name", Message: "Name is required", Code: CodeRequired}
	}
	if !namePattern.MatchString(name) {
		return &FieldError{Field: "name", Message: "Name must be 2-50 characters long and contain only letters and spaces", Code: CodeInvalidFormat}
	}
	return nil
}

// Location is optional.
func Location(location string) *FieldError {
	if runeLen(location) > maxLocationLength {
		return &FieldError{Field: "location", Message: "Location is too long", Code: CodeTooLong}
	}
	return nil
}

// Skill validates a listed skill. An empty level is accepted.
func Skill(s domain.Skill) Errors {
	var errs Errors
	if runeLen(strings.TrimSpace(s.Name)) < minSkillName {
		errs = append(errs, FieldError{Field: "skillName", Message: "Skill name must be at least 2 characters long", Code: CodeTooShort})
	}
	if runeLen(strings.TrimSpace(s.Description)) < minSkillDesc {
		errs = append(errs, FieldError{Field: "skillDescription", Message: "Skill description must be at least 10 characters long", Code: CodeTooShort})
	}
	if s.Category == "" {
		errs = append(errs, FieldError{Field: "skillCategory", Message: "Skill category is required", Code: CodeRequired})
	}
	if s.Level != "" && !s.Level.Valid() {
		errs = append(errs, FieldError{Field: "skillLevel", Message: "Skill level must be Beginner, Intermediate, Advanced or Expert", Code: CodeInvalidFormat})
	}
	return errs
}

func SwapRequest(offeredSkillID, requestedSkillID, message string) Errors {
	var errs Errors
	if offeredSkillID == "" {
		errs = append(errs, FieldError{Field: "offeredSkill", Message: "Please select a skill to offer", Code: CodeRequired})
	}
	if requestedSkillID == "" {
		errs = append(errs, FieldError{Field: "requestedSkill", Message: "Please select a skill to learn", Code: CodeRequired})
	}
	if runeLen(message) > maxMessageLength {
		errs = append(errs, FieldError{Field: "message", Message: "Message is too long (max 500 characters)", Code: CodeTooLong})
	}
	return errs
}

func Rating(rating int, feedback string) Errors {
	var errs Errors
	if rating < 1 || rating > 5 {
		errs = append(errs, FieldError{Field: "rating", Message: "Rating must be between 1 and 5", Code: CodeInvalidRange})
	}
	if runeLen(feedback) > maxFeedbackLength {
		errs = append(errs, FieldError{Field: "feedback", Message: "Feedback is too long (max 1000 characters)", Code: CodeTooLong})
	}
	return errs
}

// Registration is the sign-up form.
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Location        string
}

// Validate checks every field of the form and returns all problems found.
func (r Registration) Validate() Errors {
	var errs Errors
	errs.add(Name(r.Name))
	errs.add(Email(r.Email))
	errs = append(errs, Password(r.Password)...)
	if r.Password != r.ConfirmPassword {
		errs = append(errs, FieldError{Field: "confirmPassword", Message: "Passwords do not match", Code: CodeMismatch})
	}
	errs.add(Location(r.Location))
	return errs
}

// Profile checks the fields a profile update may set. Nil fields are skipped.
func Profile(p domain.ProfilePatch) Errors {
	var errs Errors
	if p.Name != nil {
		errs.add(Name(*p.Name))
	}
	if p.Location != nil {
		errs.add(Location(*p.Location))
	}
	for _, list := range []*[]domain.Skill{p.SkillsOffered, p.SkillsWanted} {
		if list == nil {
			continue
		}
		for _, s := range *list {
			errs = append(errs, Skill(s)...)
		}
	}
	if p.Availability != nil {
		for _, slot := range *p.Availability {
			if !slices.Contains(domain.AvailabilitySlots, slot) {
				errs = append(errs, FieldError{Field: "availability", Message: fmt.Sprintf("Unknown availability slot %q", slot), Code: CodeInvalidFormat})
			}
		}
	}
	return errs
}

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// FileUpload checks an uploaded image. A maxSize of zero selects
// DefaultMaxUploadSize.
func FileUpload(contentType string, size, maxSize int64) *FieldError {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	if !slices.Contains(allowedImageTypes, contentType) {
		return &FieldError{Field: "file", Message: "Please upload a valid image file (JPEG, PNG, GIF, WebP)", Code: CodeInvalidType}
	}
	if size > maxSize {
		return &FieldError{Field: "file", Message: fmt.Sprintf("File size must be less than %dMB", maxSize/(1024*1024)), Code: CodeTooLarge}
	}
	return nil
}

// SanitizeInput removes angle brackets and surrounding whitespace.
func SanitizeInput(s string) string {
	return strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(s))
}
