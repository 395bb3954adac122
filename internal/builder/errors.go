package builder

import (
	"errors"
	"strings"

	"clinicsite-backend/internal/sections"
)

var (
	ErrSectionNotFound   = errors.New("section not found")
	ErrPageNotFound      = errors.New("page not found")
	ErrHomePageProtected = errors.New("home page cannot be deleted")
	ErrNoSelection       = errors.New("no section selected")
	ErrTemplateNotFound  = errors.New("template not found")

	// ErrSaveConflict signals that the server holds a newer revision than the
	// one this session last acknowledged. It is surfaced to the user, never
	// resolved silently.
	ErrSaveConflict = errors.New("save conflict: remote revision is newer")
)

// ValidationError aggregates field-level problems. It is returned as a value
// from slug and publish validation; user input never panics.
type ValidationError struct {
	Fields []sections.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return strings.Join(msgs, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []sections.FieldError{{Field: field, Message: message}}}
}

// IsValidationError reports whether the error carries field-level validation
// problems rather than a programming or infrastructure failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
