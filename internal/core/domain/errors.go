package domain

import (
	"errors"
	"strings"
)

// Sentinel errors raised by services and repositories. Only the HTTP error
// handler translates these into wire responses; no other component knows
// status codes.
var (
	ErrShipmentNotFound   = errors.New("shipment not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// FieldError describes a single violated constraint on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete list of violated constraints for a
// request payload. Validation reports everything, not just the first failure.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ConflictError signals a storage uniqueness violation, normalized from the
// driver's duplicate-key diagnostic. Field names the offending index when it
// could be extracted.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "duplicate entry"
	}
	return "duplicate entry on " + e.Field
}
