package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrImportNotFound     = errors.New("import not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrForbidden          = errors.New("access forbidden")

	// Token failures are distinguished internally; the HTTP layer reports all of
	// them with the same 403 body.
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// ValidationError reports a malformed or incomplete request payload.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return strings.Join(e.Fields, ", ") + " required"
}

// NewValidationError builds a ValidationError with a custom message.
func NewValidationError(msg string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Msg: msg}
}

// MissingFields builds the "<a> and <b> required" style error.
func MissingFields(fields ...string) *ValidationError {
	msg := strings.Join(fields, " and ") + " required"
	return &ValidationError{Fields: fields, Msg: msg}
}
