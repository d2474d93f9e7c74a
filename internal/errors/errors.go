package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigBackendURL ErrorCode = "CONFIG-001"
	ErrCodeConfigAnonKey    ErrorCode = "CONFIG-002"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG-003"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeAuthSignUpRejected     ErrorCode = "AUTH-002"
	ErrCodeAuthInFlight           ErrorCode = "AUTH-003"
	ErrCodeAuthUnreachable        ErrorCode = "AUTH-004"
	ErrCodeAuthInput              ErrorCode = "AUTH-005"

	// Fetch errors (FETCH-001 to FETCH-099)
	ErrCodeFetchCourses       ErrorCode = "FETCH-001"
	ErrCodeFetchAnnouncements ErrorCode = "FETCH-002"
	ErrCodeFetchProfile       ErrorCode = "FETCH-003"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionMissing ErrorCode = "SESSION-001"
)

// Error represents an enhanced error with code, suggestions, and cause
type Error struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new Error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// IsCode reports whether err carries the given error code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Common error constructors for frequently used errors

// NewConfigBackendURLError creates a missing backend URL error
func NewConfigBackendURLError() *Error {
	return New(ErrCodeConfigBackendURL, "backend URL is not configured").
		WithSuggestion("Set the EDUDASH_BACKEND_URL environment variable").
		WithSuggestion("Add EDUDASH_BACKEND_URL to your .env file")
}

// NewConfigAnonKeyError creates a missing anon key error
func NewConfigAnonKeyError() *Error {
	return New(ErrCodeConfigAnonKey, "backend anon API key is not configured").
		WithSuggestion("Set the EDUDASH_ANON_KEY environment variable").
		WithSuggestion("The anon key is shown in your backend project's API settings")
}

// NewInvalidCredentialsError creates a sign-in rejection error
func NewInvalidCredentialsError(cause error) *Error {
	return Wrap(ErrCodeAuthInvalidCredentials, "sign-in rejected by the auth provider", cause).
		WithSuggestion("Check the email address and password").
		WithSuggestion("Use 'edudash auth register' if you do not have an account yet")
}

// NewSignUpRejectedError creates a sign-up rejection error
func NewSignUpRejectedError(cause error) *Error {
	return Wrap(ErrCodeAuthSignUpRejected, "sign-up rejected by the auth provider", cause).
		WithSuggestion("An account may already exist for this email").
		WithSuggestion("Use 'edudash auth login' to sign in to an existing account")
}

// NewAuthInFlightError creates an error for a concurrent auth attempt
func NewAuthInFlightError() *Error {
	return New(ErrCodeAuthInFlight, "an authentication request is already in progress").
		WithSuggestion("Wait for the pending request to finish before retrying")
}

// NewSessionMissingError creates an error for commands that need a signed-in session
func NewSessionMissingError() *Error {
	return New(ErrCodeSessionMissing, "not signed in").
		WithSuggestion("Run 'edudash auth login' to authenticate").
		WithSuggestion("Run 'edudash auth status' to inspect the cached session")
}
