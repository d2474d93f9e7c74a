package exitcode

import (
	"os"

	"github.com/edumanage/edudash/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigError indicates missing or invalid startup configuration
	ConfigError = 3

	// AuthError indicates an authentication failure
	AuthError = 4

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code by its error code category
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch {
	case errors.IsCode(err, errors.ErrCodeConfigBackendURL),
		errors.IsCode(err, errors.ErrCodeConfigAnonKey),
		errors.IsCode(err, errors.ErrCodeConfigInvalid):
		return ConfigError
	case errors.IsCode(err, errors.ErrCodeAuthInvalidCredentials),
		errors.IsCode(err, errors.ErrCodeAuthSignUpRejected),
		errors.IsCode(err, errors.ErrCodeAuthInput),
		errors.IsCode(err, errors.ErrCodeSessionMissing):
		return AuthError
	default:
		return GeneralError
	}
}
