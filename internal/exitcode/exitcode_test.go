package exitcode

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/edumanage/edudash/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"plain error", stderrors.New("boom"), GeneralError},
		{"missing backend url", errors.NewConfigBackendURLError(), ConfigError},
		{"missing anon key", errors.NewConfigAnonKeyError(), ConfigError},
		{"bad credentials", errors.NewInvalidCredentialsError(nil), AuthError},
		{"signup rejected", errors.NewSignUpRejectedError(nil), AuthError},
		{"session missing", errors.NewSessionMissingError(), AuthError},
		{
			"wrapped config error",
			fmt.Errorf("startup: %w", errors.NewConfigAnonKeyError()),
			ConfigError,
		},
		{
			"fetch errors stay general",
			errors.New(errors.ErrCodeFetchCourses, "courses query failed"),
			GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
