package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/edumanage/edudash/internal/errors"
	"github.com/edumanage/edudash/internal/log"
	"github.com/edumanage/edudash/internal/session"
)

// storedAuth is the cached token bundle written after a successful sign-in.
type storedAuth struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	UserID       string `json:"user_id"`
}

func authFilePath(dir string) string {
	return filepath.Join(dir, "auth.json")
}

// saveStoredAuth writes the token bundle with owner-only permissions.
func saveStoredAuth(dir string, auth storedAuth) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(auth, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(authFilePath(dir), data, 0o600)
}

// loadStoredAuth reads the cached token bundle. A missing or empty file
// means no stored session.
func loadStoredAuth(dir string) (*storedAuth, error) {
	data, err := os.ReadFile(authFilePath(dir))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionMissing, "no stored session", err)
	}

	var auth storedAuth
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionMissing, "stored session is unreadable", err).
			WithSuggestion("Run 'edudash auth login' to sign in again")
	}
	if auth.AccessToken == "" {
		return nil, errors.New(errors.ErrCodeSessionMissing, "stored session has no token")
	}
	return &auth, nil
}

// clearStoredAuth removes the cached token bundle. Removing an absent file
// is not an error.
func clearStoredAuth(dir string) error {
	err := os.Remove(authFilePath(dir))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// clearStoredAuthOnSignOut returns a transition subscriber that removes the
// cached token bundle when the user signs out, so the next launch cannot
// restore a session the user just left.
func clearStoredAuthOnSignOut(dir string, logger *log.Logger) func(session.Event) {
	return func(e session.Event) {
		if e.From != session.StateAuthenticated || e.To != session.StateUnauthenticated {
			return
		}
		if err := clearStoredAuth(dir); err != nil {
			logger.WithError(err).Warn("failed to clear cached session")
		}
	}
}
