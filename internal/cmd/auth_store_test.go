package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/edudash/internal/backend"
	"github.com/edumanage/edudash/internal/errors"
	"github.com/edumanage/edudash/internal/log"
	"github.com/edumanage/edudash/internal/session"
)

// fakeAuthProvider accepts every auth call.
type fakeAuthProvider struct {
	user backend.User
}

func (f *fakeAuthProvider) SignIn(ctx context.Context, email, password string) (*backend.AuthSession, error) {
	return &backend.AuthSession{AccessToken: "tok", User: f.user}, nil
}

func (f *fakeAuthProvider) SignUp(ctx context.Context, email, password string, meta backend.SignUpMetadata) (*backend.AuthSession, error) {
	return &backend.AuthSession{AccessToken: "tok", User: f.user}, nil
}

func (f *fakeAuthProvider) SignOut(ctx context.Context) error { return nil }

func (f *fakeAuthProvider) CurrentUser(ctx context.Context) (*backend.User, error) {
	u := f.user
	return &u, nil
}

func TestStoredAuthRoundTrip(t *testing.T) {
	dir := t.TempDir()

	want := storedAuth{
		AccessToken:  "access-tok",
		RefreshToken: "refresh-tok",
		Email:        "a@b.com",
		UserID:       "u1",
	}
	require.NoError(t, saveStoredAuth(dir, want))

	got, err := loadStoredAuth(dir)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	info, err := os.Stat(authFilePath(dir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "token file must be owner-only")
}

func TestLoadStoredAuthMissing(t *testing.T) {
	_, err := loadStoredAuth(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSessionMissing))
}

func TestLoadStoredAuthEmptyToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, saveStoredAuth(dir, storedAuth{Email: "a@b.com"}))

	_, err := loadStoredAuth(dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSessionMissing))
}

func TestLoadStoredAuthCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.json"), []byte("{not json"), 0o600))

	_, err := loadStoredAuth(dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSessionMissing))
}

func TestClearStoredAuthIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, saveStoredAuth(dir, storedAuth{AccessToken: "tok"}))

	require.NoError(t, clearStoredAuth(dir))
	_, err := os.Stat(authFilePath(dir))
	assert.True(t, os.IsNotExist(err))

	// Clearing again is not an error.
	require.NoError(t, clearStoredAuth(dir))
}

func TestSignOutRemovesStoredSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, saveStoredAuth(dir, storedAuth{AccessToken: "tok", Email: "a@b.com"}))

	mgr := session.NewManager(&fakeAuthProvider{user: backend.User{ID: "u1"}}, nil, nil)
	mgr.Subscribe(clearStoredAuthOnSignOut(dir, log.DefaultLogger()))

	mgr.Start(context.Background(), true)
	require.Equal(t, session.StateAuthenticated, mgr.State())

	mgr.SignOut(context.Background())

	_, err := os.Stat(authFilePath(dir))
	assert.True(t, os.IsNotExist(err), "cached session must be removed on sign-out")
}

func TestSignInDoesNotRemoveStoredSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, saveStoredAuth(dir, storedAuth{AccessToken: "tok"}))

	mgr := session.NewManager(&fakeAuthProvider{user: backend.User{ID: "u1"}}, nil, nil)
	mgr.Subscribe(clearStoredAuthOnSignOut(dir, log.DefaultLogger()))

	mgr.Start(context.Background(), false)
	_, err := mgr.SignIn(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)

	_, err = os.Stat(authFilePath(dir))
	assert.NoError(t, err, "only the sign-out edge clears the cache")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "********", maskKey("short"))
	assert.Equal(t, "eyJhbGci...", maskKey("eyJhbGciOiJIUzI1NiJ9"))
}
