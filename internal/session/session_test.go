package session

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/edudash/internal/backend"
	"github.com/edumanage/edudash/internal/errors"
	"github.com/edumanage/edudash/internal/store"
)

// fakeProvider is a scriptable AuthProvider.
type fakeProvider struct {
	mu           sync.Mutex
	user         backend.User
	signInErr    error
	signUpErr    error
	signOutErr   error
	currentErr   error
	signInCalls  int
	signOutCalls int

	// blockSignIn, when non-nil, makes SignIn wait until the channel closes;
	// signInStarted is closed once the first call is inside the provider.
	blockSignIn   chan struct{}
	signInStarted chan struct{}
	startedOnce   sync.Once
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*backend.AuthSession, error) {
	f.mu.Lock()
	f.signInCalls++
	block := f.blockSignIn
	f.mu.Unlock()

	if f.signInStarted != nil {
		f.startedOnce.Do(func() { close(f.signInStarted) })
	}
	if block != nil {
		<-block
	}
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &backend.AuthSession{AccessToken: "tok", User: f.user}, nil
}

func (f *fakeProvider) SignUp(ctx context.Context, email, password string, meta backend.SignUpMetadata) (*backend.AuthSession, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &backend.AuthSession{AccessToken: "tok", User: f.user}, nil
}

func (f *fakeProvider) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	f.mu.Unlock()
	return f.signOutErr
}

func (f *fakeProvider) CurrentUser(ctx context.Context) (*backend.User, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	u := f.user
	return &u, nil
}

func newTestManager(provider *fakeProvider, profiles store.ProfileReader) *Manager {
	return NewManager(provider, profiles, nil)
}

func TestStartWithoutStoredSession(t *testing.T) {
	m := newTestManager(&fakeProvider{}, nil)

	assert.Equal(t, StateInitializing, m.State())
	state := m.Start(context.Background(), false)
	assert.Equal(t, StateUnauthenticated, state)
	assert.Equal(t, StateUnauthenticated, m.State())

	// Start resolves exactly once; a second call is a no-op.
	state = m.Start(context.Background(), true)
	assert.Equal(t, StateUnauthenticated, state)
}

func TestStartWithValidStoredSession(t *testing.T) {
	provider := &fakeProvider{user: backend.User{ID: "u1", Email: "a@b.com"}}
	profiles := &store.Memory{Profiles: []backend.Profile{
		{ID: "u1", FullName: "A B", Role: backend.RoleTeacher},
	}}
	m := newTestManager(provider, profiles)

	state := m.Start(context.Background(), true)
	assert.Equal(t, StateAuthenticated, state)

	snap := m.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "u1", snap.User.ID)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "A B", snap.Profile.FullName)
}

func TestStartWithRejectedStoredSession(t *testing.T) {
	provider := &fakeProvider{currentErr: stderrors.New("token expired")}
	m := newTestManager(provider, nil)

	state := m.Start(context.Background(), true)
	assert.Equal(t, StateUnauthenticated, state)
}

func TestSignInSuccess(t *testing.T) {
	provider := &fakeProvider{user: backend.User{ID: "u1", Email: "a@b.com"}}
	profiles := &store.Memory{Profiles: []backend.Profile{
		{ID: "u1", FullName: "A B", Role: backend.RoleTeacher},
	}}
	m := newTestManager(provider, profiles)
	m.Start(context.Background(), false)

	user, err := m.SignIn(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	snap := m.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, backend.RoleTeacher, snap.Profile.Role)
}

func TestSignInRejectedKeepsStateUnauthenticated(t *testing.T) {
	provider := &fakeProvider{signInErr: errors.NewInvalidCredentialsError(nil)}
	m := newTestManager(provider, nil)
	m.Start(context.Background(), false)

	_, err := m.SignIn(context.Background(), "a@b.com", "wrongpw")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuthInvalidCredentials))
	assert.Equal(t, StateUnauthenticated, m.State())
}

func TestSignInInputValidation(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestManager(provider, nil)
	m.Start(context.Background(), false)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret1"},
		{"not an email", "nope", "secret1"},
		{"empty password", "a@b.com", ""},
		{"short password", "a@b.com", "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.SignIn(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeAuthInput))
		})
	}
	assert.Equal(t, 0, provider.signInCalls, "invalid input must never reach the provider")
}

func TestSignInInFlightGuard(t *testing.T) {
	block := make(chan struct{})
	provider := &fakeProvider{
		user:          backend.User{ID: "u1"},
		blockSignIn:   block,
		signInStarted: make(chan struct{}),
	}
	m := newTestManager(provider, nil)
	m.Start(context.Background(), false)

	done := make(chan error, 1)
	go func() {
		_, err := m.SignIn(context.Background(), "a@b.com", "secret1")
		done <- err
	}()

	// Wait until the first call is inside the provider.
	<-provider.signInStarted

	_, err := m.SignIn(context.Background(), "a@b.com", "secret1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuthInFlight))

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, StateAuthenticated, m.State())

	// Guard releases once the pending call finishes.
	m.SignOut(context.Background())
	_, err = m.SignIn(context.Background(), "a@b.com", "secret1")
	assert.NoError(t, err)
}

func TestSignUpSuccess(t *testing.T) {
	provider := &fakeProvider{user: backend.User{ID: "u2", Email: "new@b.com"}}
	m := newTestManager(provider, nil)
	m.Start(context.Background(), false)

	user, err := m.SignUp(context.Background(), "new@b.com", "secret1", "New User", backend.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestSignUpInvalidRole(t *testing.T) {
	m := newTestManager(&fakeProvider{}, nil)
	m.Start(context.Background(), false)

	_, err := m.SignUp(context.Background(), "a@b.com", "secret1", "A B", backend.Role("janitor"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuthInput))
}

func TestSignOutIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestManager(provider, nil)
	m.Start(context.Background(), false)

	var events []Event
	m.Subscribe(func(e Event) { events = append(events, e) })

	epochBefore := m.Epoch()
	m.SignOut(context.Background())
	m.SignOut(context.Background())

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Empty(t, events, "sign-out while unauthenticated must not emit a transition")
	assert.Equal(t, epochBefore, m.Epoch(), "epoch unchanged when no transition happened")
}

func TestSignOutAlwaysClearsLocally(t *testing.T) {
	provider := &fakeProvider{
		user:       backend.User{ID: "u1"},
		signOutErr: stderrors.New("network down"),
	}
	m := newTestManager(provider, nil)
	m.Start(context.Background(), false)

	_, err := m.SignIn(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)

	m.SignOut(context.Background())
	snap := m.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Profile)
}

func TestTransitionEventsAndEpoch(t *testing.T) {
	provider := &fakeProvider{user: backend.User{ID: "u1"}}
	m := newTestManager(provider, nil)

	var events []Event
	m.Subscribe(func(e Event) { events = append(events, e) })

	m.Start(context.Background(), false)
	_, err := m.SignIn(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	m.SignOut(context.Background())

	require.Len(t, events, 3)

	assert.Equal(t, StateInitializing, events[0].From)
	assert.Equal(t, StateUnauthenticated, events[0].To)

	assert.Equal(t, StateUnauthenticated, events[1].From)
	assert.Equal(t, StateAuthenticated, events[1].To)
	require.NotNil(t, events[1].User)
	assert.Equal(t, "u1", events[1].User.ID)

	assert.Equal(t, StateAuthenticated, events[2].From)
	assert.Equal(t, StateUnauthenticated, events[2].To)

	// Epoch strictly increases across transitions.
	assert.Less(t, events[0].Epoch, events[1].Epoch)
	assert.Less(t, events[1].Epoch, events[2].Epoch)
	assert.Equal(t, events[2].Epoch, m.Epoch())
}

func TestProfileLookupFailureTolerated(t *testing.T) {
	provider := &fakeProvider{user: backend.User{ID: "u1"}}
	profiles := &store.Memory{Err: stderrors.New("profiles unavailable")}
	m := newTestManager(provider, profiles)
	m.Start(context.Background(), false)

	_, err := m.SignIn(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Nil(t, snap.Profile, "profile stays absent; session unaffected")
}
