// Package session owns authentication state: which user, if any, is signed
// in, the derived profile, and the transitions between the two. It is the
// only package that touches the auth provider boundary.
package session

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/edumanage/edudash/internal/backend"
	"github.com/edumanage/edudash/internal/errors"
	"github.com/edumanage/edudash/internal/log"
	"github.com/edumanage/edudash/internal/store"
)

// State is the authentication lifecycle state.
type State int

const (
	// StateInitializing is the startup state before the initial session
	// check resolves. Entered exactly once, left exactly once.
	StateInitializing State = iota
	// StateUnauthenticated means no user is signed in.
	StateUnauthenticated
	// StateAuthenticated means a user is signed in; the profile may still
	// be resolving.
	StateAuthenticated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Event is a typed session transition, delivered to subscribers in order.
// Epoch is the value after the transition; async work started on an event
// compares it against Manager.Epoch before committing results.
type Event struct {
	From  State
	To    State
	User  *backend.User
	Epoch uint64
}

// AuthProvider is the external auth boundary. *backend.Client implements it.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*backend.AuthSession, error)
	SignUp(ctx context.Context, email, password string, meta backend.SignUpMetadata) (*backend.AuthSession, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*backend.User, error)
}

// Snapshot is a point-in-time copy of the session for rendering.
type Snapshot struct {
	State   State
	User    *backend.User
	Profile *backend.Profile
	Epoch   uint64
}

// credentialsInput is validated before any provider call.
type credentialsInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// signUpInput adds the profile fields required at registration.
type signUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	FullName string `validate:"required"`
}

// Manager is the single source of truth for the session. It is safe for
// concurrent use; all state changes happen under one mutex and every
// transition bumps the epoch.
type Manager struct {
	provider AuthProvider
	profiles store.ProfileReader
	logger   *log.Logger
	validate *validator.Validate

	mu          sync.Mutex
	state       State
	user        *backend.User
	profile     *backend.Profile
	epoch       uint64
	authPending bool
	subscribers []func(Event)
}

// NewManager creates a Manager in the Initializing state.
func NewManager(provider AuthProvider, profiles store.ProfileReader, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		provider: provider,
		profiles: profiles,
		logger:   logger.WithGroup("session"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		state:    StateInitializing,
	}
}

// Subscribe registers a transition handler. Handlers run synchronously, in
// registration order, after the transition has been committed.
func (m *Manager) Subscribe(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:   m.state,
		User:    m.user,
		Profile: m.profile,
		Epoch:   m.epoch,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Epoch returns the current epoch. It increases on every transition, so a
// completion that captured an older value knows its results are stale.
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// Start resolves the Initializing state exactly once. With no stored
// session it goes straight to Unauthenticated; otherwise it asks the
// provider whether the stored token is still valid. Calling Start again
// is a no-op.
func (m *Manager) Start(ctx context.Context, hasStoredSession bool) State {
	m.mu.Lock()
	if m.state != StateInitializing {
		state := m.state
		m.mu.Unlock()
		return state
	}
	m.mu.Unlock()

	if !hasStoredSession {
		m.commit(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	user, err := m.provider.CurrentUser(ctx)
	if err != nil {
		m.logger.WithError(err).Info("stored session rejected")
		m.commit(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	m.commit(StateAuthenticated, user)
	m.resolveProfile(ctx, user.ID)
	return StateAuthenticated
}

// SignIn authenticates with the provider. Rejections surface as coded
// errors for the form collaborator; the state machine only moves on
// success. A second call while one is pending fails with AUTH-003.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*backend.User, error) {
	input := credentialsInput{Email: email, Password: password}
	if err := m.validate.Struct(input); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuthInput, "invalid credentials input", err).
			WithSuggestion("Provide a valid email address and a password of at least 6 characters")
	}

	if err := m.beginAuth(); err != nil {
		return nil, err
	}
	defer m.endAuth()

	authSession, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		m.logger.WithError(err).Info("sign-in rejected", "email", email)
		return nil, err
	}

	user := authSession.User
	m.commit(StateAuthenticated, &user)
	m.resolveProfile(ctx, user.ID)

	m.logger.Info("signed in", "user_id", user.ID)
	return &user, nil
}

// SignUp registers a new account and signs it in. The backend creates the
// profile row from the metadata.
func (m *Manager) SignUp(ctx context.Context, email, password, fullName string, role backend.Role) (*backend.User, error) {
	input := signUpInput{Email: email, Password: password, FullName: fullName}
	if err := m.validate.Struct(input); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuthInput, "invalid sign-up input", err).
			WithSuggestion("Provide an email, a password of at least 6 characters, and a full name")
	}
	if !role.Valid() {
		return nil, errors.New(errors.ErrCodeAuthInput, "invalid role").
			WithSuggestion("Role must be one of admin, teacher, student, parent")
	}

	if err := m.beginAuth(); err != nil {
		return nil, err
	}
	defer m.endAuth()

	authSession, err := m.provider.SignUp(ctx, email, password, backend.SignUpMetadata{
		FullName: fullName,
		Role:     role,
	})
	if err != nil {
		m.logger.WithError(err).Info("sign-up rejected", "email", email)
		return nil, err
	}

	user := authSession.User
	m.commit(StateAuthenticated, &user)
	m.resolveProfile(ctx, user.ID)

	m.logger.Info("signed up", "user_id", user.ID, "role", string(role))
	return &user, nil
}

// SignOut clears the session. Idempotent, and always succeeds locally: the
// local state is cleared before the best-effort provider call, so a network
// failure can never leave the manager authenticated.
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.Lock()
	alreadyOut := m.state == StateUnauthenticated
	m.mu.Unlock()

	if !alreadyOut {
		m.commit(StateUnauthenticated, nil)
	}

	if err := m.provider.SignOut(ctx); err != nil {
		m.logger.WithError(err).Warn("provider sign-out failed; local session already cleared")
	}
}

// beginAuth acquires the single in-flight auth slot.
func (m *Manager) beginAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.authPending {
		return errors.NewAuthInFlightError()
	}
	m.authPending = true
	return nil
}

func (m *Manager) endAuth() {
	m.mu.Lock()
	m.authPending = false
	m.mu.Unlock()
}

// commit performs a state transition: swaps the state, bumps the epoch,
// and notifies subscribers outside the lock.
func (m *Manager) commit(to State, user *backend.User) {
	m.mu.Lock()
	from := m.state
	m.state = to
	m.user = user
	if to != StateAuthenticated {
		m.profile = nil
	}
	m.epoch++
	event := Event{From: from, To: to, User: user, Epoch: m.epoch}
	subscribers := make([]func(Event), len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.Unlock()

	m.logger.Debug("session transition",
		"from", from.String(),
		"to", to.String(),
		"epoch", event.Epoch,
	)

	for _, fn := range subscribers {
		fn(event)
	}
}

// resolveProfile looks up the profile for the signed-in user. Failure is
// tolerated: the session stays authenticated and the UI renders without a
// profile. A result is dropped when the session moved on in the meantime.
func (m *Manager) resolveProfile(ctx context.Context, userID string) {
	if m.profiles == nil {
		return
	}

	profile, err := m.profiles.ProfileByID(ctx, userID)
	if err != nil {
		m.logger.WithError(errors.Wrap(errors.ErrCodeFetchProfile, "profile lookup failed", err)).
			Warn("continuing without profile", "user_id", userID)
		return
	}
	if profile == nil {
		m.logger.Warn("no profile row for user", "user_id", userID)
		return
	}

	m.mu.Lock()
	if m.state == StateAuthenticated && m.user != nil && m.user.ID == userID {
		m.profile = profile
	}
	m.mu.Unlock()
}
