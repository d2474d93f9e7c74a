// Package dashboard is the terminal UI. The model reacts to session
// transitions delivered over a channel, starts the collection fetches on the
// authenticated edge, and drops completions whose epoch is stale.
package dashboard

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/edumanage/edudash/internal/backend"
	"github.com/edumanage/edudash/internal/errors"
	"github.com/edumanage/edudash/internal/log"
	"github.com/edumanage/edudash/internal/session"
	"github.com/edumanage/edudash/internal/store"
)

// Stats are the headline dashboard figures. TotalStudents, TotalTeachers and
// AvgAttendance are seeded placeholders until their tables are wired up;
// ActiveCourses is replaced by the live course count once the fetch lands.
type Stats struct {
	TotalStudents int
	TotalTeachers int
	ActiveCourses int
	AvgAttendance float64
}

func seedStats() Stats {
	return Stats{
		TotalStudents: 1248,
		TotalTeachers: 84,
		ActiveCourses: 42,
		AvgAttendance: 92.5,
	}
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	manager *session.Manager
	catalog store.Catalog
	logger  *log.Logger
	keys    keyMap

	hasStoredSession bool
	events           chan session.Event

	snapshot  session.Snapshot
	activeTab Tab

	courses       []backend.Course
	coursesLoaded bool
	coursesErr    error

	announcements       []backend.Announcement
	announcementsLoaded bool
	announcementsErr    error

	stats Stats

	form        *huh.Form
	mode        formMode
	authPending bool
	authErr     string

	width  int
	height int
}

// New builds the dashboard model and subscribes it to session transitions.
func New(manager *session.Manager, catalog store.Catalog, logger *log.Logger, hasStoredSession bool) Model {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	events := make(chan session.Event, 16)
	manager.Subscribe(func(e session.Event) { events <- e })

	return Model{
		manager:          manager,
		catalog:          catalog,
		logger:           logger.WithGroup("dashboard"),
		keys:             defaultKeyMap(),
		hasStoredSession: hasStoredSession,
		events:           events,
		snapshot:         manager.Snapshot(),
		activeTab:        TabDashboard,
		stats:            seedStats(),
		mode:             formSignIn,
	}
}

// Init resolves the stored session and starts listening for transitions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.waitForEvent())
}

// Update is the bubbletea update loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionStartedMsg:
		m.snapshot = msg.snapshot
		if m.snapshot.State == session.StateUnauthenticated && m.form == nil {
			m.form = newAuthForm(m.mode)
			return m, m.form.Init()
		}
		return m, nil

	case sessionEventMsg:
		return m.handleSessionEvent(msg.event)

	case signInResultMsg:
		return m.handleAuthResult(msg.err)

	case signUpResultMsg:
		return m.handleAuthResult(msg.err)

	case coursesLoadedMsg:
		if msg.epoch != m.manager.Epoch() {
			m.logger.Debug("dropping stale course fetch", "epoch", msg.epoch)
			return m, nil
		}
		if msg.err != nil {
			m.coursesErr = msg.err
			m.logger.WithError(msg.err).Warn("course fetch failed")
			return m, nil
		}
		m.courses = msg.courses
		m.coursesLoaded = true
		m.coursesErr = nil
		return m, nil

	case announcementsLoadedMsg:
		if msg.epoch != m.manager.Epoch() {
			m.logger.Debug("dropping stale announcement fetch", "epoch", msg.epoch)
			return m, nil
		}
		if msg.err != nil {
			m.announcementsErr = msg.err
			m.logger.WithError(msg.err).Warn("announcement fetch failed")
			return m, nil
		}
		m.announcements = msg.announcements
		m.announcementsLoaded = true
		m.announcementsErr = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.snapshot.State {
	case session.StateAuthenticated:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.activeTab = m.activeTab.next()
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = m.activeTab.prev()
			return m, nil
		case key.Matches(msg, m.keys.SignOut):
			return m, m.signOutCmd()
		}
		// Digits jump straight to a section.
		if runes := msg.Runes; len(runes) == 1 && runes[0] >= '1' && runes[0] <= '9' {
			if i := int(runes[0] - '1'); i < len(Tabs) {
				m.activeTab = Tabs[i]
			}
		}
		return m, nil

	case session.StateUnauthenticated:
		if key.Matches(msg, m.keys.SwitchForm) && !m.authPending {
			if m.mode == formSignIn {
				m.mode = formSignUp
			} else {
				m.mode = formSignIn
			}
			m.authErr = ""
			m.form = newAuthForm(m.mode)
			return m, m.form.Init()
		}
		return m.updateForm(msg)
	}

	return m, nil
}

// updateForm forwards a message to the auth form and, on completion, kicks
// off the matching auth command. Input is ignored while a call is pending.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.authPending || m.snapshot.State != session.StateUnauthenticated {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.authPending = true
		m.authErr = ""
		if m.mode == formSignIn {
			return m, tea.Batch(cmd, m.signInCmd())
		}
		return m, tea.Batch(cmd, m.signUpCmd())
	}
	return m, cmd
}

func (m Model) handleAuthResult(err error) (tea.Model, tea.Cmd) {
	m.authPending = false
	if err != nil {
		m.authErr = authErrorMessage(err)
		m.form = newAuthForm(m.mode)
		return m, m.form.Init()
	}
	m.authErr = ""
	return m, nil
}

// handleSessionEvent reacts to one transition: on the authenticated edge it
// starts both collection fetches stamped with the event's epoch, and on
// sign-out it clears everything fetched. It always re-arms the listener.
func (m Model) handleSessionEvent(event session.Event) (tea.Model, tea.Cmd) {
	m.snapshot = m.manager.Snapshot()
	cmds := []tea.Cmd{m.waitForEvent()}

	switch {
	case event.To == session.StateAuthenticated:
		cmds = append(cmds,
			m.loadCoursesCmd(event.Epoch),
			m.loadAnnouncementsCmd(event.Epoch),
		)

	case event.From == session.StateAuthenticated && event.To == session.StateUnauthenticated:
		m.courses, m.coursesLoaded, m.coursesErr = nil, false, nil
		m.announcements, m.announcementsLoaded, m.announcementsErr = nil, false, nil
		m.activeTab = TabDashboard
		m.mode = formSignIn
		m.authErr = ""
		m.form = newAuthForm(m.mode)
		cmds = append(cmds, m.form.Init())

	case event.To == session.StateUnauthenticated && m.form == nil:
		m.form = newAuthForm(m.mode)
		cmds = append(cmds, m.form.Init())
	}

	return m, tea.Batch(cmds...)
}

// activeCourseCount is the stat tile figure: the seeded value until the
// course fetch lands, the live count afterwards.
func (m Model) activeCourseCount() int {
	if m.coursesLoaded {
		return len(m.courses)
	}
	return m.stats.ActiveCourses
}

func (m Model) startCmd() tea.Cmd {
	manager, stored := m.manager, m.hasStoredSession
	return func() tea.Msg {
		manager.Start(context.Background(), stored)
		return sessionStartedMsg{snapshot: manager.Snapshot()}
	}
}

// waitForEvent blocks on the subscription channel for the next transition.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return sessionEventMsg{event: <-events}
	}
}

func (m Model) signInCmd() tea.Cmd {
	manager := m.manager
	email := m.form.GetString("email")
	password := m.form.GetString("password")
	return func() tea.Msg {
		_, err := manager.SignIn(context.Background(), email, password)
		return signInResultMsg{err: err}
	}
}

func (m Model) signUpCmd() tea.Cmd {
	manager := m.manager
	email := m.form.GetString("email")
	password := m.form.GetString("password")
	fullName := m.form.GetString("full_name")
	role := backend.Role(m.form.GetString("role"))
	return func() tea.Msg {
		_, err := manager.SignUp(context.Background(), email, password, fullName, role)
		return signUpResultMsg{err: err}
	}
}

func (m Model) signOutCmd() tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		manager.SignOut(context.Background())
		return nil
	}
}

func (m Model) loadCoursesCmd(epoch uint64) tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		courses, err := catalog.ActiveCourses(context.Background(), store.CourseLimit)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeFetchCourses, "loading courses failed", err)
		}
		return coursesLoadedMsg{courses: courses, epoch: epoch, err: err}
	}
}

func (m Model) loadAnnouncementsCmd(epoch uint64) tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		announcements, err := catalog.PublishedAnnouncements(context.Background(), store.AnnouncementLimit)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeFetchAnnouncements, "loading announcements failed", err)
		}
		return announcementsLoadedMsg{announcements: announcements, epoch: epoch, err: err}
	}
}

func authErrorMessage(err error) string {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		return coded.Message
	}
	return err.Error()
}
