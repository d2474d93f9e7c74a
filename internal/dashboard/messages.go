package dashboard

import (
	"github.com/edumanage/edudash/internal/backend"
	"github.com/edumanage/edudash/internal/session"
)

// sessionStartedMsg carries the resolved startup snapshot.
type sessionStartedMsg struct {
	snapshot session.Snapshot
}

// sessionEventMsg delivers one session transition from the subscription
// channel into the update loop.
type sessionEventMsg struct {
	event session.Event
}

// signInResultMsg reports the outcome of an async sign-in. State movement
// arrives separately as a sessionEventMsg; this only settles the form.
type signInResultMsg struct {
	err error
}

// signUpResultMsg reports the outcome of an async sign-up.
type signUpResultMsg struct {
	err error
}

// coursesLoadedMsg carries a completed course fetch, stamped with the epoch
// of the transition that started it.
type coursesLoadedMsg struct {
	courses []backend.Course
	epoch   uint64
	err     error
}

// announcementsLoadedMsg carries a completed announcement fetch, stamped
// with the epoch of the transition that started it.
type announcementsLoadedMsg struct {
	announcements []backend.Announcement
	epoch         uint64
	err           error
}
