// Package store is the read-only data boundary of the dashboard. It issues
// exactly two collection reads against the backend and a single-row profile
// lookup; nothing here mutates.
package store

import (
	"context"

	"github.com/edumanage/edudash/internal/backend"
)

// Row caps applied to the dashboard reads.
const (
	CourseLimit       = 10
	AnnouncementLimit = 5
)

// Catalog reads the two dashboard collections.
type Catalog interface {
	// ActiveCourses returns courses with is_active = true, capped at limit,
	// in query order.
	ActiveCourses(ctx context.Context, limit int) ([]backend.Course, error)

	// PublishedAnnouncements returns announcements with is_published = true,
	// newest publish_date first, capped at limit, with the author's profile
	// name joined in.
	PublishedAnnouncements(ctx context.Context, limit int) ([]backend.Announcement, error)
}

// ProfileReader looks up a single profile by the authenticated identity.
type ProfileReader interface {
	// ProfileByID returns the profile for a user id, or nil when absent.
	ProfileByID(ctx context.Context, userID string) (*backend.Profile, error)
}

// Backend implements Catalog and ProfileReader over the backend client.
type Backend struct {
	client *backend.Client
}

// NewBackend wraps a backend client.
func NewBackend(client *backend.Client) *Backend {
	return &Backend{client: client}
}

// ActiveCourses implements Catalog.
func (b *Backend) ActiveCourses(ctx context.Context, limit int) ([]backend.Course, error) {
	var courses []backend.Course
	err := b.client.Select(ctx, "courses", backend.SelectOptions{
		Filters: []backend.Filter{backend.Eq("is_active", true)},
		Limit:   limit,
	}, &courses)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// PublishedAnnouncements implements Catalog.
func (b *Backend) PublishedAnnouncements(ctx context.Context, limit int) ([]backend.Announcement, error) {
	var announcements []backend.Announcement
	err := b.client.Select(ctx, "announcements", backend.SelectOptions{
		Select:     "*,author:profiles(full_name)",
		Filters:    []backend.Filter{backend.Eq("is_published", true)},
		OrderBy:    "publish_date",
		Descending: true,
		Limit:      limit,
	}, &announcements)
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

// ProfileByID implements ProfileReader. A user without a profile row is not
// an error; the caller renders without one.
func (b *Backend) ProfileByID(ctx context.Context, userID string) (*backend.Profile, error) {
	var profiles []backend.Profile
	err := b.client.Select(ctx, "profiles", backend.SelectOptions{
		Filters: []backend.Filter{backend.Eq("id", userID)},
		Limit:   1,
	}, &profiles)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}
