package store

import (
	"context"
	"sort"

	"github.com/edumanage/edudash/internal/backend"
)

// Memory is an in-memory Catalog and ProfileReader. It applies the same
// filter, order, and limit contracts as the backend reads, which makes it
// the reference implementation for tests and demos.
type Memory struct {
	Courses       []backend.Course
	Announcements []backend.Announcement
	Profiles      []backend.Profile

	// Err, when set, is returned by every read.
	Err error
}

// ActiveCourses implements Catalog.
func (m *Memory) ActiveCourses(ctx context.Context, limit int) ([]backend.Course, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	var out []backend.Course
	for _, c := range m.Courses {
		if !c.IsActive {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// PublishedAnnouncements implements Catalog.
func (m *Memory) PublishedAnnouncements(ctx context.Context, limit int) ([]backend.Announcement, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	var out []backend.Announcement
	for _, a := range m.Announcements {
		if a.IsPublished {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishDate.After(out[j].PublishDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ProfileByID implements ProfileReader.
func (m *Memory) ProfileByID(ctx context.Context, userID string) (*backend.Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	for i := range m.Profiles {
		if m.Profiles[i].ID == userID {
			return &m.Profiles[i], nil
		}
	}
	return nil, nil
}
