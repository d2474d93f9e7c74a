package backend

import (
	"strings"
	"time"
)

// Role is the application-level role stored on a profile.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}

// User is the auth provider's identity record.
type User struct {
	ID           string    `json:"id"` // uuid
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	LastSignInAt time.Time `json:"last_sign_in_at"`
}

// AuthSession is the token bundle returned by a successful sign-in.
type AuthSession struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// SignUpMetadata is the application data attached to a new account.
// The backend turns it into the corresponding profile row.
type SignUpMetadata struct {
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// Profile is the application identity record joined to an auth user.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Course is a row of the courses table.
type Course struct {
	ID          string    `json:"id"`
	CourseCode  string    `json:"course_code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Credits     int       `json:"credits"`
	GradeLevel  string    `json:"grade_level"`
	Department  string    `json:"department"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Priority classifies how urgently an announcement should be surfaced.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Audience is the group an announcement targets.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceStudents Audience = "students"
	AudienceTeachers Audience = "teachers"
	AudienceParents  Audience = "parents"
)

// AnnouncementAuthor is the joined author name from the profiles table.
type AnnouncementAuthor struct {
	FullName string `json:"full_name"`
}

// Announcement is a row of the announcements table, optionally joined with
// the author's profile name.
type Announcement struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Content        string              `json:"content"`
	AuthorID       string              `json:"author_id,omitempty"`
	TargetAudience Audience            `json:"target_audience"`
	Priority       Priority            `json:"priority"`
	IsPublished    bool                `json:"is_published"`
	PublishDate    time.Time           `json:"publish_date"`
	ExpireDate     *time.Time          `json:"expire_date,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Author         *AnnouncementAuthor `json:"author,omitempty"`
}

// Excerpt returns the first max runes of the content, with an ellipsis when
// the content was cut.
func (a Announcement) Excerpt(max int) string {
	content := strings.TrimSpace(a.Content)
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

// AuthorName returns the joined author name, or empty when absent.
func (a Announcement) AuthorName() string {
	if a.Author == nil {
		return ""
	}
	return a.Author.FullName
}
