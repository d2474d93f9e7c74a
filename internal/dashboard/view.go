package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/edumanage/edudash/internal/session"
	"github.com/edumanage/edudash/internal/ui"
)

const excerptLength = 100

// View renders the current state. It is pure: all data was committed by
// Update beforehand.
func (m Model) View() string {
	switch m.snapshot.State {
	case session.StateInitializing:
		return ui.DimStyle.Render("Checking session...") + "\n"
	case session.StateUnauthenticated:
		return m.viewAuth()
	default:
		return m.viewDashboard()
	}
}

func (m Model) viewAuth() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("EduManage"))
	b.WriteString("  ")
	b.WriteString(ui.SubtitleStyle.Render("School Administration Dashboard"))
	b.WriteString("\n\n")

	if m.mode == formSignIn {
		b.WriteString(ui.CardTitleStyle.Render("Sign In"))
	} else {
		b.WriteString(ui.CardTitleStyle.Render("Create Account"))
	}
	b.WriteString("\n\n")

	if m.authPending {
		b.WriteString(ui.DimStyle.Render("Signing in..."))
		b.WriteString("\n")
	} else if m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n")
	}

	if m.authErr != "" {
		b.WriteString(ui.ErrorTextStyle.Render(m.authErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer([][2]string{
		{"enter", "submit"},
		{"ctrl+r", m.switchFormHint()},
		{"ctrl+c", "quit"},
	}))
	return b.String()
}

func (m Model) switchFormHint() string {
	if m.mode == formSignIn {
		return "register instead"
	}
	return "sign in instead"
}

func (m Model) viewDashboard() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.navBar())
	b.WriteString("\n\n")

	switch m.activeTab {
	case TabDashboard:
		b.WriteString(m.viewOverview())
	case TabStudents:
		b.WriteString(m.viewStudents())
	case TabTeachers:
		b.WriteString(m.viewTeachers())
	case TabCourses:
		b.WriteString(m.viewCourses())
	default:
		b.WriteString(m.viewComingSoon())
	}

	b.WriteString("\n")
	b.WriteString(m.footer([][2]string{
		{"tab", "switch section"},
		{"ctrl+o", "sign out"},
		{"q", "quit"},
	}))
	return b.String()
}

func (m Model) header() string {
	who := ""
	if m.snapshot.Profile != nil {
		who = fmt.Sprintf("%s (%s)", m.snapshot.Profile.FullName, m.snapshot.Profile.Role)
	} else if m.snapshot.User != nil {
		who = m.snapshot.User.Email
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		ui.TitleStyle.Render("EduManage"),
		"  ",
		ui.DimStyle.Render(who),
	)
}

func (m Model) navBar() string {
	items := make([]string, 0, len(Tabs))
	for _, tab := range Tabs {
		label := tab.Label()
		if tab == m.activeTab {
			items = append(items, ui.NavActiveStyle.Render(label))
		} else {
			items = append(items, ui.NavStyle.Render(label))
		}
	}
	return strings.Join(items, ui.DividerStyle.Render(" | "))
}

func (m Model) viewOverview() string {
	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		statTile("Total Students", fmt.Sprintf("%d", m.stats.TotalStudents)),
		statTile("Total Teachers", fmt.Sprintf("%d", m.stats.TotalTeachers)),
		statTile("Active Courses", fmt.Sprintf("%d", m.activeCourseCount())),
		statTile("Avg. Attendance", fmt.Sprintf("%.1f%%", m.stats.AvgAttendance)),
	)

	var b strings.Builder
	b.WriteString(tiles)
	b.WriteString("\n\n")
	b.WriteString(ui.CardTitleStyle.Render("Recent Announcements"))
	b.WriteString("\n")
	b.WriteString(m.viewAnnouncements())
	b.WriteString("\n")
	b.WriteString(ui.CardTitleStyle.Render("Quick Actions"))
	b.WriteString("\n")
	for _, action := range []string{"Add New Student", "Create Course", "Schedule Event", "Generate Report"} {
		b.WriteString("  " + ui.DimStyle.Render("- "+action) + "\n")
	}
	return b.String()
}

func statTile(label, value string) string {
	return ui.CardBorderStyle.Render(
		ui.StatLabelStyle.Render(label) + "\n" + ui.StatValueStyle.Render(value),
	)
}

func (m Model) viewAnnouncements() string {
	if m.announcementsErr != nil {
		return "  " + ui.ErrorTextStyle.Render("Announcements are unavailable right now.") + "\n"
	}
	if len(m.announcements) == 0 {
		return "  " + ui.DimStyle.Render("No announcements yet.") + "\n"
	}

	var b strings.Builder
	for _, a := range m.announcements {
		b.WriteString("  ")
		b.WriteString(ui.PriorityBadge(a.Priority))
		b.WriteString(" ")
		b.WriteString(ui.CardTitleStyle.Render(a.Title))
		b.WriteString("\n")
		b.WriteString("  " + ui.DimStyle.Render(a.Excerpt(excerptLength)))
		b.WriteString("\n")

		meta := a.PublishDate.Format("Jan 2, 2006")
		if name := a.AuthorName(); name != "" {
			meta += " · " + name
		}
		b.WriteString("  " + ui.TimestampStyle.Render(meta))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) viewStudents() string {
	var b strings.Builder
	b.WriteString(ui.CardTitleStyle.Render("Students"))
	b.WriteString("\n\n")
	for _, s := range mockStudents {
		b.WriteString(fmt.Sprintf("  %s\n", ui.StatValueStyle.Render(s.Name)))
		b.WriteString("  " + ui.DimStyle.Render(fmt.Sprintf("%s · GPA %.1f · Attendance %s", s.Grade, s.GPA, s.Attendance)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) viewTeachers() string {
	var b strings.Builder
	b.WriteString(ui.CardTitleStyle.Render("Teachers"))
	b.WriteString("\n\n")
	for _, t := range mockTeachers {
		b.WriteString(fmt.Sprintf("  %s\n", ui.StatValueStyle.Render(t.Name)))
		b.WriteString("  " + ui.DimStyle.Render(fmt.Sprintf("%s · %d classes · %s", t.Subject, t.Classes, t.Experience)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) viewCourses() string {
	var b strings.Builder
	b.WriteString(ui.CardTitleStyle.Render("Courses"))
	b.WriteString("\n\n")

	if m.coursesErr != nil {
		b.WriteString("  " + ui.ErrorTextStyle.Render("Courses are unavailable right now.") + "\n")
		return b.String()
	}
	if len(m.courses) == 0 {
		b.WriteString("  " + ui.DimStyle.Render("No courses found.") + "\n")
		return b.String()
	}

	for _, c := range m.courses {
		badge := ui.ActiveBadgeStyle.Render("active")
		if !c.IsActive {
			badge = ui.InactiveBadgeStyle.Render("inactive")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			ui.StatValueStyle.Render(c.CourseCode),
			c.Name,
			badge,
		))
		b.WriteString("  " + ui.DimStyle.Render(fmt.Sprintf("%s · %s · %d credits", c.Department, c.GradeLevel, c.Credits)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) viewComingSoon() string {
	return ui.CardTitleStyle.Render(m.activeTab.Label()) + "\n\n" +
		"  " + ui.DimStyle.Render("This section is under development.") + "\n"
}

func (m Model) footer(bindings [][2]string) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		parts = append(parts, ui.FooterKeyStyle.Render(binding[0])+" "+ui.FooterDescStyle.Render(binding[1]))
	}
	return strings.Join(parts, ui.DividerStyle.Render("  "))
}
