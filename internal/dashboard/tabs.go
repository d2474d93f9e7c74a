package dashboard

// Tab identifies a view section of the dashboard.
type Tab string

const (
	TabDashboard  Tab = "dashboard"
	TabStudents   Tab = "students"
	TabTeachers   Tab = "teachers"
	TabCourses    Tab = "courses"
	TabAttendance Tab = "attendance"
	TabCalendar   Tab = "calendar"
	TabReports    Tab = "reports"
	TabSettings   Tab = "settings"
)

// Tabs is the navigation order.
var Tabs = []Tab{
	TabDashboard,
	TabStudents,
	TabTeachers,
	TabCourses,
	TabAttendance,
	TabCalendar,
	TabReports,
	TabSettings,
}

// Label returns the navigation label for the tab.
func (t Tab) Label() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabStudents:
		return "Students"
	case TabTeachers:
		return "Teachers"
	case TabCourses:
		return "Courses"
	case TabAttendance:
		return "Attendance"
	case TabCalendar:
		return "Calendar"
	case TabReports:
		return "Reports"
	case TabSettings:
		return "Settings"
	default:
		return string(t)
	}
}

// next returns the tab after t in navigation order, wrapping around.
func (t Tab) next() Tab {
	for i, tab := range Tabs {
		if tab == t {
			return Tabs[(i+1)%len(Tabs)]
		}
	}
	return TabDashboard
}

// prev returns the tab before t in navigation order, wrapping around.
func (t Tab) prev() Tab {
	for i, tab := range Tabs {
		if tab == t {
			return Tabs[(i-1+len(Tabs))%len(Tabs)]
		}
	}
	return TabDashboard
}
