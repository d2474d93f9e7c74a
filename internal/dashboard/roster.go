package dashboard

// rosterStudent is a placeholder roster entry shown on the students tab
// until the students table is wired up.
type rosterStudent struct {
	Name       string
	Grade      string
	GPA        float64
	Attendance string
}

// rosterTeacher is a placeholder roster entry shown on the teachers tab.
type rosterTeacher struct {
	Name       string
	Subject    string
	Classes    int
	Experience string
}

var mockStudents = []rosterStudent{
	{Name: "Emma Johnson", Grade: "10th Grade", GPA: 3.8, Attendance: "96%"},
	{Name: "Michael Chen", Grade: "11th Grade", GPA: 3.9, Attendance: "98%"},
	{Name: "Sarah Williams", Grade: "9th Grade", GPA: 3.7, Attendance: "94%"},
	{Name: "David Brown", Grade: "12th Grade", GPA: 3.6, Attendance: "92%"},
}

var mockTeachers = []rosterTeacher{
	{Name: "Dr. Amanda Rodriguez", Subject: "Mathematics", Classes: 5, Experience: "12 years"},
	{Name: "Prof. James Wilson", Subject: "Physics", Classes: 4, Experience: "8 years"},
	{Name: "Ms. Lisa Parker", Subject: "English Literature", Classes: 6, Experience: "15 years"},
	{Name: "Mr. Robert Kim", Subject: "Computer Science", Classes: 3, Experience: "6 years"},
}
