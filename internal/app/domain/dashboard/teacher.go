package dashboard

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/card"
	"github.com/FACorreiaa/go-edudash/internal/app/components/chart"
	"github.com/FACorreiaa/go-edudash/internal/app/components/kpi"
	"github.com/FACorreiaa/go-edudash/internal/app/components/table"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/layout"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

var teacherKPITitles = map[string]string{
	"total_students": "Total Students",
	"avg_gpa":        "Class Avg. GPA",
	"avg_attendance": "Avg. Attendance",
}

func TeacherPages() []Page {
	return []Page{
		{Title: "Teacher Dashboard", Body: layout.PayloadPage(TeacherOverview)},
		{Slug: "attendance", Title: "Attendance", Body: layout.PayloadPage(TeacherAttendance)},
		{Slug: "timetable", Title: "Timetable", Body: layout.PayloadPage(TeacherTimetable)},
		{Slug: "students", Title: "Student list", Body: layout.PayloadPage(TeacherStudents)},
		{Slug: "qualifications", Title: "My Qualifications", Body: layout.PayloadPage(TeacherQualifications)},
		settingsPage(),
	}
}

func studentsTable(p models.DashboardPayload) templ.Component {
	return table.DataTable(table.Props{
		ID: "students-table",
		Columns: []table.Column{
			{Key: "name", Label: "Name"},
			{Key: "course", Label: "Course"},
			{Key: "gpa", Label: "GPA"},
			{Key: "attendance", Label: "Attendance %"},
		},
		Rows:  p.Items("students"),
		RowID: "id",
		Empty: "No students assigned.",
	})
}

func qualifications(p models.DashboardPayload) templ.Component {
	return card.Feed(card.FeedProps{
		ID: "qualifications", Title: "My Qualifications", Items: p.Items("qualifications"),
		TitleKey: "degree", MetaKey: "university", Empty: "No qualifications on record.",
	})
}

func TeacherOverview(p models.DashboardPayload) templ.Component {
	return Stack(
		Heading(greeting(p, "Teacher Dashboard"), models.FormatValue(p.ProfileFields()["subject"])),
		kpi.Grid(p, teacherKPITitles),
		card.Insight(p.Insight()),
		Columns(
			chart.Card(chart.Props{
				ID: "student-attendance", Title: "Attendance Overview",
				Rows: p.Items("students"), XKey: "name", YKey: "attendance",
			}),
			card.Section("todays-students", "Today's Attendance", studentsTable(p)),
		),
		Columns(timetable(p), qualifications(p)),
	)
}

func TeacherAttendance(p models.DashboardPayload) templ.Component {
	return Stack(
		Heading("Attendance", "Attendance recorded for your students."),
		kpi.Grid(p, teacherKPITitles),
		card.Section("attendance-list", "Student List", studentsTable(p)),
	)
}

func TeacherTimetable(p models.DashboardPayload) templ.Component {
	return Stack(Heading("Timetable", ""), timetable(p))
}

func TeacherStudents(p models.DashboardPayload) templ.Component {
	return Stack(Heading("Student list", ""), card.Section("student-list", "", studentsTable(p)))
}

func TeacherQualifications(p models.DashboardPayload) templ.Component {
	return Stack(
		Heading("My Qualifications", ""),
		card.Section("qualifications-table", "", table.DataTable(table.Props{
			ID:      "qualifications-list",
			Columns: table.Columns("degree", "university", "year"),
			Rows:    p.Items("qualifications"),
			Empty:   "No qualifications on record.",
		})),
	)
}
