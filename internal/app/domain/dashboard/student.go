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

var studentKPITitles = map[string]string{
	"gpa":            "Overall GPA",
	"attendance":     "Attendance",
	"credits_earned": "Credits Earned",
}

// StudentPages are the student dashboard's screens. The portfolio page is
// registered by its own package.
func StudentPages() []Page {
	return []Page{
		{Title: "Student Dashboard", Body: layout.PayloadPage(StudentOverview)},
		{Slug: "academics", Title: "Academic Performance", Body: layout.PayloadPage(StudentAcademics)},
		{Slug: "courses", Title: "My Courses", Body: layout.PayloadPage(StudentCourses)},
		{Slug: "timetable", Title: "Time Table", Body: layout.PayloadPage(StudentTimetable)},
		{Slug: "schemes", Title: "Schemes", Body: layout.PayloadPage(StudentSchemes)},
		settingsPage(),
	}
}

func greeting(p models.DashboardPayload, fallback string) string {
	if name := models.FormatValue(p.ProfileFields()["name"]); name != "" {
		return "Welcome back, " + name + "!"
	}
	return fallback
}

func gpaTrend(p models.DashboardPayload) templ.Component {
	return chart.Card(chart.Props{
		ID:    "gpa-trend",
		Title: "GPA Trend",
		Rows:  p.Series("gpa_trend"),
		XKey:  "semester",
		YKey:  "gpa",
	})
}

func StudentOverview(p models.DashboardPayload) templ.Component {
	profile := p.ProfileFields()
	subtitle := models.FormatValue(profile["course"])
	if sem := models.FormatValue(profile["semester"]); sem != "" {
		subtitle += " · Semester " + sem
	}
	return Stack(
		Heading(greeting(p, "Student Dashboard"), subtitle),
		kpi.Grid(p, studentKPITitles),
		card.Insight(p.Insight()),
		Columns(
			gpaTrend(p),
			card.Feed(card.FeedProps{
				ID: "upcoming-events", Title: "Upcoming Events", Items: p.Items("events"),
				TitleKey: "title", MetaKey: "date", Empty: "No upcoming events.",
			}),
		),
		card.Feed(card.FeedProps{
			ID: "recommended-schemes", Title: "Recommended Schemes", Items: p.Items("schemes"),
			TitleKey: "name", MetaKey: "description", Empty: "No schemes available right now.",
		}),
	)
}

func StudentAcademics(p models.DashboardPayload) templ.Component {
	return Stack(
		Heading("Full Academic Performance", ""),
		kpi.Grid(p, studentKPITitles),
		gpaTrend(p),
		card.Section("semester-details", "Semester-wise Details", table.DataTable(table.Props{
			ID:      "semester-table",
			Columns: []table.Column{{Key: "semester", Label: "Semester"}, {Key: "gpa", Label: "GPA"}},
			Rows:    p.Series("gpa_trend"),
			Empty:   "No semester results yet.",
		})),
	)
}

func StudentCourses(p models.DashboardPayload) templ.Component {
	return Stack(
		Heading("My Courses", models.FormatValue(p.ProfileFields()["course"])),
		card.Section("current-enrollment", "Current Enrollment", table.DataTable(table.Props{
			ID:      "courses-table",
			Columns: table.Columns("title", "instructor", "status"),
			Rows:    p.Items("courses"),
			Empty:   "No course enrolments found.",
		})),
	)
}

func StudentTimetable(p models.DashboardPayload) templ.Component {
	return Stack(
		Heading("Time Table", ""),
		timetable(p),
	)
}

func StudentSchemes(p models.DashboardPayload) templ.Component {
	return Stack(
		Heading("Government Schemes & Scholarships", "Schemes you may be eligible for."),
		card.Feed(card.FeedProps{
			ID: "schemes", Items: p.Items("schemes"),
			TitleKey: "name", MetaKey: "description", Empty: "No schemes available right now.",
		}),
	)
}

func timetable(p models.DashboardPayload) templ.Component {
	return card.Section("timetable", "Weekly Schedule", table.DataTable(table.Props{
		ID:      "timetable-table",
		Columns: table.Columns("day", "time", "class", "subject"),
		Rows:    p.Items("timetable"),
		Empty:   "No classes scheduled.",
	}))
}
