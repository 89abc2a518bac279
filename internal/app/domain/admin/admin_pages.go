package admin

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/banner"
	"github.com/FACorreiaa/go-edudash/internal/app/components/button"
	"github.com/FACorreiaa/go-edudash/internal/app/components/card"
	"github.com/FACorreiaa/go-edudash/internal/app/components/chart"
	"github.com/FACorreiaa/go-edudash/internal/app/components/form"
	"github.com/FACorreiaa/go-edudash/internal/app/components/kpi"
	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/components/table"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/dashboard"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/roles"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

var kpiTitles = map[string]string{
	"total_institutions": "Total Institutions",
	"total_users":        "Total Users",
	"total_students":     "Total Students",
	"total_teachers":     "Total Teachers",
}

var institutionsURL = roles.HomeURL(models.RoleAdmin) + "/institutions"

func institutionURL(id int) string {
	return institutionsURL + "/" + strconv.Itoa(id)
}

// Overview is the admin landing page: nationwide kpis and charts from the
// payload plus the user and institution lists.
func Overview(p models.DashboardPayload, users []models.User, institutions []models.Institution, b *banner.BannerProps) templ.Component {
	return dashboard.Stack(
		dashboard.Heading("Nationwide Overview", "System-wide statistics across institutions."),
		optionalBanner(b),
		kpi.Grid(p, kpiTitles),
		dashboard.Columns(
			chart.Card(chart.Props{
				ID: "enrolment-trend", Title: "Nationwide Enrolment Trend",
				Rows: p.Series("enrolment_trend"), XKey: "year", YKey: "students",
			}),
			chart.Card(chart.Props{
				ID: "state-heatmap", Title: "Institutions by State",
				Rows: p.Series("state_heatmap"), XKey: "state", YKey: "institutions",
			}),
		),
		card.Section("user-management", "User Management", UsersTable(users)),
		card.Section("institution-management", "Institution Management", InstitutionsTable(institutions, false)),
	)
}

func optionalBanner(b *banner.BannerProps) templ.Component {
	if b == nil {
		return templ.NopComponent
	}
	return banner.Banner(*b)
}

func UsersTable(users []models.User) templ.Component {
	rows := make([]map[string]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, map[string]any{"id": u.ID, "email": u.Email, "role": u.Role, "institution": u.Institution})
	}
	return table.DataTable(table.Props{
		ID:      "users",
		Columns: table.Columns("id", "email", "role", "institution"),
		Rows:    rows,
		RowID:   "id",
		Empty:   "No users found.",
	})
}

// InstitutionsTable lists institutions; with actions each row links to its
// details and can be deleted in place.
func InstitutionsTable(institutions []models.Institution, actions bool) templ.Component {
	rows := make([]map[string]any, 0, len(institutions))
	for _, i := range institutions {
		rows = append(rows, map[string]any{"id": i.ID, "name": i.Name, "type": i.Type, "state": i.State, "district": i.District})
	}
	props := table.Props{
		ID:      "institutions",
		Columns: table.Columns("id", "name", "type", "state", "district"),
		Rows:    rows,
		RowID:   "id",
		Empty:   "No institutions registered yet.",
	}
	if actions {
		props.Actions = rowActions
	}
	return table.DataTable(props)
}

func rowActions(row map[string]any) templ.Component {
	id, _ := row["id"].(int)
	return markup.Func(func(m *markup.Writer) {
		m.Component(markup.With(button.Button(button.Props{
			Href: institutionURL(id), Variant: button.VariantLink, Size: button.SizeSm,
		}), markup.TextComponent("View")))
		m.Component(markup.With(button.Button(button.Props{
			Variant: button.VariantDestructive,
			Size:    button.SizeSm,
			Attributes: templ.Attributes{
				"hx-delete":  institutionURL(id),
				"hx-target":  fmt.Sprintf("#institutions-%d", id),
				"hx-swap":    "outerHTML",
				"hx-confirm": "Delete this institution?",
			},
		}), markup.TextComponent("Delete")))
	})
}

var typeOptions = func() []form.Option {
	opts := make([]form.Option, 0, len(models.InstitutionTypes))
	for _, t := range models.InstitutionTypes {
		opts = append(opts, form.Option{Value: t, Label: t})
	}
	return opts
}()

// InstitutionForm creates an institution, or updates one when id > 0.
func InstitutionForm(id int, in models.InstitutionInput, errs map[string]string, b *banner.BannerProps) templ.Component {
	action, formID, submit := institutionsURL, "institution-form", "Add Institution"
	target := "#institutions-panel"
	if id > 0 {
		action, formID, submit = institutionURL(id), "institution-edit-form", "Save Changes"
		target = "this"
	}
	if in.Type == "" {
		in.Type = models.InstitutionTypes[0]
	}
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<form id="%s" method="post" action="%s" hx-post="%s" hx-target="%s" hx-swap="outerHTML" class="rounded-lg border bg-white p-6 shadow-sm">`,
			formID, markup.Esc(action), markup.Esc(action), target)
		m.Component(optionalBanner(b))
		m.Component(form.Input(form.Field{Name: "name", Label: "Name", Value: in.Name, Error: errs["name"], Required: true}))
		m.Component(form.Select(form.Field{Name: "type", Label: "Type", Value: in.Type, Options: typeOptions, Error: errs["type"], Required: true}))
		m.Component(form.Input(form.Field{Name: "state", Label: "State", Value: in.State, Error: errs["state"], Required: true}))
		m.Component(form.Input(form.Field{Name: "district", Label: "District", Value: in.District, Error: errs["district"], Required: true}))
		m.Component(markup.With(button.Button(button.Props{Type: button.TypeSubmit}), markup.TextComponent(submit)))
		m.Raw(`</form>`)
	})
}

// InstitutionsPanel is the manage-institutions page body: the add form next
// to the list. Mutations re-render it whole.
func InstitutionsPanel(institutions []models.Institution, in models.InstitutionInput, errs map[string]string, b *banner.BannerProps) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<div id="institutions-panel" class="grid gap-6 lg:grid-cols-3">`)
		m.Raw(`<div class="lg:col-span-1">`)
		m.Component(InstitutionForm(0, in, errs, b))
		m.Raw(`</div><div id="institutions-feedback" class="lg:col-span-2">`)
		m.Component(card.Section("institution-list", "All Institutions", InstitutionsTable(institutions, true)))
		m.Raw(`</div></div>`)
	})
}

func ManageInstitutions(panel templ.Component) templ.Component {
	return dashboard.Stack(
		dashboard.Heading("Manage Institutions", "Register, inspect and remove institutions."),
		panel,
	)
}

func membersTable(id string, members []models.InstitutionMember, detail string) templ.Component {
	rows := make([]map[string]any, 0, len(members))
	for _, mb := range members {
		row := map[string]any{"id": mb.ID, "name": mb.Name, "email": mb.Email}
		switch detail {
		case "course":
			row["course"] = mb.Course
			row["gpa"] = deref(mb.GPA)
			row["attendance"] = deref(mb.Attendance)
		case "subject":
			row["subject"] = mb.Subject
			row["avg_feedback"] = deref(mb.AvgFeedback)
		}
		rows = append(rows, row)
	}
	cols := table.Columns("name", "email", "course", "gpa", "attendance")
	if detail == "subject" {
		cols = table.Columns("name", "email", "subject", "avg_feedback")
	}
	return table.DataTable(table.Props{ID: id, Columns: cols, Rows: rows, RowID: "id", Empty: "None registered."})
}

func deref(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// Details shows one institution with its students and teachers and an edit
// form.
func Details(d models.InstitutionDetails) templ.Component {
	inst := d.Institution
	return dashboard.Stack(
		dashboard.Heading(inst.Name, fmt.Sprintf("%s · %s, %s", inst.Type, inst.District, inst.State)),
		markup.With(button.Button(button.Props{Href: institutionsURL, Variant: button.VariantOutline, Size: button.SizeSm}),
			markup.TextComponent("Back to institutions")),
		dashboard.Columns(
			card.Section("institution-students", fmt.Sprintf("Students (%d)", len(d.Students)), membersTable("students", d.Students, "course")),
			card.Section("institution-teachers", fmt.Sprintf("Teachers (%d)", len(d.Teachers)), membersTable("teachers", d.Teachers, "subject")),
		),
		card.Section("institution-edit", "Edit Institution", InstitutionForm(inst.ID, models.InstitutionInput{
			Name: inst.Name, Type: inst.Type, State: inst.State, District: inst.District,
		}, nil, nil)),
	)
}
