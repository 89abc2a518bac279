package portfolio

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/banner"
	"github.com/FACorreiaa/go-edudash/internal/app/components/button"
	"github.com/FACorreiaa/go-edudash/internal/app/components/form"
	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/components/table"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/dashboard"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/roles"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

// Kind names one portfolio list. It is also the URL segment and the table id.
type Kind string

const (
	Projects Kind = "projects"
	Skills   Kind = "skills"
	Links    Kind = "links"
)

var baseURL = roles.HomeURL(models.RoleStudent) + "/portfolio"

func (k Kind) url() string { return baseURL + "/" + string(k) }

func (k Kind) sectionID() string { return "portfolio-" + string(k) }

// formState carries what the user typed and what was wrong with it.
type formState struct {
	Values map[string]string
	Errors map[string]string
	Banner *banner.BannerProps
}

// Page is the whole portfolio: one section per kind.
func Page(p models.Portfolio) templ.Component {
	return dashboard.Stack(
		dashboard.Heading("My Portfolio", "Projects, skills and links you want to showcase."),
		ProjectsSection(p.Projects, formState{}),
		dashboard.Columns(
			SkillsSection(p.Skills, formState{}),
			LinksSection(p.Links, formState{}),
		),
	)
}

func section(k Kind, title string, list templ.Component, addForm templ.Component) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<section id="%s" class="rounded-lg border bg-white p-6 shadow-sm">`, k.sectionID())
		m.Raw(`<h3 class="mb-4 text-lg font-semibold">`)
		m.Text(title)
		m.Raw(`</h3>`)
		m.Component(list)
		m.Raw(`<div class="mt-6 border-t pt-4">`)
		m.Component(addForm)
		m.Raw(`</div></section>`)
	})
}

func addForm(k Kind, st formState, fields ...form.Field) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<form id="%s-form" method="post" action="%s" hx-post="%s" hx-target="#%s" hx-swap="outerHTML">`,
			k, k.url(), k.url(), k.sectionID())
		if st.Banner != nil {
			m.Component(banner.Banner(*st.Banner))
		}
		for _, f := range fields {
			f.Value = st.Values[f.Name]
			f.Error = st.Errors[f.Name]
			m.Component(form.Input(f))
		}
		m.Component(markup.With(button.Button(button.Props{Type: button.TypeSubmit, Size: button.SizeSm}), markup.TextComponent("Add")))
		m.Raw(`</form>`)
	})
}

func deleteAction(k Kind) func(row map[string]any) templ.Component {
	return func(row map[string]any) templ.Component {
		id := models.FormatValue(row["id"])
		return markup.With(button.Button(button.Props{
			Variant: button.VariantGhost,
			Size:    button.SizeSm,
			Attributes: templ.Attributes{
				"hx-delete": k.url() + "/" + id,
				"hx-target": fmt.Sprintf("#%s-%s", k, id),
				"hx-swap":   "outerHTML",
			},
		}), markup.TextComponent("Remove"))
	}
}

func ProjectsSection(projects []models.Project, st formState) templ.Component {
	rows := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, map[string]any{"id": p.ID, "title": p.Title, "description": p.Description, "project_link": p.ProjectLink, "tags": p.Tags})
	}
	list := table.DataTable(table.Props{
		ID: string(Projects), Columns: table.Columns("title", "description", "project_link", "tags"),
		Rows: rows, RowID: "id", Empty: "No projects yet.", Actions: deleteAction(Projects),
	})
	return section(Projects, "Projects", list, addForm(Projects, st,
		form.Field{Name: "title", Label: "Title", Required: true},
		form.Field{Name: "description", Label: "Description", Type: "textarea"},
		form.Field{Name: "project_link", Label: "Link", Type: "url", Placeholder: "https://"},
		form.Field{Name: "tags", Label: "Tags", Placeholder: "go, htmx"},
	))
}

func SkillsSection(skills []models.Skill, st formState) templ.Component {
	rows := make([]map[string]any, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, map[string]any{"id": s.ID, "skill_name": s.SkillName, "category": s.Category})
	}
	list := table.DataTable(table.Props{
		ID: string(Skills), Columns: []table.Column{{Key: "skill_name", Label: "Skill"}, {Key: "category", Label: "Category"}},
		Rows: rows, RowID: "id", Empty: "No skills yet.", Actions: deleteAction(Skills),
	})
	return section(Skills, "Skills", list, addForm(Skills, st,
		form.Field{Name: "skill_name", Label: "Skill", Required: true},
		form.Field{Name: "category", Label: "Category"},
	))
}

func LinksSection(links []models.Link, st formState) templ.Component {
	rows := make([]map[string]any, 0, len(links))
	for _, l := range links {
		rows = append(rows, map[string]any{"id": l.ID, "title": l.Title, "url": l.URL})
	}
	list := table.DataTable(table.Props{
		ID: string(Links), Columns: []table.Column{{Key: "title", Label: "Title"}, {Key: "url", Label: "URL"}},
		Rows: rows, RowID: "id", Empty: "No links yet.", Actions: deleteAction(Links),
	})
	return section(Links, "Links", list, addForm(Links, st,
		form.Field{Name: "title", Label: "Title", Required: true},
		form.Field{Name: "url", Label: "URL", Type: "url", Required: true, Placeholder: "https://"},
	))
}

// render picks the section for k from a fetched portfolio.
func render(k Kind, p models.Portfolio, st formState) templ.Component {
	switch k {
	case Skills:
		return SkillsSection(p.Skills, st)
	case Links:
		return LinksSection(p.Links, st)
	default:
		return ProjectsSection(p.Projects, st)
	}
}
