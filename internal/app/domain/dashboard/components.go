package dashboard

import (
	"fmt"
	"net/url"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/card"
	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/roles"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

// Placeholder stands in for the page until the mounted fetch settles, then
// asks for the content of generation gen. params carries the page's path
// parameters over to the content request.
func Placeholder(role models.Role, page, visit string, gen uint64, params url.Values) templ.Component {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("page", page)
	q.Set("visit", visit)
	q.Set("gen", fmt.Sprint(gen))
	src := roles.HomeURL(role) + "/content?" + q.Encode()
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<div id="dashboard-loading" hx-get="%s" hx-trigger="load" hx-swap="outerHTML" class="flex h-64 items-center justify-center" aria-busy="true">`, markup.Esc(src))
		m.Raw(`<div class="h-10 w-10 animate-spin rounded-full border-b-2 border-primary-600"></div>`)
		m.Raw(`<span class="ml-3 text-gray-500">Loading dashboard...</span></div>`)
	})
}

// ErrorMessage replaces the content area when the dashboard could not load.
func ErrorMessage(msg string) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<div id="dashboard-error" role="alert" class="rounded-lg border border-red-200 bg-red-50 p-4 text-red-600">`)
		m.Text(msg)
		m.Raw(`</div>`)
	})
}

// Heading is a page title with an optional subtitle.
func Heading(title, subtitle string) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<div class="mb-6"><h2 class="page-title text-2xl font-semibold">`)
		m.Text(title)
		m.Raw(`</h2>`)
		if subtitle != "" {
			m.Raw(`<p class="mt-1 text-sm text-gray-500">`)
			m.Text(subtitle)
			m.Raw(`</p>`)
		}
		m.Raw(`</div>`)
	})
}

// Stack renders parts one after another with vertical spacing.
func Stack(parts ...templ.Component) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<div class="space-y-6">`)
		for _, p := range parts {
			m.Component(p)
		}
		m.Raw(`</div>`)
	})
}

// Columns lays parts out side by side on wide screens.
func Columns(parts ...templ.Component) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<div class="grid gap-6 lg:grid-cols-2">`)
		for _, p := range parts {
			m.Component(p)
		}
		m.Raw(`</div>`)
	})
}

// SettingsPage is the same static page for every role.
var SettingsPage = Stack(
	Heading("Settings", "Manage your account, security and sessions."),
	card.Section("settings-account", "Account Details", markup.TextComponent("Profile editing is handled by your institution's administrator.")),
	card.Section("settings-security", "Security & Access", markup.TextComponent("Log out of this device from the sidebar.")),
)

func settingsPage() Page {
	return Page{Slug: "settings", Title: "Settings", Body: SettingsPage}
}
