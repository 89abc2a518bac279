// Package chrome renders the parts of the dashboard that surround page
// content: document shell, sidebar and navbar.
package chrome

import (
	"strings"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

// Element ids the content fragment updates out of band.
const (
	ProfileID = "sidebar-profile"
	UserID    = "navbar-user"
	ContentID = "dashboard-content"
)

const brand = "EduSamagra"

func document(title string, body templ.Component) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Raw(`<title>`)
		m.Text(title)
		m.Raw(`</title>`)
		// Error answers carry inline messages, so htmx must swap them too.
		m.Raw(`<meta name="htmx-config" content='{"responseHandling":[{"code":"204","swap":false},{"code":"[2345]..","swap":true}]}'>`)
		m.Raw(`<link rel="stylesheet" href="/assets/css/app.css">`)
		m.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		m.Raw(`<script src="/assets/js/app.js" defer></script>`)
		m.Raw(`</head>`)
		m.Component(body)
		m.Raw(`</html>`)
	})
}

// Shell is the full dashboard page.
func Shell(data models.LayoutTempl) templ.Component {
	return document(data.Title, markup.Func(func(m *markup.Writer) {
		m.Rawf(`<body class="flex h-screen bg-light-bg" data-role="%s">`, markup.Esc(string(data.Role)))
		m.Component(Sidebar(data.Config, data.Profile, data.ActiveNav))
		m.Raw(`<div class="flex flex-1 flex-col overflow-hidden">`)
		m.Component(Navbar(data.UserName))
		m.Raw(`<main class="flex-1 overflow-y-auto overflow-x-hidden"><div class="container mx-auto max-w-7xl p-6">`)
		m.Rawf(`<div id="%s">`, ContentID)
		m.Component(data.Content)
		m.Raw(`</div></div></main></div></body>`)
	}))
}

// Public is the page shell for signed-out pages.
func Public(title string, nav models.Navigation, content templ.Component) templ.Component {
	return document(title, markup.Func(func(m *markup.Writer) {
		m.Raw(`<body class="min-h-screen bg-light-bg">`)
		m.Raw(`<header class="flex h-16 items-center justify-between border-b bg-white px-6">`)
		m.Rawf(`<a href="/login" class="text-xl font-bold text-primary-600">%s</a><nav class="flex gap-4 text-sm">`, brand)
		for _, item := range nav.Items {
			m.Rawf(`<a href="%s">`, markup.Esc(item.URL))
			m.Text(item.Name)
			m.Raw(`</a>`)
		}
		m.Raw(`</nav></header><main class="mx-auto max-w-md p-6">`)
		m.Component(content)
		m.Raw(`</main></body>`)
	}))
}

// Sidebar renders the role's navigation. SidebarNone renders nothing.
func Sidebar(cfg models.RoleConfig, profile models.Profile, active string) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		if cfg.Sidebar == models.SidebarNone {
			return
		}
		m.Rawf(`<aside data-sidebar="%s" class="%s">`, cfg.Sidebar.String(), markup.Esc(sidebarClasses(cfg.Sidebar)))
		if cfg.Sidebar.ShowsProfile() {
			m.Component(ProfileCard(cfg.Sidebar, profile, false))
		} else {
			m.Rawf(`<div class="flex h-20 items-center justify-center border-b"><h1 class="text-2xl font-bold text-primary-600">%s</h1></div>`, brand)
		}
		m.Raw(`<nav class="mt-4 flex-1 px-2">`)
		navLinks(m, cfg.NavItems, active)
		m.Raw(`</nav>`)
		if len(cfg.BottomNavItems) > 0 {
			m.Raw(`<div class="mb-4 border-t px-2 pt-4">`)
			navLinks(m, cfg.BottomNavItems, active)
			m.Raw(`</div>`)
		}
		m.Raw(`<form method="post" action="/logout" class="mb-4 px-4"><button type="submit" class="text-sm underline">Log out</button></form>`)
		m.Raw(`</aside>`)
	})
}

func navLinks(m *markup.Writer, items []models.NavItem, active string) {
	for _, item := range items {
		class := "flex items-center rounded-lg px-4 py-2.5 mx-2 mt-1 text-sm transition-colors"
		current := ""
		if item.URL == active {
			class = twmerge.Merge(class, "bg-primary-100 font-semibold text-primary-700")
			current = ` aria-current="page"`
		}
		m.Rawf(`<a href="%s" class="%s"%s>`, markup.Esc(item.URL), markup.Esc(class), current)
		if item.Icon != "" {
			m.Rawf(`<i class="%s mr-3 h-5 w-5" aria-hidden="true"></i>`, markup.Esc(item.Icon))
		}
		m.Raw(`<span class="truncate">`)
		m.Text(item.Name)
		m.Raw(`</span></a>`)
	}
}

func sidebarClasses(v models.SidebarVariant) string {
	base := "hidden w-64 flex-col border-r shadow-md md:flex"
	if v == models.SidebarTeacher {
		return twmerge.Merge(base, "bg-primary-900 text-gray-200 border-primary-800")
	}
	return twmerge.Merge(base, "bg-white border-gray-200")
}

// ProfileCard is the identity block of the student and teacher sidebars.
// With oob set it carries hx-swap-oob so a fragment can replace it.
func ProfileCard(variant models.SidebarVariant, p models.Profile, oob bool) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<div id="%s" class="flex flex-col items-center border-b p-4 pt-6"%s>`, ProfileID, oobAttr(oob))
		m.Raw(`<div class="mb-3 h-20 w-20 overflow-hidden rounded-full border-2">`)
		if p.Avatar != "" {
			m.Rawf(`<img src="%s" alt="%s" class="h-full w-full object-cover">`, markup.Esc(p.Avatar), markup.Esc(p.Name))
		} else {
			m.Rawf(`<span class="avatar-initial flex h-full w-full items-center justify-center text-3xl">%s</span>`, markup.Esc(initial(p.Name)))
		}
		m.Raw(`</div><h3 class="profile-name text-center text-base font-semibold">`)
		m.Text(p.Name)
		m.Raw(`</h3><p class="profile-details mt-1 truncate text-center text-xs">`)
		m.Text(p.Details)
		m.Raw(`</p><p class="profile-institution truncate text-center text-xs">`)
		m.Text(p.Institution)
		m.Raw(`</p>`)
		if variant == models.SidebarStudent {
			m.Raw(`<a href="/dashboard/student/settings" class="mt-2 text-xs underline">Edit profile</a>`)
		}
		m.Raw(`</div>`)
	})
}

// Navbar is the top bar with the greeting.
func Navbar(userName string) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<header class="flex h-16 items-center justify-between border-b bg-white px-6 shadow-sm">`)
		m.Component(Greeting(userName, false))
		m.Raw(`<div class="flex items-center gap-4"><input type="search" placeholder="Search..." class="w-64 rounded-md bg-gray-100 px-4 py-2">`)
		m.Rawf(`<div class="flex h-9 w-9 items-center justify-center rounded-full bg-primary-500 font-semibold text-white">%s</div>`, markup.Esc(initial(userName)))
		m.Raw(`</div></header>`)
	})
}

// Greeting is the navbar's "Hello, name!" text.
func Greeting(userName string, oob bool) templ.Component {
	if userName == "" {
		userName = "User"
	}
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<span id="%s" class="text-xl font-semibold text-gray-800"%s>Hello, `, UserID, oobAttr(oob))
		m.Text(userName)
		m.Raw(`!</span>`)
	})
}

func oobAttr(oob bool) string {
	if oob {
		return ` hx-swap-oob="true"`
	}
	return ""
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}
	return strings.ToUpper(string([]rune(name)[:1]))
}
