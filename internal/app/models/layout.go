package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
	Icon string
}

type Navigation struct {
	Items []NavItem
}

// SidebarVariant selects which sidebar chrome a role gets.
type SidebarVariant int

const (
	SidebarNone SidebarVariant = iota
	SidebarGeneric
	SidebarStudent
	SidebarTeacher
)

func (v SidebarVariant) String() string {
	switch v {
	case SidebarGeneric:
		return "generic"
	case SidebarStudent:
		return "student"
	case SidebarTeacher:
		return "teacher"
	default:
		return "none"
	}
}

// ShowsProfile reports whether the sidebar renders the profile card.
func (v SidebarVariant) ShowsProfile() bool {
	return v == SidebarStudent || v == SidebarTeacher
}

// Profile is the identity block shown in the sidebar and navbar.
type Profile struct {
	Name        string
	Avatar      string
	Details     string
	Institution string
}

// RoleConfig is the static chrome configuration for one role.
type RoleConfig struct {
	Role           Role
	NavItems       []NavItem
	BottomNavItems []NavItem
	Sidebar        SidebarVariant
	DefaultProfile Profile
}

// LayoutTempl is everything the dashboard shell needs to render.
type LayoutTempl struct {
	Title     string
	Role      Role
	Config    RoleConfig
	Profile   Profile
	UserName  string
	ActiveNav string
	Content   templ.Component
}

// PublicNav is shown on the login and signup pages.
var PublicNav = Navigation{
	Items: []NavItem{
		{Name: "Sign in", URL: "/login"},
		{Name: "Create account", URL: "/signup"},
	},
}
