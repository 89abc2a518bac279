// Package roles holds the static chrome configuration for each role. Adding
// a role means adding one entry here; navigation and sidebar follow from it.
package roles

import (
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

// HomeURL is the landing page of a role's dashboard.
func HomeURL(role models.Role) string {
	return "/dashboard/" + string(role)
}

func pageURL(role models.Role, page string) string {
	return HomeURL(role) + "/" + page
}

var registry = map[models.Role]models.RoleConfig{
	models.RoleStudent: {
		Role: models.RoleStudent,
		NavItems: []models.NavItem{
			{Name: "Overview", URL: HomeURL(models.RoleStudent), Icon: "icon-home"},
			{Name: "Academic Performance", URL: pageURL(models.RoleStudent, "academics"), Icon: "icon-chart-bar"},
			{Name: "My Portfolio", URL: pageURL(models.RoleStudent, "portfolio"), Icon: "icon-user"},
			{Name: "Courses", URL: pageURL(models.RoleStudent, "courses"), Icon: "icon-book-open"},
			{Name: "Time Table", URL: pageURL(models.RoleStudent, "timetable"), Icon: "icon-clock"},
			{Name: "Schemes", URL: pageURL(models.RoleStudent, "schemes"), Icon: "icon-sparkles"},
		},
		BottomNavItems: []models.NavItem{
			{Name: "Settings", URL: pageURL(models.RoleStudent, "settings"), Icon: "icon-cog"},
		},
		Sidebar:        models.SidebarStudent,
		DefaultProfile: models.Profile{Name: "Student", Details: "Course", Institution: "Institution"},
	},
	models.RoleTeacher: {
		Role: models.RoleTeacher,
		NavItems: []models.NavItem{
			{Name: "Dashboard", URL: HomeURL(models.RoleTeacher), Icon: "icon-home"},
			{Name: "Attendance", URL: pageURL(models.RoleTeacher, "attendance"), Icon: "icon-check-badge"},
			{Name: "Timetable", URL: pageURL(models.RoleTeacher, "timetable"), Icon: "icon-clock"},
			{Name: "Student list", URL: pageURL(models.RoleTeacher, "students"), Icon: "icon-user-group"},
			{Name: "My Qualifications", URL: pageURL(models.RoleTeacher, "qualifications"), Icon: "icon-document-text"},
		},
		BottomNavItems: []models.NavItem{
			{Name: "Settings", URL: pageURL(models.RoleTeacher, "settings"), Icon: "icon-cog"},
		},
		Sidebar:        models.SidebarTeacher,
		DefaultProfile: models.Profile{Name: "Teacher", Details: "Subject", Institution: "Institution"},
	},
	models.RoleInstitution: {
		Role: models.RoleInstitution,
		NavItems: []models.NavItem{
			{Name: "Dashboard", URL: HomeURL(models.RoleInstitution), Icon: "icon-home"},
			{Name: "Manage Faculty", URL: pageURL(models.RoleInstitution, "faculty"), Icon: "icon-academic-cap"},
			{Name: "Upload Data", URL: pageURL(models.RoleInstitution, "upload"), Icon: "icon-arrow-up-tray"},
		},
		BottomNavItems: []models.NavItem{
			{Name: "Settings", URL: pageURL(models.RoleInstitution, "settings"), Icon: "icon-cog"},
		},
		Sidebar:        models.SidebarGeneric,
		DefaultProfile: models.Profile{Name: "Inst. Admin", Details: "Administrator", Institution: "Institution"},
	},
	models.RoleAdmin: {
		Role: models.RoleAdmin,
		NavItems: []models.NavItem{
			{Name: "Overview", URL: HomeURL(models.RoleAdmin), Icon: "icon-home"},
			{Name: "Manage Institutions", URL: pageURL(models.RoleAdmin, "institutions"), Icon: "icon-building-office"},
			{Name: "Users", URL: pageURL(models.RoleAdmin, "users"), Icon: "icon-user-group"},
		},
		BottomNavItems: []models.NavItem{
			{Name: "System Settings", URL: pageURL(models.RoleAdmin, "settings"), Icon: "icon-cog"},
		},
		Sidebar:        models.SidebarGeneric,
		DefaultProfile: models.Profile{Name: "Admin", Details: "System Admin", Institution: "Nationwide"},
	},
}

var fallback = models.RoleConfig{
	Sidebar:        models.SidebarNone,
	DefaultProfile: models.Profile{Name: "User", Details: "...", Institution: "..."},
}

// Lookup returns the configuration for role, or the fallback (no navigation,
// no sidebar) for an unknown or empty role. The result is a copy; callers
// may modify it freely.
func Lookup(role models.Role) models.RoleConfig {
	cfg, ok := registry[role]
	if !ok {
		cfg = fallback
		cfg.Role = role
	}
	return clone(cfg)
}

// Known reports whether role has a registry entry.
func Known(role models.Role) bool {
	_, ok := registry[role]
	return ok
}

func clone(cfg models.RoleConfig) models.RoleConfig {
	cfg.NavItems = append([]models.NavItem(nil), cfg.NavItems...)
	cfg.BottomNavItems = append([]models.NavItem(nil), cfg.BottomNavItems...)
	return cfg
}
