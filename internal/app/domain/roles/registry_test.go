package roles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

func TestRegistryIsExhaustive(t *testing.T) {
	for _, role := range models.Roles() {
		t.Run(string(role), func(t *testing.T) {
			require.True(t, Known(role))
			cfg := Lookup(role)
			assert.Equal(t, role, cfg.Role)
			assert.NotEmpty(t, cfg.NavItems)
			assert.NotEmpty(t, cfg.BottomNavItems)
			assert.NotEqual(t, models.SidebarNone, cfg.Sidebar)
			assert.NotEmpty(t, cfg.DefaultProfile.Name)

			assert.Equal(t, HomeURL(role), cfg.NavItems[0].URL, "first entry is the role home")
			for _, item := range append(cfg.NavItems, cfg.BottomNavItems...) {
				assert.True(t, strings.HasPrefix(item.URL, HomeURL(role)), item.URL)
			}
		})
	}
	assert.Len(t, registry, len(models.Roles()))
}

func TestDefaultProfiles(t *testing.T) {
	cases := map[models.Role]models.Profile{
		models.RoleStudent:     {Name: "Student", Details: "Course", Institution: "Institution"},
		models.RoleTeacher:     {Name: "Teacher", Details: "Subject", Institution: "Institution"},
		models.RoleAdmin:       {Name: "Admin", Details: "System Admin", Institution: "Nationwide"},
		models.RoleInstitution: {Name: "Inst. Admin", Details: "Administrator", Institution: "Institution"},
	}
	for role, want := range cases {
		assert.Equal(t, want, Lookup(role).DefaultProfile, role)
	}
}

func TestSidebarVariants(t *testing.T) {
	assert.Equal(t, models.SidebarStudent, Lookup(models.RoleStudent).Sidebar)
	assert.Equal(t, models.SidebarTeacher, Lookup(models.RoleTeacher).Sidebar)
	assert.Equal(t, models.SidebarGeneric, Lookup(models.RoleAdmin).Sidebar)
	assert.Equal(t, models.SidebarGeneric, Lookup(models.RoleInstitution).Sidebar)
}

func TestLookup_UnknownRoleFallsBack(t *testing.T) {
	for _, role := range []models.Role{"", "parent"} {
		cfg := Lookup(role)
		assert.False(t, Known(role))
		assert.Empty(t, cfg.NavItems)
		assert.Empty(t, cfg.BottomNavItems)
		assert.Equal(t, models.SidebarNone, cfg.Sidebar)
		assert.Equal(t, "User", cfg.DefaultProfile.Name)
		assert.Equal(t, role, cfg.Role)
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	cfg := Lookup(models.RoleAdmin)
	cfg.NavItems[0].Name = "Hijacked"
	cfg.NavItems = append(cfg.NavItems, models.NavItem{Name: "Extra"})

	again := Lookup(models.RoleAdmin)
	assert.Equal(t, "Overview", again.NavItems[0].Name)
	assert.Len(t, again.NavItems, 2)
}
