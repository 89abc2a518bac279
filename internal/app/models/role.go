package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role identifies which dashboard a session may enter.
type Role string

const (
	RoleStudent     Role = "student"
	RoleTeacher     Role = "teacher"
	RoleInstitution Role = "institution"
	RoleAdmin       Role = "admin"
)

// Roles returns every known role in display order.
func Roles() []Role {
	return []Role{RoleStudent, RoleTeacher, RoleInstitution, RoleAdmin}
}

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleInstitution, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// DisplayName returns the title-cased role, e.g. "Institution".
func (r Role) DisplayName() string {
	if r == "" {
		return "User"
	}
	return cases.Title(language.English).String(string(r))
}

// Session is the persisted login state. Token and Role are either both set or
// both empty.
type Session struct {
	Token string
	Role  Role
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Role != ""
}
