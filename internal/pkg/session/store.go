// Package session persists the access token and role between requests or
// process runs. A Store never exposes half a session: readers see either
// both fields or neither.
package session

import (
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

// Keys under which the two fields are persisted.
const (
	TokenKey = "access_token"
	RoleKey  = "user_role"
)

// Store is the durable token store. Expiry is not its concern; the auth
// gate decides whether a stored token is still usable.
type Store interface {
	Save(token string, role models.Role) error
	Read() models.Session
	Clear() error
}

// TokenFunc adapts a Store to the HTTP client's token source.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Tokens returns a token source reading the store at call time.
func Tokens(s Store) TokenFunc {
	return func() string {
		return s.Read().Token
	}
}

// normalize enforces the both-or-neither invariant on raw values.
func normalize(token, role string) models.Session {
	if token == "" || role == "" {
		return models.Session{}
	}
	return models.Session{Token: token, Role: models.Role(role)}
}

func validate(token string, role models.Role) error {
	if token == "" || role == "" {
		return models.ErrSessionIncomplete
	}
	return nil
}
