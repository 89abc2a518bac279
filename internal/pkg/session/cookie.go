package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

var _ Store = (*CookieStore)(nil)

type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// CookieStore keeps the session in two browser cookies. It is bound to one
// request: Save and Clear write Set-Cookie headers on the response and
// update an overlay so later reads in the same request agree with them.
type CookieStore struct {
	c       *gin.Context
	opts    CookieOptions
	written bool
	overlay models.Session
}

func NewCookieStore(c *gin.Context, opts CookieOptions) *CookieStore {
	return &CookieStore{c: c, opts: opts}
}

func (s *CookieStore) Save(token string, role models.Role) error {
	if err := validate(token, role); err != nil {
		return err
	}
	maxAge := int(s.opts.MaxAge.Seconds())
	s.set(TokenKey, token, maxAge)
	s.set(RoleKey, string(role), maxAge)
	s.written = true
	s.overlay = models.Session{Token: token, Role: role}
	return nil
}

func (s *CookieStore) Read() models.Session {
	if s.written {
		return s.overlay
	}
	token, _ := s.c.Cookie(TokenKey)
	role, _ := s.c.Cookie(RoleKey)
	return normalize(token, role)
}

func (s *CookieStore) Clear() error {
	s.set(TokenKey, "", -1)
	s.set(RoleKey, "", -1)
	s.written = true
	s.overlay = models.Session{}
	return nil
}

func (s *CookieStore) set(name, value string, maxAge int) {
	http.SetCookie(s.c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
