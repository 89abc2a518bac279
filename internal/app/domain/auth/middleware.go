package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-edudash/internal/app/middleware"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/pkg/session"
)

const (
	storeKey    = "session_store"
	decisionKey = "gate_decision"
)

// StoreFunc opens the token store for one request.
type StoreFunc func(c *gin.Context) session.Store

// Store returns the request's token store, opening and caching it on first
// use so every reader in the request shares one instance.
func Store(c *gin.Context, open StoreFunc) session.Store {
	if v, ok := c.Get(storeKey); ok {
		if s, ok := v.(session.Store); ok {
			return s
		}
	}
	s := open(c)
	c.Set(storeKey, s)
	return s
}

// DecisionFrom returns the gate decision RequireRole made for this request.
func DecisionFrom(c *gin.Context) (Decision, bool) {
	v, ok := c.Get(decisionKey)
	if !ok {
		return Decision{}, false
	}
	d, ok := v.(Decision)
	return d, ok
}

// RequireRole gates a route group to role. Every denial sends the client to
// loginPath; only auth failures (malformed or expired tokens) wipe the
// session, which the gate has already done by the time we redirect.
func RequireRole(gate *Gate, open StoreFunc, role models.Role, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := Store(c, open)
		d := gate.Check(c.Request.Context(), store, role)
		if !d.Allowed() {
			handleAuthRedirect(c, loginPath, d)
			return
		}
		c.Set(decisionKey, d)
		c.Next()
	}
}

// handleAuthRedirect handles redirects for both regular and HTMX requests
func handleAuthRedirect(c *gin.Context, loginPath string, d Decision) {
	status := http.StatusUnauthorized
	if d.Outcome == RoleMismatch {
		status = http.StatusForbidden
	}
	middleware.Redirect(c, loginPath, status)
}
