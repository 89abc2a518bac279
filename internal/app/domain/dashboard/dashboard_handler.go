// Package dashboard serves the role-gated dashboard pages. A page request
// renders the chrome at once and mounts the client's layout; the content
// fragment then waits for that mount's fetch and fills the page in.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/components/chrome"
	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/auth"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/layout"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/roles"
	"github.com/FACorreiaa/go-edudash/internal/app/middleware"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/app/renderer"
	"github.com/FACorreiaa/go-edudash/internal/pkg/apiclient"
	"github.com/FACorreiaa/go-edudash/internal/pkg/session"
)

// Page is one screen inside a role's dashboard.
type Page struct {
	// Slug is the path segment after /dashboard/{role}; empty for the
	// overview.
	Slug  string
	Title string
	// Body is a layout.PayloadPage or a static templ.Component.
	Body any
	// Load, when set, replaces Body and builds the content itself, usually
	// from another backend call made with the request's token.
	Load func(c *gin.Context, api *apiclient.Client, view layout.View) templ.Component
}

func (p Page) url(role models.Role) string {
	if p.Slug == "" {
		return roles.HomeURL(role)
	}
	return roles.HomeURL(role) + "/" + p.Slug
}

type Handler struct {
	views  *layout.Manager
	api    *apiclient.Client
	stores auth.StoreFunc
	pages  map[models.Role]map[string]Page
	logger *zap.Logger
}

func NewHandler(views *layout.Manager, api *apiclient.Client, stores auth.StoreFunc, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		views:  views,
		api:    api,
		stores: stores,
		pages:  make(map[models.Role]map[string]Page),
		logger: logger,
	}
	h.Register(models.RoleStudent, StudentPages()...)
	h.Register(models.RoleTeacher, TeacherPages()...)
	h.Register(models.RoleInstitution, InstitutionPages()...)
	return h
}

// Register adds pages to role's dashboard, replacing any with the same slug.
func (h *Handler) Register(role models.Role, pages ...Page) {
	if h.pages[role] == nil {
		h.pages[role] = make(map[string]Page)
	}
	for _, p := range pages {
		h.pages[role][p.Slug] = p
	}
}

// Routes mounts role's pages and its content endpoint on g, which must
// already be gated to role.
func (h *Handler) Routes(g *gin.RouterGroup, role models.Role) {
	for slug, page := range h.pages[role] {
		path := ""
		if slug != "" {
			path = "/" + slug
		}
		g.GET(path, h.Show(role, page))
	}
	g.GET("/content", h.Content(role))
	if role == models.RoleInstitution {
		g.POST("/upload", h.Upload)
	}
}

// API returns a client that sends the request's token.
func (h *Handler) API(c *gin.Context) *apiclient.Client {
	token := auth.Store(c, h.stores).Read().Token
	return h.api.WithTokens(session.TokenFunc(func() string { return token }))
}

// Show renders the chrome with the role's default profile and a loading
// placeholder, and mounts a layout for role that belongs to this page load
// alone.
func (h *Handler) Show(role models.Role, page Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, visit := middleware.ClientID(c), uuid.NewString()
		o := h.views.For(clientID, visit)
		view := o.Mount(c.Request.Context(), role, h.API(c))
		h.logger.Debug("Dashboard mounted",
			zap.String("role", string(role)),
			zap.String("page", page.Slug),
			zap.String("visit", visit),
			zap.Uint64("generation", view.Generation))

		var content templ.Component
		if view.Status == layout.StatusFailed {
			content = ErrorMessage(view.Message())
			h.views.Release(clientID, visit)
		} else {
			params := url.Values{}
			for _, p := range c.Params {
				params.Set(p.Key, p.Value)
			}
			content = Placeholder(role, page.Slug, visit, view.Generation, params)
		}

		renderer.Render(c, http.StatusOK, chrome.Shell(models.LayoutTempl{
			Title:     page.Title + " - EduSamagra",
			Role:      role,
			Config:    view.Config,
			Profile:   view.Profile,
			UserName:  view.UserName,
			ActiveNav: page.url(role),
			Content:   content,
		}))
	}
}

// Content answers the placeholder's request once the awaited generation has
// settled, then releases the visit. A visit that is gone (expired, logged
// out or already delivered) tells htmx to reload the page, which mounts a
// fresh one.
func (h *Handler) Content(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		gen, err := strconv.ParseUint(c.Query("gen"), 10, 64)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		page, ok := h.pages[role][c.Query("page")]
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		clientID, visit := middleware.ClientID(c), c.Query("visit")
		o, ok := h.views.Lookup(clientID, visit)
		if !ok {
			h.logger.Debug("Content requested for unknown visit", zap.String("role", string(role)), zap.String("visit", visit))
			reload(c)
			return
		}

		view, err := o.Await(c.Request.Context(), gen)
		switch {
		case errors.Is(err, layout.ErrSuperseded):
			h.logger.Debug("Content request superseded", zap.String("role", string(role)), zap.Uint64("generation", gen))
			reload(c)
			return
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.Status(http.StatusNoContent)
			return
		case err != nil:
			h.logger.Error("Awaiting dashboard failed", zap.Error(err))
			c.Status(http.StatusInternalServerError)
			return
		}
		if view.Role != role {
			reload(c)
			return
		}

		var body templ.Component
		switch {
		case view.Status == layout.StatusFailed:
			body = ErrorMessage(view.Message())
		case page.Load != nil:
			body = page.Load(c, h.API(c), view)
		default:
			body = layout.Inject(page.Body, view.Payload)
		}
		renderer.Render(c, http.StatusOK, Fragment(view, body))
		h.views.Release(clientID, visit)
	}
}

// reload answers without content and asks htmx to load the page again.
func reload(c *gin.Context) {
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusNoContent)
}

// Fragment is the content area plus out-of-band updates of the chrome parts
// that depend on the fetched profile.
func Fragment(view layout.View, body templ.Component) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Component(body)
		if view.Config.Sidebar.ShowsProfile() {
			m.Component(chrome.ProfileCard(view.Config.Sidebar, view.Profile, true))
		}
		m.Component(chrome.Greeting(view.UserName, true))
	})
}
