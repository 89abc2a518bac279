package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/domain/admin"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/auth"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/dashboard"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/layout"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/portfolio"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/roles"
	"github.com/FACorreiaa/go-edudash/internal/app/middleware"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/app/renderer"
	"github.com/FACorreiaa/go-edudash/internal/pkg/apiclient"
	"github.com/FACorreiaa/go-edudash/internal/pkg/config"
	"github.com/FACorreiaa/go-edudash/internal/pkg/session"
)

type AppHandlers struct {
	Auth      *auth.AuthHandlers
	Dashboard *dashboard.Handler
	Admin     *admin.Handler
	Portfolio *portfolio.Handler
	Gate      *auth.Gate
	Stores    auth.StoreFunc
	Views     *layout.Manager
}

// Close releases the per-client dashboard views.
func (h *AppHandlers) Close() {
	h.Views.Close()
}

func Setup(r *gin.Engine, cfg *config.Config, log *zap.Logger) *AppHandlers {
	r.HTMLRender = &renderer.HTMLTemplRenderer{FallbackHTMLRenderer: r.HTMLRender}

	handlers := setupDependencies(cfg, log)
	setupRouter(r, handlers, cfg, log)
	return handlers
}

func setupDependencies(cfg *config.Config, log *zap.Logger) *AppHandlers {
	api := apiclient.New(cfg.API, log.Named("apiclient"))
	views := layout.NewManager(cfg.Layout.ViewTTL, log.Named("layout"))

	cookieOpts := session.CookieOptions{Secure: cfg.Session.CookieSecure, MaxAge: cfg.Session.CookieMaxAge}
	stores := func(c *gin.Context) session.Store {
		return session.NewCookieStore(c, cookieOpts)
	}

	decoder := auth.NewDecoder(cfg.Auth.JWTSecret)
	if !decoder.Verifies() {
		log.Warn("AUTH_JWT_SECRET not set, token signatures are not verified")
	}
	authService := auth.NewAuthService(api, cfg.Signup.DefaultInstitutionID, log)

	dash := dashboard.NewHandler(views, api, stores, log.Named("dashboard"))
	adminHandler := admin.NewHandler(dash.API, log.Named("admin"))
	portfolioHandler := portfolio.NewHandler(dash.API, log.Named("portfolio"))
	dash.Register(models.RoleAdmin, adminHandler.Pages()...)
	dash.Register(models.RoleStudent, portfolioHandler.Pages()...)

	return &AppHandlers{
		Auth:      auth.NewAuthHandlers(authService, stores, views, cfg.Auth.LoginPath, log),
		Dashboard: dash,
		Admin:     adminHandler,
		Portfolio: portfolioHandler,
		Gate:      auth.NewGate(decoder, log.Named("gate")),
		Stores:    stores,
		Views:     views,
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, cfg *config.Config, log *zap.Logger) {
	loginPath := cfg.Auth.LoginPath

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/", func(c *gin.Context) {
		middleware.Redirect(c, loginPath, http.StatusOK)
	})
	r.GET(loginPath, h.Auth.LoginPage)
	r.POST(loginPath, h.Auth.LoginHandler)
	r.GET("/signup", h.Auth.SignupPage)
	r.POST("/signup", h.Auth.SignupHandler)
	r.POST("/logout", h.Auth.LogoutHandler)

	for _, role := range models.Roles() {
		g := r.Group(roles.HomeURL(role), auth.RequireRole(h.Gate, h.Stores, role, loginPath))
		h.Dashboard.Routes(g, role)
		switch role {
		case models.RoleAdmin:
			h.Admin.Routes(g)
		case models.RoleStudent:
			h.Portfolio.Routes(g)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		log.Debug("Unknown route, redirecting to login", zap.String("path", c.Request.URL.Path))
		middleware.Redirect(c, loginPath, http.StatusNotFound)
	})
}
