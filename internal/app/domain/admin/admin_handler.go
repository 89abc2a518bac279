// Package admin holds the admin dashboard: the nationwide overview and
// institution management.
package admin

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-edudash/internal/app/components/banner"
	"github.com/FACorreiaa/go-edudash/internal/app/components/form"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/dashboard"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/layout"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/app/renderer"
	"github.com/FACorreiaa/go-edudash/internal/pkg/apiclient"
)

// APIFunc returns a backend client authorised as the request's user.
type APIFunc func(c *gin.Context) *apiclient.Client

type Handler struct {
	api    APIFunc
	logger *zap.Logger
}

func NewHandler(api APIFunc, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{api: api, logger: logger}
}

// Pages are the admin dashboard screens, registered under /dashboard/admin.
func (h *Handler) Pages() []dashboard.Page {
	return []dashboard.Page{
		{Title: "Admin Dashboard", Load: h.loadOverview},
		{Slug: "institutions", Title: "Manage Institutions", Load: h.loadInstitutions},
		{Slug: "institutions/:id", Title: "Institution Details", Load: h.loadDetails},
		{Slug: "users", Title: "Users", Load: h.loadUsers},
		{Slug: "settings", Title: "Settings", Body: dashboard.SettingsPage},
	}
}

// Routes mounts the institution mutations on g, which must be gated to
// admins.
func (h *Handler) Routes(g *gin.RouterGroup) {
	g.POST("/institutions", h.AddInstitution)
	g.POST("/institutions/:id", h.UpdateInstitution)
	g.DELETE("/institutions/:id", h.DeleteInstitution)
}

func (h *Handler) loadOverview(c *gin.Context, api *apiclient.Client, view layout.View) templ.Component {
	var (
		users        []models.User
		institutions []models.Institution
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		users, err = api.AdminUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		institutions, err = api.AdminInstitutions(ctx)
		return err
	})

	var b *banner.BannerProps
	if err := g.Wait(); err != nil {
		h.logger.Warn("Failed to load admin lists", zap.Error(err))
		b = errorBanner("admin-lists-error", apiclient.Describe(err, "Failed to load users and institutions."))
		users, institutions = nil, nil
	}
	return Overview(view.Payload, users, institutions, b)
}

func (h *Handler) loadUsers(c *gin.Context, api *apiclient.Client, _ layout.View) templ.Component {
	users, err := api.AdminUsers(c.Request.Context())
	if err != nil {
		h.logger.Warn("Failed to load users", zap.Error(err))
		return dashboard.ErrorMessage(apiclient.Describe(err, "Failed to load users."))
	}
	return dashboard.Stack(
		dashboard.Heading("Users", "Every account registered on the platform."),
		UsersTable(users),
	)
}

func (h *Handler) loadInstitutions(c *gin.Context, api *apiclient.Client, _ layout.View) templ.Component {
	institutions, err := api.AdminInstitutions(c.Request.Context())
	if err != nil {
		h.logger.Warn("Failed to load institutions", zap.Error(err))
		return dashboard.ErrorMessage(apiclient.Describe(err, "Failed to load institutions."))
	}
	return ManageInstitutions(InstitutionsPanel(institutions, models.InstitutionInput{}, nil, nil))
}

func (h *Handler) loadDetails(c *gin.Context, api *apiclient.Client, _ layout.View) templ.Component {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		return dashboard.ErrorMessage("Invalid institution id.")
	}
	details, err := api.InstitutionDetails(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("Failed to load institution details", zap.Int("id", id), zap.Error(err))
		return dashboard.ErrorMessage(apiclient.Describe(err, "Failed to load institution details."))
	}
	return Details(details)
}

// panel re-renders the manage panel with a fresh institution list. A failed
// refresh leaves the list empty and the banner explains why.
func (h *Handler) panel(c *gin.Context, status int, in models.InstitutionInput, errs map[string]string, b *banner.BannerProps) {
	institutions, err := h.api(c).AdminInstitutions(c.Request.Context())
	if err != nil {
		h.logger.Warn("Failed to refresh institutions", zap.Error(err))
		if b == nil || b.Type != banner.BannerError {
			b = errorBanner("institutions-error", apiclient.Describe(err, "Failed to load institutions."))
		}
	}
	renderer.Render(c, status, InstitutionsPanel(institutions, in, errs, b))
}

func (h *Handler) AddInstitution(c *gin.Context) {
	var in models.InstitutionInput
	if err := c.ShouldBind(&in); err != nil {
		h.panel(c, http.StatusUnprocessableEntity, in, form.FieldErrors(&in, err),
			errorBanner("institution-invalid", "Please correct the highlighted fields"))
		return
	}

	created, err := h.api(c).AddInstitution(c.Request.Context(), in)
	if err != nil {
		h.logger.Warn("Failed to add institution", zap.String("name", in.Name), zap.Error(err))
		h.panel(c, apiclient.StatusOf(err), in, nil,
			errorBanner("institution-failed", apiclient.Describe(err, "Failed to add institution.")))
		return
	}

	msg := created.Message
	if msg == "" {
		msg = "Institution added successfully."
	}
	h.logger.Info("Institution added", zap.Int("id", created.Institution.ID), zap.String("name", in.Name))
	h.panel(c, http.StatusOK, models.InstitutionInput{}, nil, &banner.BannerProps{
		ID: "institution-added", Type: banner.BannerSuccess, Message: msg, Dismissable: true,
	})
}

func (h *Handler) UpdateInstitution(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.InstitutionInput
	if err := c.ShouldBind(&in); err != nil {
		renderer.Render(c, http.StatusUnprocessableEntity, InstitutionForm(id, in, form.FieldErrors(&in, err),
			errorBanner("institution-invalid", "Please correct the highlighted fields")))
		return
	}

	if err := h.api(c).UpdateInstitution(c.Request.Context(), id, in); err != nil {
		h.logger.Warn("Failed to update institution", zap.Int("id", id), zap.Error(err))
		renderer.Render(c, apiclient.StatusOf(err), InstitutionForm(id, in, nil,
			errorBanner("institution-failed", apiclient.Describe(err, "Failed to update institution."))))
		return
	}

	h.logger.Info("Institution updated", zap.Int("id", id))
	renderer.Render(c, http.StatusOK, InstitutionForm(id, in, nil, &banner.BannerProps{
		ID: "institution-updated", Type: banner.BannerSuccess, Message: "Institution updated.", Dismissable: true,
	}))
}

// DeleteInstitution answers an empty body so htmx drops the row. On failure
// the banner is retargeted above the list and the row stays.
func (h *Handler) DeleteInstitution(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.api(c).DeleteInstitution(c.Request.Context(), id); err != nil {
		h.logger.Warn("Failed to delete institution", zap.Int("id", id), zap.Error(err))
		c.Header("HX-Retarget", "#institutions-feedback")
		c.Header("HX-Reswap", "afterbegin")
		renderer.Render(c, apiclient.StatusOf(err), banner.Banner(*errorBanner("institution-delete-failed",
			apiclient.Describe(err, "Failed to delete institution."))))
		return
	}
	h.logger.Info("Institution deleted", zap.Int("id", id))
	c.Status(http.StatusOK)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid institution id")
		return 0, false
	}
	return id, true
}

func errorBanner(id, message string) *banner.BannerProps {
	return &banner.BannerProps{ID: id, Type: banner.BannerError, Message: message, Dismissable: true}
}
