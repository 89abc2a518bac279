// Package portfolio is the student's editable portfolio: projects, skills
// and links kept by the backend.
package portfolio

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

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

// Pages registers under the student dashboard.
func (h *Handler) Pages() []dashboard.Page {
	return []dashboard.Page{{Slug: "portfolio", Title: "My Portfolio", Load: h.load}}
}

// Routes mounts the portfolio mutations on g, gated to students.
func (h *Handler) Routes(g *gin.RouterGroup) {
	p := g.Group("/portfolio")
	p.POST("/projects", h.AddProject)
	p.POST("/skills", h.AddSkill)
	p.POST("/links", h.AddLink)
	for _, k := range []Kind{Projects, Skills, Links} {
		p.DELETE("/"+string(k)+"/:id", h.Delete(k))
	}
}

func (h *Handler) load(c *gin.Context, api *apiclient.Client, _ layout.View) templ.Component {
	p, err := api.Portfolio(c.Request.Context())
	if err != nil {
		h.logger.Warn("Failed to load portfolio", zap.Error(err))
		return dashboard.ErrorMessage(apiclient.Describe(err, "Failed to load your portfolio."))
	}
	return Page(p)
}

func (h *Handler) AddProject(c *gin.Context) {
	var in models.ProjectInput
	bindErr := c.ShouldBind(&in)
	values := map[string]string{"title": in.Title, "description": in.Description, "project_link": in.ProjectLink, "tags": in.Tags}
	if bindErr != nil {
		h.respond(c, Projects, http.StatusUnprocessableEntity, formState{Values: values, Errors: form.FieldErrors(&in, bindErr),
			Banner: errorBanner(Projects, "Please correct the highlighted fields")})
		return
	}
	_, err := h.api(c).AddProject(c.Request.Context(), in)
	h.added(c, Projects, values, err)
}

func (h *Handler) AddSkill(c *gin.Context) {
	var in models.SkillInput
	bindErr := c.ShouldBind(&in)
	values := map[string]string{"skill_name": in.SkillName, "category": in.Category}
	if bindErr != nil {
		h.respond(c, Skills, http.StatusUnprocessableEntity, formState{Values: values, Errors: form.FieldErrors(&in, bindErr),
			Banner: errorBanner(Skills, "Please correct the highlighted fields")})
		return
	}
	_, err := h.api(c).AddSkill(c.Request.Context(), in)
	h.added(c, Skills, values, err)
}

func (h *Handler) AddLink(c *gin.Context) {
	var in models.LinkInput
	bindErr := c.ShouldBind(&in)
	values := map[string]string{"title": in.Title, "url": in.URL}
	if bindErr != nil {
		h.respond(c, Links, http.StatusUnprocessableEntity, formState{Values: values, Errors: form.FieldErrors(&in, bindErr),
			Banner: errorBanner(Links, "Please correct the highlighted fields")})
		return
	}
	_, err := h.api(c).AddLink(c.Request.Context(), in)
	h.added(c, Links, values, err)
}

func (h *Handler) added(c *gin.Context, k Kind, values map[string]string, err error) {
	if err != nil {
		h.logger.Warn("Failed to add portfolio item", zap.String("kind", string(k)), zap.Error(err))
		h.respond(c, k, apiclient.StatusOf(err), formState{Values: values,
			Banner: errorBanner(k, apiclient.Describe(err, "Could not save. Please try again."))})
		return
	}
	h.logger.Info("Portfolio item added", zap.String("kind", string(k)))
	h.respond(c, k, http.StatusOK, formState{Banner: &banner.BannerProps{
		ID: string(k) + "-added", Type: banner.BannerSuccess, Message: "Saved.", AutoDismiss: 4,
	}})
}

// respond re-renders k's section from a fresh portfolio.
func (h *Handler) respond(c *gin.Context, k Kind, status int, st formState) {
	p, err := h.api(c).Portfolio(c.Request.Context())
	if err != nil {
		h.logger.Warn("Failed to refresh portfolio", zap.Error(err))
		if st.Banner == nil || st.Banner.Type != banner.BannerError {
			st.Banner = errorBanner(k, apiclient.Describe(err, "Failed to load your portfolio."))
		}
	}
	renderer.Render(c, status, render(k, p, st))
}

// Delete removes one item and answers an empty body so htmx drops its row.
func (h *Handler) Delete(k Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.String(http.StatusBadRequest, "invalid id")
			return
		}
		api := h.api(c)
		remove := map[Kind]func(context.Context, int) error{
			Projects: api.DeleteProject,
			Skills:   api.DeleteSkill,
			Links:    api.DeleteLink,
		}[k]
		if err := remove(c.Request.Context(), id); err != nil {
			h.logger.Warn("Failed to delete portfolio item", zap.String("kind", string(k)), zap.Int("id", id), zap.Error(err))
			c.Header("HX-Retarget", "#"+k.sectionID())
			h.respond(c, k, apiclient.StatusOf(err), formState{Banner: errorBanner(k, apiclient.Describe(err, "Could not remove the item."))})
			return
		}
		c.Status(http.StatusOK)
	}
}

func errorBanner(k Kind, message string) *banner.BannerProps {
	return &banner.BannerProps{ID: string(k) + "-error", Type: banner.BannerError, Message: message, Dismissable: true}
}
