package renderer

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/FACorreiaa/go-edudash/internal/app/observability/metrics"
)

var Default = &HTMLTemplRenderer{}

// HTMLTemplRenderer lets c.HTML take a templ.Component; anything else goes
// to the fallback renderer.
type HTMLTemplRenderer struct {
	FallbackHTMLRenderer render.HTMLRender
}

func (r *HTMLTemplRenderer) Instance(s string, d any) render.Render {
	templData, ok := d.(templ.Component)
	if !ok {
		if r.FallbackHTMLRenderer != nil {
			return r.FallbackHTMLRenderer.Instance(s, d)
		}
	}
	return &Renderer{
		Ctx:       context.Background(),
		Status:    -1,
		Component: templData,
	}
}

// New returns a renderer that writes status itself; pass -1 when the status
// has already been set on the response.
func New(ctx context.Context, status int, component templ.Component) *Renderer {
	return &Renderer{
		Ctx:       ctx,
		Status:    status,
		Component: component,
	}
}

type Renderer struct {
	Ctx       context.Context
	Status    int
	Component templ.Component
}

func (t Renderer) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	if t.Status != -1 {
		w.WriteHeader(t.Status)
	}
	if t.Component == nil {
		return nil
	}
	start := time.Now()
	err := t.Component.Render(t.Ctx, w)
	metrics.Observe(t.Ctx, metrics.Get().TemplateRenderDuration, time.Since(start).Seconds())
	return err
}

func (t Renderer) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

// Render writes component with status using the request's context, so
// components see the request's trace and cancellation.
func Render(c *gin.Context, status int, component templ.Component) {
	c.Render(status, New(c.Request.Context(), -1, component))
}
