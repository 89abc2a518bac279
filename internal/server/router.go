package server

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/go-edudash/internal/app/middleware"
	"github.com/FACorreiaa/go-edudash/internal/pkg/config"
	"github.com/FACorreiaa/go-edudash/internal/routes"
)

// SetupRouter configures the Gin engine with middleware and every route. The
// returned handlers own state that needs closing on shutdown.
func SetupRouter(cfg *config.Config, logger *zap.Logger) (*gin.Engine, *routes.AppHandlers) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		SkipPaths:  []string{"/healthz"},
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.OTELGinMiddleware(cfg.Observability.ServiceName))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())
	r.Use(middleware.ClientIDMiddleware(cfg.Session.CookieSecure))
	r.Use(middleware.MetricsMiddleware())

	handlers := routes.Setup(r, cfg, logger)
	return r, handlers
}

// zapContextFunc adds the browser client, htmx and trace ids to each access
// log line. Request bodies are never logged since they carry passwords.
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		var fields []zapcore.Field

		if requestID := c.Writer.Header().Get("X-Request-Id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		if id := middleware.ClientID(c); id != "" {
			fields = append(fields, zap.String("client_id", id))
		}
		if middleware.IsHTMX(c) {
			fields = append(fields, zap.Bool("htmx", true))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}
		return fields
	}
}
