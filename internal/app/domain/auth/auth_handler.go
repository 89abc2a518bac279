package auth

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/components/banner"
	"github.com/FACorreiaa/go-edudash/internal/app/components/chrome"
	"github.com/FACorreiaa/go-edudash/internal/app/components/form"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/layout"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/roles"
	"github.com/FACorreiaa/go-edudash/internal/app/middleware"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/app/renderer"
	"github.com/FACorreiaa/go-edudash/internal/pkg/apiclient"
)

type AuthHandlers struct {
	authService AuthService
	stores      StoreFunc
	views       *layout.Manager
	loginPath   string
	logger      *zap.Logger
}

func NewAuthHandlers(authService AuthService, stores StoreFunc, views *layout.Manager, loginPath string, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		stores:      stores,
		views:       views,
		loginPath:   loginPath,
		logger:      logger,
	}
}

func (h *AuthHandlers) LoginPage(c *gin.Context) {
	var state FormState
	if c.Query("signup") == "success" {
		state.Banner = &banner.BannerProps{
			ID:      "signup-success",
			Type:    banner.BannerSuccess,
			Message: "Account created successfully! Please log in.",
		}
	}
	h.renderForm(c, http.StatusOK, "Log in - EduSamagra", LoginForm(state))
}

func (h *AuthHandlers) LoginHandler(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBind(&in); err != nil {
		h.logger.Debug("Invalid login form", zap.Error(err))
		h.renderForm(c, http.StatusUnprocessableEntity, "Log in - EduSamagra", LoginForm(FormState{
			Values: map[string]string{"email": in.Email},
			Errors: form.FieldErrors(&in, err),
			Banner: errorBanner("login-invalid", "Email and password are required"),
		}))
		return
	}

	role, err := h.authService.Login(c.Request.Context(), Store(c, h.stores), in.Email, in.Password)
	if err != nil {
		h.logger.Warn("Login failed", zap.String("email", in.Email), zap.Error(err))
		h.renderForm(c, apiclient.StatusOf(err), "Log in - EduSamagra", LoginForm(FormState{
			Values: map[string]string{"email": in.Email},
			Banner: errorBanner("login-failed", apiclient.Describe(err, "Failed to log in. Please check your credentials.")),
		}))
		return
	}

	h.logger.Info("Successful login", zap.String("email", in.Email), zap.String("role", string(role)))
	middleware.Redirect(c, roles.HomeURL(role), http.StatusOK)
}

func (h *AuthHandlers) SignupPage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "Sign up - EduSamagra", SignupForm(FormState{}))
}

func (h *AuthHandlers) SignupHandler(c *gin.Context) {
	var in SignupInput
	values := func() map[string]string {
		return map[string]string{"fullName": in.FullName, "email": in.Email, "role": in.Role}
	}
	if err := c.ShouldBind(&in); err != nil {
		h.logger.Debug("Invalid signup form", zap.Error(err))
		h.renderForm(c, http.StatusUnprocessableEntity, "Sign up - EduSamagra", SignupForm(FormState{
			Values: values(),
			Errors: form.FieldErrors(&in, err),
			Banner: errorBanner("signup-invalid", "Please correct the highlighted fields"),
		}))
		return
	}

	if err := h.authService.Signup(c.Request.Context(), in); err != nil {
		h.renderForm(c, apiclient.StatusOf(err), "Sign up - EduSamagra", SignupForm(FormState{
			Values: values(),
			Banner: errorBanner("signup-failed", apiclient.Describe(err, "Failed to sign up. Please try again.")),
		}))
		return
	}

	middleware.Redirect(c, h.loginPath+"?signup=success", http.StatusOK)
}

func (h *AuthHandlers) LogoutHandler(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), Store(c, h.stores)); err != nil {
		h.logger.Error("Failed to clear session on logout", zap.Error(err))
	}
	if h.views != nil {
		if id := middleware.ClientID(c); id != "" {
			h.views.Forget(id)
		}
	}
	middleware.Redirect(c, h.loginPath, http.StatusOK)
}

// renderForm answers htmx with the form alone, which replaces itself, and
// plain requests with the whole page.
func (h *AuthHandlers) renderForm(c *gin.Context, status int, title string, f templ.Component) {
	if middleware.IsHTMX(c) {
		renderer.Render(c, status, f)
		return
	}
	renderer.Render(c, status, chrome.Public(title, models.PublicNav, f))
}

func errorBanner(id, message string) *banner.BannerProps {
	return &banner.BannerProps{
		ID:          id,
		Type:        banner.BannerError,
		Message:     message,
		Dismissable: true,
	}
}
