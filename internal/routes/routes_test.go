package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/middleware"
	"github.com/FACorreiaa/go-edudash/internal/pkg/config"
	"github.com/FACorreiaa/go-edudash/internal/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// browser replays the cookies the app sets, like a real client would.
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func studentToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "7",
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	token := studentToken(t)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"msg":"Invalid credentials"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": token, "role": "student"})
		case "/student/dashboard":
			assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"profile":{"name":"Asha Rao","course":"B.Sc"},"kpis":{"gpa":8.1}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: backend.URL, Timeout: 2 * time.Second},
		Auth:    config.AuthConfig{LoginPath: "/login"},
		Session: config.SessionConfig{CookieMaxAge: time.Hour},
		Layout:  config.LayoutConfig{ViewTTL: time.Minute},
		Signup:  config.SignupConfig{DefaultInstitutionID: 1},
	}
	r := gin.New()
	r.Use(middleware.ClientIDMiddleware(false))
	h := Setup(r, cfg, zap.NewNop())
	t.Cleanup(h.Close)

	return &browser{t: t, router: r, cookies: map[string]*http.Cookie{}}
}

func TestRoot_RedirectsToLogin(t *testing.T) {
	b := newBrowser(t)

	w := b.get("/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = b.get("/no/such/page")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	req.Header.Set("HX-Request", "true")
	w = b.do(req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
}

func TestDashboard_RequiresSession(t *testing.T) {
	b := newBrowser(t)

	w := b.get("/dashboard/student")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/admin/content?page=&gen=1", nil)
	req.Header.Set("HX-Request", "true")
	w = b.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
}

func TestLoginThenDashboard(t *testing.T) {
	b := newBrowser(t)

	w := b.post("/login", url.Values{"email": {"asha@example.edu"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, b.cookies, session.TokenKey)

	w = b.post("/login", url.Values{"email": {"asha@example.edu"}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/student", w.Header().Get("Location"))
	require.Contains(t, b.cookies, session.TokenKey)

	w = b.get("/dashboard/student")
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	src, ok := doc.Find("#dashboard-loading").Attr("hx-get")
	require.True(t, ok)

	w = b.get(src)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello, Asha Rao!")

	// A student reaching for the admin dashboard is sent away but stays
	// signed in.
	w = b.get("/dashboard/admin")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Contains(t, b.cookies, session.TokenKey)

	w = b.post("/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.NotContains(t, b.cookies, session.TokenKey)
	assert.Equal(t, http.StatusFound, b.get("/dashboard/student").Code)
}
