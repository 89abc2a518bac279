package portfolio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/domain/layout"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/pkg/apiclient"
	"github.com/FACorreiaa/go-edudash/internal/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend keeps a portfolio in memory and serves the student endpoints.
type fakeBackend struct {
	mu     sync.Mutex
	p      models.Portfolio
	nextID int
	fail   map[string]int
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if status, ok := b.fail[r.Method+" "+r.URL.Path]; ok {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"msg":"Backend refused"}`))
		return
	}
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/student/portfolio":
		_ = json.NewEncoder(w).Encode(b.p)
	case r.Method == http.MethodPost && r.URL.Path == "/student/portfolio/project":
		var in models.ProjectInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.nextID++
		p := models.Project{ID: b.nextID, Title: in.Title, Description: in.Description, ProjectLink: in.ProjectLink, Tags: in.Tags}
		b.p.Projects = append(b.p.Projects, p)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodPost && r.URL.Path == "/student/portfolio/skill":
		var in models.SkillInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.nextID++
		s := models.Skill{ID: b.nextID, SkillName: in.SkillName, Category: in.Category}
		b.p.Skills = append(b.p.Skills, s)
		_ = json.NewEncoder(w).Encode(s)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/student/portfolio/link/"):
		_, _ = w.Write([]byte(`{"msg":"Link deleted"}`))
	default:
		http.NotFound(w, r)
	}
}

func newRouter(t *testing.T, b *fakeBackend) (*gin.Engine, *Handler, *apiclient.Client) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	api := apiclient.New(config.APIConfig{BaseURL: srv.URL}, zap.NewNop())
	h := NewHandler(func(*gin.Context) *apiclient.Client { return api }, zap.NewNop())
	r := gin.New()
	h.Routes(r.Group("/dashboard/student"))
	return r, h, api
}

func post(r *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestPage_RendersAllSections(t *testing.T) {
	b := &fakeBackend{p: models.Portfolio{
		Projects: []models.Project{{ID: 1, Title: "Crop yield model", Tags: "ml"}},
		Skills:   []models.Skill{{ID: 2, SkillName: "Go", Category: "Languages"}},
	}}
	_, h, api := newRouter(t, b)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/student/content?page=portfolio&gen=1", nil)
	pages := h.Pages()
	require.Len(t, pages, 1)

	var sb strings.Builder
	require.NoError(t, pages[0].Load(c, api, layout.View{Role: models.RoleStudent}).Render(context.Background(), &sb))
	doc := parse(t, sb.String())

	assert.Equal(t, 1, doc.Find("#portfolio-projects #projects-1").Length())
	assert.Equal(t, 1, doc.Find("#portfolio-skills #skills-2").Length())
	assert.Contains(t, doc.Find("#portfolio-links").Text(), "No links yet.")
	assert.Equal(t, "/dashboard/student/portfolio/skills/2", doc.Find("#skills-2 [hx-delete]").AttrOr("hx-delete", ""))
	assert.Equal(t, "#portfolio-links", doc.Find("#links-form").AttrOr("hx-target", ""))
}

func TestAddProject(t *testing.T) {
	b := &fakeBackend{}
	r, _, _ := newRouter(t, b)

	w := post(r, "/dashboard/student/portfolio/projects", url.Values{
		"title": {"Rainfall dashboard"}, "project_link": {"https://example.org/rain"}, "tags": {"go"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	doc := parse(t, w.Body.String())
	assert.Equal(t, 1, doc.Find("section#portfolio-projects").Length())
	assert.Equal(t, 1, doc.Find("#projects-1").Length())
	assert.Equal(t, 1, doc.Find("#projects-added").Length())
	assert.Empty(t, doc.Find(`#projects-form input[name="title"]`).AttrOr("value", ""))
}

func TestAddProject_InvalidKeepsValues(t *testing.T) {
	b := &fakeBackend{}
	r, _, _ := newRouter(t, b)

	w := post(r, "/dashboard/student/portfolio/projects", url.Values{"project_link": {"not a url"}, "tags": {"x"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	doc := parse(t, w.Body.String())
	assert.Equal(t, 1, doc.Find(`.field-error[data-field="title"]`).Length())
	assert.Equal(t, 1, doc.Find(`.field-error[data-field="project_link"]`).Length())
	assert.Equal(t, "not a url", doc.Find(`input[name="project_link"]`).AttrOr("value", ""))
	assert.Empty(t, b.p.Projects)
}

func TestAddSkill_BackendError(t *testing.T) {
	b := &fakeBackend{fail: map[string]int{"POST /student/portfolio/skill": http.StatusBadRequest}}
	r, _, _ := newRouter(t, b)

	w := post(r, "/dashboard/student/portfolio/skills", url.Values{"skill_name": {"Rust"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	doc := parse(t, w.Body.String())
	assert.Contains(t, doc.Find("#skills-error").Text(), "Backend refused")
	assert.Equal(t, "Rust", doc.Find(`input[name="skill_name"]`).AttrOr("value", ""))
}

func TestDelete(t *testing.T) {
	b := &fakeBackend{fail: map[string]int{"DELETE /student/portfolio/project/5": http.StatusNotFound}}
	r, _, _ := newRouter(t, b)

	do := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, target, nil))
		return w
	}

	w := do("/dashboard/student/portfolio/links/3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = do("/dashboard/student/portfolio/projects/5")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "#portfolio-projects", w.Header().Get("HX-Retarget"))
	assert.Contains(t, w.Body.String(), "Backend refused")

	w = do("/dashboard/student/portfolio/skills/nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
