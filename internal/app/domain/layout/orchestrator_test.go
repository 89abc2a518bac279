package layout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

type result struct {
	payload models.DashboardPayload
	err     error
}

type call struct {
	ctx   context.Context
	path  string
	reply chan result
}

// fakeSource hands every fetch to the test, which answers it when it likes.
// It ignores cancellation, like a slow backend that answers anyway.
type fakeSource struct {
	calls chan call
}

func newFakeSource() *fakeSource {
	return &fakeSource{calls: make(chan call, 8)}
}

func (f *fakeSource) Dashboard(ctx context.Context, path string) (models.DashboardPayload, error) {
	c := call{ctx: ctx, path: path, reply: make(chan result, 1)}
	f.calls <- c
	r := <-c.reply
	return r.payload, r.err
}

func (f *fakeSource) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a dashboard fetch")
		return call{}
	}
}

func (f *fakeSource) assertNoCall(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected fetch of %s", c.path)
	case <-time.After(50 * time.Millisecond):
	}
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func await(t *testing.T, o *Orchestrator, gen uint64) View {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	view, err := o.Await(ctx, gen)
	require.NoError(t, err)
	return view
}

func waitDiscarded(t *testing.T, logs *observer.ObservedLogs, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return logs.FilterMessage("Discarding stale dashboard result").Len() == n
	}, 2*time.Second, 5*time.Millisecond)
}

func TestMount_AdminPayloadAndDefaultProfile(t *testing.T) {
	src := newFakeSource()
	o := New()

	view := o.Mount(context.Background(), models.RoleAdmin, src)
	assert.Equal(t, StatusLoading, view.Status)
	assert.Equal(t, "Admin", view.Profile.Name)
	assert.Equal(t, "Loading...", view.UserName)
	assert.Equal(t, models.SidebarGeneric, view.Config.Sidebar)

	c := src.next(t)
	assert.Equal(t, "/admin/overview", c.path)
	c.reply <- result{payload: models.DashboardPayload{"kpis": map[string]any{"total_institutions": float64(12)}}}

	ready := await(t, o, view.Generation)
	assert.Equal(t, StatusReady, ready.Status)
	v, ok := ready.Payload.KPI("total_institutions")
	require.True(t, ok)
	assert.Equal(t, "12", v)
	assert.Equal(t, "Admin", ready.Profile.Name, "no profile in payload keeps the default")
	assert.Equal(t, "Admin", ready.UserName)
	src.assertNoCall(t)
}

func TestMount_ProfileMergedFromPayload(t *testing.T) {
	src := newFakeSource()
	o := New()

	view := o.Mount(context.Background(), models.RoleStudent, src)
	c := src.next(t)
	assert.Equal(t, "/student/dashboard", c.path)
	c.reply <- result{payload: models.DashboardPayload{"profile": map[string]any{
		"name": "Asha", "course": "B.Tech CSE", "institution": "",
	}}}

	ready := await(t, o, view.Generation)
	assert.Equal(t, models.Profile{Name: "Asha", Details: "B.Tech CSE", Institution: "Institution"}, ready.Profile)
	assert.Equal(t, "Asha", ready.UserName)
}

func TestMount_FailureKeepsChromeAndDefaultProfile(t *testing.T) {
	src := newFakeSource()
	o := New()

	view := o.Mount(context.Background(), models.RoleTeacher, src)
	src.next(t).reply <- result{err: errors.New("connection refused")}

	failed := await(t, o, view.Generation)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "Teacher", failed.Profile.Name)
	assert.Equal(t, "Error", failed.UserName)
	assert.NotEmpty(t, failed.Config.NavItems, "navigation still renders")
	assert.Contains(t, failed.Message(), "teacher")
	assert.Nil(t, failed.Payload)
	src.assertNoCall(t)
}

func TestMount_EmptyRoleFailsWithoutFetch(t *testing.T) {
	src := newFakeSource()
	o := New()

	view := o.Mount(context.Background(), "", src)
	assert.Equal(t, StatusFailed, view.Status)
	assert.ErrorIs(t, view.Err, models.ErrNoRole)
	assert.Equal(t, "No role provided to layout.", view.Message())
	assert.Equal(t, "User", view.Profile.Name)

	settled := await(t, o, view.Generation)
	assert.Equal(t, StatusFailed, settled.Status)
	src.assertNoCall(t)
}

func TestMount_StaleResultAfterRoleSwitchIsDiscarded(t *testing.T) {
	logger, logs := observed()
	src := newFakeSource()
	o := New(WithLogger(logger))

	first := o.Mount(context.Background(), models.RoleStudent, src)
	slow := src.next(t)

	second := o.Mount(context.Background(), models.RoleTeacher, src)
	fast := src.next(t)
	assert.Equal(t, "/teacher/dashboard", fast.path)

	select {
	case <-slow.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("superseded fetch should be cancelled")
	}

	fast.reply <- result{payload: models.DashboardPayload{"profile": map[string]any{"name": "Zeba", "subject": "Physics"}}}
	ready := await(t, o, second.Generation)
	assert.Equal(t, "Zeba", ready.Profile.Name)

	slow.reply <- result{payload: models.DashboardPayload{"profile": map[string]any{"name": "Asha"}}}
	waitDiscarded(t, logs, 1)

	current := o.Current()
	assert.Equal(t, models.RoleTeacher, current.Role)
	assert.Equal(t, "Zeba", current.Profile.Name)

	_, err := o.Await(context.Background(), first.Generation)
	assert.ErrorIs(t, err, ErrSuperseded)
}

func TestMount_StaleResultArrivingFirstIsDiscarded(t *testing.T) {
	logger, logs := observed()
	src := newFakeSource()
	o := New(WithLogger(logger))

	o.Mount(context.Background(), models.RoleAdmin, src)
	slow := src.next(t)
	second := o.Mount(context.Background(), models.RoleInstitution, src)
	fast := src.next(t)
	assert.Equal(t, "/institution/overview", fast.path)

	slow.reply <- result{payload: models.DashboardPayload{"kpis": map[string]any{"total_institutions": float64(12)}}}
	waitDiscarded(t, logs, 1)
	assert.Equal(t, StatusLoading, o.Current().Status)
	assert.Equal(t, models.RoleInstitution, o.Current().Role)

	fast.reply <- result{payload: models.DashboardPayload{"kpis": map[string]any{"nirf_rank": float64(42)}}}
	ready := await(t, o, second.Generation)
	_, hasAdminKPI := ready.Payload.KPI("total_institutions")
	assert.False(t, hasAdminKPI)
	rank, _ := ready.Payload.KPI("nirf_rank")
	assert.Equal(t, "42", rank)
}

func TestMount_SameRoleTwiceFetchesTwice(t *testing.T) {
	src := newFakeSource()
	o := New()

	first := o.Mount(context.Background(), models.RoleStudent, src)
	one := src.next(t)
	second := o.Mount(context.Background(), models.RoleStudent, src)
	two := src.next(t)

	assert.Equal(t, one.path, two.path)
	assert.NotEqual(t, first.Generation, second.Generation)

	two.reply <- result{payload: models.DashboardPayload{"kpis": map[string]any{"gpa": 8.4}}}
	one.reply <- result{payload: models.DashboardPayload{"kpis": map[string]any{"gpa": 7.1}}}

	ready := await(t, o, second.Generation)
	gpa, _ := ready.Payload.KPI("gpa")
	assert.Equal(t, "8.4", gpa)

	third := o.Mount(context.Background(), models.RoleStudent, src)
	src.next(t).reply <- result{payload: models.DashboardPayload{"kpis": map[string]any{"gpa": 9.0}}}
	ready = await(t, o, third.Generation)
	gpa, _ = ready.Payload.KPI("gpa")
	assert.Equal(t, "9", gpa, "no cached payload is reused")
}

func TestUnmount_DropsInFlightFetch(t *testing.T) {
	logger, logs := observed()
	src := newFakeSource()
	o := New(WithLogger(logger))

	view := o.Mount(context.Background(), models.RoleStudent, src)
	c := src.next(t)

	o.Unmount()
	_, err := o.Await(context.Background(), view.Generation)
	assert.ErrorIs(t, err, ErrSuperseded)

	c.reply <- result{payload: models.DashboardPayload{"kpis": map[string]any{"gpa": 8.0}}}
	waitDiscarded(t, logs, 1)
	assert.Equal(t, StatusIdle, o.Current().Status)
	assert.Nil(t, o.Current().Payload)
}

func TestAwait_BlockedCallerWokenBySupersede(t *testing.T) {
	src := newFakeSource()
	o := New()

	first := o.Mount(context.Background(), models.RoleStudent, src)
	src.next(t)

	errc := make(chan error, 1)
	go func() {
		_, err := o.Await(context.Background(), first.Generation)
		errc <- err
	}()

	o.Mount(context.Background(), models.RoleTeacher, src)
	src.next(t)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("Await should return once superseded")
	}
}

func TestAwait_RespectsCallerContext(t *testing.T) {
	src := newFakeSource()
	o := New()
	view := o.Mount(context.Background(), models.RoleStudent, src)
	src.next(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := o.Await(ctx, view.Generation)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMount_FetchOutlivesRequestContext(t *testing.T) {
	src := newFakeSource()
	o := New()

	reqCtx, cancel := context.WithCancel(context.Background())
	view := o.Mount(reqCtx, models.RoleStudent, src)
	c := src.next(t)
	cancel()

	assert.NoError(t, c.ctx.Err())
	c.reply <- result{payload: models.DashboardPayload{}}
	assert.Equal(t, StatusReady, await(t, o, view.Generation).Status)
}

func TestOnChange_SeesLoadingThenReady(t *testing.T) {
	src := newFakeSource()
	seen := make(chan Status, 4)
	o := New(OnChange(func(v View) { seen <- v.Status }))

	view := o.Mount(context.Background(), models.RoleStudent, src)
	src.next(t).reply <- result{payload: models.DashboardPayload{}}
	await(t, o, view.Generation)

	assert.Equal(t, StatusLoading, <-seen)
	select {
	case s := <-seen:
		assert.Equal(t, StatusReady, s)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a ready notification")
	}
}

func TestDashboardPath(t *testing.T) {
	cases := map[models.Role]string{
		models.RoleAdmin:       "/admin/overview",
		models.RoleInstitution: "/institution/overview",
		models.RoleStudent:     "/student/dashboard",
		models.RoleTeacher:     "/teacher/dashboard",
	}
	for role, want := range cases {
		assert.Equal(t, want, DashboardPath(role), role)
	}
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestInject(t *testing.T) {
	payload := models.DashboardPayload{"kpis": map[string]any{"gpa": 8.5}}
	page := PayloadPage(func(p models.DashboardPayload) templ.Component {
		v, _ := p.KPI("gpa")
		return markup.TextComponent("gpa " + v)
	})

	assert.Equal(t, "gpa 8.5", renderString(t, Inject(page, payload)))
	assert.Equal(t, "gpa ", renderString(t, Inject(page, nil)), "nil payload becomes empty")
	assert.Equal(t, "static", renderString(t, Inject(markup.TextComponent("static"), payload)))
	assert.Equal(t, "", renderString(t, Inject(nil, payload)))
	assert.Equal(t, "", renderString(t, Inject("not a page", payload)))
}
