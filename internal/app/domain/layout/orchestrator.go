// Package layout couples the active role to the chrome and data a dashboard
// shows. An Orchestrator owns one client's protected view: it resolves the
// role's configuration, fetches the dashboard payload once per mount and
// drops results that belong to an earlier mount.
package layout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/domain/roles"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/app/observability/metrics"
)

// ErrSuperseded is returned by Await when a newer mount or an unmount has
// replaced the awaited generation.
var ErrSuperseded = errors.New("layout generation superseded")

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Navbar greetings while no profile is known.
const (
	loadingUserName = "Loading..."
	failedUserName  = "Error"
)

// View is a snapshot of what the chrome and content area should show.
type View struct {
	Generation uint64
	Role       models.Role
	Config     models.RoleConfig
	Status     Status
	Payload    models.DashboardPayload
	Profile    models.Profile
	UserName   string
	Err        error
}

// Message is the text for the content area when the view failed.
func (v View) Message() string {
	if v.Status != StatusFailed {
		return ""
	}
	if errors.Is(v.Err, models.ErrNoRole) {
		return "No role provided to layout."
	}
	return fmt.Sprintf("Failed to load %s dashboard data. Please check if your backend is running.", v.Role)
}

// Source fetches a dashboard payload from a backend path.
type Source interface {
	Dashboard(ctx context.Context, path string) (models.DashboardPayload, error)
}

type SourceFunc func(ctx context.Context, path string) (models.DashboardPayload, error)

func (f SourceFunc) Dashboard(ctx context.Context, path string) (models.DashboardPayload, error) {
	return f(ctx, path)
}

type visit struct {
	gen    uint64
	done   chan struct{}
	once   sync.Once
	cancel context.CancelFunc
}

func (v *visit) finish() {
	v.once.Do(func() { close(v.done) })
}

type Orchestrator struct {
	mu       sync.Mutex
	gen      uint64
	mounted  bool
	view     View
	visit    *visit
	logger   *zap.Logger
	onChange func(View)
}

type Option func(*Orchestrator)

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// OnChange registers fn to be called with every new view. It runs outside
// the orchestrator's lock, on the goroutine that produced the change.
func OnChange(fn func(View)) Option {
	return func(o *Orchestrator) { o.onChange = fn }
}

func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Mount activates the view for role and starts exactly one fetch from src.
// The returned view is Loading with the role's default profile, or Failed
// at once when role is empty. Any fetch still running for an earlier mount
// is cancelled and its result will be discarded.
func (o *Orchestrator) Mount(ctx context.Context, role models.Role, src Source) View {
	cfg := roles.Lookup(role)

	o.mu.Lock()
	o.supersedeLocked()
	o.gen++
	o.mounted = true
	v := &visit{gen: o.gen, done: make(chan struct{})}
	o.visit = v

	view := View{
		Generation: v.gen,
		Role:       role,
		Config:     cfg,
		Status:     StatusLoading,
		Profile:    cfg.DefaultProfile,
		UserName:   loadingUserName,
	}

	if role == "" {
		view.Status = StatusFailed
		view.Err = models.ErrNoRole
		view.UserName = failedUserName
		o.view = view
		v.finish()
		o.mu.Unlock()
		o.notify(view)
		return view
	}

	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	v.cancel = cancel
	o.view = view
	o.mu.Unlock()

	o.notify(view)
	go o.fetch(fetchCtx, v, role, cfg, src)
	return view
}

// Unmount leaves the protected view. A fetch still in flight can no longer
// change any state.
func (o *Orchestrator) Unmount() {
	o.mu.Lock()
	o.supersedeLocked()
	o.gen++
	o.mounted = false
	o.view = View{Generation: o.gen}
	o.mu.Unlock()
}

func (o *Orchestrator) supersedeLocked() {
	if o.visit == nil {
		return
	}
	if o.visit.cancel != nil {
		o.visit.cancel()
	}
	o.visit.finish()
	o.visit = nil
}

// Current returns the latest view.
func (o *Orchestrator) Current() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// Await blocks until generation gen has settled and returns its view, or
// ErrSuperseded if gen is no longer the mounted generation.
func (o *Orchestrator) Await(ctx context.Context, gen uint64) (View, error) {
	o.mu.Lock()
	v := o.visit
	o.mu.Unlock()
	if v == nil || v.gen != gen {
		return View{}, ErrSuperseded
	}

	select {
	case <-v.done:
	case <-ctx.Done():
		return View{}, ctx.Err()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.visit != v || !o.mounted {
		return View{}, ErrSuperseded
	}
	return o.view, nil
}

func (o *Orchestrator) fetch(ctx context.Context, v *visit, role models.Role, cfg models.RoleConfig, src Source) {
	path := DashboardPath(role)
	start := time.Now()
	payload, err := src.Dashboard(ctx, path)
	elapsed := time.Since(start)
	metrics.Observe(ctx, metrics.Get().DashboardFetchDuration, elapsed.Seconds(), "role", string(role))

	o.mu.Lock()
	if o.visit != v || !o.mounted {
		o.mu.Unlock()
		metrics.Count(ctx, metrics.Get().StaleResultsDiscarded, "role", string(role))
		o.logger.Debug("Discarding stale dashboard result",
			zap.String("role", string(role)),
			zap.Uint64("generation", v.gen),
			zap.Error(err))
		return
	}

	view := o.view
	if err != nil {
		view.Status = StatusFailed
		view.Err = err
		view.Profile = cfg.DefaultProfile
		view.UserName = failedUserName
	} else {
		if payload == nil {
			payload = models.DashboardPayload{}
		}
		view.Status = StatusReady
		view.Payload = payload
		view.Profile = models.MergeProfile(payload.ProfileFields(), cfg.DefaultProfile)
		view.UserName = view.Profile.Name
	}
	o.view = view
	v.finish()
	if v.cancel != nil {
		v.cancel()
	}
	o.mu.Unlock()

	if err != nil {
		metrics.Count(ctx, metrics.Get().DashboardFetchesTotal, "role", string(role), "result", "failed")
		o.logger.Warn("Dashboard fetch failed",
			zap.String("role", string(role)),
			zap.String("path", path),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		metrics.Count(ctx, metrics.Get().DashboardFetchesTotal, "role", string(role), "result", "ready")
		o.logger.Debug("Dashboard fetch settled",
			zap.String("role", string(role)),
			zap.String("path", path),
			zap.Duration("elapsed", elapsed))
	}
	o.notify(view)
}

func (o *Orchestrator) notify(view View) {
	if o.onChange != nil {
		o.onChange(view)
	}
}
