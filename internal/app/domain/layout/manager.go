package layout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/observability/metrics"
)

// Manager keeps one Orchestrator per page load: a browser client may have
// several tabs open, and each visit owns its own mount. Entries expire after
// ttl without use; an expired, released or forgotten entry is unmounted, so
// its in-flight fetch can no longer land.
type Manager struct {
	mu     sync.Mutex
	views  *cache.Cache
	logger *zap.Logger
	opts   []Option
}

func NewManager(ttl time.Duration, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return newManager(ttl, ttl/2, logger, opts...)
}

// newManager sweeps expired views every cleanup; zero disables the sweep.
func newManager(ttl, cleanup time.Duration, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		views:  cache.New(ttl, cleanup),
		logger: logger,
		opts:   append([]Option{WithLogger(logger)}, opts...),
	}
	m.views.OnEvicted(func(key string, v interface{}) {
		if o, ok := v.(*Orchestrator); ok {
			o.Unmount()
		}
		metrics.Get().ActiveDashboardViewGauge.Add(context.Background(), -1)
		m.logger.Debug("Layout view evicted", zap.String("view", key))
	})
	return m
}

func viewKey(clientID, visit string) string {
	return clientID + "/" + visit
}

// For returns the orchestrator of one visit by the client, creating it on
// first use. Every call restarts its expiry.
func (m *Manager) For(clientID, visit string) *Orchestrator {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := viewKey(clientID, visit)
	if v, ok := m.views.Get(key); ok {
		o := v.(*Orchestrator)
		m.views.SetDefault(key, o)
		return o
	}

	// Get misses entries that expired but were not swept yet; dropping the
	// key fires the eviction hook for them.
	m.views.Delete(key)

	o := New(m.opts...)
	m.views.SetDefault(key, o)
	metrics.Get().ActiveDashboardViewGauge.Add(context.Background(), 1)
	m.logger.Debug("Layout view created", zap.String("view", key))
	return o
}

// Lookup returns the visit's orchestrator without creating one.
func (m *Manager) Lookup(clientID, visit string) (*Orchestrator, bool) {
	v, ok := m.views.Get(viewKey(clientID, visit))
	if !ok {
		return nil, false
	}
	return v.(*Orchestrator), true
}

// Release unmounts and drops one visit once its content has been delivered.
func (m *Manager) Release(clientID, visit string) {
	m.views.Delete(viewKey(clientID, visit))
}

// Forget unmounts and drops every visit of the client, e.g. on logout.
func (m *Manager) Forget(clientID string) {
	prefix := viewKey(clientID, "")
	for key := range m.views.Items() {
		if strings.HasPrefix(key, prefix) {
			m.views.Delete(key)
		}
	}
}

func (m *Manager) Len() int {
	return m.views.ItemCount()
}

// Close unmounts every view, e.g. on shutdown.
func (m *Manager) Close() {
	for key := range m.views.Items() {
		m.views.Delete(key)
	}
}
