package layout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

func TestManager_OneOrchestratorPerVisit(t *testing.T) {
	m := NewManager(time.Minute, nil)

	a := m.For("client-a", "tab-1")
	assert.Same(t, a, m.For("client-a", "tab-1"))
	assert.NotSame(t, a, m.For("client-a", "tab-2"))
	assert.NotSame(t, a, m.For("client-b", "tab-1"))
	assert.Equal(t, 3, m.Len())

	got, ok := m.Lookup("client-a", "tab-1")
	require.True(t, ok)
	assert.Same(t, a, got)
	_, ok = m.Lookup("client-c", "tab-1")
	assert.False(t, ok)
}

func TestManager_TabsDoNotSupersedeEachOther(t *testing.T) {
	m := NewManager(time.Minute, nil)
	src := newFakeSource()

	first := m.For("client-a", "tab-1").Mount(context.Background(), models.RoleAdmin, src)
	c1 := src.next(t)
	second := m.For("client-a", "tab-2").Mount(context.Background(), models.RoleAdmin, src)
	c2 := src.next(t)

	c2.reply <- result{payload: models.DashboardPayload{}}
	c1.reply <- result{payload: models.DashboardPayload{}}

	o1, _ := m.Lookup("client-a", "tab-1")
	v1, err := o1.Await(context.Background(), first.Generation)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, v1.Status)

	o2, _ := m.Lookup("client-a", "tab-2")
	v2, err := o2.Await(context.Background(), second.Generation)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, v2.Status)
}

func TestManager_ForgetUnmountsEveryVisit(t *testing.T) {
	m := NewManager(time.Minute, nil)
	src := newFakeSource()

	o := m.For("client-a", "tab-1")
	view := o.Mount(context.Background(), models.RoleStudent, src)
	c := src.next(t)
	m.For("client-a", "tab-2")
	m.For("client-b", "tab-1")

	m.Forget("client-a")
	assert.Equal(t, 1, m.Len())

	_, err := o.Await(context.Background(), view.Generation)
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Error(t, c.ctx.Err(), "in-flight fetch is cancelled")
	c.reply <- result{}

	assert.NotSame(t, o, m.For("client-a", "tab-1"), "a forgotten client starts over")
}

func TestManager_Release(t *testing.T) {
	m := NewManager(time.Minute, nil)
	m.For("client-a", "tab-1")
	keep := m.For("client-a", "tab-2")

	m.Release("client-a", "tab-1")

	_, ok := m.Lookup("client-a", "tab-1")
	assert.False(t, ok)
	got, ok := m.Lookup("client-a", "tab-2")
	require.True(t, ok)
	assert.Same(t, keep, got)
}

func TestManager_ExpiredUnsweptViewIsUnmountedWhenReplaced(t *testing.T) {
	m := newManager(20*time.Millisecond, 0, zap.NewNop())
	src := newFakeSource()

	old := m.For("client-a", "tab-1")
	view := old.Mount(context.Background(), models.RoleTeacher, src)
	c := src.next(t)

	time.Sleep(40 * time.Millisecond)
	fresh := m.For("client-a", "tab-1")

	assert.NotSame(t, old, fresh)
	_, err := old.Await(context.Background(), view.Generation)
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Error(t, c.ctx.Err(), "in-flight fetch is cancelled")
	c.reply <- result{}
	assert.Equal(t, 1, m.Len())
}

func TestManager_ExpiredViewsAreUnmounted(t *testing.T) {
	m := NewManager(40*time.Millisecond, nil)
	src := newFakeSource()

	o := m.For("client-a", "tab-1")
	view := o.Mount(context.Background(), models.RoleTeacher, src)
	c := src.next(t)

	require.Eventually(t, func() bool {
		_, err := o.Await(context.Background(), view.Generation)
		return err == ErrSuperseded
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, m.Len())
	c.reply <- result{}
}

func TestManager_CloseUnmountsAll(t *testing.T) {
	m := NewManager(time.Minute, nil)
	src := newFakeSource()

	a := m.For("client-a", "tab-1")
	view := a.Mount(context.Background(), models.RoleAdmin, src)
	c := src.next(t)
	m.For("client-b", "tab-1")

	m.Close()

	assert.Equal(t, 0, m.Len())
	_, err := a.Await(context.Background(), view.Generation)
	assert.ErrorIs(t, err, ErrSuperseded)
	c.reply <- result{}
}
