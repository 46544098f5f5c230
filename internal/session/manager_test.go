package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/example/fpv-storefront/internal/domain/cart"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager() (*Manager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewManager(store.NewMemorySlotStore(), nil)
	m.now = clock.Now
	return m, clock
}

func TestManager_GetReturnsSameSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	a := m.Get(ctx, "sess-1")
	b := m.Get(ctx, "sess-1")

	assert.Same(t, a, b)
	assert.Equal(t, 1, m.Len())
}

func TestManager_ConcurrentGetSharesSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	var wg sync.WaitGroup
	got := make([]*Session, 20)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = m.Get(ctx, "sess-1")
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
}

func TestManager_SweepIdle(t *testing.T) {
	m, clock := newTestManager()
	ctx := context.Background()
	m.Get(ctx, "old")
	clock.Advance(20 * time.Minute)
	m.Get(ctx, "fresh")
	clock.Advance(15 * time.Minute)

	evicted := m.SweepIdle(30 * time.Minute)

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, m.Len())
}

func TestManager_TouchKeepsSessionAlive(t *testing.T) {
	m, clock := newTestManager()
	ctx := context.Background()
	m.Get(ctx, "sess-1")
	clock.Advance(25 * time.Minute)
	m.Get(ctx, "sess-1")
	clock.Advance(25 * time.Minute)

	assert.Zero(t, m.SweepIdle(30*time.Minute))
}

func TestManager_EvictedSessionReloadsFromSlots(t *testing.T) {
	m, clock := newTestManager()
	ctx := context.Background()
	first := m.Get(ctx, "sess-1")
	first.Cart.AddItem(ctx, cart.ProductRef{ID: "p1", Price: 100}, 2)
	clock.Advance(time.Hour)
	require.Equal(t, 1, m.SweepIdle(30*time.Minute))

	second := m.Get(ctx, "sess-1")

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, second.Cart.TotalItems())
	assert.False(t, second.Drawer.IsOpen())
}

func TestManager_RunSweeperStopsOnCancel(t *testing.T) {
	m, _ := newTestManager()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.RunSweeper(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestManager_NewIDUnique(t *testing.T) {
	m, _ := newTestManager()
	assert.NotEqual(t, m.NewID(), m.NewID())
}
