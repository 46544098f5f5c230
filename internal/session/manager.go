package session

import (
	"context"
	"sync"
	"time"

	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Manager keeps live sessions in memory. Evicted sessions are rebuilt from
// the slot store on next access; only the drawer state is lost.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	slots    store.SlotStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewManager(slots store.SlotStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*entry),
		slots:    slots,
		logger:   logger,
		now:      time.Now,
	}
}

// NewID returns a fresh shopper session id
func (m *Manager) NewID() string {
	return uuid.New().String()
}

// Get returns the live session for id, loading it when absent.
func (m *Manager) Get(ctx context.Context, id string) *Session {
	m.mu.Lock()
	if e, ok := m.sessions[id]; ok {
		e.lastSeen = m.now()
		m.mu.Unlock()
		return e.session
	}
	m.mu.Unlock()

	loaded := New(ctx, id, m.slots, m.logger)

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		// lost the race to another request for the same shopper
		loaded.Close()
		e.lastSeen = m.now()
		return e.session
	}
	m.sessions[id] = &entry{session: loaded, lastSeen: m.now()}
	return loaded
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// SweepIdle drops sessions not used within maxIdle and returns how many were dropped.
func (m *Manager) SweepIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	var idle []*Session
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	if len(idle) > 0 {
		m.logger.Debug("idle sessions evicted", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// RunSweeper calls SweepIdle every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SweepIdle(maxIdle)
		}
	}
}

// Provider hands out live sessions by id
type Provider interface {
	Get(ctx context.Context, id string) *Session
}

var _ Provider = (*Manager)(nil)
