package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/linkdock/linkdock/finder"
	"github.com/linkdock/linkdock/logger"
	"github.com/linkdock/linkdock/metrics"
)

// Manager tracks live sessions by ID and sweeps abandoned ones.
type Manager struct {
	finder      finder.Finder
	maxResults  int
	idleTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*Session

	scheduler gocron.Scheduler
}

// NewManager creates an empty session table. f may be nil; sessions then
// treat chat messages as logged no-ops. idleTimeout bounds how long a
// fully disconnected session survives before the sweep removes it.
func NewManager(f finder.Finder, maxResults int, idleTimeout time.Duration) *Manager {
	return &Manager{
		finder:      f,
		maxResults:  maxResults,
		idleTimeout: idleTimeout,
		sessions:    make(map[string]*Session),
	}
}

// Ensure returns the session for id, creating it on first sight.
func (m *Manager) Ensure(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}
	now := time.Now()
	s := &Session{
		ID:         id,
		CreatedAt:  now,
		finder:     m.finder,
		maxResults: m.maxResults,
		lastSeen:   now,
	}
	m.sessions[id] = s
	metrics.SessionOpened()
	logger.Info("session opened", "session", id)
	return s
}

// Get returns the session for id without creating it.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}

// First returns the oldest session with a host attached. Tool surfaces
// without their own pairing (the MCP server, the send command) operate on
// it.
func (m *Manager) First() (*Session, bool) {
	m.mu.Lock()
	candidates := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		candidates = append(candidates, s)
	}
	m.mu.Unlock()

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	for _, s := range candidates {
		if s.HostAttached() {
			return s, true
		}
	}
	return nil, false
}

// Remove closes and forgets the session for id.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	s.close()
	metrics.SessionClosed()
	logger.Info("session closed", "session", id)
}

// Len returns the number of tracked sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Counts reports table occupancy: total sessions, how many have a design
// tool attached and how many have a panel open.
func (m *Manager) Counts() (open, hosts, panels int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	open = len(m.sessions)
	for _, s := range m.sessions {
		if s.HostAttached() {
			hosts++
		}
		if s.PanelAttached() {
			panels++
		}
	}
	return open, hosts, panels
}

// Sweep removes sessions whose connections are both gone and that have
// been idle past the manager's timeout. Returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.idleTimeout)

	m.mu.Lock()
	var dead []string
	for id, s := range m.sessions {
		if s.dead(cutoff) {
			dead = append(dead, id)
		}
	}
	m.mu.Unlock()

	for _, id := range dead {
		m.Remove(id)
	}
	if len(dead) > 0 {
		logger.Info("swept dead sessions", "count", len(dead))
	}
	return len(dead)
}

// StartSweeper runs Sweep on the given cron schedule until StopSweeper.
func (m *Manager) StartSweeper(expr string) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(func() {
			m.Sweep(time.Now())
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}
	s.Start()
	m.scheduler = s
	logger.Info("session sweeper started", "schedule", expr)
	return nil
}

// StopSweeper halts the sweep schedule.
func (m *Manager) StopSweeper() {
	if m.scheduler == nil {
		return
	}
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Warn("failed to stop session sweeper", "err", err)
	}
	m.scheduler = nil
}

// CloseAll tears down every session, closing attached host connections.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Remove(id)
	}
}
