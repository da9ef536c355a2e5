// Package session pairs the two connections serving one open plugin: the
// chat panel iframe and the host shim running in the design tool. Sessions
// hold no message history and no document state, only the pairing and
// bookkeeping timestamps.
package session

import (
	"sync"
	"time"

	"github.com/linkdock/linkdock/dispatch"
	"github.com/linkdock/linkdock/finder"
	"github.com/linkdock/linkdock/host"
	"github.com/linkdock/linkdock/logger"
)

// Session is one shim/panel pairing. The shim mints the session ID and
// hands it to its panel iframe, so either side may connect first.
type Session struct {
	ID        string
	CreatedAt time.Time

	finder     finder.Finder
	maxResults int

	mu         sync.Mutex
	host       host.Host
	closeHost  func() error
	dispatcher *dispatch.Dispatcher
	panelOpen  bool
	lastSeen   time.Time
}

// AttachHost binds the document side of the session. A dispatcher bound to
// this host becomes available to both connections. Re-attaching replaces a
// previous shim connection.
func (s *Session) AttachHost(h host.Host, closer func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeHost != nil {
		if err := s.closeHost(); err != nil {
			logger.Debug("failed to close replaced host connection", "session", s.ID, "err", err)
		}
	}
	s.host = h
	s.closeHost = closer
	s.dispatcher = dispatch.New(h, s.finder, s.maxResults)
	s.lastSeen = time.Now()
}

// DetachHost drops the document side. In-flight operations are abandoned,
// not rolled back.
func (s *Session) DetachHost() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.host = nil
	s.closeHost = nil
	s.dispatcher = nil
	s.lastSeen = time.Now()
}

// AttachPanel marks the panel side connected.
func (s *Session) AttachPanel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.panelOpen = true
	s.lastSeen = time.Now()
}

// DetachPanel marks the panel side gone.
func (s *Session) DetachPanel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.panelOpen = false
	s.lastSeen = time.Now()
}

// Dispatcher returns the dispatcher bound to the attached host, or false
// while no shim is connected.
func (s *Session) Dispatcher() (*dispatch.Dispatcher, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dispatcher == nil {
		return nil, false
	}
	return s.dispatcher, true
}

// HostAttached reports whether the document side is connected.
func (s *Session) HostAttached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.host != nil
}

// PanelAttached reports whether the panel side is connected.
func (s *Session) PanelAttached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panelOpen
}

// Touch records activity, deferring the idle sweep.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// LastSeen returns the most recent attach, detach or dispatch time.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// dead reports whether both sides are gone and the session has been idle
// since before the cutoff.
func (s *Session) dead(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.host == nil && !s.panelOpen && s.lastSeen.Before(cutoff)
}

// close releases the host connection if one is still attached.
func (s *Session) close() {
	s.mu.Lock()
	closer := s.closeHost
	s.host = nil
	s.closeHost = nil
	s.dispatcher = nil
	s.panelOpen = false
	s.mu.Unlock()

	if closer != nil {
		if err := closer(); err != nil {
			logger.Debug("failed to close host connection", "session", s.ID, "err", err)
		}
	}
}
