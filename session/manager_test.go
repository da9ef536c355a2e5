package session

import (
	"testing"
	"time"

	"github.com/linkdock/linkdock/host/hosttest"
)

func TestEnsureCreatesSessionOnce(t *testing.T) {
	mgr := NewManager(nil, 3, 15*time.Minute)

	first := mgr.Ensure("sess-1")
	second := mgr.Ensure("sess-1")
	if first != second {
		t.Fatal("Ensure() should return the same session for the same ID")
	}
	if mgr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", mgr.Len())
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestDispatcherRequiresAttachedHost(t *testing.T) {
	mgr := NewManager(nil, 3, 15*time.Minute)
	s := mgr.Ensure("sess-1")

	if _, ok := s.Dispatcher(); ok {
		t.Fatal("Dispatcher() should be unavailable before a host attaches")
	}

	s.AttachHost(hosttest.New(), nil)
	if _, ok := s.Dispatcher(); !ok {
		t.Fatal("Dispatcher() should be available after AttachHost")
	}
	if !s.HostAttached() {
		t.Fatal("HostAttached() = false after AttachHost")
	}

	s.DetachHost()
	if _, ok := s.Dispatcher(); ok {
		t.Fatal("Dispatcher() should be unavailable after DetachHost")
	}
}

func TestReattachHostClosesPrevious(t *testing.T) {
	mgr := NewManager(nil, 3, 15*time.Minute)
	s := mgr.Ensure("sess-1")

	closed := 0
	s.AttachHost(hosttest.New(), func() error {
		closed++
		return nil
	})
	s.AttachHost(hosttest.New(), nil)

	if closed != 1 {
		t.Fatalf("previous host closed %d times, want 1", closed)
	}
}

func TestFirstPrefersOldestSessionWithHost(t *testing.T) {
	mgr := NewManager(nil, 3, 15*time.Minute)

	bare := mgr.Ensure("bare")
	older := mgr.Ensure("older")
	newer := mgr.Ensure("newer")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bare.CreatedAt = base
	older.CreatedAt = base.Add(time.Minute)
	newer.CreatedAt = base.Add(2 * time.Minute)

	older.AttachHost(hosttest.New(), nil)
	newer.AttachHost(hosttest.New(), nil)

	got, ok := mgr.First()
	if !ok {
		t.Fatal("First() found nothing, want a session")
	}
	if got.ID != "older" {
		t.Fatalf("First().ID = %q, want %q", got.ID, "older")
	}
}

func TestFirstSkipsHostlessSessions(t *testing.T) {
	mgr := NewManager(nil, 3, 15*time.Minute)
	mgr.Ensure("panel-only").AttachPanel()

	if _, ok := mgr.First(); ok {
		t.Fatal("First() returned a session without a host")
	}
}

func TestSweepRemovesOnlyDeadSessions(t *testing.T) {
	mgr := NewManager(nil, 3, 15*time.Minute)

	mgr.Ensure("abandoned")
	mgr.Ensure("with-host").AttachHost(hosttest.New(), nil)
	mgr.Ensure("with-panel").AttachPanel()

	if n := mgr.Sweep(time.Now()); n != 0 {
		t.Fatalf("Sweep(now) removed %d sessions, want 0", n)
	}

	// Well past the idle timeout only the fully disconnected session dies.
	if n := mgr.Sweep(time.Now().Add(20 * time.Minute)); n != 1 {
		t.Fatalf("Sweep(later) removed %d sessions, want 1", n)
	}
	if _, ok := mgr.Get("abandoned"); ok {
		t.Fatal("abandoned session should be gone after sweep")
	}
	if _, ok := mgr.Get("with-host"); !ok {
		t.Fatal("session with a host should survive the sweep")
	}
	if _, ok := mgr.Get("with-panel"); !ok {
		t.Fatal("session with a panel should survive the sweep")
	}
}

func TestRemoveClosesAttachedHost(t *testing.T) {
	mgr := NewManager(nil, 3, 15*time.Minute)
	s := mgr.Ensure("sess-1")

	closed := 0
	s.AttachHost(hosttest.New(), func() error {
		closed++
		return nil
	})

	mgr.Remove("sess-1")
	if closed != 1 {
		t.Fatalf("host closed %d times, want 1", closed)
	}
	if _, ok := mgr.Get("sess-1"); ok {
		t.Fatal("Get() should miss after Remove")
	}

	// Removing again is a no-op.
	mgr.Remove("sess-1")
	if closed != 1 {
		t.Fatalf("host closed %d times after double remove, want 1", closed)
	}
}

func TestCloseAllEmptiesTheTable(t *testing.T) {
	mgr := NewManager(nil, 3, 15*time.Minute)
	mgr.Ensure("a")
	mgr.Ensure("b").AttachHost(hosttest.New(), nil)

	mgr.CloseAll()
	if mgr.Len() != 0 {
		t.Fatalf("Len() = %d after CloseAll, want 0", mgr.Len())
	}
}
