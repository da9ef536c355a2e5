package health

import "testing"

type fixedCounts struct{ open, hosts, panels int }

func (c fixedCounts) Counts() (int, int, int) { return c.open, c.hosts, c.panels }

func TestCollectReportsProcessState(t *testing.T) {
	s := Collect(Options{})

	if s.Status != "ok" {
		t.Errorf("Status = %q, want %q", s.Status, "ok")
	}
	if s.Goroutines <= 0 {
		t.Errorf("Goroutines = %d, want > 0", s.Goroutines)
	}
	if s.Runtime.Version == "" {
		t.Error("Runtime.Version is empty")
	}
	if s.Timestamp == "" {
		t.Error("Timestamp is empty")
	}
	if s.Sessions != nil {
		t.Error("Sessions set without a counter")
	}
}

func TestCollectIncludesSessionCounts(t *testing.T) {
	s := Collect(Options{Sessions: fixedCounts{open: 3, hosts: 2, panels: 1}})

	if s.Sessions == nil {
		t.Fatal("Sessions missing from snapshot")
	}
	if s.Sessions.Open != 3 || s.Sessions.HostsAttached != 2 || s.Sessions.PanelsOpen != 1 {
		t.Errorf("Sessions = %+v, want open 3, hosts 2, panels 1", *s.Sessions)
	}
}
