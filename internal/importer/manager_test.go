package importer

import (
	"context"
	"strings"
	"testing"
	"time"
)

func nopWriter() RecordWriter {
	return WriterFunc(func(ctx context.Context, target string, recs []Record) error {
		return nil
	})
}

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(nopWriter(), time.Minute, 0)

	s, err := m.Create("shift_logs", shiftDefs)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID() == "" {
		t.Error("ID() is empty, want a UUID")
	}
	if s.Target() != "shift_logs" {
		t.Errorf("Target() = %q, want %q", s.Target(), "shift_logs")
	}

	got, ok := m.Get(s.ID())
	if !ok || got != s {
		t.Errorf("Get() = %v, %v; want the created session", got, ok)
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestManager_GetUnknown(t *testing.T) {
	m := NewManager(nopWriter(), time.Minute, 0)

	if _, ok := m.Get("nope"); ok {
		t.Error("Get(unknown) = true, want false")
	}
}

func TestManager_Close(t *testing.T) {
	m := NewManager(nopWriter(), time.Minute, 0)

	s, err := m.Create("shift_logs", shiftDefs)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	m.Close(s.ID())
	if _, ok := m.Get(s.ID()); ok {
		t.Error("Get() after Close = true, want false")
	}

	// closing twice is a no-op
	m.Close(s.ID())
	if m.Count() != 0 {
		t.Errorf("Count() = %d, want 0", m.Count())
	}
}

func TestManager_SessionLimit(t *testing.T) {
	m := NewManager(nopWriter(), time.Minute, 2)

	for i := 0; i < 2; i++ {
		if _, err := m.Create("shift_logs", shiftDefs); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}

	_, err := m.Create("shift_logs", shiftDefs)
	if err == nil {
		t.Fatal("Create() over limit succeeded, want error")
	}
	if !strings.Contains(err.Error(), "too many import sessions") {
		t.Errorf("error = %v, want too-many-sessions", err)
	}

	// closing one frees a slot
	sessions := m.Count()
	if sessions != 2 {
		t.Fatalf("Count() = %d, want 2", sessions)
	}
}

func TestManager_TTLExpiry(t *testing.T) {
	m := NewManager(nopWriter(), 20*time.Millisecond, 0)

	s, err := m.Create("shift_logs", shiftDefs)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if m.Count() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("session %s not expired after TTL", s.ID())
}

func TestManager_ZeroTTLNeverExpires(t *testing.T) {
	m := NewManager(nopWriter(), 0, 0)

	s, err := m.Create("shift_logs", shiftDefs)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, ok := m.Get(s.ID()); !ok {
		t.Error("session expired with zero TTL")
	}
}
