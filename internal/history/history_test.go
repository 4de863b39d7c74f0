package history

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "activity.db"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManager_RecordAndLoad(t *testing.T) {
	m := newTestManager(t)

	if err := m.Record(ActionCardCreated, "c1", "Sunset"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := m.Record(ActionCardLiked, "c1", "Sunset"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := m.Load(10)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Load returned %d entries, want 2", len(entries))
	}

	// Newest first
	if entries[0].Action != ActionCardLiked {
		t.Errorf("entries[0].Action = %s, want %s", entries[0].Action, ActionCardLiked)
	}
	if entries[1].Action != ActionCardCreated {
		t.Errorf("entries[1].Action = %s, want %s", entries[1].Action, ActionCardCreated)
	}
	if entries[0].CardID != "c1" || entries[0].Detail != "Sunset" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	if entries[0].ID == "" {
		t.Error("entries must carry generated ids")
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("entries must carry timestamps")
	}
}

func TestManager_LoadLimit(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < 5; i++ {
		if err := m.Record(ActionCardLiked, "c", ""); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := m.Load(3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Load returned %d entries, want 3", len(entries))
	}
}

func TestManager_Clear(t *testing.T) {
	m := newTestManager(t)

	if err := m.Record(ActionProfileSaved, "", "Alice"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	entries, err := m.Load(10)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Load returned %d entries after clear, want 0", len(entries))
	}
}
