package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/extractcli/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestSaveAndLoad(t *testing.T) {
	m := newTestManager(t)

	entry := types.HistoryEntry{
		Timestamp:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local),
		Query:      "test song",
		Format:     "audio",
		Title:      "Test Song",
		FileID:     "FILE123",
		Cached:     true,
		DurationMs: 120,
	}
	if err := m.Save(entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := m.Load(0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Load = %d entries, want 1", len(entries))
	}

	got := entries[0]
	if got.Query != entry.Query || got.Title != entry.Title || got.FileID != entry.FileID {
		t.Errorf("loaded entry = %+v, want %+v", got, entry)
	}
	if !got.Cached {
		t.Error("Cached = false, want true")
	}
	if !got.Timestamp.Equal(entry.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, entry.Timestamp)
	}
}

func TestLoadOrderAndLimit(t *testing.T) {
	m := newTestManager(t)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		err := m.Save(types.HistoryEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Query:     "q",
			Format:    "audio",
			Title:     string(rune('a' + i)),
			FileID:    "F",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.Load(3)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Load(3) = %d entries, want 3", len(entries))
	}
	// Newest first.
	if entries[0].Title != "e" || entries[2].Title != "c" {
		t.Errorf("unexpected order: %q, %q, %q", entries[0].Title, entries[1].Title, entries[2].Title)
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(t)

	if err := m.Save(types.HistoryEntry{Query: "q", Format: "audio", Title: "t", FileID: "f"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err := m.Load(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Load after Clear = %d entries, want 0", len(entries))
	}
}
