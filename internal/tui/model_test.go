package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/extractcli/internal/controller"
	"github.com/studiowebux/extractcli/internal/form"
	"github.com/studiowebux/extractcli/internal/notify"
	"github.com/studiowebux/extractcli/internal/types"
)

// blockingExtractor never settles on its own; tests drive settlement by
// sending messages into Update directly.
type blockingExtractor struct{}

func (blockingExtractor) Extract(ctx context.Context, apiKey, query, format string, force bool) (*types.ExtractionResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	store := form.NewStore(filepath.Join(t.TempDir(), ".form.json"))
	sink := &programSink{}
	ctrl := controller.New(blockingExtractor{}, sink)
	m := New(ctrl, store, nil, "audio")
	m.width = 100
	m.height = 40
	m.resize()
	return m
}

func TestNewRestoresFormSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := form.NewStore(filepath.Join(dir, ".form.json"))
	if err := store.Save(types.FormSnapshot{APIKey: "abcdefghij", Query: "old query", Format: "video"}); err != nil {
		t.Fatal(err)
	}

	ctrl := controller.New(blockingExtractor{}, &programSink{})
	m := New(ctrl, store, nil, "audio")

	if got := m.inputs[fieldAPIKey].Value(); got != "abcdefghij" {
		t.Errorf("API key = %q, want abcdefghij", got)
	}
	if got := m.inputs[fieldQuery].Value(); got != "old query" {
		t.Errorf("query = %q, want old query", got)
	}
	if m.format != "video" {
		t.Errorf("format = %q, want video", m.format)
	}
}

func TestNewPartialSnapshotKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	store := form.NewStore(filepath.Join(dir, ".form.json"))
	if err := store.Save(types.FormSnapshot{Query: "only query"}); err != nil {
		t.Fatal(err)
	}

	ctrl := controller.New(blockingExtractor{}, &programSink{})
	m := New(ctrl, store, nil, "audio")

	if got := m.inputs[fieldAPIKey].Value(); got != "" {
		t.Errorf("API key = %q, want empty default", got)
	}
	if m.format != "audio" {
		t.Errorf("format = %q, want audio default", m.format)
	}
}

func TestNewMalformedSnapshotKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".form.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	ctrl := controller.New(blockingExtractor{}, &programSink{})
	m := New(ctrl, form.NewStore(path), nil, "audio")

	if got := m.inputs[fieldAPIKey].Value(); got != "" {
		t.Errorf("API key = %q, want empty after malformed snapshot", got)
	}
	if m.format != "audio" {
		t.Errorf("format = %q, want audio", m.format)
	}
}

func TestToggleFormatPersists(t *testing.T) {
	m := newTestModel(t)

	m.toggleFormat()
	if m.format != "video" {
		t.Fatalf("format = %q, want video", m.format)
	}

	snapshot, ok := m.formStore.Load()
	if !ok {
		t.Fatal("snapshot not written after toggle")
	}
	if snapshot.Format != "video" {
		t.Errorf("persisted format = %q, want video", snapshot.Format)
	}
}

func TestUpdateExtractSuccess(t *testing.T) {
	m := newTestModel(t)
	m.pending = true

	result := &types.ExtractionResult{
		Cached:         true,
		Title:          "A Song",
		FileType:       "audio",
		ProcessingTime: 0.5,
		FileID:         "FILE1",
	}
	m.Update(extractSuccessMsg{result: result})

	if m.pending {
		t.Error("pending not cleared on success")
	}
	if m.result == nil {
		t.Fatal("result view not built")
	}
	if m.failure != "" {
		t.Errorf("failure = %q, want empty", m.failure)
	}
	if m.focusedPanel != "result" {
		t.Errorf("focusedPanel = %q, want result", m.focusedPanel)
	}
	if got := m.currentFileID(); got != "FILE1" {
		t.Errorf("currentFileID = %q, want FILE1", got)
	}
}

func TestUpdateExtractFailure(t *testing.T) {
	m := newTestModel(t)
	m.pending = true

	m.Update(extractFailureMsg{message: "Unknown error"})

	if m.pending {
		t.Error("pending not cleared on failure")
	}
	if m.result != nil {
		t.Error("result view set on failure")
	}
	if m.failure != "Unknown error" {
		t.Errorf("failure = %q, want Unknown error", m.failure)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(notificationMsg{message: "Request cancelled", severity: notify.SeverityWarning})
	if cmd == nil {
		t.Fatal("no expiry command scheduled")
	}

	active := m.center.Active()
	if len(active) != 1 || active[0].Message != "Request cancelled" {
		t.Fatalf("active notifications = %+v", active)
	}

	m.Update(notificationExpiredMsg{id: active[0].ID})
	if len(m.center.Active()) != 0 {
		t.Error("notification not removed on expiry")
	}
}

func TestEscapeWithNoPendingSessionIsNoOp(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if len(m.center.Active()) != 0 {
		t.Errorf("escape with no pending session emitted notifications: %+v", m.center.Active())
	}
	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
}

func TestEscapeClosesModalWhenIdle(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeHelp

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm after escape", m.mode)
	}
}

func TestSubmitInvalidInputDoesNotStartPending(t *testing.T) {
	m := newTestModel(t)
	// Empty API key: the controller rejects synchronously.
	cmd := m.submit()
	if cmd != nil {
		t.Error("submit returned a command despite validation failure")
	}
	if m.pending {
		t.Error("pending set despite validation failure")
	}
}

func TestSubmitValidInputStartsPending(t *testing.T) {
	m := newTestModel(t)
	m.inputs[fieldAPIKey].SetValue("abcdefghij")
	m.inputs[fieldQuery].SetValue("some song")

	cmd := m.submit()
	if cmd == nil {
		t.Fatal("submit returned no command for valid input")
	}
	if !m.pending {
		t.Error("pending not set after accepted submit")
	}
	if !m.ctrl.Pending() {
		t.Error("controller has no pending session after accepted submit")
	}

	// Cleanup: cancel the in-flight blocking request.
	m.cancelPending()
}

func TestCancelPendingSettlesUI(t *testing.T) {
	m := newTestModel(t)
	m.inputs[fieldAPIKey].SetValue("abcdefghij")
	m.inputs[fieldQuery].SetValue("some song")
	m.submit()

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.pending {
		t.Error("pending not cleared after escape")
	}
	if m.ctrl.Pending() {
		t.Error("controller still pending after escape")
	}
}

func TestHistoryFuzzyFilter(t *testing.T) {
	m := newTestModel(t)
	m.historyEntries = []types.HistoryEntry{
		{Title: "Bohemian Rhapsody", Query: "queen bohemian", Timestamp: time.Now()},
		{Title: "Stairway to Heaven", Query: "led zeppelin", Timestamp: time.Now()},
		{Title: "Hey Jude", Query: "beatles hey jude", Timestamp: time.Now()},
	}

	m.historyFilter.SetValue("")
	m.refilterHistory()
	if len(m.historyVisible) != 3 {
		t.Fatalf("unfiltered visible = %d, want 3", len(m.historyVisible))
	}

	m.historyFilter.SetValue("jude")
	m.refilterHistory()
	if len(m.historyVisible) != 1 {
		t.Fatalf("filtered visible = %d, want 1", len(m.historyVisible))
	}
	if entry := m.selectedHistoryEntry(); entry == nil || entry.Title != "Hey Jude" {
		t.Errorf("selected entry = %+v, want Hey Jude", entry)
	}
}

func TestRerunFromHistoryRestoresForm(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeHistory

	entry := &types.HistoryEntry{Query: "old query", Format: "video"}
	m.rerunFromHistory(entry)

	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
	if got := m.inputs[fieldQuery].Value(); got != "old query" {
		t.Errorf("query = %q, want old query", got)
	}
	if m.format != "video" {
		t.Errorf("format = %q, want video", m.format)
	}
}
