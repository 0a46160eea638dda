package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/extractcli/internal/controller"
	"github.com/studiowebux/extractcli/internal/notify"
	"github.com/studiowebux/extractcli/internal/types"
)

// submit hands the current field values to the controller. Validation
// failures surface as notifications through the sink; only an accepted
// submission starts the pending indicator.
func (m *Model) submit() tea.Cmd {
	_, err := m.ctrl.Submit(
		m.inputs[fieldAPIKey].Value(),
		strings.TrimSpace(m.inputs[fieldQuery].Value()),
		m.format,
		m.force,
	)
	if err != nil {
		return nil
	}

	m.pending = true
	m.failure = ""
	m.statusMsg = "Extracting... (esc to cancel)"
	m.updateResultView()
	return m.spin.Tick
}

// cancelPending cancels the in-flight request, if any. The controller emits
// the warning notification; with nothing pending this is a no-op.
func (m *Model) cancelPending() {
	if !m.ctrl.Pending() {
		return
	}
	m.ctrl.CancelCurrent()
	m.pending = false
	m.statusMsg = ""
	m.updateResultView()
}

// snapshot captures the live field values.
func (m *Model) snapshot() types.FormSnapshot {
	return types.FormSnapshot{
		APIKey: m.inputs[fieldAPIKey].Value(),
		Query:  m.inputs[fieldQuery].Value(),
		Format: m.format,
	}
}

// saveFormIfChanged mirrors the fields to disk after a change event.
// Persistence failures never interrupt the UI.
func (m *Model) saveFormIfChanged() {
	current := m.snapshot()
	if current == m.lastSaved {
		return
	}
	if err := m.formStore.Save(current); err == nil {
		m.lastSaved = current
	}
}

// recordHistory logs a settled-success session, best-effort.
func (m *Model) recordHistory(session *controller.Session, result *types.ExtractionResult) {
	if m.historyMgr == nil || session == nil {
		return
	}
	_ = m.historyMgr.Save(types.HistoryEntry{
		Query:  session.Query,
		Format: session.Format,
		Title:  result.Title,
		FileID: result.FileID,
		Cached: result.Cached,
	})
}

// copyFileID puts the given file ID on the system clipboard.
func (m *Model) copyFileID(fileID string) tea.Cmd {
	if fileID == "" {
		return nil
	}
	if err := clipboard.WriteAll(fileID); err != nil {
		return m.pushNotification("Clipboard unavailable", notify.SeverityError)
	}
	return m.pushNotification("File ID copied to clipboard", notify.SeverityInfo)
}

// currentFileID returns the file ID shown in the result panel, if any.
func (m *Model) currentFileID() string {
	if m.result == nil {
		return ""
	}
	for _, field := range m.result.Fields {
		if field.Label == "File ID" {
			return field.Value
		}
	}
	return ""
}

// openHistory loads entries off the update loop and switches modes.
func (m *Model) openHistory() tea.Cmd {
	if m.historyMgr == nil {
		return m.pushNotification("History database unavailable", notify.SeverityError)
	}
	m.mode = ModeHistory
	m.historyIndex = 0
	m.historyFilter.SetValue("")
	m.historyFilter.Focus()
	mgr := m.historyMgr
	return func() tea.Msg {
		entries, err := mgr.Load(HistoryModalLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// refilterHistory recomputes the visible entries from the fuzzy filter.
func (m *Model) refilterHistory() {
	pattern := m.historyFilter.Value()
	if pattern == "" {
		m.historyVisible = make([]int, len(m.historyEntries))
		for i := range m.historyEntries {
			m.historyVisible[i] = i
		}
	} else {
		haystack := make([]string, len(m.historyEntries))
		for i, entry := range m.historyEntries {
			haystack[i] = entry.Title + " " + entry.Query
		}
		matches := fuzzy.Find(pattern, haystack)
		m.historyVisible = make([]int, len(matches))
		for i, match := range matches {
			m.historyVisible[i] = match.Index
		}
	}
	if m.historyIndex >= len(m.historyVisible) {
		m.historyIndex = 0
	}
}

// selectedHistoryEntry returns the highlighted entry, if any.
func (m *Model) selectedHistoryEntry() *types.HistoryEntry {
	if m.historyIndex < 0 || m.historyIndex >= len(m.historyVisible) {
		return nil
	}
	return &m.historyEntries[m.historyVisible[m.historyIndex]]
}

// clearHistory wipes the local extraction log.
func (m *Model) clearHistory() tea.Cmd {
	if m.historyMgr == nil {
		return nil
	}
	if err := m.historyMgr.Clear(); err != nil {
		return m.pushNotification("Failed to clear history", notify.SeverityError)
	}
	m.historyEntries = nil
	m.historyVisible = nil
	m.historyIndex = 0
	return m.pushNotification("History cleared", notify.SeverityInfo)
}

// rerunFromHistory restores a past query into the form.
func (m *Model) rerunFromHistory(entry *types.HistoryEntry) {
	m.inputs[fieldQuery].SetValue(entry.Query)
	m.format = entry.Format
	m.mode = ModeForm
	m.focusedPanel = "form"
	m.setFocus(fieldQuery)
	m.saveFormIfChanged()
}

// updateResultView rebuilds the result panel content.
func (m *Model) updateResultView() {
	m.resultView.SetContent(m.renderResultContent())
}

// toggleFormat flips audio/video and mirrors the change.
func (m *Model) toggleFormat() {
	if m.format == "audio" {
		m.format = "video"
	} else {
		m.format = "audio"
	}
	m.saveFormIfChanged()
}
