package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/extractcli/internal/keybinds"
)

// keyContext maps the current UI state to a keybinding context.
func (m *Model) keyContext() keybinds.Context {
	switch m.mode {
	case ModeHistory:
		return keybinds.ContextHistory
	case ModeHelp:
		return keybinds.ContextHelp
	default:
		if m.focusedPanel == "result" {
			return keybinds.ContextResult
		}
		return keybinds.ContextForm
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Form-local keys the registry can't express: Enter advances from the
	// API key field and submits from anywhere else; the format field is a
	// toggle driven by left/right/space.
	if m.mode == ModeForm && m.focusedPanel == "form" {
		if key == "enter" {
			if m.focusIndex == fieldAPIKey {
				return m, m.setFocus(fieldQuery)
			}
			return m, m.submit()
		}
		if m.focusIndex == fieldFormat && (key == "left" || key == "right" || key == " ") {
			m.toggleFormat()
			return m, nil
		}
	}

	if action, ok := m.keys.Match(m.keyContext(), key); ok {
		return m.handleAction(action)
	}

	// Unbound keys feed the focused text input.
	switch m.mode {
	case ModeForm:
		if m.focusedPanel == "form" && m.focusIndex < fieldFormat {
			var cmd tea.Cmd
			m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
			m.saveFormIfChanged()
			return m, cmd
		}
	case ModeHistory:
		var cmd tea.Cmd
		m.historyFilter, cmd = m.historyFilter.Update(msg)
		m.refilterHistory()
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleAction(action keybinds.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keybinds.ActionQuitForce:
		return m, tea.Quit

	case keybinds.ActionSubmit:
		return m, m.submit()

	case keybinds.ActionCancel:
		// Cancelling a pending request always wins; otherwise escape
		// backs out of the current view.
		if m.ctrl.Pending() {
			m.cancelPending()
			return m, nil
		}
		switch {
		case m.mode != ModeForm:
			m.mode = ModeForm
			m.historyFilter.Blur()
		case m.focusedPanel == "result":
			m.focusedPanel = "form"
		}
		return m, nil

	case keybinds.ActionDismissNotice:
		if active := m.center.Active(); len(active) > 0 {
			m.center.Dismiss(active[0].ID)
		}
		return m, nil

	case keybinds.ActionNextField:
		if m.focusedPanel == "result" {
			m.focusedPanel = "form"
			return m, m.setFocus(fieldAPIKey)
		}
		return m, m.setFocus((m.focusIndex + 1) % fieldCount)

	case keybinds.ActionPrevField:
		return m, m.setFocus((m.focusIndex + fieldCount - 1) % fieldCount)

	case keybinds.ActionToggleFormat:
		m.toggleFormat()
		return m, nil

	case keybinds.ActionToggleForce:
		m.force = !m.force
		return m, nil

	case keybinds.ActionOpenHistory:
		return m, m.openHistory()

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.updateHelpView()
		return m, nil

	case keybinds.ActionFocusResult:
		m.focusedPanel = "result"
		return m, nil

	case keybinds.ActionCopyFileID:
		if m.mode == ModeHistory {
			if entry := m.selectedHistoryEntry(); entry != nil {
				return m, m.copyFileID(entry.FileID)
			}
			return m, nil
		}
		return m, m.copyFileID(m.currentFileID())

	case keybinds.ActionScrollUp:
		if m.mode == ModeHelp {
			m.helpView.ScrollUp(1)
		} else {
			m.resultView.ScrollUp(1)
		}
		return m, nil

	case keybinds.ActionScrollDown:
		if m.mode == ModeHelp {
			m.helpView.ScrollDown(1)
		} else {
			m.resultView.ScrollDown(1)
		}
		return m, nil

	case keybinds.ActionNavigateUp:
		if m.historyIndex > 0 {
			m.historyIndex--
		}
		return m, nil

	case keybinds.ActionNavigateDown:
		if m.historyIndex < len(m.historyVisible)-1 {
			m.historyIndex++
		}
		return m, nil

	case keybinds.ActionClearHistory:
		return m, m.clearHistory()

	case keybinds.ActionRerun:
		if entry := m.selectedHistoryEntry(); entry != nil {
			m.rerunFromHistory(entry)
		}
		return m, nil
	}

	return m, nil
}

// setFocus moves form focus, blurring the text inputs that lose it.
func (m *Model) setFocus(index int) tea.Cmd {
	m.focusIndex = index
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == index {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}
