package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/extractcli/internal/notify"
	"github.com/studiowebux/extractcli/internal/render"
	"github.com/studiowebux/extractcli/internal/version"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	switch m.mode {
	case ModeHistory:
		return m.renderHistory()
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// renderMain renders the form panel, the result panel, notifications, and
// the status bar.
func (m *Model) renderMain() string {
	formBorderColor := colorGray
	resultBorderColor := colorGray
	if m.focusedPanel == "form" {
		formBorderColor = colorGreen
	} else {
		resultBorderColor = colorGreen
	}

	formBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formBorderColor).
		Width(m.width - 2).
		Render(m.renderForm())

	resultBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(resultBorderColor).
		Width(m.width - 2).
		Render(m.resultView.View())

	sections := []string{formBox, resultBox}
	if notifications := m.renderNotifications(); notifications != "" {
		sections = append(sections, notifications)
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderForm() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Media Extractor"))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(fieldAPIKey, "API key", m.inputs[fieldAPIKey].View()))
	b.WriteString("\n")
	b.WriteString(m.renderField(fieldQuery, "Query", m.inputs[fieldQuery].View()))
	b.WriteString("\n")

	formatValue := fmt.Sprintf("◂ %s ▸", m.format)
	if m.force {
		formatValue += "   [force re-download]"
	}
	b.WriteString(m.renderField(fieldFormat, "Format", formatValue))
	b.WriteString("\n\n")
	b.WriteString(styleSubtle.Render("ctrl+enter submit · esc cancel · ctrl+h history · ctrl+g help"))

	return b.String()
}

func (m *Model) renderField(index int, label, value string) string {
	marker := "  "
	rendered := styleLabel.Render(fmt.Sprintf("%-8s", label))
	if m.focusedPanel == "form" && m.focusIndex == index {
		marker = styleSuccess.Render("> ")
	}
	return marker + rendered + value
}

// renderResultContent builds the text shown inside the result viewport.
func (m *Model) renderResultContent() string {
	if m.pending {
		return m.spin.View() + " Extracting... press esc to cancel"
	}
	if m.failure != "" {
		return styleError.Render(render.Failure(m.failure))
	}
	if m.result == nil {
		return styleSubtle.Render("No result yet. Fill in the form and press ctrl+enter.")
	}

	var b strings.Builder
	glyph := styleSuccess.Render(m.result.Glyph)
	if m.result.MatchType != "" {
		glyph += styleSubtle.Render(fmt.Sprintf("  (%s match)", m.result.MatchType))
	}
	b.WriteString(glyph)
	b.WriteString("\n\n")
	for _, field := range m.result.Fields {
		b.WriteString(styleLabel.Render(fmt.Sprintf("%-12s", field.Label)))
		b.WriteString(field.Value)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("ctrl+r focus panel · y copy file ID (when focused)"))
	return b.String()
}

// renderNotifications shows the newest notifications, one per line.
func (m *Model) renderNotifications() string {
	active := m.center.Active()
	if len(active) == 0 {
		return ""
	}
	if len(active) > MaxNotifications {
		active = active[len(active)-MaxNotifications:]
	}

	lines := make([]string, 0, len(active))
	for _, n := range active {
		var style lipgloss.Style
		switch n.Severity {
		case notify.SeverityError:
			style = styleError
		case notify.SeverityWarning:
			style = styleWarning
		case notify.SeveritySuccess:
			style = styleSuccess
		default:
			style = styleSubtle
		}
		lines = append(lines, style.Render("• "+n.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatusBar() string {
	status := m.statusMsg
	if m.pending {
		status = m.spin.View() + " " + status
	}
	left := styleSubtle.Render(status)
	right := styleSubtle.Render("extractcli v" + version.Version)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderHistory() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Extraction History"))
	b.WriteString("\n\n")
	b.WriteString(m.historyFilter.View())
	b.WriteString("\n\n")

	switch {
	case m.historyLoadFail != "":
		b.WriteString(styleError.Render("Failed to load history: " + m.historyLoadFail))
	case len(m.historyVisible) == 0:
		b.WriteString(styleSubtle.Render("No extractions recorded"))
	default:
		visibleRows := m.height - 10
		if visibleRows < 1 {
			visibleRows = 1
		}
		start := 0
		if m.historyIndex >= visibleRows {
			start = m.historyIndex - visibleRows + 1
		}
		for i := start; i < len(m.historyVisible) && i < start+visibleRows; i++ {
			entry := m.historyEntries[m.historyVisible[i]]
			origin := "fetched"
			if entry.Cached {
				origin = "cached"
			}
			line := fmt.Sprintf("%s  %-7s %-6s %s",
				entry.Timestamp.Format("2006-01-02 15:04"),
				origin, entry.Format, entry.Title)
			if i == m.historyIndex {
				line = styleSelected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("enter rerun · ctrl+y copy file ID · ctrl+x clear · esc close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - 2).
		Render(b.String())
}

func (m *Model) updateHelpView() {
	help := `Media Extractor — key reference

Form
  tab / shift+tab   move between fields
  enter             next field / submit
  ctrl+enter        submit from anywhere
  alt+enter         submit (alternate binding)
  ctrl+t            toggle audio/video
  ctrl+f            toggle force re-download
  esc               cancel the pending request

Panels
  ctrl+r            focus the result panel
  y                 copy file ID (result focused)
  up/down, j/k      scroll (result focused)

History (ctrl+h)
  type              fuzzy-filter entries
  up/down           select
  enter             restore query into the form
  ctrl+y            copy file ID
  ctrl+x            clear history

Notifications
  ctrl+d            dismiss the oldest notification

General
  ctrl+c            quit`
	m.helpView.SetContent(help)
}

func (m *Model) renderHelp() string {
	body := m.helpView.View() + "\n" + styleSubtle.Render("esc close")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - 2).
		Render(body)
}
