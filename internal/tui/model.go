package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/extractcli/internal/client"
	"github.com/studiowebux/extractcli/internal/config"
	"github.com/studiowebux/extractcli/internal/controller"
	"github.com/studiowebux/extractcli/internal/form"
	"github.com/studiowebux/extractcli/internal/history"
	"github.com/studiowebux/extractcli/internal/keybinds"
	"github.com/studiowebux/extractcli/internal/notify"
	"github.com/studiowebux/extractcli/internal/render"
	"github.com/studiowebux/extractcli/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeForm Mode = iota
	ModeHistory
	ModeHelp
)

// Form field indices. The format selector is a field for focus purposes
// even though it is a toggle, not a text input.
const (
	fieldAPIKey = iota
	fieldQuery
	fieldFormat
	fieldCount
)

// Model represents the TUI state
type Model struct {
	ctrl       *controller.Controller
	center     *notify.Center
	keys       *keybinds.Registry
	formStore  *form.Store
	historyMgr *history.Manager // nil when the database could not be opened

	mode Mode

	// Form state
	inputs     [2]textinput.Model // API key, query
	focusIndex int
	format     string
	force      bool
	lastSaved  types.FormSnapshot

	// Request/result state
	pending      bool
	result       *render.ResultView
	failure      string
	resultView   viewport.Model
	spin         spinner.Model
	focusedPanel string // "form" or "result"

	// History browser state
	historyEntries  []types.HistoryEntry
	historyVisible  []int // indices into historyEntries after fuzzy filtering
	historyIndex    int
	historyFilter   textinput.Model
	historyLoadFail string

	// Help viewer state
	helpView viewport.Model

	// UI state
	width     int
	height    int
	statusMsg string
}

// Messages delivered into the update loop.

type extractSuccessMsg struct {
	session *controller.Session
	result  *types.ExtractionResult
}

type extractFailureMsg struct {
	session *controller.Session
	message string
}

type notificationMsg struct {
	message  string
	severity notify.Severity
}

type notificationExpiredMsg struct {
	id int
}

type historyLoadedMsg struct {
	entries []types.HistoryEntry
	err     error
}

// programSink forwards controller outcomes into the bubbletea loop. The
// program is attached after construction because the controller must exist
// before the program does.
type programSink struct {
	mu      sync.Mutex
	program *tea.Program
}

func (s *programSink) attach(p *tea.Program) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

func (s *programSink) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (s *programSink) RenderSuccess(session *controller.Session, result *types.ExtractionResult) {
	s.send(extractSuccessMsg{session: session, result: result})
}

func (s *programSink) RenderFailure(session *controller.Session, message string) {
	s.send(extractFailureMsg{session: session, message: message})
}

func (s *programSink) Notify(message string, severity notify.Severity) {
	s.send(notificationMsg{message: message, severity: severity})
}

// New creates a new TUI model. The form snapshot is restored here, once;
// only stored fields with values overwrite the defaults.
func New(ctrl *controller.Controller, store *form.Store, historyMgr *history.Manager, defaultFormat string) *Model {
	apiKeyInput := textinput.New()
	apiKeyInput.Placeholder = "API key"
	apiKeyInput.EchoMode = textinput.EchoPassword
	apiKeyInput.CharLimit = APIKeyCharLimit
	apiKeyInput.Focus()

	queryInput := textinput.New()
	queryInput.Placeholder = "Search query or URL"
	queryInput.CharLimit = QueryCharLimit

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter"

	m := &Model{
		ctrl:          ctrl,
		center:        notify.NewCenter(),
		keys:          keybinds.NewDefaultRegistry(),
		formStore:     store,
		historyMgr:    historyMgr,
		mode:          ModeForm,
		inputs:        [2]textinput.Model{apiKeyInput, queryInput},
		format:        defaultFormat,
		focusedPanel:  "form",
		resultView:    viewport.New(80, 20),
		helpView:      viewport.New(80, 20),
		historyFilter: filterInput,
		spin:          spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	apiKey, query, format := "", "", m.format
	if snapshot, ok := store.Load(); ok {
		form.Apply(snapshot, &apiKey, &query, &format)
	}
	m.inputs[fieldAPIKey].SetValue(apiKey)
	m.inputs[fieldQuery].SetValue(query)
	m.format = format
	m.lastSaved = m.snapshot()

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case extractSuccessMsg:
		m.pending = false
		view := render.Success(msg.result)
		m.result = &view
		m.failure = ""
		m.statusMsg = "Extraction complete"
		m.focusedPanel = "result"
		m.updateResultView()
		m.recordHistory(msg.session, msg.result)
		return m, nil

	case extractFailureMsg:
		m.pending = false
		m.result = nil
		m.failure = msg.message
		m.statusMsg = ""
		m.updateResultView()
		return m, nil

	case notificationMsg:
		// A cancellation warning with no pending session means the
		// in-flight request is gone; stop the pending indicator.
		if !m.ctrl.Pending() {
			m.pending = false
			m.updateResultView()
		}
		return m, m.pushNotification(msg.message, msg.severity)

	case notificationExpiredMsg:
		m.center.Dismiss(msg.id)
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.historyLoadFail = msg.err.Error()
			return m, nil
		}
		m.historyEntries = msg.entries
		m.historyLoadFail = ""
		m.refilterHistory()
		return m, nil
	}

	return m, nil
}

// pushNotification registers a notification and schedules its expiry tick.
// Each notification carries its own timer, so several can coexist.
func (m *Model) pushNotification(message string, severity notify.Severity) tea.Cmd {
	n := m.center.Push(message, severity)
	return tea.Tick(notify.TTL, func(time.Time) tea.Msg {
		return notificationExpiredMsg{id: n.ID}
	})
}

func (m *Model) resize() {
	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}
	resultHeight := m.height - FormHeight - StatusBarHeight - MaxNotifications - 2
	if resultHeight < 3 {
		resultHeight = 3
	}
	m.resultView.Width = contentWidth
	m.resultView.Height = resultHeight
	m.helpView.Width = contentWidth
	m.helpView.Height = m.height - 6
	for i := range m.inputs {
		m.inputs[i].Width = contentWidth - 16
	}
	m.updateResultView()
}

// Run starts the TUI against the given server.
func Run(serverURL, defaultFormat string) error {
	apiClient := client.New(serverURL)
	sink := &programSink{}
	ctrl := controller.New(apiClient, sink)

	store := form.NewStore(config.FormFile)

	// History is best-effort: a broken database disables the browser but
	// never blocks the console.
	historyMgr, err := history.NewManager(config.DatabasePath)
	if err != nil {
		historyMgr = nil
	}
	if historyMgr != nil {
		defer historyMgr.Close()
	}

	m := New(ctrl, store, historyMgr, defaultFormat)

	p := tea.NewProgram(m, tea.WithAltScreen())
	sink.attach(p)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
