package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerFormBindings(r)
	registerResultBindings(r)
	registerHistoryBindings(r)
	registerHelpBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	// Submit from anywhere: terminals report the platform modifier + Enter
	// differently, so both variants are bound.
	r.RegisterMultiple(ContextGlobal, []string{"ctrl+enter", "alt+enter"}, ActionSubmit)
	// Escape cancels the pending request (no-op when idle) or closes the
	// active modal.
	r.Register(ContextGlobal, "esc", ActionCancel)
	r.Register(ContextGlobal, "ctrl+d", ActionDismissNotice)
}

func registerFormBindings(r *Registry) {
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionPrevField)
	r.Register(ContextForm, "ctrl+t", ActionToggleFormat)
	r.Register(ContextForm, "ctrl+f", ActionToggleForce)
	r.Register(ContextForm, "ctrl+h", ActionOpenHistory)
	r.Register(ContextForm, "ctrl+g", ActionOpenHelp)
	r.Register(ContextForm, "ctrl+r", ActionFocusResult)
}

func registerResultBindings(r *Registry) {
	r.Register(ContextResult, "y", ActionCopyFileID)
	r.RegisterMultiple(ContextResult, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextResult, []string{"down", "j"}, ActionScrollDown)
	r.Register(ContextResult, "tab", ActionNextField)
	r.Register(ContextResult, "h", ActionOpenHistory)
	r.Register(ContextResult, "?", ActionOpenHelp)
}

// History browser keeps plain letters free for the fuzzy filter input, so
// navigation is arrows-only there.
func registerHistoryBindings(r *Registry) {
	r.Register(ContextHistory, "up", ActionNavigateUp)
	r.Register(ContextHistory, "down", ActionNavigateDown)
	r.Register(ContextHistory, "ctrl+y", ActionCopyFileID)
	r.Register(ContextHistory, "ctrl+x", ActionClearHistory)
	r.Register(ContextHistory, "enter", ActionRerun)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionScrollDown)
}
