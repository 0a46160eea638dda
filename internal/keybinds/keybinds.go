// Package keybinds translates global key events into application actions.
// The registry decouples the TUI from concrete key strings: the update loop
// asks "what does this key mean in this context" and acts on the answer.
package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal  Context = "global"  // Available everywhere
	ContextForm    Context = "form"    // Main form view
	ContextResult  Context = "result"  // Result panel focused
	ContextHistory Context = "history" // History browser
	ContextHelp    Context = "help"    // Help viewer
)

const (
	// Global actions
	ActionQuitForce     Action = "quit_force"     // Force quit (ctrl+c)
	ActionSubmit        Action = "submit"         // Issue the extraction request
	ActionCancel        Action = "cancel"         // Cancel pending request / close modal
	ActionDismissNotice Action = "dismiss_notice" // Dismiss the oldest notification

	// Form actions
	ActionNextField    Action = "next_field"
	ActionPrevField    Action = "prev_field"
	ActionToggleFormat Action = "toggle_format"
	ActionToggleForce  Action = "toggle_force"
	ActionOpenHistory  Action = "open_history"
	ActionOpenHelp     Action = "open_help"
	ActionFocusResult  Action = "focus_result"

	// Result panel actions
	ActionCopyFileID Action = "copy_file_id"
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"

	// History browser actions
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionClearHistory Action = "clear_history"
	ActionRerun        Action = "rerun"
)

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action
}

// NewRegistry creates an empty keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Match attempts to match a key to an action in the given context.
// Contexts are checked in priority order: specific context, then global.
func (r *Registry) Match(context Context, key string) (Action, bool) {
	if contextBindings, ok := r.bindings[context]; ok {
		if action, ok := contextBindings[key]; ok {
			return action, true
		}
	}

	if globalBindings, ok := r.bindings[ContextGlobal]; ok {
		if action, ok := globalBindings[key]; ok {
			return action, true
		}
	}

	return "", false
}
