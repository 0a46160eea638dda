package keybinds

import "testing"

func TestMatchContextPriority(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "x", ActionQuitForce)
	r.Register(ContextForm, "x", ActionToggleFormat)

	action, ok := r.Match(ContextForm, "x")
	if !ok || action != ActionToggleFormat {
		t.Errorf("ContextForm match = (%v, %v), want specific binding to win", action, ok)
	}

	action, ok = r.Match(ContextHistory, "x")
	if !ok || action != ActionQuitForce {
		t.Errorf("ContextHistory match = (%v, %v), want global fallback", action, ok)
	}
}

func TestMatchUnbound(t *testing.T) {
	r := NewRegistry()
	if action, ok := r.Match(ContextForm, "z"); ok {
		t.Errorf("unbound key matched %v", action)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
	}{
		{ContextForm, "ctrl+enter", ActionSubmit},
		{ContextForm, "alt+enter", ActionSubmit},
		{ContextHistory, "ctrl+enter", ActionSubmit}, // global, any context
		{ContextForm, "esc", ActionCancel},
		{ContextForm, "ctrl+c", ActionQuitForce},
		{ContextForm, "tab", ActionNextField},
		{ContextForm, "ctrl+t", ActionToggleFormat},
		{ContextResult, "y", ActionCopyFileID},
		{ContextHistory, "enter", ActionRerun},
	}

	for _, tt := range tests {
		action, ok := r.Match(tt.context, tt.key)
		if !ok || action != tt.want {
			t.Errorf("Match(%s, %q) = (%v, %v), want %v", tt.context, tt.key, action, ok, tt.want)
		}
	}
}
