package tui

// UI layout constants

const (
	// FormHeight is the vertical space reserved for the form panel,
	// including its border.
	FormHeight = 9

	// StatusBarHeight is the single status line at the bottom.
	StatusBarHeight = 1

	// MaxNotifications is how many notifications render at once; older
	// ones stay queued in the center until they expire.
	MaxNotifications = 3

	// HistoryModalLimit is how many history entries are loaded into the
	// browser.
	HistoryModalLimit = 200

	// APIKeyCharLimit and QueryCharLimit bound the form inputs.
	APIKeyCharLimit = 128
	QueryCharLimit  = 256
)
