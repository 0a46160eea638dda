// Package notify manages transient status notifications. The center holds no
// timers: callers schedule expiry themselves (the TUI with tea.Tick, tests by
// calling Sweep with a chosen clock), so time passage stays deterministic.
package notify

import "time"

// TTL is how long a notification stays visible unless dismissed earlier.
const TTL = 3 * time.Second

// Severity classifies a notification for styling.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is one transient message. Each manages its own lifetime
// independently of the others.
type Notification struct {
	ID        int
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Expired reports whether the notification's TTL has elapsed at now.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.CreatedAt.Add(TTL))
}

// Center holds the currently visible notifications. It is not safe for
// concurrent use; all access happens on the UI loop.
type Center struct {
	nextID int
	items  []Notification
	now    func() time.Time
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// SetClock overrides the time source, for tests.
func (c *Center) SetClock(now func() time.Time) {
	c.now = now
}

// Push adds a notification and returns it. The caller is responsible for
// scheduling its expiry after TTL.
func (c *Center) Push(message string, severity Severity) Notification {
	c.nextID++
	n := Notification{
		ID:        c.nextID,
		Message:   message,
		Severity:  severity,
		CreatedAt: c.now(),
	}
	c.items = append(c.items, n)
	return n
}

// Dismiss removes the notification with the given ID. Returns false if it
// was already gone (expired or dismissed).
func (c *Center) Dismiss(id int) bool {
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Sweep removes every notification whose TTL elapsed at now and returns how
// many were removed.
func (c *Center) Sweep(now time.Time) int {
	kept := c.items[:0]
	removed := 0
	for _, n := range c.items {
		if n.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	c.items = kept
	return removed
}

// Active returns the currently visible notifications, oldest first.
func (c *Center) Active() []Notification {
	return c.items
}
