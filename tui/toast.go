package tui

import (
	"sync"

	"github.com/artyrk/go-uploadwidget/widget"
)

// Toasts keeps the latest notification for display. It implements
// widget.Notifier and may be called from the upload goroutine.
type Toasts struct {
	mu      sync.Mutex
	level   widget.Level
	message string
}

// NewToasts ...
func NewToasts() *Toasts {
	return &Toasts{}
}

// Notify ...
func (t *Toasts) Notify(level widget.Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.level = level
	t.message = message
}

// Current returns the notification on screen, if any.
func (t *Toasts) Current() (widget.Level, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level, t.message
}

// Clear ...
func (t *Toasts) Clear() {
	t.Notify("", "")
}
