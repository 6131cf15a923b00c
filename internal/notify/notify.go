// Package notify raises desktop notifications for inbound messages.
package notify

import (
	"fmt"
	"unicode/utf8"

	"github.com/gen2brain/beeep"
	"github.com/talkpad/talkpad/internal/logging"
)

const (
	appTitle       = "Talkpad"
	maxPreviewRune = 80
)

// NotifyFunc matches beeep.Notify.
type NotifyFunc func(title, message string, icon any) error

// Notifier sends desktop notifications when enabled.
type Notifier struct {
	enabled bool
	send    NotifyFunc
}

// New returns a notifier backed by beeep.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: beeep.Notify}
}

// WithFunc returns a notifier that calls fn instead of beeep.
func WithFunc(enabled bool, fn NotifyFunc) *Notifier {
	return &Notifier{enabled: enabled, send: fn}
}

// SetEnabled toggles delivery.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Enabled reports whether notifications are delivered.
func (n *Notifier) Enabled() bool {
	return n != nil && n.enabled
}

// Send shows title and message. Disabled notifiers do nothing.
func (n *Notifier) Send(title, message string) error {
	if !n.Enabled() || n.send == nil {
		return nil
	}
	if err := n.send(title, message, ""); err != nil {
		err = fmt.Errorf("notify: %w", err)
		logging.Error(err)
		return err
	}
	return nil
}

// Message announces a message from sender, shortening long bodies.
func (n *Notifier) Message(sender, content string) error {
	return n.Send(appTitle+": "+sender, preview(content))
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= maxPreviewRune {
		return content
	}
	runes := []rune(content)
	return string(runes[:maxPreviewRune-1]) + "…"
}
