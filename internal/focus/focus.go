// Package focus tracks which screen region owns navigation input.
package focus

import (
	"github.com/talkpad/talkpad/internal/logging/events"
)

// Section names a navigable region.
type Section int

const (
	None Section = iota
	Topbar
	Sidebar
	Messages
	Keyboard
	Modal
)

// Sections lists every focusable region in selector order.
var Sections = []Section{Topbar, Sidebar, Messages, Keyboard, Modal}

func (s Section) String() string {
	switch s {
	case None:
		return "none"
	case Topbar:
		return "topbar"
	case Sidebar:
		return "sidebar"
	case Messages:
		return "messages"
	case Keyboard:
		return "keyboard"
	case Modal:
		return "modal"
	default:
		return "unknown"
	}
}

// ParseSection maps a section name back to its value.
func ParseSection(name string) (Section, bool) {
	for _, s := range append([]Section{None}, Sections...) {
		if s.String() == name {
			return s, true
		}
	}
	return None, false
}

// Listener receives the section that now owns input.
type Listener func(Section)

type subscription struct {
	id int
	fn Listener
}

// Broker holds the single focused section. It is not safe for concurrent
// use; all calls are expected on the UI goroutine.
type Broker struct {
	current Section
	subs    []subscription
	nextID  int
}

// NewBroker returns a broker with nothing focused.
func NewBroker() *Broker {
	return &Broker{}
}

// Current returns the focused section.
func (b *Broker) Current() Section {
	return b.current
}

// Owns reports whether s currently receives navigation input.
func (b *Broker) Owns(s Section) bool {
	return s != None && b.current == s
}

// SetFocus makes s the focused section and notifies every subscriber in
// subscription order before returning.
func (b *Broker) SetFocus(s Section) {
	prev := b.current
	b.current = s
	events.Focus.Change(prev.String(), s.String())
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	for _, sub := range subs {
		sub.fn(s)
	}
}

// Clear is SetFocus(None).
func (b *Broker) Clear() {
	b.SetFocus(None)
}

// Subscribe registers fn for every transition. The returned function removes
// exactly this registration and may be called more than once.
func (b *Broker) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered listeners.
func (b *Broker) Subscribers() int {
	return len(b.subs)
}
