// Package keyboard implements the on-screen keyboard: a ragged grid with a
// spacebar row, an optional arrow cluster, and the text buffer its keys edit.
package keyboard

import (
	"unicode"

	"github.com/talkpad/talkpad/internal/logging/events"
	"github.com/talkpad/talkpad/internal/nav"
)

// Callbacks connect key activations to the hosting surface. Each field is
// optional; unset callbacks fall back to the documented default.
type Callbacks struct {
	// OnSubmit replaces inserting a newline on Enter.
	OnSubmit func()
	// OnCancel runs on Back; without it Back does nothing.
	OnCancel func()
	// OnScroll receives the arrow-cluster up/down keys.
	OnScroll func(nav.Direction)
}

// Keyboard couples a Layout with the cursor state and the text buffer.
type Keyboard struct {
	layout    *Layout
	state     State
	buffer    *Buffer
	capsLock  bool
	callbacks Callbacks
}

// New returns a keyboard on the top-left key editing buf. A nil buf gets a
// fresh empty buffer and a nil layout an empty one with no keys.
func New(layout *Layout, buf *Buffer, cb Callbacks) *Keyboard {
	if buf == nil {
		buf = &Buffer{}
	}
	if layout == nil {
		layout = NewLayout(nil, Options{})
	}
	k := &Keyboard{layout: layout, buffer: buf, callbacks: cb}
	if space := layout.SpaceRow(); space > 0 {
		k.state.Memory = nav.Position{Col: 0, Row: space - 1}
	}
	return k
}

// Layout returns the keyboard layout.
func (k *Keyboard) Layout() *Layout { return k.layout }

// Buffer returns the edited text buffer.
func (k *Keyboard) Buffer() *Buffer { return k.buffer }

// State returns the navigation state.
func (k *Keyboard) State() State { return k.state }

// Position returns the cursor.
func (k *Keyboard) Position() nav.Position { return k.state.Pos }

// CapsLock reports whether letters are typed upper case.
func (k *Keyboard) CapsLock() bool { return k.capsLock }

// SetCallbacks replaces the activation callbacks.
func (k *Keyboard) SetCallbacks(cb Callbacks) { k.callbacks = cb }

// IsFocused reports whether (col, row) holds the cursor.
func (k *Keyboard) IsFocused(col, row int) bool {
	return k.state.Pos.Col == col && k.state.Pos.Row == row
}

// Move applies one navigation step and reports whether the cursor moved.
func (k *Keyboard) Move(dir nav.Direction) bool {
	next := Step(k.layout, k.state, dir)
	moved := next.Pos != k.state.Pos
	k.state = next
	if moved {
		events.Keyboard.Cursor(next.Pos.Col, next.Pos.Row)
	}
	return moved
}

// Activate presses the key under the cursor.
func (k *Keyboard) Activate() bool {
	key, ok := k.layout.Key(k.state.Pos)
	if !ok {
		return false
	}
	return k.Press(key)
}

// PressAt moves the cursor onto p and presses the key there. Memory is left
// alone so leaving the spacebar row still returns to the last normal row.
func (k *Keyboard) PressAt(p nav.Position) bool {
	key, ok := k.layout.Key(p)
	if !ok {
		return false
	}
	if p != k.state.Pos {
		k.state.Pos = p
		events.Keyboard.Cursor(p.Col, p.Row)
	}
	return k.Press(key)
}

// PressLabel presses the first key whose label matches label, ignoring case.
func (k *Keyboard) PressLabel(label string) bool {
	pos, ok := k.layout.Find(label)
	if !ok {
		return false
	}
	key, _ := k.layout.Key(pos)
	return k.Press(key)
}

// Press applies key to the buffer and reports whether anything happened.
func (k *Keyboard) Press(key Key) bool {
	handled := k.apply(key.Action)
	events.Keyboard.Press(key.Action.Kind.String(), key.Label, k.buffer.Pointer(), k.buffer.Len())
	return handled
}

func (k *Keyboard) apply(a Action) bool {
	b := k.buffer
	switch a.Kind {
	case ActionChar:
		b.Insert(k.fold(a.Char))
		return true
	case ActionSpace:
		b.Insert(' ')
		return true
	case ActionBackspace:
		return b.DeleteBackward()
	case ActionCapsLock:
		k.capsLock = !k.capsLock
		return true
	case ActionSubmit:
		if k.callbacks.OnSubmit != nil {
			k.callbacks.OnSubmit()
			return true
		}
		b.Insert('\n')
		return true
	case ActionCancel:
		if k.callbacks.OnCancel != nil {
			k.callbacks.OnCancel()
			return true
		}
		return false
	case ActionPointerMove:
		switch a.Dir {
		case nav.DirLeft:
			return b.MovePointer(-1)
		case nav.DirRight:
			return b.MovePointer(1)
		}
		return false
	case ActionScroll:
		if k.callbacks.OnScroll != nil {
			k.callbacks.OnScroll(a.Dir)
			return true
		}
		return false
	}
	return false
}

func (k *Keyboard) fold(r rune) rune {
	if k.capsLock {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}

// DisplayLabel returns the label as it should be drawn given caps lock.
func (k *Keyboard) DisplayLabel(key Key) string {
	if key.Action.Kind != ActionChar {
		return key.Label
	}
	return string(k.fold(key.Action.Char))
}
