// Package list implements one-dimensional navigation for buttons, contacts,
// menu entries and form fields. Every region owns its own Navigator.
package list

import (
	"github.com/talkpad/talkpad/internal/logging/events"
)

// Item is one navigable entry. ID is opaque to the navigator and is what the
// region hands back to its collaborator.
type Item struct {
	ID     string
	Label  string
	Detail string
	Action func()
}

// Navigator tracks the current index over an ordered item list.
type Navigator struct {
	Region string
	// Wrap makes Next/Previous wrap at the ends instead of clamping.
	Wrap bool

	full       []Item
	items      []Item
	cursor     int
	filter     string
	lastCursor int
}

// New returns a clamping navigator at index 0.
func New(region string, items []Item) *Navigator {
	n := &Navigator{Region: region, lastCursor: -1}
	n.SetItems(items)
	return n
}

// NewWrapping returns a navigator whose moves wrap around.
func NewWrapping(region string, items []Item) *Navigator {
	n := New(region, items)
	n.Wrap = true
	return n
}

// Items returns the visible items.
func (n *Navigator) Items() []Item {
	return cloneItems(n.items)
}

// Len returns the number of visible items.
func (n *Navigator) Len() int {
	return len(n.items)
}

// Index returns the current index, or -1 for an empty list.
func (n *Navigator) Index() int {
	if len(n.items) == 0 {
		return -1
	}
	return n.cursor
}

// Current returns the item under the cursor.
func (n *Navigator) Current() (Item, bool) {
	if len(n.items) == 0 {
		return Item{}, false
	}
	return n.items[n.cursor], true
}

// IsFocused reports whether index i holds the cursor.
func (n *Navigator) IsFocused(i int) bool {
	return len(n.items) > 0 && n.cursor == i
}

// SetItems replaces the list, keeping the cursor in range and re-applying
// the active filter.
func (n *Navigator) SetItems(items []Item) {
	n.full = cloneItems(items)
	n.applyFilter()
}

// Next moves one item forward.
func (n *Navigator) Next() bool {
	return n.step(1)
}

// Previous moves one item back.
func (n *Navigator) Previous() bool {
	return n.step(-1)
}

func (n *Navigator) step(delta int) bool {
	total := len(n.items)
	if total == 0 {
		n.cursor = 0
		return false
	}
	old := n.cursor
	next := n.cursor + delta
	if n.Wrap {
		next = ((next % total) + total) % total
	} else if next < 0 {
		next = 0
	} else if next >= total {
		next = total - 1
	}
	n.cursor = next
	if n.cursor != old {
		events.Nav.ListCursor(n.Region, n.cursor)
		return true
	}
	return false
}

// Home moves to the first item.
func (n *Navigator) Home() bool {
	if len(n.items) == 0 {
		n.cursor = 0
		return false
	}
	old := n.cursor
	n.cursor = 0
	return old != n.cursor
}

// End moves to the last item.
func (n *Navigator) End() bool {
	if len(n.items) == 0 {
		n.cursor = 0
		return false
	}
	old := n.cursor
	n.cursor = len(n.items) - 1
	return old != n.cursor
}

// Select moves the cursor onto the item with id.
func (n *Navigator) Select(id string) bool {
	for i, item := range n.items {
		if item.ID == id {
			n.cursor = i
			return true
		}
	}
	return false
}

// SetIndex moves the cursor onto visible item i. Pointer input uses it to
// jump straight to a row.
func (n *Navigator) SetIndex(i int) bool {
	if i < 0 || i >= len(n.items) {
		return false
	}
	if n.cursor != i {
		n.cursor = i
		events.Nav.ListCursor(n.Region, n.cursor)
	}
	return true
}

// Reset returns the cursor to the first item. Regions call it when they gain
// focus.
func (n *Navigator) Reset() {
	n.cursor = 0
}

// Activate runs the current item's action once. An empty list or an item
// without an action is a no-op.
func (n *Navigator) Activate() bool {
	item, ok := n.Current()
	if !ok {
		return false
	}
	events.Nav.ListActivate(n.Region, item.ID)
	if item.Action == nil {
		return false
	}
	item.Action()
	return true
}

func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
