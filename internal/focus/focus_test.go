package focus

import (
	"testing"

	"github.com/talkpad/talkpad/internal/nav"
)

func TestSetFocusNotifiesSynchronously(t *testing.T) {
	b := NewBroker()
	var seen []Section
	b.Subscribe(func(s Section) { seen = append(seen, s) })

	b.SetFocus(Sidebar)
	b.SetFocus(Keyboard)

	if len(seen) != 2 {
		t.Fatalf("expected two notifications, got %v", seen)
	}
	keyboard := 0
	for _, s := range seen {
		if s == Keyboard {
			keyboard++
		}
	}
	if keyboard != 1 || seen[len(seen)-1] != Keyboard {
		t.Fatalf("expected exactly one final keyboard notification, got %v", seen)
	}
	if b.Current() != Keyboard {
		t.Fatalf("expected keyboard focused, got %s", b.Current())
	}
}

func TestClearAlwaysResultsInNone(t *testing.T) {
	b := NewBroker()
	b.Clear()
	if b.Current() != None {
		t.Fatalf("expected none, got %s", b.Current())
	}
	b.SetFocus(Modal)
	b.Clear()
	b.Clear()
	if b.Current() != None {
		t.Fatalf("expected none after clear, got %s", b.Current())
	}
}

func TestUnsubscribeRemovesOnlyThatListener(t *testing.T) {
	b := NewBroker()
	var a, c int
	unsubA := b.Subscribe(func(Section) { a++ })
	b.Subscribe(func(Section) { c++ })

	unsubA()
	unsubA()
	b.SetFocus(Topbar)

	if a != 0 || c != 1 {
		t.Fatalf("expected only the remaining listener to fire, got a=%d c=%d", a, c)
	}
	if b.Subscribers() != 1 {
		t.Fatalf("expected one subscriber left, got %d", b.Subscribers())
	}
}

func TestSubscribersNotifiedInOrder(t *testing.T) {
	b := NewBroker()
	var order []string
	b.Subscribe(func(Section) { order = append(order, "first") })
	b.Subscribe(func(Section) { order = append(order, "second") })
	b.SetFocus(Messages)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected subscription order, got %v", order)
	}
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	b := NewBroker()
	calls := 0
	var unsub func()
	unsub = b.Subscribe(func(Section) {
		calls++
		unsub()
	})
	b.SetFocus(Sidebar)
	b.SetFocus(Topbar)
	if calls != 1 {
		t.Fatalf("expected self-removing listener to run once, got %d", calls)
	}
}

func TestOwnsGatesOnCurrentSection(t *testing.T) {
	b := NewBroker()
	if b.Owns(None) {
		t.Fatalf("expected none never to own input")
	}
	b.SetFocus(Sidebar)
	if !b.Owns(Sidebar) || b.Owns(Keyboard) {
		t.Fatalf("expected only sidebar to own input")
	}
}

func TestSelectorCyclesAndFocuses(t *testing.T) {
	b := NewBroker()
	s := NewSelector(b)
	if s.Highlighted() != Topbar {
		t.Fatalf("expected topbar first, got %s", s.Highlighted())
	}
	s.Move(nav.DirUp)
	if s.Highlighted() != Modal {
		t.Fatalf("expected wrap to modal, got %s", s.Highlighted())
	}
	s.Move(nav.DirDown)
	s.Move(nav.DirDown)
	if s.Highlighted() != Sidebar {
		t.Fatalf("expected sidebar, got %s", s.Highlighted())
	}
	if !s.Enter() {
		t.Fatalf("expected enter to focus the highlighted section")
	}
	if b.Current() != Sidebar {
		t.Fatalf("expected sidebar focused, got %s", b.Current())
	}
	if s.Move(nav.DirDown) || s.Enter() {
		t.Fatalf("expected selector to ignore input while a region is focused")
	}
}

func TestSelectorSetSectionsKeepsHighlight(t *testing.T) {
	s := NewSelector(NewBroker())
	s.Move(nav.DirDown)
	s.Move(nav.DirDown)
	s.SetSections([]Section{Topbar, Sidebar, Messages})
	if s.Highlighted() != Messages {
		t.Fatalf("expected messages kept, got %s", s.Highlighted())
	}
	s.SetSections([]Section{Topbar, Sidebar})
	if s.Highlighted() != Topbar {
		t.Fatalf("expected fallback to first section, got %s", s.Highlighted())
	}
}

func TestParseSection(t *testing.T) {
	for _, s := range append([]Section{None}, Sections...) {
		got, ok := ParseSection(s.String())
		if !ok || got != s {
			t.Fatalf("expected %s to round-trip, got %s ok=%v", s, got, ok)
		}
	}
	if _, ok := ParseSection("footer"); ok {
		t.Fatalf("expected unknown section to be rejected")
	}
}
