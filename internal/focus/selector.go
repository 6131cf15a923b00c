package focus

import (
	"github.com/talkpad/talkpad/internal/logging/events"
	"github.com/talkpad/talkpad/internal/nav"
)

// Selector cycles through section names while nothing is focused. Enter on
// the highlighted section hands it focus.
type Selector struct {
	broker   *Broker
	sections []Section
	index    int
}

// NewSelector builds a selector over the given sections. An empty list uses
// Sections.
func NewSelector(b *Broker, sections ...Section) *Selector {
	if len(sections) == 0 {
		sections = Sections
	}
	list := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s != None {
			list = append(list, s)
		}
	}
	return &Selector{broker: b, sections: list}
}

// SetSections replaces the selectable sections, keeping the highlight on the
// same section when it is still present.
func (s *Selector) SetSections(sections []Section) {
	current := s.Highlighted()
	s.sections = s.sections[:0]
	for _, sec := range sections {
		if sec != None {
			s.sections = append(s.sections, sec)
		}
	}
	s.index = 0
	for i, sec := range s.sections {
		if sec == current {
			s.index = i
		}
	}
}

// Sections returns the selectable sections.
func (s *Selector) Sections() []Section {
	out := make([]Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Highlighted returns the section under the selector cursor.
func (s *Selector) Highlighted() Section {
	if len(s.sections) == 0 {
		return None
	}
	return s.sections[s.index]
}

// Index returns the selector cursor.
func (s *Selector) Index() int {
	return s.index
}

// Active reports whether the selector owns navigation input.
func (s *Selector) Active() bool {
	return s.broker.Current() == None
}

// Move cycles the highlight. Up and Left go back, Down and Right go forward;
// both wrap.
func (s *Selector) Move(dir nav.Direction) bool {
	if !s.Active() || len(s.sections) == 0 {
		return false
	}
	delta := 0
	switch dir {
	case nav.DirUp, nav.DirLeft:
		delta = -1
	case nav.DirDown, nav.DirRight:
		delta = 1
	default:
		return false
	}
	s.index = nav.Wrap(s.index, delta, len(s.sections))
	events.Focus.Select(s.index, s.Highlighted().String())
	return true
}

// Enter focuses the highlighted section.
func (s *Selector) Enter() bool {
	if !s.Active() || len(s.sections) == 0 {
		return false
	}
	s.broker.SetFocus(s.Highlighted())
	return true
}
