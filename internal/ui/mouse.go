package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/focus"
	"github.com/talkpad/talkpad/internal/nav/list"
)

const wheelLines = 3

// handleMouseMsg scrolls the conversation with the wheel and maps left clicks
// onto the areas recorded by the last View. Clicks work in both navigation
// modes.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || ev.Action != tea.MouseActionPress {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		if m.screen == ScreenChat {
			m.messages.ScrollUp(wheelLines)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if m.screen == ScreenChat {
			m.messages.ScrollDown(wheelLines)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	target, ok := m.hits.at(ev.X, ev.Y)
	if !ok {
		return nil
	}
	m.click(target)
	return nil
}

func (m *Model) click(target hit) {
	switch target.kind {
	case hitTile:
		if m.screen == ScreenBoard && m.board.SetPosition(target.pos) {
			m.board.Activate()
		}
	case hitRegion:
		m.focusRegion(target.section)
	case hitItem:
		m.focusRegion(target.section)
		if l := m.listFor(target.section); l != nil && l.SetIndex(target.index) {
			l.Activate()
		}
	case hitKey:
		m.focusRegion(focus.Keyboard)
		m.keyboard.PressAt(target.pos)
	}
}

func (m *Model) focusRegion(s focus.Section) {
	if m.screen != ScreenChat || m.broker.Owns(s) {
		return
	}
	m.broker.SetFocus(s)
}

func (m *Model) listFor(s focus.Section) *list.Navigator {
	switch s {
	case focus.Topbar:
		return m.topbar
	case focus.Sidebar:
		return m.sidebar
	case focus.Modal:
		return m.modalList()
	}
	return nil
}
