package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/focus"
	"github.com/talkpad/talkpad/internal/gamepad"
	"github.com/talkpad/talkpad/internal/nav"
	"github.com/talkpad/talkpad/internal/nav/keyboard"
	"github.com/talkpad/talkpad/internal/nav/list"
)

// GamepadMsg carries one discrete event from the analog adapter.
type GamepadMsg struct {
	Event gamepad.Event
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, keys.Back):
		m.back()
		return nil
	case key.Matches(keyMsg, keys.Up):
		m.navigate(nav.DirUp)
		return nil
	case key.Matches(keyMsg, keys.Down):
		m.navigate(nav.DirDown)
		return nil
	case key.Matches(keyMsg, keys.Left):
		m.navigate(nav.DirLeft)
		return nil
	case key.Matches(keyMsg, keys.Right):
		m.navigate(nav.DirRight)
		return nil
	case key.Matches(keyMsg, keys.Enter):
		m.activate()
		return nil
	case key.Matches(keyMsg, keys.Backspace):
		m.backspace()
		return nil
	case key.Matches(keyMsg, keys.ClearFilter):
		m.clearFilter()
		return nil
	case key.Matches(keyMsg, keys.Home):
		m.jump(true)
		return nil
	case key.Matches(keyMsg, keys.End):
		m.jump(false)
		return nil
	}
	m.handleTextInput(keyMsg)
	return nil
}

// handleGamepadMsg routes adapter events like their key equivalents. They are
// ignored unless arrow navigation is enabled.
func (m *Model) handleGamepadMsg(msg tea.Msg) tea.Cmd {
	pad, ok := msg.(GamepadMsg)
	if !ok || !m.arrowNavigation() {
		return nil
	}
	switch pad.Event.Kind {
	case gamepad.EventMove:
		m.navigate(pad.Event.Dir)
	case gamepad.EventActivate:
		m.activate()
	case gamepad.EventBackspace:
		m.backspace()
	}
	return nil
}

// navigate sends one directional step to whichever region owns input. In
// DEFAULT mode the board, the selector and the lists are pointer driven and
// arrows only move the text pointer or scroll.
func (m *Model) navigate(dir nav.Direction) bool {
	if m.screen == ScreenBoard {
		return m.arrowNavigation() && m.board.Move(dir)
	}
	if !m.arrowNavigation() && m.pointerDriven() {
		return false
	}
	switch m.broker.Current() {
	case focus.None:
		return m.selector.Move(dir)
	case focus.Topbar:
		switch dir {
		case nav.DirLeft, nav.DirUp:
			return m.topbar.Previous()
		case nav.DirRight, nav.DirDown:
			return m.topbar.Next()
		}
	case focus.Sidebar:
		switch dir {
		case nav.DirUp:
			return m.sidebar.Previous()
		case nav.DirDown:
			return m.sidebar.Next()
		}
	case focus.Modal:
		l := m.modalList()
		if l == nil {
			return false
		}
		switch dir {
		case nav.DirUp:
			return l.Previous()
		case nav.DirDown:
			return l.Next()
		}
	case focus.Messages:
		if dir.Vertical() {
			m.scrollMessages(dir)
			return true
		}
	case focus.Keyboard:
		if m.arrowNavigation() && m.virtualKeyboard() {
			return m.keyboard.Move(dir)
		}
		switch dir {
		case nav.DirLeft:
			return m.keyboard.Buffer().MovePointer(-1)
		case nav.DirRight:
			return m.keyboard.Buffer().MovePointer(1)
		default:
			m.scrollMessages(dir)
			return true
		}
	}
	return false
}

// activate triggers the element under the focused region's cursor. Enter
// still submits the keyboard buffer in DEFAULT mode.
func (m *Model) activate() bool {
	if m.screen == ScreenBoard {
		return m.arrowNavigation() && m.board.Activate()
	}
	if !m.arrowNavigation() && m.pointerDriven() {
		return false
	}
	switch m.broker.Current() {
	case focus.None:
		return m.selector.Enter()
	case focus.Topbar:
		return m.topbar.Activate()
	case focus.Sidebar:
		return m.sidebar.Activate()
	case focus.Modal:
		if l := m.modalList(); l != nil {
			return l.Activate()
		}
	case focus.Keyboard:
		if m.arrowNavigation() && m.virtualKeyboard() {
			return m.keyboard.Activate()
		}
		m.submit()
		return true
	}
	return false
}

func (m *Model) backspace() bool {
	if m.screen != ScreenChat {
		return false
	}
	switch m.broker.Current() {
	case focus.Keyboard:
		return m.keyboard.PressLabel(keyboard.LabelBackspace)
	case focus.Sidebar:
		return m.trimFilter()
	}
	return false
}

// pointerDriven reports whether the focused chat region is one that DEFAULT
// mode leaves to the mouse.
func (m *Model) pointerDriven() bool {
	switch m.broker.Current() {
	case focus.None, focus.Topbar, focus.Sidebar, focus.Modal:
		return true
	}
	return false
}

// back leaves a field edit, then the focused region, then an open modal and
// finally the chat screen.
func (m *Model) back() {
	if m.screen == ScreenBoard {
		m.board.Deselect()
		return
	}
	switch {
	case m.compose == composeField && m.broker.Owns(focus.Keyboard):
		m.leaveField()
	case m.broker.Current() != focus.None:
		m.broker.Clear()
	case m.modal != modalNone:
		m.closeModal()
	default:
		m.openBoard()
	}
}

func (m *Model) jump(first bool) {
	if m.screen != ScreenChat {
		return
	}
	var l *list.Navigator
	switch m.broker.Current() {
	case focus.Topbar:
		l = m.topbar
	case focus.Sidebar:
		l = m.sidebar
	case focus.Modal:
		l = m.modalList()
	case focus.Messages:
		if first {
			m.messages.GotoTop()
		} else {
			m.messages.GotoBottom()
		}
		return
	default:
		return
	}
	if l == nil || !m.arrowNavigation() {
		return
	}
	if first {
		l.Home()
	} else {
		l.End()
	}
}

func (m *Model) scrollMessages(dir nav.Direction) {
	switch dir {
	case nav.DirUp:
		m.messages.ScrollUp(1)
	case nav.DirDown:
		m.messages.ScrollDown(1)
	}
}
