package ui

import (
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/focus"
	"github.com/talkpad/talkpad/internal/nav/keyboard"
)

// handleTextInput types printable keys into the focused region: the contact
// filter in the sidebar, the compose buffer on the keyboard.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.screen != ScreenChat {
		return false
	}
	var runes []rune
	switch msg.Type {
	case tea.KeySpace:
		runes = []rune{' '}
	case tea.KeyRunes:
		if msg.Alt {
			return false
		}
		runes = msg.Runes
	default:
		return false
	}
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if unicode.IsControl(r) {
			return false
		}
	}
	switch m.broker.Current() {
	case focus.Sidebar:
		m.sidebar.SetFilter(m.sidebar.Filter() + string(runes))
		return true
	case focus.Keyboard:
		for _, r := range runes {
			m.typeRune(r)
		}
		return true
	}
	return false
}

// typeRune presses the on-screen key for r when there is one, so caps lock
// applies. Upper-case input and runes without a key go straight into the
// buffer.
func (m *Model) typeRune(r rune) {
	if r == ' ' {
		m.keyboard.PressLabel(keyboard.LabelSpace)
		return
	}
	if !unicode.IsUpper(r) && m.keyboard.PressLabel(string(r)) {
		return
	}
	m.keyboard.Buffer().Insert(r)
}

func (m *Model) trimFilter() bool {
	filter := m.sidebar.Filter()
	if filter == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(filter)
	m.sidebar.SetFilter(filter[:len(filter)-size])
	return true
}

func (m *Model) clearFilter() bool {
	if !m.broker.Owns(focus.Sidebar) || m.sidebar.Filter() == "" {
		return false
	}
	m.sidebar.SetFilter("")
	return true
}
