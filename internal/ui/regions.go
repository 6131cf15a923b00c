package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/focus"
	"github.com/talkpad/talkpad/internal/nav/grid"
	"github.com/talkpad/talkpad/internal/nav/list"
	"github.com/talkpad/talkpad/internal/store"
	"github.com/talkpad/talkpad/internal/theme"
)

// chatSections are the regions the selector cycles through. Modal joins them
// while a modal is open.
var chatSections = []focus.Section{focus.Topbar, focus.Sidebar, focus.Messages, focus.Keyboard}

const smsToolTile = "1"

var sizeSteps = []float64{0.75, 1, 1.25, 1.5, 2}

const (
	sidebarMinWidth = 20
	sidebarMaxWidth = 36
)

func (m *Model) onFocusChange(s focus.Section) {
	if m.compose == composeField && s != focus.Keyboard {
		m.compose = composeMessage
		m.keyboard.Buffer().Reset()
	}
	switch s {
	case focus.Topbar:
		m.topbar.Reset()
	case focus.Sidebar:
		m.sidebar.Reset()
	}
}

func (m *Model) onTile(t grid.Tile) {
	if t.ID == smsToolTile {
		m.openChat()
		return
	}
	m.setInfo(t.Label)
}

func (m *Model) openChat() {
	m.screen = ScreenChat
	m.board.Deselect()
	m.broker.Clear()
	m.clearStatus()
}

func (m *Model) openBoard() {
	m.closeModal()
	m.broker.Clear()
	m.screen = ScreenBoard
	m.clearStatus()
}

func (m *Model) topbarItems() []list.Item {
	return []list.Item{
		{ID: "board", Label: "Board", Action: m.openBoard},
		{ID: "new-contact", Label: "New contact", Action: func() { m.openContactForm(store.Contact{}) }},
		{ID: "edit-contact", Label: "Edit contact", Action: m.editSelectedContact},
		{ID: "settings", Label: "Settings", Action: m.openSettings},
		{ID: "quit", Label: "Quit", Action: func() { m.queue(tea.Quit) }},
	}
}

func (m *Model) openSettings() {
	m.closeModal()
	m.settings.SetItems(m.settingsItems())
	m.openModal(modalSettings)
}

// openModal shows kind in place of the conversation and focuses it.
func (m *Model) openModal(kind modalKind) {
	m.modal = kind
	if l := m.modalList(); l != nil {
		l.Reset()
	}
	m.syncSections()
	m.broker.SetFocus(focus.Modal)
}

// closeModal hides the open modal. A contact form hands the message draft
// back to the keyboard buffer.
func (m *Model) closeModal() {
	if m.modal == modalNone {
		return
	}
	if m.form != nil {
		m.compose = composeMessage
		m.keyboard.Buffer().Set(m.form.draft)
		m.form = nil
	}
	m.modal = modalNone
	m.syncSections()
	m.broker.Clear()
}

func (m *Model) modalList() *list.Navigator {
	switch m.modal {
	case modalSettings:
		return m.settings
	case modalContact:
		if m.form != nil {
			return m.form.fields
		}
	}
	return nil
}

func (m *Model) syncSections() {
	sections := append([]focus.Section(nil), chatSections...)
	if m.modal != modalNone {
		sections = append(sections, focus.Modal)
	}
	m.selector.SetSections(sections)
}

func (m *Model) refreshContacts() {
	entries := m.contacts.Entries()
	items := make([]list.Item, 0, len(entries))
	for _, c := range entries {
		id := c.ID
		items = append(items, list.Item{
			ID:     strconv.FormatInt(id, 10),
			Label:  c.DisplayName(),
			Detail: c.Phone,
			Action: func() { m.openContact(id) },
		})
	}
	m.sidebar.SetItems(items)
}

func (m *Model) openContact(id int64) {
	m.contacts.SetSelected(id)
	m.compose = composeMessage
	m.clearStatus()
	m.queue(m.loadConversationCmd(id))
	m.broker.SetFocus(focus.Keyboard)
}

func (m *Model) settingsItems() []list.Item {
	s := m.prefs.Settings()
	return []list.Item{
		{ID: "theme", Label: fmt.Sprintf("Theme: %s", s.Theme), Action: m.cycleTheme},
		{ID: "size", Label: fmt.Sprintf("Size: %gx", s.SizeMultiplier), Action: m.cycleSize},
		{ID: "navigation", Label: fmt.Sprintf("Navigation: %s", m.navigationMode()), Action: m.toggleNavigation},
		{ID: "keyboard", Label: fmt.Sprintf("Virtual keyboard: %s", onOff(s.EnableVirtualKeyboard)), Action: func() {
			m.updateSettings(func(s *store.Settings) { s.EnableVirtualKeyboard = !s.EnableVirtualKeyboard })
		}},
		{ID: "notifications", Label: fmt.Sprintf("Notifications: %s", onOff(s.NotificationsEnabled)), Action: func() {
			m.updateSettings(func(s *store.Settings) { s.NotificationsEnabled = !s.NotificationsEnabled })
		}},
		{ID: "sms", Label: fmt.Sprintf("Send SMS: %s", onOff(s.EnableSMS)), Action: func() {
			m.updateSettings(func(s *store.Settings) { s.EnableSMS = !s.EnableSMS })
		}},
		{ID: "close", Label: "Close", Action: m.closeModal},
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m *Model) cycleTheme() {
	m.updateSettings(func(s *store.Settings) {
		names := theme.Names()
		next := names[0]
		for i, name := range names {
			if name == s.Theme {
				next = names[(i+1)%len(names)]
			}
		}
		s.Theme = next
	})
}

func (m *Model) cycleSize() {
	m.updateSettings(func(s *store.Settings) {
		next := sizeSteps[0]
		for i, step := range sizeSteps {
			if step == s.SizeMultiplier {
				next = sizeSteps[(i+1)%len(sizeSteps)]
			}
		}
		s.SizeMultiplier = next
	})
}

func (m *Model) toggleNavigation() {
	mode := store.NavigationArrowKeys
	if m.arrowNavigation() {
		mode = store.NavigationDefault
	}
	m.navigationOverride = ""
	m.updateSettings(func(s *store.Settings) { s.NavigationMode = mode })
}

// updateSettings applies fn locally and persists the result.
func (m *Model) updateSettings(fn func(*store.Settings)) {
	s := m.prefs.Settings()
	fn(&s)
	m.prefs.SetSettings(s)
	m.applySettings()
	m.queue(m.saveSettingsCmd(s))
}

// applySettings derives styles, notifier state and region layout from the
// current settings.
func (m *Model) applySettings() {
	s := m.prefs.Settings()
	m.styles = theme.For(s.Theme, s.SizeMultiplier)
	if m.notifier != nil {
		m.notifier.SetEnabled(s.NotificationsEnabled)
	}
	if m.modal == modalSettings {
		m.settings.SetItems(m.settingsItems())
	}
	m.resize()
}

func (m *Model) navigationMode() string {
	if m.navigationOverride != "" {
		return m.navigationOverride
	}
	mode := m.prefs.Settings().NavigationMode
	if mode == "" {
		return store.NavigationArrowKeys
	}
	return mode
}

// arrowNavigation reports whether arrow keys and the gamepad drive the
// on-screen keyboard.
func (m *Model) arrowNavigation() bool {
	return m.navigationMode() == store.NavigationArrowKeys
}

func (m *Model) virtualKeyboard() bool {
	return m.prefs.Settings().EnableVirtualKeyboard
}

func (m *Model) sidebarWidth() int {
	w := m.width / 4
	if w < sidebarMinWidth {
		w = sidebarMinWidth
	}
	if w > sidebarMaxWidth {
		w = sidebarMaxWidth
	}
	return w
}

// resize fits the message viewport between the fixed chrome rows.
func (m *Model) resize() {
	chrome := 1 + 3 + 3 + 2 + 1 // header, topbar, input, body border, status
	if m.virtualKeyboard() {
		chrome += m.keyboard.Layout().Rows()
	}
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	w := m.width - m.sidebarWidth() - 4
	if w < 10 {
		w = 10
	}
	m.messages.Width = w
	m.messages.Height = h
	m.refreshMessages()
}
