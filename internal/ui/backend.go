package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/backend"
	"github.com/talkpad/talkpad/internal/focus"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = fmt.Sprintf("%s: %v", evt.Kind, evt.Err)
		return nil
	}
	if m.backendLastErr != "" && m.backendHealthy() {
		m.backendLastErr = ""
	}

	res := m.dispatcher.Handle(evt)
	var cmds []tea.Cmd

	if res.ContactsUpdated {
		m.refreshContacts()
	}
	if res.SettingsUpdated {
		m.applySettings()
		if !m.virtualKeyboard() && m.broker.Owns(focus.Keyboard) && m.arrowNavigation() {
			m.setInfo("Virtual keyboard hidden; type directly")
		}
	}
	if res.Appended > 0 {
		m.refreshMessages()
		m.messages.GotoBottom()
	}
	if len(res.Incoming) > 0 {
		// Unread counters changed.
		m.refreshContacts()
		for _, in := range res.Incoming {
			sender := fmt.Sprintf("#%d", in.ContactID)
			if c, ok := m.contacts.Lookup(in.ContactID); ok {
				sender = c.DisplayName()
			}
			if cmd := m.notifyCmd(sender, in.Content); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if res.Ingested > 0 {
		m.setInfo(fmt.Sprintf("%d new message(s) received", res.Ingested))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) backendHealthy() bool {
	for _, err := range m.backendState {
		if err != nil {
			return false
		}
	}
	return true
}
