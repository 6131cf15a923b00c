package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/logging/events"
	"github.com/talkpad/talkpad/internal/store"
	"github.com/talkpad/talkpad/internal/ui/command"
)

var errNoStore = errors.New("no database configured")

type conversationLoadedMsg struct {
	contactID int64
	messages  []store.Message
}

type messageSentMsg struct {
	message store.Message
	// delivered is false when the gateway was skipped.
	delivered bool
}

type contactCreatedMsg struct {
	contact store.Contact
}

type contactUpdatedMsg struct {
	contact store.Contact
}

type settingsSavedMsg struct{}

type notificationFailedMsg struct {
	err error
}

func (m *Model) loadConversationCmd(contactID int64) tea.Cmd {
	st := m.store
	id := strconv.FormatInt(contactID, 10)
	return m.bus.Execute(command.Request{ID: "conversation:" + id, Label: "Open conversation", Run: func(ctx context.Context) (tea.Msg, error) {
		if st == nil {
			return conversationLoadedMsg{contactID: contactID}, nil
		}
		msgs, err := st.Messages(ctx, contactID)
		if err != nil {
			return nil, err
		}
		if err := st.TouchContact(ctx, contactID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if err := st.SetLastSelectedContact(ctx, contactID); err != nil {
			return nil, err
		}
		return conversationLoadedMsg{contactID: contactID, messages: msgs}, nil
	}})
}

func (m *Model) sendMessageCmd(contact store.Contact, text string) tea.Cmd {
	st, gw := m.store, m.gateway
	useGateway := m.prefs.Settings().EnableSMS && gw != nil && gw.Enabled()
	return m.bus.Execute(command.Request{ID: "sms:send", Label: "Send message", Run: func(ctx context.Context) (tea.Msg, error) {
		if st == nil {
			return nil, errNoStore
		}
		if useGateway {
			if err := gw.Send(ctx, contact.Phone, text); err != nil {
				return nil, err
			}
		}
		msg, err := st.AddMessage(ctx, contact.ID, text, store.Outgoing)
		if err != nil {
			return nil, err
		}
		return messageSentMsg{message: msg, delivered: useGateway}, nil
	}})
}

func (m *Model) createContactCmd(phone, name string) tea.Cmd {
	st := m.store
	return m.bus.Execute(command.Request{ID: "contact:create", Label: "Create contact", Run: func(ctx context.Context) (tea.Msg, error) {
		if st == nil {
			return nil, errNoStore
		}
		c, err := st.CreateContact(ctx, phone, name)
		if err != nil {
			return nil, err
		}
		return contactCreatedMsg{contact: c}, nil
	}})
}

func (m *Model) updateContactCmd(c store.Contact) tea.Cmd {
	st := m.store
	id := strconv.FormatInt(c.ID, 10)
	return m.bus.Execute(command.Request{ID: "contact:update:" + id, Label: "Save contact", Run: func(ctx context.Context) (tea.Msg, error) {
		if st == nil {
			return nil, errNoStore
		}
		if err := st.UpdateContact(ctx, c); err != nil {
			return nil, err
		}
		return contactUpdatedMsg{contact: c}, nil
	}})
}

func (m *Model) saveSettingsCmd(s store.Settings) tea.Cmd {
	st := m.store
	if st == nil {
		return nil
	}
	return m.bus.Execute(command.Request{ID: "settings:save", Label: "Save settings", Run: func(ctx context.Context) (tea.Msg, error) {
		if err := st.SaveSettings(ctx, s); err != nil {
			return nil, err
		}
		return settingsSavedMsg{}, nil
	}})
}

// notifyCmd shows a desktop notification off the event loop. Failures are
// reported but never block message handling.
func (m *Model) notifyCmd(sender, content string) tea.Cmd {
	n := m.notifier
	if !n.Enabled() {
		return nil
	}
	return func() tea.Msg {
		if err := n.Message(sender, content); err != nil {
			return notificationFailedMsg{err: err}
		}
		return nil
	}
}

// submit handles Enter on the keyboard region.
func (m *Model) submit() {
	if m.compose == composeField && m.form != nil {
		m.commitField()
		return
	}
	text := strings.TrimSpace(m.keyboard.Buffer().String())
	if text == "" {
		return
	}
	contact, ok := m.contacts.Lookup(m.contacts.Selected())
	if !ok {
		m.setError("Select a contact first")
		return
	}
	m.errMsg = ""
	m.queue(m.sendMessageCmd(contact, text))
}

func (m *Model) handleConversationLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(conversationLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.contactID != m.contacts.Selected() {
		return nil
	}
	m.conversation.SetConversation(loaded.contactID, loaded.messages)
	m.refreshMessages()
	m.messages.GotoBottom()
	return nil
}

func (m *Model) handleMessageSentMsg(msg tea.Msg) tea.Cmd {
	sent, ok := msg.(messageSentMsg)
	if !ok {
		return nil
	}
	m.keyboard.Buffer().Reset()
	if sent.message.ContactID == m.conversation.ContactID() {
		m.conversation.Append([]store.Message{sent.message})
		m.refreshMessages()
		m.messages.GotoBottom()
	}
	if sent.delivered {
		m.setInfo("Message sent")
	} else {
		m.setInfo("Message saved (SMS disabled)")
	}
	events.Action.Success("sms:send")
	return nil
}

func (m *Model) handleContactCreatedMsg(msg tea.Msg) tea.Cmd {
	created, ok := msg.(contactCreatedMsg)
	if !ok {
		return nil
	}
	m.closeModal()
	entries := append([]store.Contact{created.contact}, m.contacts.Entries()...)
	m.contacts.SetEntries(entries)
	m.refreshContacts()
	m.sidebar.Select(strconv.FormatInt(created.contact.ID, 10))
	m.openContact(created.contact.ID)
	m.setInfo(fmt.Sprintf("Added %s", created.contact.DisplayName()))
	return nil
}

func (m *Model) handleContactUpdatedMsg(msg tea.Msg) tea.Cmd {
	updated, ok := msg.(contactUpdatedMsg)
	if !ok {
		return nil
	}
	entries := m.contacts.Entries()
	for i := range entries {
		if entries[i].ID == updated.contact.ID {
			entries[i] = updated.contact
		}
	}
	m.contacts.SetEntries(entries)
	m.refreshContacts()
	m.closeModal()
	m.setInfo(fmt.Sprintf("Saved %s", updated.contact.DisplayName()))
	return nil
}

func (m *Model) handleSettingsSavedMsg(tea.Msg) tea.Cmd {
	events.Action.Success("settings:save")
	return nil
}

func (m *Model) handleCommandErrorMsg(msg tea.Msg) tea.Cmd {
	failed, ok := msg.(command.ErrorMsg)
	if !ok {
		return nil
	}
	m.setError(failed.Error())
	return nil
}

func (m *Model) handleNotificationFailedMsg(msg tea.Msg) tea.Cmd {
	failed, ok := msg.(notificationFailedMsg)
	if !ok || failed.err == nil {
		return nil
	}
	m.backendLastErr = failed.err.Error()
	return nil
}
