package dispatcher

import (
	"github.com/talkpad/talkpad/internal/backend"
	"github.com/talkpad/talkpad/internal/state"
	"github.com/talkpad/talkpad/internal/store"
)

type Result struct {
	ContactsUpdated bool
	SettingsUpdated bool
	// Appended counts messages added to the open conversation.
	Appended int
	// Incoming lists new inbound messages, in any conversation.
	Incoming []store.Message
	// Ingested counts messages pulled from the gateway inbox.
	Ingested int
	Err      error
}

type Dispatcher struct {
	contacts     state.ContactStore
	conversation state.ConversationStore
	settings     state.SettingsStore
}

func New(c state.ContactStore, conv state.ConversationStore, s state.SettingsStore) *Dispatcher {
	return &Dispatcher{contacts: c, conversation: conv, settings: s}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindContacts:
		if contacts, ok := evt.Data.([]store.Contact); ok {
			d.contacts.SetEntries(contacts)
			res.ContactsUpdated = true
		}
	case backend.KindMessages:
		if batch, ok := evt.Data.(backend.MessageBatch); ok {
			open := d.conversation.ContactID()
			res.Appended = d.conversation.Append(batch.Messages)
			for _, m := range batch.Messages {
				if m.Direction != store.Incoming {
					continue
				}
				res.Incoming = append(res.Incoming, m)
				if m.ContactID != open {
					d.contacts.AddUnread(m.ContactID, 1)
				}
			}
		}
	case backend.KindSettings:
		if settings, ok := evt.Data.(store.Settings); ok {
			d.settings.SetSettings(settings)
			res.SettingsUpdated = true
		}
	case backend.KindInbox:
		if n, ok := evt.Data.(int); ok {
			res.Ingested = n
		}
	}
	return res
}
