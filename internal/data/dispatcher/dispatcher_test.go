package dispatcher

import (
	"errors"
	"testing"

	"github.com/talkpad/talkpad/internal/backend"
	"github.com/talkpad/talkpad/internal/state"
	"github.com/talkpad/talkpad/internal/store"
)

func newDispatcher() (*Dispatcher, state.ContactStore, state.ConversationStore, state.SettingsStore) {
	c := state.NewContactStore()
	conv := state.NewConversationStore()
	s := state.NewSettingsStore(store.DefaultSettings())
	return New(c, conv, s), c, conv, s
}

func TestContactsEventReplacesEntries(t *testing.T) {
	d, contacts, _, _ := newDispatcher()
	res := d.Handle(backend.Event{Kind: backend.KindContacts, Data: []store.Contact{{ID: 1}, {ID: 2}}})
	if !res.ContactsUpdated || len(contacts.Entries()) != 2 {
		t.Fatalf("expected contacts updated, got %+v", res)
	}
}

func TestMessagesEventAppendsAndCountsUnread(t *testing.T) {
	d, contacts, conv, _ := newDispatcher()
	conv.SetConversation(1, nil)
	res := d.Handle(backend.Event{Kind: backend.KindMessages, Data: backend.MessageBatch{
		Messages: []store.Message{
			{ID: 1, ContactID: 1, Direction: store.Incoming},
			{ID: 2, ContactID: 2, Direction: store.Incoming},
			{ID: 3, ContactID: 2, Direction: store.Outgoing},
		},
		LastID: 3,
	}})
	if res.Appended != 1 || len(res.Incoming) != 2 {
		t.Fatalf("expected one appended and two incoming, got %+v", res)
	}
	if contacts.Unread(2) != 1 || contacts.Unread(1) != 0 {
		t.Fatalf("expected unread only for the closed conversation, got %d/%d", contacts.Unread(1), contacts.Unread(2))
	}
}

func TestSettingsEventUpdatesStore(t *testing.T) {
	d, _, _, settings := newDispatcher()
	in := store.DefaultSettings()
	in.Theme = "light"
	if res := d.Handle(backend.Event{Kind: backend.KindSettings, Data: in}); !res.SettingsUpdated {
		t.Fatalf("expected settings updated")
	}
	if settings.Settings().Theme != "light" {
		t.Fatalf("expected light theme stored")
	}
}

func TestErrorEventsChangeNothing(t *testing.T) {
	d, contacts, _, _ := newDispatcher()
	boom := errors.New("db locked")
	res := d.Handle(backend.Event{Kind: backend.KindContacts, Data: []store.Contact{{ID: 1}}, Err: boom})
	if res.ContactsUpdated || !errors.Is(res.Err, boom) || len(contacts.Entries()) != 0 {
		t.Fatalf("expected error to be reported without updates, got %+v", res)
	}
}
