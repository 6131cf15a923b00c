package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/talkpad/talkpad/internal/store"
)

type fakeStore struct {
	mu       sync.Mutex
	contacts []store.Contact
	messages []store.Message
	settings []store.Settings
	touched  []int64
	last     int64
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		contacts: []store.Contact{
			{ID: 1, Phone: "+4711111111", Name: "Anna"},
			{ID: 2, Phone: "+4722222222", Name: "Berit"},
			{ID: 3, Phone: "+4733333333", Name: "Bjorn"},
		},
		messages: []store.Message{
			{ID: 1, ContactID: 2, Content: "hei fra Berit", Direction: store.Incoming, CreatedAt: time.Unix(100, 0)},
		},
		nextID: 10,
	}
}

func (f *fakeStore) Messages(_ context.Context, contactID int64) ([]store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Message
	for _, m := range f.messages {
		if m.ContactID == contactID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) AddMessage(_ context.Context, contactID int64, content string, dir store.Direction) (store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	m := store.Message{ID: f.nextID, ContactID: contactID, Content: content, Direction: dir, CreatedAt: time.Unix(200, 0)}
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeStore) CreateContact(_ context.Context, phone, name string) (store.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "" {
		name = phone
	}
	f.nextID++
	c := store.Contact{ID: f.nextID, Phone: phone, Name: name}
	f.contacts = append([]store.Contact{c}, f.contacts...)
	return c, nil
}

func (f *fakeStore) UpdateContact(_ context.Context, c store.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.contacts {
		if f.contacts[i].ID == c.ID {
			f.contacts[i] = c
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) TouchContact(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeStore) SetLastSelectedContact(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = id
	return nil
}

func (f *fakeStore) SaveSettings(_ context.Context, in store.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = append(f.settings, in)
	return nil
}

func (f *fakeStore) outgoing() []store.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Message
	for _, m := range f.messages {
		if m.Direction == store.Outgoing {
			out = append(out, m)
		}
	}
	return out
}

type sentSMS struct {
	phone, text string
}

type fakeGateway struct {
	mu   sync.Mutex
	sent []sentSMS
	err  error
}

func (g *fakeGateway) Enabled() bool { return true }

func (g *fakeGateway) Send(_ context.Context, phone, message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.sent = append(g.sent, sentSMS{phone: phone, text: message})
	return nil
}

var errGatewayDown = errors.New("gateway down")

