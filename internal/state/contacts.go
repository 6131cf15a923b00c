package state

import "github.com/talkpad/talkpad/internal/store"

// ContactStore holds the sidebar's contact snapshot and unread counters.
type ContactStore interface {
	Entries() []store.Contact
	SetEntries([]store.Contact)
	Lookup(id int64) (store.Contact, bool)
	Selected() int64
	SetSelected(id int64)
	Unread(id int64) int
	AddUnread(id int64, n int)
	ClearUnread(id int64)
}

type contactStore struct {
	entries  []store.Contact
	selected int64
	unread   map[int64]int
}

func NewContactStore() ContactStore {
	return &contactStore{unread: make(map[int64]int)}
}

func (c *contactStore) Entries() []store.Contact {
	return cloneContacts(c.entries)
}

func (c *contactStore) SetEntries(entries []store.Contact) {
	c.entries = cloneContacts(entries)
}

func (c *contactStore) Lookup(id int64) (store.Contact, bool) {
	for _, entry := range c.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return store.Contact{}, false
}

func (c *contactStore) Selected() int64 {
	return c.selected
}

func (c *contactStore) SetSelected(id int64) {
	c.selected = id
	delete(c.unread, id)
}

func (c *contactStore) Unread(id int64) int {
	return c.unread[id]
}

func (c *contactStore) AddUnread(id int64, n int) {
	if n <= 0 || id == c.selected {
		return
	}
	c.unread[id] += n
}

func (c *contactStore) ClearUnread(id int64) {
	delete(c.unread, id)
}

func cloneContacts(entries []store.Contact) []store.Contact {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]store.Contact, len(entries))
	copy(dup, entries)
	return dup
}
