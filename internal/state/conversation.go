package state

import "github.com/talkpad/talkpad/internal/store"

// ConversationStore holds the messages of the open conversation and the
// highest message id seen across all conversations.
type ConversationStore interface {
	ContactID() int64
	Messages() []store.Message
	SetConversation(contactID int64, messages []store.Message)
	// Append adds messages belonging to the open conversation and returns
	// how many were added. Messages for other contacts only advance LastID.
	Append(messages []store.Message) int
	LastID() int64
	SetLastID(id int64)
}

type conversationStore struct {
	contactID int64
	messages  []store.Message
	lastID    int64
}

func NewConversationStore() ConversationStore {
	return &conversationStore{}
}

func (c *conversationStore) ContactID() int64 {
	return c.contactID
}

func (c *conversationStore) Messages() []store.Message {
	return cloneMessages(c.messages)
}

func (c *conversationStore) SetConversation(contactID int64, messages []store.Message) {
	c.contactID = contactID
	c.messages = cloneMessages(messages)
	for _, m := range messages {
		if m.ID > c.lastID {
			c.lastID = m.ID
		}
	}
}

func (c *conversationStore) Append(messages []store.Message) int {
	added := 0
	for _, m := range messages {
		if m.ID > c.lastID {
			c.lastID = m.ID
		}
		if c.contactID == 0 || m.ContactID != c.contactID || c.has(m.ID) {
			continue
		}
		c.messages = append(c.messages, m)
		added++
	}
	return added
}

func (c *conversationStore) has(id int64) bool {
	for _, m := range c.messages {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (c *conversationStore) LastID() int64 {
	return c.lastID
}

func (c *conversationStore) SetLastID(id int64) {
	c.lastID = id
}

func cloneMessages(messages []store.Message) []store.Message {
	if len(messages) == 0 {
		return nil
	}
	dup := make([]store.Message, len(messages))
	copy(dup, messages)
	return dup
}
