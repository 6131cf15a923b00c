package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Direction tells who sent a message.
type Direction string

const (
	Incoming Direction = "INCOMING"
	Outgoing Direction = "OUTGOING"
)

// Message is one SMS in a conversation.
type Message struct {
	ID        int64
	ContactID int64
	Content   string
	Direction Direction
	CreatedAt time.Time
}

const messageColumns = `id, contact_id, content, direction, created_at`

func (s *Store) queryMessages(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var dir string
		var created int64
		if err := rows.Scan(&m.ID, &m.ContactID, &m.Content, &dir, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Direction = Direction(dir)
		m.CreatedAt = fromUnix(created)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Messages returns a contact's conversation, oldest first.
func (s *Store) Messages(ctx context.Context, contactID int64) ([]Message, error) {
	return s.queryMessages(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE contact_id = ? ORDER BY created_at, id`, contactID)
}

// MessagesSince returns every message with an id greater than afterID.
func (s *Store) MessagesSince(ctx context.Context, afterID int64) ([]Message, error) {
	return s.queryMessages(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id > ? ORDER BY id`, afterID)
}

// LatestMessageID returns the highest message id, or 0 for an empty table.
func (s *Store) LatestMessageID(ctx context.Context) (int64, error) {
	var id int64
	if err := s.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM messages`).Scan(&id); err != nil {
		return 0, fmt.Errorf("latest message: %w", err)
	}
	return id, nil
}

// AddMessage appends a message to a contact's conversation.
func (s *Store) AddMessage(ctx context.Context, contactID int64, content string, dir Direction) (Message, error) {
	if _, err := s.Contact(ctx, contactID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Message{}, err
		}
		return Message{}, fmt.Errorf("add message: %w", err)
	}
	now := s.now()
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO messages (contact_id, content, direction, created_at) VALUES (?, ?, ?, ?)`,
		contactID, content, string(dir), toUnix(now))
	if err != nil {
		return Message{}, fmt.Errorf("add message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Message{}, fmt.Errorf("add message: %w", err)
	}
	return Message{ID: id, ContactID: contactID, Content: content, Direction: dir, CreatedAt: fromUnix(toUnix(now))}, nil
}
