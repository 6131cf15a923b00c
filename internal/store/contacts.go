package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Contact is a person messages are exchanged with.
type Contact struct {
	ID          int64
	Phone       string
	Name        string
	CreatedAt   time.Time
	LastVisited time.Time
}

// DisplayName returns the name, falling back to the phone number.
func (c Contact) DisplayName() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return c.Phone
}

const contactColumns = `id, phone, name, created_at, last_visited`

func scanContact(row interface{ Scan(...any) error }) (Contact, error) {
	var c Contact
	var created, visited int64
	if err := row.Scan(&c.ID, &c.Phone, &c.Name, &created, &visited); err != nil {
		return Contact{}, err
	}
	c.CreatedAt = fromUnix(created)
	c.LastVisited = fromUnix(visited)
	return c, nil
}

// ListContacts returns every contact, newest first.
func (s *Store) ListContacts(ctx context.Context) ([]Contact, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Contact looks a contact up by id.
func (s *Store) Contact(ctx context.Context, id int64) (Contact, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Contact{}, fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Contact{}, fmt.Errorf("get contact %d: %w", id, err)
	}
	return c, nil
}

// ContactByPhone returns the first contact with phone.
func (s *Store) ContactByPhone(ctx context.Context, phone string) (Contact, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE phone = ? ORDER BY id LIMIT 1`, phone)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Contact{}, fmt.Errorf("contact %q: %w", phone, ErrNotFound)
	}
	if err != nil {
		return Contact{}, fmt.Errorf("get contact %q: %w", phone, err)
	}
	return c, nil
}

// CreateContact inserts a contact. An empty name defaults to the phone
// number.
func (s *Store) CreateContact(ctx context.Context, phone, name string) (Contact, error) {
	if strings.TrimSpace(name) == "" {
		name = phone
	}
	now := s.now()
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO contacts (phone, name, created_at) VALUES (?, ?, ?)`,
		phone, name, toUnix(now))
	if err != nil {
		return Contact{}, fmt.Errorf("create contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Contact{}, fmt.Errorf("create contact: %w", err)
	}
	return Contact{ID: id, Phone: phone, Name: name, CreatedAt: fromUnix(toUnix(now))}, nil
}

// EnsureContact returns the contact for phone, creating it on first sight.
func (s *Store) EnsureContact(ctx context.Context, phone string) (Contact, bool, error) {
	c, err := s.ContactByPhone(ctx, phone)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Contact{}, false, err
	}
	c, err = s.CreateContact(ctx, phone, "")
	return c, err == nil, err
}

// UpdateContact changes a contact's phone and name.
func (s *Store) UpdateContact(ctx context.Context, c Contact) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE contacts SET phone = ?, name = ? WHERE id = ?`, c.Phone, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("update contact %d: %w", c.ID, err)
	}
	return requireRow(res, "contact", c.ID)
}

// DeleteContact removes a contact and its messages.
func (s *Store) DeleteContact(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	return requireRow(res, "contact", id)
}

// TouchContact records that the contact's conversation was opened.
func (s *Store) TouchContact(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE contacts SET last_visited = ? WHERE id = ?`, toUnix(s.now()), id)
	if err != nil {
		return fmt.Errorf("touch contact %d: %w", id, err)
	}
	return requireRow(res, "contact", id)
}

func requireRow(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
