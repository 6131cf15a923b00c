package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Navigation modes.
const (
	NavigationDefault   = "DEFAULT"
	NavigationArrowKeys = "ARROW_KEYS"
)

const settingsID = 1

// Settings are the single user's preferences.
type Settings struct {
	Name                  string
	Theme                 string
	Language              string
	DevelopmentMode       bool
	EnableSMS             bool
	NotificationsEnabled  bool
	EnableVirtualKeyboard bool
	SizeMultiplier        float64
	NavigationMode        string
	LastSelectedContact   *int64
	CreatedAt             time.Time
}

// DefaultSettings is what a fresh database reports.
func DefaultSettings() Settings {
	return Settings{
		Theme:                 "dark",
		Language:              "no",
		EnableSMS:             true,
		NotificationsEnabled:  true,
		EnableVirtualKeyboard: true,
		SizeMultiplier:        1,
		NavigationMode:        NavigationArrowKeys,
	}
}

// ArrowNavigation reports whether arrow keys and the gamepad drive the UI.
func (s Settings) ArrowNavigation() bool {
	return s.NavigationMode == NavigationArrowKeys
}

// Settings returns the stored preferences, or DefaultSettings when none
// have been saved.
func (s *Store) Settings(ctx context.Context) (Settings, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT name, theme, language, development_mode, enable_sms,
		notifications_enabled, enable_virtual_keyboard, size_multiplier, navigation_mode,
		last_selected_contact, created_at FROM settings WHERE id = ?`, settingsID)

	var out Settings
	var dev, sms, notify, vk int
	var last sql.NullInt64
	var created int64
	err := row.Scan(&out.Name, &out.Theme, &out.Language, &dev, &sms, &notify, &vk,
		&out.SizeMultiplier, &out.NavigationMode, &last, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	out.DevelopmentMode = dev != 0
	out.EnableSMS = sms != 0
	out.NotificationsEnabled = notify != 0
	out.EnableVirtualKeyboard = vk != 0
	if last.Valid {
		id := last.Int64
		out.LastSelectedContact = &id
	}
	out.CreatedAt = fromUnix(created)
	return out, nil
}

// SaveSettings upserts the preferences.
func (s *Store) SaveSettings(ctx context.Context, in Settings) error {
	if in.SizeMultiplier <= 0 {
		in.SizeMultiplier = 1
	}
	if in.NavigationMode != NavigationDefault && in.NavigationMode != NavigationArrowKeys {
		return fmt.Errorf("save settings: unknown navigation mode %q", in.NavigationMode)
	}
	var last any
	if in.LastSelectedContact != nil {
		last = *in.LastSelectedContact
	}
	_, err := s.conn.ExecContext(ctx, `INSERT INTO settings (id, name, theme, language, development_mode,
		enable_sms, notifications_enabled, enable_virtual_keyboard, size_multiplier, navigation_mode,
		last_selected_contact, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, theme = excluded.theme,
		language = excluded.language, development_mode = excluded.development_mode,
		enable_sms = excluded.enable_sms, notifications_enabled = excluded.notifications_enabled,
		enable_virtual_keyboard = excluded.enable_virtual_keyboard,
		size_multiplier = excluded.size_multiplier, navigation_mode = excluded.navigation_mode,
		last_selected_contact = excluded.last_selected_contact`,
		settingsID, in.Name, in.Theme, in.Language, boolInt(in.DevelopmentMode), boolInt(in.EnableSMS),
		boolInt(in.NotificationsEnabled), boolInt(in.EnableVirtualKeyboard), in.SizeMultiplier,
		in.NavigationMode, last, toUnix(s.now()))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SetLastSelectedContact remembers the conversation to reopen on start.
func (s *Store) SetLastSelectedContact(ctx context.Context, id int64) error {
	current, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	current.LastSelectedContact = &id
	return s.SaveSettings(ctx, current)
}
