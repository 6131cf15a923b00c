package state

import "github.com/talkpad/talkpad/internal/store"

// SettingsStore holds the active user settings.
type SettingsStore interface {
	Settings() store.Settings
	SetSettings(store.Settings)
}

type settingsStore struct {
	settings store.Settings
}

func NewSettingsStore(initial store.Settings) SettingsStore {
	return &settingsStore{settings: cloneSettings(initial)}
}

func (s *settingsStore) Settings() store.Settings {
	return cloneSettings(s.settings)
}

func (s *settingsStore) SetSettings(settings store.Settings) {
	s.settings = cloneSettings(settings)
}

func cloneSettings(in store.Settings) store.Settings {
	if in.LastSelectedContact != nil {
		id := *in.LastSelectedContact
		in.LastSelectedContact = &id
	}
	return in
}
