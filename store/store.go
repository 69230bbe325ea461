// Package store defines the persistence boundary for session state.
package store

import "github.com/nickdiaz444/pickleball-open-play2/models"

// Store persists the full session blob plus the session settings. Load returns
// an empty session (never nil) when nothing has been persisted yet, and Save
// always overwrites the whole state. Reset drops the session state but keeps
// the settings.
type Store interface {
	Load() (*models.SessionState, error)
	Save(state *models.SessionState) error
	LoadSettings() (models.Settings, error)
	SaveSettings(settings models.Settings) error
	Reset() error
}
