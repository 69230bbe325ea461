package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nickdiaz444/pickleball-open-play2/models"
)

const (
	dataFile     = "pickleball_data.json"
	settingsFile = "pickleball_config.json"
)

// FileStore keeps the session as two indented JSON files in a directory, one
// for the rotation state and one for the settings. Writes go through a temp
// file and a rename so a crash mid-write never leaves a half-written blob.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory must exist.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Load() (*models.SessionState, error) {
	raw, err := os.ReadFile(filepath.Join(f.dir, dataFile))
	if errors.Is(err, os.ErrNotExist) {
		return models.NewSessionState(0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dataFile, err)
	}
	var state models.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", dataFile, err)
	}
	state.Normalize()
	return &state, nil
}

func (f *FileStore) Save(state *models.SessionState) error {
	return f.writeJSON(dataFile, state)
}

func (f *FileStore) LoadSettings() (models.Settings, error) {
	raw, err := os.ReadFile(filepath.Join(f.dir, settingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("read %s: %w", settingsFile, err)
	}
	settings := models.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("decode %s: %w", settingsFile, err)
	}
	return settings, nil
}

func (f *FileStore) SaveSettings(settings models.Settings) error {
	return f.writeJSON(settingsFile, settings)
}

// Reset removes the state file. Settings survive a reset.
func (f *FileStore) Reset() error {
	err := os.Remove(filepath.Join(f.dir, dataFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", dataFile, err)
	}
	return nil
}

func (f *FileStore) writeJSON(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(f.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
