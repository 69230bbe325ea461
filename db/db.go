// Package db implements the session store on top of sqlite via GORM.
package db

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/nickdiaz444/pickleball-open-play2/models"
)

// sessionRow is the single-row snapshot of everything except match history.
// The collections are stored as JSON columns since they are only ever read
// and written as one blob.
type sessionRow struct {
	ID        uint           `gorm:"primarykey"`
	Players   []string       `gorm:"serializer:json"`
	Queue     []string       `gorm:"serializer:json"`
	Courts    []models.Court `gorm:"serializer:json"`
	Streaks   map[string]int `gorm:"serializer:json"`
	UpdatedAt time.Time
}

// matchRow is one finished game. Rows are append-only.
type matchRow struct {
	ID         uint     `gorm:"primarykey"`
	CourtIndex int      `gorm:"not null"`
	Winners    []string `gorm:"serializer:json"`
	Losers     []string `gorm:"serializer:json"`
	PlayedAt   time.Time
}

// settingsRow keeps the session limits in their own row so a reset can drop
// the state without touching them.
type settingsRow struct {
	ID         uint `gorm:"primarykey"`
	MaxPlayers int
	NumCourts  int
}

// Store is the sqlite-backed session store.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite file at path and migrates the schema. Use
// ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	err = gdb.AutoMigrate(
		&sessionRow{},
		&matchRow{},
		&settingsRow{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database connection established and migrated successfully.")
	return &Store{db: gdb}, nil
}

func (s *Store) Load() (*models.SessionState, error) {
	var row sessionRow
	err := s.db.First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewSessionState(0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var matches []matchRow
	if err := s.db.Order("id asc").Find(&matches).Error; err != nil {
		return nil, fmt.Errorf("load match history: %w", err)
	}

	state := &models.SessionState{
		Players: row.Players,
		Queue:   row.Queue,
		Courts:  row.Courts,
		Streaks: row.Streaks,
		History: make([]models.MatchRecord, 0, len(matches)),
	}
	for _, m := range matches {
		state.History = append(state.History, models.MatchRecord{
			Court:    m.CourtIndex,
			Winners:  m.Winners,
			Losers:   m.Losers,
			PlayedAt: m.PlayedAt,
		})
	}
	state.Normalize()
	return state, nil
}

// Save overwrites the session row and syncs the match table to state.History.
// History only ever grows, so the common case inserts just the new tail rows.
func (s *Store) Save(state *models.SessionState) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var row sessionRow
		err := tx.First(&row, 1).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = sessionRow{ID: 1}
			row.Players = state.Players
			row.Queue = state.Queue
			row.Courts = state.Courts
			row.Streaks = state.Streaks
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create session: %w", err)
			}
		case err != nil:
			return fmt.Errorf("load session: %w", err)
		default:
			row.Players = state.Players
			row.Queue = state.Queue
			row.Courts = state.Courts
			row.Streaks = state.Streaks
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("update session: %w", err)
			}
		}

		var stored int64
		if err := tx.Model(&matchRow{}).Count(&stored).Error; err != nil {
			return fmt.Errorf("count match history: %w", err)
		}
		if int(stored) > len(state.History) {
			// The table is ahead of the state, so rebuild it from scratch.
			if err := tx.Where("id > 0").Delete(&matchRow{}).Error; err != nil {
				return fmt.Errorf("clear match history: %w", err)
			}
			stored = 0
		}
		for _, m := range state.History[stored:] {
			rec := matchRow{
				CourtIndex: m.Court,
				Winners:    m.Winners,
				Losers:     m.Losers,
				PlayedAt:   m.PlayedAt,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("append match history: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) LoadSettings() (models.Settings, error) {
	var row settingsRow
	err := s.db.First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return models.Settings{MaxPlayers: row.MaxPlayers, NumCourts: row.NumCourts}, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	var row settingsRow
	err := s.db.First(&row, 1).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = settingsRow{ID: 1, MaxPlayers: settings.MaxPlayers, NumCourts: settings.NumCourts}
		if err := s.db.Create(&row).Error; err != nil {
			return fmt.Errorf("create settings: %w", err)
		}
	case err != nil:
		return fmt.Errorf("load settings: %w", err)
	default:
		row.MaxPlayers = settings.MaxPlayers
		row.NumCourts = settings.NumCourts
		if err := s.db.Save(&row).Error; err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
	}
	return nil
}

// Reset drops the session and match rows. The settings row survives.
func (s *Store) Reset() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id > 0").Delete(&sessionRow{}).Error; err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		if err := tx.Where("id > 0").Delete(&matchRow{}).Error; err != nil {
			return fmt.Errorf("clear match history: %w", err)
		}
		return nil
	})
}
