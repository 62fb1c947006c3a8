package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/migration"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize default settings if not present or incomplete
	settings, err := s.GetSettings()
	if err != nil || settings.Timezone == "" {
		settings = models.Settings{
			Timezone:             constants.DefaultTimezone,
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
		}
	}

	// A fresh database gets a default profile so commands work out of the box.
	if settings.ActiveProfileID == "" {
		profile := models.Profile{
			ID:        uuid.New().String(),
			Name:      constants.DefaultProfileName,
			CreatedAt: time.Now(),
		}
		if existing, err := s.GetProfileByName(profile.Name); err == nil {
			profile = existing
		} else if err := s.AddProfile(profile); err != nil {
			return fmt.Errorf("failed to create default profile: %w", err)
		}
		settings.ActiveProfileID = profile.ID
	}

	if err := s.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if err := s.Open(); err != nil {
		return err
	}

	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

// Open opens the database without validating the schema version. The migrate
// command needs this; Load would reject the out-of-date schema it exists to
// fix.
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'nutrilog init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetDB exposes the underlying handle for tests and diagnostics.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// tableExists checks if a table exists in the SQLite database. The check is
// case-insensitive to match SQLite's behavior.
func (s *Store) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DialectSQLite)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		return err
	}
	return nil
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DialectSQLite)
	return runner.ValidateVersion()
}
