package postgres

import (
	"database/sql"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/migration"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

func NewStore(connStr string) *Store {
	return &Store{
		connStr: connStr,
	}
}

func (s *Store) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	settings, err := s.GetSettings()
	if err != nil || settings.Timezone == "" {
		settings = models.Settings{
			Timezone:             constants.DefaultTimezone,
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
		}
	}

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

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, subFS, migration.DialectPostgres)
	return runner.ValidateVersion()
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

// GetConfigPath returns the connection string the store was opened with.
func (s *Store) GetConfigPath() string {
	return s.connStr
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DialectPostgres)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		return err
	}
	return nil
}
