package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/nutrilog/nutrilog/internal/constants"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	// Create a temporary directory for test database
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	// Create test store
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tempDir)
	}

	return store, cleanup
}

// setupMinimalTestStore creates a SQLite store without running migrations
func setupMinimalTestStore(t *testing.T) (*Store, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := NewStore(dbPath)

	// Open the database manually without running Init (which runs migrations)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	store.db = db

	cleanup := func() {
		store.Close()
		os.RemoveAll(tempDir)
	}

	return store, cleanup
}

func TestTableExists(t *testing.T) {
	t.Run("table exists", func(t *testing.T) {
		store, cleanup := setupMinimalTestStore(t)
		defer cleanup()

		_, err := store.db.Exec("CREATE TABLE test_table (id INTEGER PRIMARY KEY, name TEXT)")
		if err != nil {
			t.Fatalf("failed to create test table: %v", err)
		}

		exists, err := store.tableExists("test_table")
		if err != nil {
			t.Errorf("tableExists() returned unexpected error: %v", err)
		}
		if !exists {
			t.Error("tableExists() = false, want true for existing table")
		}
	})

	t.Run("table does not exist", func(t *testing.T) {
		store, cleanup := setupMinimalTestStore(t)
		defer cleanup()

		exists, err := store.tableExists("nonexistent_table")
		if err != nil {
			t.Errorf("tableExists() returned unexpected error: %v", err)
		}
		if exists {
			t.Error("tableExists() = true, want false for nonexistent table")
		}
	})

	t.Run("table name with special characters", func(t *testing.T) {
		store, cleanup := setupMinimalTestStore(t)
		defer cleanup()

		// An injection attempt should safely return false, not cause an error
		exists, err := store.tableExists("'; DROP TABLE test; --")
		if err != nil {
			t.Errorf("tableExists() with special characters returned unexpected error: %v", err)
		}
		if exists {
			t.Error("tableExists() with SQL injection attempt should return false")
		}
	})

	t.Run("core tables in initialized store", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		for _, table := range []string{"nutrients", "profiles", "profile_nutrients", "intake_log", "completed_days", "reminders", "settings"} {
			exists, err := store.tableExists(table)
			if err != nil {
				t.Errorf("tableExists(%s) returned unexpected error: %v", table, err)
			}
			if !exists {
				t.Errorf("tableExists(%s) = false, want true after running migrations", table)
			}
		}
	})
}

func TestInitCreatesDefaults(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("expected default timezone %q, got %q", constants.DefaultTimezone, settings.Timezone)
	}
	if !settings.NotificationsEnabled {
		t.Error("expected notifications enabled by default")
	}
	if settings.ActiveProfileID == "" {
		t.Fatal("expected an active profile to be created")
	}

	profile, err := store.GetProfile(settings.ActiveProfileID)
	if err != nil {
		t.Fatalf("failed to get default profile: %v", err)
	}
	if profile.Name != constants.DefaultProfileName {
		t.Errorf("expected default profile name %q, got %q", constants.DefaultProfileName, profile.Name)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	first, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	store.Close()

	// Re-running Init against an existing database must keep the profile
	store2 := NewStore(dbPath)
	defer store2.Close()
	if err := store2.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	second, err := store2.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings after re-init: %v", err)
	}
	if second.ActiveProfileID != first.ActiveProfileID {
		t.Errorf("re-init changed active profile: %q -> %q", first.ActiveProfileID, second.ActiveProfileID)
	}

	profiles, err := store2.GetAllProfiles()
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(profiles) != 1 {
		t.Errorf("expected 1 profile after re-init, got %d", len(profiles))
	}
}

func TestLoadWithoutInit(t *testing.T) {
	tempDir := t.TempDir()
	store := NewStore(filepath.Join(tempDir, "missing.db"))

	if err := store.Load(); err == nil {
		t.Error("expected Load to fail for uninitialized database")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}

	settings.Timezone = "America/New_York"
	settings.NotificationsEnabled = false
	settings.ReminderHash = "12345"
	settings.CelebratedMilestones = []int{5, 10}

	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	loaded, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if loaded.Timezone != "America/New_York" {
		t.Errorf("expected timezone America/New_York, got %q", loaded.Timezone)
	}
	if loaded.NotificationsEnabled {
		t.Error("expected notifications disabled after save")
	}
	if loaded.ReminderHash != "12345" {
		t.Errorf("expected reminder hash 12345, got %q", loaded.ReminderHash)
	}
	if len(loaded.CelebratedMilestones) != 2 || loaded.CelebratedMilestones[0] != 5 || loaded.CelebratedMilestones[1] != 10 {
		t.Errorf("expected celebrated milestones [5 10], got %v", loaded.CelebratedMilestones)
	}
	if loaded.ActiveProfileID != settings.ActiveProfileID {
		t.Errorf("active profile changed across save: %q -> %q", settings.ActiveProfileID, loaded.ActiveProfileID)
	}
}

func TestClearCelebratedMilestones(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.CelebratedMilestones = []int{5}
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	settings.CelebratedMilestones = nil
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to clear milestones: %v", err)
	}

	loaded, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if len(loaded.CelebratedMilestones) != 0 {
		t.Errorf("expected no celebrated milestones, got %v", loaded.CelebratedMilestones)
	}
}

func activeProfileID(t *testing.T, store *Store) string {
	t.Helper()
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	return settings.ActiveProfileID
}
