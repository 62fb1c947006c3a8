package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadMigrationFiles(t *testing.T) {
	t.Run("sorted by version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"002_second.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
			"001_first.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
			"010_tenth.sql":  {Data: []byte("CREATE TABLE c (id INTEGER);")},
			"README.md":      {Data: []byte("not a migration")},
		}
		runner := NewRunner(openTestDB(t), fsys, DialectSQLite)

		migrations, err := runner.ReadMigrationFiles()
		if err != nil {
			t.Fatalf("ReadMigrationFiles returned unexpected error: %v", err)
		}
		if len(migrations) != 3 {
			t.Fatalf("expected 3 migrations, got %d", len(migrations))
		}
		for i, want := range []int{1, 2, 10} {
			if migrations[i].Version != want {
				t.Errorf("migrations[%d].Version = %d, want %d", i, migrations[i].Version, want)
			}
		}
		if migrations[0].Name != "first" {
			t.Errorf("expected name 'first', got %q", migrations[0].Name)
		}
	})

	t.Run("duplicate version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"001_one.sql":     {Data: []byte("SELECT 1;")},
			"001_another.sql": {Data: []byte("SELECT 1;")},
		}
		runner := NewRunner(openTestDB(t), fsys, DialectSQLite)
		if _, err := runner.ReadMigrationFiles(); err == nil {
			t.Error("expected error for duplicate migration version")
		}
	})

	t.Run("invalid filename", func(t *testing.T) {
		fsys := fstest.MapFS{
			"init.sql": {Data: []byte("SELECT 1;")},
		}
		runner := NewRunner(openTestDB(t), fsys, DialectSQLite)
		if _, err := runner.ReadMigrationFiles(); err == nil {
			t.Error("expected error for filename without version prefix")
		}
	})

	t.Run("zero version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"000_zero.sql": {Data: []byte("SELECT 1;")},
		}
		runner := NewRunner(openTestDB(t), fsys, DialectSQLite)
		if _, err := runner.ReadMigrationFiles(); err == nil {
			t.Error("expected error for version 0")
		}
	})
}

func TestApplyMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
		"002_seed.sql": {Data: []byte("INSERT INTO things (id) VALUES ('a');")},
	}
	db := openTestDB(t)
	runner := NewRunner(db, fsys, DialectSQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations returned unexpected error: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion returned unexpected error: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	var count int
	if err := db.QueryRow("SELECT count(*) FROM things").Scan(&count); err != nil {
		t.Fatalf("failed to query migrated table: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 seeded row, got %d", count)
	}

	// Second run is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations returned unexpected error: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on re-run, got %d", applied)
	}
}

func TestApplyMigrationsRollsBackOnFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}
	db := openTestDB(t)
	runner := NewRunner(db, fsys, DialectSQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from bad migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	// The failed migration must not bump the version
	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion returned unexpected error: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 after failed migration, got %d", version)
	}
}

func TestValidateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
		"002_more.sql": {Data: []byte("CREATE TABLE others (id TEXT PRIMARY KEY);")},
	}

	t.Run("up to date", func(t *testing.T) {
		runner := NewRunner(openTestDB(t), fsys, DialectSQLite)
		if _, err := runner.ApplyMigrations(nil); err != nil {
			t.Fatalf("ApplyMigrations returned unexpected error: %v", err)
		}
		if err := runner.ValidateVersion(); err != nil {
			t.Errorf("ValidateVersion on up-to-date schema returned error: %v", err)
		}
	})

	t.Run("behind", func(t *testing.T) {
		runner := NewRunner(openTestDB(t), fsys, DialectSQLite)
		if err := runner.SetVersion(1); err != nil {
			t.Fatalf("SetVersion returned unexpected error: %v", err)
		}
		if err := runner.ValidateVersion(); err == nil {
			t.Error("expected error for schema behind latest")
		}
	})

	t.Run("newer than supported", func(t *testing.T) {
		runner := NewRunner(openTestDB(t), fsys, DialectSQLite)
		if err := runner.SetVersion(99); err != nil {
			t.Fatalf("SetVersion returned unexpected error: %v", err)
		}
		if err := runner.ValidateVersion(); err == nil {
			t.Error("expected error for schema newer than supported")
		}
	})
}
