package system

import (
	"fmt"
	"io/fs"

	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/migration"
	"github.com/nutrilog/nutrilog/internal/storage"
	"github.com/nutrilog/nutrilog/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage; the PostgreSQL backend migrates on load")
	}

	// Open without schema validation; Load would reject the out-of-date
	// schema this command exists to fix.
	if err := sqliteStore.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sqliteStore.Close()

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS, migration.DialectSQLite)
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
