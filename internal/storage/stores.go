package storage

import (
	"github.com/nutrilog/nutrilog/internal/storage/postgres"
	"github.com/nutrilog/nutrilog/internal/storage/sqlite"
)

// SQLiteStore and PostgresStore alias the concrete backends so callers can
// type-switch on them (the SQLite-only backup commands do).
type (
	SQLiteStore   = sqlite.Store
	PostgresStore = postgres.Store
)

// NewSQLiteStore creates a SQLite-backed Provider at the given file path.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a PostgreSQL-backed Provider for the given
// connection string. Credentials must not be embedded in the string; see
// HasEmbeddedCredentials.
func NewPostgresStore(connStr string) Provider {
	return postgres.NewStore(connStr)
}
