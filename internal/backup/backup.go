// Package backup manages point-in-time copies of the SQLite database. Backups
// use VACUUM INTO for a consistent snapshot and rotate beyond a retention
// limit. PostgreSQL deployments are expected to use their own backup tooling.
package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nutrilog/nutrilog/internal/constants"
)

// Info contains information about a backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for one database file
type Manager struct {
	dbPath    string
	backupDir string
}

// NewManager creates a new backup manager
func NewManager(dbPath string) *Manager {
	configDir := filepath.Dir(dbPath)
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup creates a new backup of the database and rotates old ones.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	backupPath, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.backupDatabase(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// Rotation failure should not lose the backup that just succeeded.
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return backupPath, nil
}

// uniqueBackupPath generates a timestamped filename, falling back to second
// precision and then a counter when a name is already taken.
func (m *Manager) uniqueBackupPath() (string, error) {
	path := m.pathFor(time.Now().Format("20060102-1504"))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	timestamp := time.Now().Format("20060102-150405")
	path = m.pathFor(timestamp)
	for counter := 1; counter <= 100; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		path = m.pathFor(fmt.Sprintf("%s-%d", timestamp, counter))
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func (m *Manager) pathFor(timestamp string) string {
	name := constants.BackupFilePrefix + timestamp + constants.BackupFileSuffix
	return filepath.Join(m.backupDir, name)
}

// backupDatabase snapshots the database with VACUUM INTO, falling back to a
// plain file copy on SQLite builds that lack it.
func (m *Manager) backupDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		srcDB.Close()
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// ListBackups returns all available backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		timestampStr := strings.TrimPrefix(name, constants.BackupFilePrefix)
		timestampStr = strings.TrimSuffix(timestampStr, constants.BackupFileSuffix)
		timestampStr = stripCounterSuffix(timestampStr)

		timestamp, err := time.Parse("20060102-1504", timestampStr)
		if err != nil {
			timestamp, err = time.Parse("20060102-150405", timestampStr)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// stripCounterSuffix removes a trailing "-N" collision counter. Time segments
// are 4 or 6 digits; anything else numeric after the last hyphen is a counter.
func stripCounterSuffix(timestampStr string) string {
	parts := strings.Split(timestampStr, "-")
	if len(parts) <= 2 {
		return timestampStr
	}
	last := parts[len(parts)-1]
	if len(last) == 4 || len(last) == 6 {
		return timestampStr
	}
	for _, c := range last {
		if c < '0' || c > '9' {
			return timestampStr
		}
	}
	return strings.Join(parts[:len(parts)-1], "-")
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= constants.MaxBackups {
		return nil
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// RestoreBackup restores the database from a backup file. The current
// database is backed up first, and the restore is an atomic rename.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verifyBackup(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		currentBackup, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		fmt.Printf("Created backup of current database: %s\n", filepath.Base(currentBackup))
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to restore database: %w", err)
	}

	return nil
}

func (m *Manager) verifyBackup(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
