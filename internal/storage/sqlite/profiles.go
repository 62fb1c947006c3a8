package sqlite

import (
	"fmt"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

func (s *Store) AddProfile(p models.Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (id, name, created_at)
		VALUES (?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetProfile(id string) (models.Profile, error) {
	row := s.db.QueryRow("SELECT id, name, created_at FROM profiles WHERE id = ?", id)
	return scanProfile(row)
}

func (s *Store) GetProfileByName(name string) (models.Profile, error) {
	row := s.db.QueryRow("SELECT id, name, created_at FROM profiles WHERE name = ?", name)
	return scanProfile(row)
}

func (s *Store) GetAllProfiles() ([]models.Profile, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM profiles ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for profile %s: %w", p.ID, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	var createdAt string
	if err := row.Scan(&p.ID, &p.Name, &createdAt); err != nil {
		return models.Profile{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	p.CreatedAt = t
	return p, nil
}
