package postgres

import (
	"github.com/nutrilog/nutrilog/internal/models"
)

func (s *Store) AddProfile(p models.Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (id, name, created_at)
		VALUES ($1, $2, $3)`,
		p.ID, p.Name, p.CreatedAt)
	return err
}

func (s *Store) GetProfile(id string) (models.Profile, error) {
	row := s.db.QueryRow("SELECT id, name, created_at FROM profiles WHERE id = $1", id)

	var p models.Profile
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *Store) GetProfileByName(name string) (models.Profile, error) {
	row := s.db.QueryRow("SELECT id, name, created_at FROM profiles WHERE name = $1", name)

	var p models.Profile
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		return models.Profile{}, err
	}
	return p, nil
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
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
