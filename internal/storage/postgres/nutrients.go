package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

func (s *Store) AddNutrient(n models.Nutrient) error {
	_, err := s.db.Exec(`
		INSERT INTO nutrients (id, name, unit, dosage, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.Name, n.Unit, n.Dosage, n.Description, n.CreatedAt)
	return err
}

func (s *Store) GetNutrient(id string) (models.Nutrient, error) {
	row := s.db.QueryRow(`
		SELECT id, name, unit, dosage, description, created_at, deleted_at
		FROM nutrients WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanNutrient(row)
}

func (s *Store) GetNutrientByName(name string) (models.Nutrient, error) {
	row := s.db.QueryRow(`
		SELECT id, name, unit, dosage, description, created_at, deleted_at
		FROM nutrients WHERE name = $1 AND deleted_at IS NULL`, name)
	return scanNutrient(row)
}

func (s *Store) GetAllNutrients(includeDeleted bool) ([]models.Nutrient, error) {
	query := "SELECT id, name, unit, dosage, description, created_at, deleted_at FROM nutrients"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nutrients []models.Nutrient
	for rows.Next() {
		n, err := scanNutrient(rows)
		if err != nil {
			return nil, err
		}
		nutrients = append(nutrients, n)
	}
	return nutrients, rows.Err()
}

func (s *Store) UpdateNutrient(n models.Nutrient) error {
	result, err := s.db.Exec(`
		UPDATE nutrients SET name = $1, unit = $2, dosage = $3, description = $4
		WHERE id = $5 AND deleted_at IS NULL`,
		n.Name, n.Unit, n.Dosage, n.Description, n.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("nutrient %s not found", n.ID)
	}
	return nil
}

func (s *Store) DeleteNutrient(id string) error {
	_, err := s.db.Exec(
		"UPDATE nutrients SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		time.Now(), id)
	return err
}

func (s *Store) RestoreNutrient(id string) error {
	result, err := s.db.Exec(
		"UPDATE nutrients SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("deleted nutrient %s not found", id)
	}
	return nil
}

func (s *Store) TrackNutrient(profileID, nutrientID string) error {
	_, err := s.db.Exec(`
		INSERT INTO profile_nutrients (profile_id, nutrient_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id, nutrient_id) DO NOTHING`,
		profileID, nutrientID, time.Now())
	return err
}

func (s *Store) UntrackNutrient(profileID, nutrientID string) error {
	_, err := s.db.Exec(
		"DELETE FROM profile_nutrients WHERE profile_id = $1 AND nutrient_id = $2",
		profileID, nutrientID)
	return err
}

func (s *Store) GetTrackedNutrients(profileID string) ([]models.Nutrient, error) {
	rows, err := s.db.Query(`
		SELECT n.id, n.name, n.unit, n.dosage, n.description, n.created_at, n.deleted_at
		FROM nutrients n
		JOIN profile_nutrients pn ON pn.nutrient_id = n.id
		WHERE pn.profile_id = $1 AND n.deleted_at IS NULL
		ORDER BY n.name`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nutrients []models.Nutrient
	for rows.Next() {
		n, err := scanNutrient(rows)
		if err != nil {
			return nil, err
		}
		nutrients = append(nutrients, n)
	}
	return nutrients, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNutrient(row rowScanner) (models.Nutrient, error) {
	var n models.Nutrient
	var deletedAt sql.NullTime

	if err := row.Scan(&n.ID, &n.Name, &n.Unit, &n.Dosage, &n.Description, &n.CreatedAt, &deletedAt); err != nil {
		return models.Nutrient{}, err
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		n.DeletedAt = &t
	}

	return n, nil
}
