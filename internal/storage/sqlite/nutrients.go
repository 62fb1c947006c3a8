package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

func (s *Store) AddNutrient(n models.Nutrient) error {
	_, err := s.db.Exec(`
		INSERT INTO nutrients (id, name, unit, dosage, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.Name, n.Unit, n.Dosage, n.Description, n.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetNutrient(id string) (models.Nutrient, error) {
	row := s.db.QueryRow(`
		SELECT id, name, unit, dosage, description, created_at, deleted_at
		FROM nutrients WHERE id = ? AND deleted_at IS NULL`, id)
	return scanNutrient(row)
}

func (s *Store) GetNutrientByName(name string) (models.Nutrient, error) {
	row := s.db.QueryRow(`
		SELECT id, name, unit, dosage, description, created_at, deleted_at
		FROM nutrients WHERE name = ? AND deleted_at IS NULL`, name)
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
		UPDATE nutrients SET name = ?, unit = ?, dosage = ?, description = ?
		WHERE id = ? AND deleted_at IS NULL`,
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
		"UPDATE nutrients SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().Format(time.RFC3339), id)
	return err
}

func (s *Store) RestoreNutrient(id string) error {
	result, err := s.db.Exec(
		"UPDATE nutrients SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL", id)
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
		INSERT OR IGNORE INTO profile_nutrients (profile_id, nutrient_id, created_at)
		VALUES (?, ?, ?)`,
		profileID, nutrientID, time.Now().Format(time.RFC3339))
	return err
}

func (s *Store) UntrackNutrient(profileID, nutrientID string) error {
	_, err := s.db.Exec(
		"DELETE FROM profile_nutrients WHERE profile_id = ? AND nutrient_id = ?",
		profileID, nutrientID)
	return err
}

func (s *Store) GetTrackedNutrients(profileID string) ([]models.Nutrient, error) {
	rows, err := s.db.Query(`
		SELECT n.id, n.name, n.unit, n.dosage, n.description, n.created_at, n.deleted_at
		FROM nutrients n
		JOIN profile_nutrients pn ON pn.nutrient_id = n.id
		WHERE pn.profile_id = ? AND n.deleted_at IS NULL
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

func scanNutrient(row rowScanner) (models.Nutrient, error) {
	var n models.Nutrient
	var createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&n.ID, &n.Name, &n.Unit, &n.Dosage, &n.Description, &createdAt, &deletedAt); err != nil {
		return models.Nutrient{}, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Nutrient{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	n.CreatedAt = t

	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Nutrient{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		n.DeletedAt = &t
	}

	return n, nil
}
