package sqlite

import (
	"fmt"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

func (s *Store) AddIntake(r models.IntakeRecord) error {
	// INSERT OR IGNORE keeps the toggle idempotent under concurrent marks
	// from two sessions; the unique key is (profile, nutrient, day).
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO intake_log (id, profile_id, nutrient_id, day, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProfileID, r.NutrientID, r.Day, r.Note, r.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetIntake(profileID, nutrientID, day string) (models.IntakeRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, profile_id, nutrient_id, day, note, created_at
		FROM intake_log
		WHERE profile_id = ? AND nutrient_id = ? AND day = ?`,
		profileID, nutrientID, day)

	var r models.IntakeRecord
	var createdAt string
	if err := row.Scan(&r.ID, &r.ProfileID, &r.NutrientID, &r.Day, &r.Note, &createdAt); err != nil {
		return models.IntakeRecord{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.IntakeRecord{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	r.CreatedAt = t
	return r, nil
}

func (s *Store) DeleteIntake(profileID, nutrientID, day string) error {
	_, err := s.db.Exec(`
		DELETE FROM intake_log
		WHERE profile_id = ? AND nutrient_id = ? AND day = ?`,
		profileID, nutrientID, day)
	return err
}

func (s *Store) ListIntakeForDay(profileID, day string) ([]models.IntakeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, profile_id, nutrient_id, day, note, created_at
		FROM intake_log
		WHERE profile_id = ? AND day = ?`,
		profileID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.IntakeRecord
	for rows.Next() {
		var r models.IntakeRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.ProfileID, &r.NutrientID, &r.Day, &r.Note, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for intake %s: %w", r.ID, err)
		}
		r.CreatedAt = t
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) ListIntakeDays(profileID, nutrientID, from, to string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT day FROM intake_log
		WHERE profile_id = ? AND nutrient_id = ? AND day >= ? AND day <= ?
		ORDER BY day`,
		profileID, nutrientID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
