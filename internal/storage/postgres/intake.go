package postgres

import (
	"github.com/nutrilog/nutrilog/internal/models"
)

func (s *Store) AddIntake(r models.IntakeRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO intake_log (id, profile_id, nutrient_id, day, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_id, nutrient_id, day) DO NOTHING`,
		r.ID, r.ProfileID, r.NutrientID, r.Day, r.Note, r.CreatedAt)
	return err
}

func (s *Store) GetIntake(profileID, nutrientID, day string) (models.IntakeRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, profile_id, nutrient_id, day, note, created_at
		FROM intake_log
		WHERE profile_id = $1 AND nutrient_id = $2 AND day = $3`,
		profileID, nutrientID, day)

	var r models.IntakeRecord
	if err := row.Scan(&r.ID, &r.ProfileID, &r.NutrientID, &r.Day, &r.Note, &r.CreatedAt); err != nil {
		return models.IntakeRecord{}, err
	}
	return r, nil
}

func (s *Store) DeleteIntake(profileID, nutrientID, day string) error {
	_, err := s.db.Exec(`
		DELETE FROM intake_log
		WHERE profile_id = $1 AND nutrient_id = $2 AND day = $3`,
		profileID, nutrientID, day)
	return err
}

func (s *Store) ListIntakeForDay(profileID, day string) ([]models.IntakeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, profile_id, nutrient_id, day, note, created_at
		FROM intake_log
		WHERE profile_id = $1 AND day = $2`,
		profileID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.IntakeRecord
	for rows.Next() {
		var r models.IntakeRecord
		if err := rows.Scan(&r.ID, &r.ProfileID, &r.NutrientID, &r.Day, &r.Note, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) ListIntakeDays(profileID, nutrientID, from, to string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT day FROM intake_log
		WHERE profile_id = $1 AND nutrient_id = $2 AND day >= $3 AND day <= $4
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
