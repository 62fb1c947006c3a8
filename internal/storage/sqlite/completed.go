package sqlite

import (
	"time"
)

func (s *Store) UpsertCompletedDay(profileID, day string) error {
	// Second upsert for the same key is a no-op; completed days are derived,
	// idempotently recomputable values, not a source of truth.
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO completed_days (profile_id, day, created_at)
		VALUES (?, ?, ?)`,
		profileID, day, time.Now().Format(time.RFC3339))
	return err
}

func (s *Store) DeleteCompletedDay(profileID, day string) error {
	_, err := s.db.Exec(
		"DELETE FROM completed_days WHERE profile_id = ? AND day = ?",
		profileID, day)
	return err
}

func (s *Store) IsDayComplete(profileID, day string) (bool, error) {
	var count int
	row := s.db.QueryRow(
		"SELECT count(*) FROM completed_days WHERE profile_id = ? AND day = ?",
		profileID, day)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListCompletedDays(profileID, from, to string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT day FROM completed_days
		WHERE profile_id = ? AND day >= ? AND day <= ?
		ORDER BY day`,
		profileID, from, to)
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
