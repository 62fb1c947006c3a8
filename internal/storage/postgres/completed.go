package postgres

import (
	"time"
)

func (s *Store) UpsertCompletedDay(profileID, day string) error {
	_, err := s.db.Exec(`
		INSERT INTO completed_days (profile_id, day, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id, day) DO NOTHING`,
		profileID, day, time.Now())
	return err
}

func (s *Store) DeleteCompletedDay(profileID, day string) error {
	_, err := s.db.Exec(
		"DELETE FROM completed_days WHERE profile_id = $1 AND day = $2",
		profileID, day)
	return err
}

func (s *Store) IsDayComplete(profileID, day string) (bool, error) {
	var count int
	row := s.db.QueryRow(
		"SELECT count(*) FROM completed_days WHERE profile_id = $1 AND day = $2",
		profileID, day)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListCompletedDays(profileID, from, to string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT day FROM completed_days
		WHERE profile_id = $1 AND day >= $2 AND day <= $3
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
