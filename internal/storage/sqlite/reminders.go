package sqlite

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

func (s *Store) AddReminder(r models.Reminder) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO reminders (id, profile_id, nutrient_id, time, frequency, weekdays, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProfileID, r.NutrientID, r.Time, r.Frequency,
		encodeWeekdays(r.Weekdays), r.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetReminderForNutrient(profileID, nutrientID string) (models.Reminder, error) {
	row := s.db.QueryRow(`
		SELECT id, profile_id, nutrient_id, time, frequency, weekdays, created_at
		FROM reminders WHERE profile_id = ? AND nutrient_id = ?`,
		profileID, nutrientID)
	return scanReminder(row)
}

func (s *Store) GetAllReminders(profileID string) ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, profile_id, nutrient_id, time, frequency, weekdays, created_at
		FROM reminders WHERE profile_id = ?
		ORDER BY time`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *Store) DeleteReminder(id string) error {
	_, err := s.db.Exec("DELETE FROM reminders WHERE id = ?", id)
	return err
}

func scanReminder(row rowScanner) (models.Reminder, error) {
	var r models.Reminder
	var weekdays, createdAt string

	if err := row.Scan(&r.ID, &r.ProfileID, &r.NutrientID, &r.Time, &r.Frequency, &weekdays, &createdAt); err != nil {
		return models.Reminder{}, err
	}

	days, err := decodeWeekdays(weekdays)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to parse weekdays for reminder %s: %w", r.ID, err)
	}
	r.Weekdays = days

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	r.CreatedAt = t
	return r, nil
}

// encodeWeekdays stores weekdays as comma-joined integers (0=Sunday).
func encodeWeekdays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(encoded string) ([]time.Weekday, error) {
	if encoded == "" {
		return nil, nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(encoded, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 6 {
			return nil, fmt.Errorf("weekday %d out of range", n)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}
