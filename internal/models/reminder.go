package models

import "time"

// Reminder schedules a local notification for one nutrient, either daily or on
// selected weekdays, at a fixed time of day.
type Reminder struct {
	ID         string         `json:"id"`
	ProfileID  string         `json:"profile_id"`
	NutrientID string         `json:"nutrient_id"`
	Time       string         `json:"time"`      // HH:MM format
	Frequency  string         `json:"frequency"` // "daily" or "weekly"
	Weekdays   []time.Weekday `json:"weekdays,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// DueOn reports whether the reminder fires on the given weekday.
func (r Reminder) DueOn(wd time.Weekday) bool {
	if r.Frequency != "weekly" {
		return true
	}
	for _, d := range r.Weekdays {
		if d == wd {
			return true
		}
	}
	return false
}
