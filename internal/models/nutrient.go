package models

import "time"

// Nutrient is a catalog entry users can opt to track (e.g. "Vitamin D",
// "Magnesium"). Deleting is soft so historical intake records stay resolvable.
type Nutrient struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Unit        string     `json:"unit,omitempty"`   // e.g. "mg", "IU"
	Dosage      string     `json:"dosage,omitempty"` // free-form, e.g. "400 IU daily"
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// IntakeRecord marks one nutrient as taken on one calendar day. Its presence
// is the signal; unmarking deletes the row. Unique per (profile, nutrient, day).
type IntakeRecord struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profile_id"`
	NutrientID string    `json:"nutrient_id"`
	Day        string    `json:"day"` // YYYY-MM-DD format
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CompletedDay records that every tracked nutrient was taken on the given day.
// It is derived from intake records, never edited directly, and unique per
// (profile, day).
type CompletedDay struct {
	ProfileID string    `json:"profile_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
}

// FunFact is a short nutrition fact surfaced on the today view.
type FunFact struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
