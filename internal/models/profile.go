package models

import "time"

// Profile is a local user of the tracker. A single database can hold several
// profiles; Settings names the active one.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
