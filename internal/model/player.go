package model

import "time"

// Player is a player record as returned by the backend. The backend owns it;
// the client only ever holds the current page's copies and never mutates one
// without a confirmed API call.
type Player struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	Position  string    `json:"position"`
	HeightM   float64   `json:"height_m"`
	WeightKg  float64   `json:"weight_kg"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerInput is the payload for player create and update calls.
type PlayerInput struct {
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	Position  string    `json:"position"`
	HeightM   float64   `json:"height_m"`
	WeightKg  float64   `json:"weight_kg"`
	BirthDate time.Time `json:"birth_date"`
}

// Positions lists the court positions the backend accepts.
func Positions() []string {
	return []string{"PG", "SG", "SF", "PF", "C"}
}
