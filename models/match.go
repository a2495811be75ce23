package models

import (
	"time"

	"github.com/google/uuid"
)

// Match is a registered result for a (tournament, round, white, black)
// triple. The triple is unique, enforced by the unique_match_per_round
// constraint on the matches table. ResultWhite and ResultBlack are each one
// of {0, 0.5, 1} and always sum to 1.
type Match struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TournamentID uuid.UUID `json:"tournament_id" db:"tournament_id"`
	RoundNumber  int       `json:"round_number" db:"round_number"`
	WhiteID      uuid.UUID `json:"player_white" db:"player_white"`
	BlackID      uuid.UUID `json:"player_black" db:"player_black"`
	ResultWhite  float64   `json:"result_white" db:"result_white"`
	ResultBlack  float64   `json:"result_black" db:"result_black"`
	IsWalkover   bool      `json:"is_walkover" db:"is_walkover"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Filled by queries that join player names (recent-matches list).
	White *PlayerSummary `json:"white,omitempty" db:"-"`
	Black *PlayerSummary `json:"black,omitempty" db:"-"`
}

// ScoreLabel renders the result the way the admin cards show it.
func (m *Match) ScoreLabel() string {
	switch {
	case m.IsWalkover:
		return "W.O."
	case m.ResultWhite == 1:
		return "1 – 0"
	case m.ResultBlack == 1:
		return "0 – 1"
	default:
		return "½ – ½"
	}
}
