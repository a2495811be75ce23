package models

import "github.com/google/uuid"

// Standing is one row of tournament_standings, maintained server-side by the
// match registration procedures. This service only reads it.
type Standing struct {
	TournamentID uuid.UUID `json:"tournament_id" db:"tournament_id"`
	PlayerID     uuid.UUID `json:"player_id" db:"player_id"`
	Points       float64   `json:"points" db:"points"`
	GamesPlayed  int       `json:"games_played" db:"games_played"`
	RatingAtEnd  *int      `json:"rating_at_end,omitempty" db:"rating_at_end"`

	Player *PlayerSummary `json:"player,omitempty" db:"-"`
}
