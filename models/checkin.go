package models

import (
	"time"

	"github.com/google/uuid"
)

// Checkin registers a player's intent to play a session. Rows are written by
// the checkin_tournament / cancel_checkin procedures.
type Checkin struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SessionID   uuid.UUID `json:"tournament_session_id" db:"tournament_session_id"`
	PlayerID    uuid.UUID `json:"player_id" db:"player_id"`
	CheckedInAt time.Time `json:"checked_in_at" db:"checked_in_at"`

	Player *PlayerSummary `json:"player,omitempty" db:"-"`
}
