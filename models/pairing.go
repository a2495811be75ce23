package models

import "github.com/google/uuid"

// Pairing is a table assignment for one round of a session, produced by the
// generate_pairings procedure. A nil Black denotes a bye. Pairings are
// read-only here: this service never creates or edits them.
type Pairing struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	SessionID   uuid.UUID      `json:"tournament_session_id" db:"tournament_session_id"`
	RoundNumber int            `json:"round_number" db:"round_number"`
	TableNumber int            `json:"table_number" db:"table_number"`
	White       *PlayerSummary `json:"player_white"`
	Black       *PlayerSummary `json:"player_black,omitempty"`
}

// IsBye reports whether the white player sits out this round.
func (p *Pairing) IsBye() bool {
	return p.Black == nil
}
