package models

import (
	"time"

	"github.com/google/uuid"
)

// RollbackEntry is one row of the match_rollbacks audit log written by the
// rollback_match procedure.
type RollbackEntry struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	RoundNumber *int       `json:"round_number,omitempty" db:"round_number"`
	WhiteID     *uuid.UUID `json:"player_white,omitempty" db:"player_white"`
	BlackID     *uuid.UUID `json:"player_black,omitempty" db:"player_black"`
	RefereeID   *uuid.UUID `json:"referee_id,omitempty" db:"referee_id"`
	Reason      *string    `json:"reason,omitempty" db:"reason"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Resolved display names, filled by the audit service.
	WhiteName   string `json:"white_name,omitempty" db:"-"`
	BlackName   string `json:"black_name,omitempty" db:"-"`
	RefereeName string `json:"referee_name,omitempty" db:"-"`
}
