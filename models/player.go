package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID               uuid.UUID `json:"id" db:"id"`
	FullName         string    `json:"full_name" db:"full_name"`
	Email            *string   `json:"email,omitempty" db:"email"`
	RatingRapid      *int      `json:"rating_rapid,omitempty" db:"rating_rapid"`
	GamesPlayedRapid int       `json:"games_played_rapid" db:"games_played_rapid"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// PlayerSummary is the short form embedded in pairings and matches.
type PlayerSummary struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	RatingRapid *int      `json:"rating_rapid,omitempty"`
}

// DisplayName never fails: a missing summary or an empty name degrades to a
// placeholder instead of breaking the view.
func (p *PlayerSummary) DisplayName() string {
	if p == nil || p.FullName == "" {
		return "?"
	}
	return p.FullName
}

// DisplayRating returns the rating as text, "-" when absent.
func (p *PlayerSummary) DisplayRating() string {
	if p == nil || p.RatingRapid == nil {
		return "-"
	}
	return strconv.Itoa(*p.RatingRapid)
}
