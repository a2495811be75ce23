package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus corresponds to the status ENUM on tournament_sessions.
type SessionStatus string

const (
	SessionOpen       SessionStatus = "open"
	SessionInProgress SessionStatus = "in_progress"
	SessionFinished   SessionStatus = "finished"
)

// Session is one club day of a tournament ("torneio do dia"). Quarterly
// tournaments have many numbered sessions; daily opens have exactly one.
type Session struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	TournamentID  uuid.UUID     `json:"tournament_id" db:"tournament_id"`
	SessionNumber int           `json:"session_number" db:"session_number"`
	MatchDate     time.Time     `json:"match_date" db:"match_date"`
	MatchTime     *string       `json:"match_time,omitempty" db:"match_time"`
	MaxPlayers    int           `json:"max_players" db:"max_players"`
	Status        SessionStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
