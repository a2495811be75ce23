package models

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus and TournamentType correspond to ENUMs in the database.
type TournamentStatus string

const (
	TournamentOngoing  TournamentStatus = "ongoing"
	TournamentFinished TournamentStatus = "finished"
)

type TournamentType string

const (
	// TypeQuarterly is a multi-session tournament played over a term
	// ("quadrimestral"), one session per club day.
	TypeQuarterly TournamentType = "quadrimestral"
	// TypeDaily is a standalone single-day open tournament ("diario").
	TypeDaily TournamentType = "diario"
)

type Tournament struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Edition     *string          `json:"edition,omitempty" db:"edition"`
	Type        TournamentType   `json:"type" db:"type"`
	Status      TournamentStatus `json:"status" db:"status"`
	TimeControl *string          `json:"time_control,omitempty" db:"time_control"`
	StartDate   *time.Time       `json:"start_date,omitempty" db:"start_date"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	LogoKey     *string          `json:"-" db:"logo_key"`
	LogoURL     *string          `json:"logo_url,omitempty" db:"-"`
}

// DisplayName combines name and edition the way the public pages label
// tournaments ("Aberto do Clube • Ed. 2025.1").
func (t *Tournament) DisplayName() string {
	if t == nil {
		return "Torneio"
	}
	if t.Edition != nil && *t.Edition != "" {
		return t.Name + " • Ed. " + *t.Edition
	}
	return t.Name
}
