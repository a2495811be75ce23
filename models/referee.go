package models

import (
	"time"

	"github.com/google/uuid"
)

// RefereeRole mirrors the role enum on the referees table.
type RefereeRole string

const (
	RoleAdmin   RefereeRole = "admin"
	RoleReferee RefereeRole = "referee"
)

type Referee struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	FullName     string      `json:"full_name" db:"full_name"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Role         RefereeRole `json:"role" db:"role"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}
