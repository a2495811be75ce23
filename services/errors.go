package services

import "errors"

// Shared errors used across services and mapped to HTTP statuses in the
// handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrSubmissionNotReady  = errors.New("result submission is incomplete")
	ErrNoPairingsGenerated = errors.New("pairings not yet generated for this session")
	ErrSessionNotOpen      = errors.New("session is not open")
	ErrLogoUnavailable     = errors.New("logo storage is not configured")

	// Conflicts. ErrMatchAlreadyRegistered is the fixed translation of the
	// backend's unique_match_per_round violation; it is shown to the user
	// instead of the raw database message.
	ErrMatchAlreadyRegistered = errors.New("this pairing already has a recorded result for this round")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrRefereeNotFound    = errors.New("referee not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrSessionNotFound    = errors.New("tournament session not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPairingNotFound    = errors.New("pairing not found")
	ErrUnknownRound       = errors.New("round not present in this session")
)
