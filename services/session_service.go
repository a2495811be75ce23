package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubedopeao/tournament-api/live"
	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/repositories"
	"github.com/google/uuid"
)

const defaultMaxPlayers = 18

// SessionSummary decorates a session with its check-in occupancy for the
// admin session list.
type SessionSummary struct {
	Session      *models.Session `json:"session"`
	Label        string          `json:"label"`
	CheckedIn    int             `json:"checked_in"`
	SpotsLeft    int             `json:"spots_left"`
	IsStandalone bool            `json:"is_standalone"`
}

type CreateSessionInput struct {
	TournamentID  uuid.UUID `json:"tournament_id"`
	SessionNumber int       `json:"session_number"`
	MatchDate     time.Time `json:"match_date"`
	MaxPlayers    int       `json:"max_players"`
}

type SessionService interface {
	ListOpen(ctx context.Context) ([]*models.Session, error)
	ListOpenWithOccupancy(ctx context.Context) ([]SessionSummary, error)
	Create(ctx context.Context, input CreateSessionInput) error
	Close(ctx context.Context, sessionID uuid.UUID) error
	GeneratePairings(ctx context.Context, sessionID uuid.UUID) error
	Checkins(ctx context.Context, sessionID uuid.UUID) ([]models.Checkin, error)
	CheckinPlayer(ctx context.Context, sessionID, playerID uuid.UUID) error
	CancelCheckin(ctx context.Context, sessionID, playerID uuid.UUID) error
	IsPlayerCheckedIn(ctx context.Context, sessionID, playerID uuid.UUID) (bool, error)
}

type sessionService struct {
	sessionRepo repositories.SessionRepository
	checkinRepo repositories.CheckinRepository
	procRepo    repositories.ProcedureRepository
	hub         *live.Hub
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	checkinRepo repositories.CheckinRepository,
	procRepo repositories.ProcedureRepository,
	hub *live.Hub,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		checkinRepo: checkinRepo,
		procRepo:    procRepo,
		hub:         hub,
	}
}

func (s *sessionService) ListOpen(ctx context.Context) ([]*models.Session, error) {
	sessions, err := s.sessionRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListOpenWithOccupancy(ctx context.Context) ([]SessionSummary, error) {
	sessions, err := s.sessionRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		count, err := s.checkinRepo.CountBySession(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count checkins for session %s: %w", session.ID, err)
		}
		spots := session.MaxPlayers - count
		if spots < 0 {
			spots = 0
		}
		standalone := session.Tournament != nil && session.Tournament.Type == models.TypeDaily
		summaries = append(summaries, SessionSummary{
			Session:      session,
			Label:        session.Tournament.DisplayName(),
			CheckedIn:    count,
			SpotsLeft:    spots,
			IsStandalone: standalone,
		})
	}
	return summaries, nil
}

// Create opens a new club day via the create_tournament_session procedure.
// Standalone daily tournaments always get session number 1.
func (s *sessionService) Create(ctx context.Context, input CreateSessionInput) error {
	if input.TournamentID == uuid.Nil || input.SessionNumber <= 0 || input.MatchDate.IsZero() {
		return ErrValidationFailed
	}
	if input.MaxPlayers <= 0 {
		input.MaxPlayers = defaultMaxPlayers
	}
	return s.procRepo.CreateSession(ctx, input.TournamentID, input.SessionNumber, input.MatchDate, input.MaxPlayers)
}

func (s *sessionService) Close(ctx context.Context, sessionID uuid.UUID) error {
	err := s.sessionRepo.UpdateStatus(ctx, sessionID, models.SessionFinished)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to close session %s: %w", sessionID, err)
	}
	s.hub.Notify(sessionID, live.EventSessionClosed)
	return nil
}

// GeneratePairings runs the opaque pairing generator for an open session.
// The procedure itself closes check-in and refuses non-open sessions; this
// guard just gives a clearer error for the common case.
func (s *sessionService) GeneratePairings(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	if session.Status != models.SessionOpen {
		return ErrSessionNotOpen
	}

	if err := s.procRepo.GeneratePairings(ctx, sessionID); err != nil {
		return err
	}
	s.hub.Notify(sessionID, live.EventPairingsCreated)
	return nil
}

func (s *sessionService) Checkins(ctx context.Context, sessionID uuid.UUID) ([]models.Checkin, error) {
	checkins, err := s.checkinRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	return checkins, nil
}

func (s *sessionService) CheckinPlayer(ctx context.Context, sessionID, playerID uuid.UUID) error {
	return s.procRepo.CheckinPlayer(ctx, sessionID, playerID)
}

func (s *sessionService) CancelCheckin(ctx context.Context, sessionID, playerID uuid.UUID) error {
	return s.procRepo.CancelCheckin(ctx, sessionID, playerID)
}

func (s *sessionService) IsPlayerCheckedIn(ctx context.Context, sessionID, playerID uuid.UUID) (bool, error) {
	return s.checkinRepo.Exists(ctx, sessionID, playerID)
}
