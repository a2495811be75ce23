package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("tournament session not found")

type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListOpen(ctx context.Context) ([]*models.Session, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*models.Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

// sessionSelect joins the owning tournament, matching what every consumer of
// a session needs for labels.
const sessionSelect = `
	SELECT s.id, s.tournament_id, s.session_number, s.match_date, s.match_time,
	       s.max_players, s.status, s.created_at,
	       t.id, t.name, t.edition, t.type, t.status, t.time_control, t.start_date, t.created_at, t.logo_key
	FROM tournament_sessions s
	JOIN tournaments t ON t.id = s.tournament_id`

func scanSession(scanner interface{ Scan(...interface{}) error }) (*models.Session, error) {
	var s models.Session
	var t models.Tournament
	err := scanner.Scan(
		&s.ID, &s.TournamentID, &s.SessionNumber, &s.MatchDate, &s.MatchTime,
		&s.MaxPlayers, &s.Status, &s.CreatedAt,
		&t.ID, &t.Name, &t.Edition, &t.Type, &t.Status, &t.TimeControl, &t.StartDate, &t.CreatedAt, &t.LogoKey,
	)
	if err != nil {
		return nil, err
	}
	s.Tournament = &t
	return &s, nil
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query := sessionSelect + ` WHERE s.id = $1`
	s, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan session %s: %w", id, err)
	}
	return s, nil
}

// ListOpen returns sessions a referee can still work on, soonest first.
func (r *postgresSessionRepository) ListOpen(ctx context.Context) ([]*models.Session, error) {
	query := sessionSelect + `
		WHERE s.status IN ('open', 'in_progress')
		ORDER BY s.match_date ASC`
	return r.list(ctx, query)
}

func (r *postgresSessionRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*models.Session, error) {
	query := sessionSelect + `
		WHERE s.tournament_id = $1
		ORDER BY s.session_number DESC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresSessionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during session rows iteration: %w", err)
	}
	return sessions, nil
}

func (r *postgresSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error {
	query := `UPDATE tournament_sessions SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status for session %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}
