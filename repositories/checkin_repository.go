package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
)

type CheckinRepository interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Checkin, error)
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
	Exists(ctx context.Context, sessionID, playerID uuid.UUID) (bool, error)
}

type postgresCheckinRepository struct {
	db *sql.DB
}

func NewPostgresCheckinRepository(db *sql.DB) CheckinRepository {
	return &postgresCheckinRepository{db: db}
}

func (r *postgresCheckinRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Checkin, error) {
	query := `
		SELECT c.id, c.tournament_session_id, c.player_id, c.checked_in_at,
		       p.full_name, p.rating_rapid
		FROM tournament_checkins c
		JOIN players p ON p.id = c.player_id
		WHERE c.tournament_session_id = $1
		ORDER BY c.checked_in_at ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkins for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	checkins := make([]models.Checkin, 0)
	for rows.Next() {
		var c models.Checkin
		var summary models.PlayerSummary
		if err := rows.Scan(&c.ID, &c.SessionID, &c.PlayerID, &c.CheckedInAt, &summary.FullName, &summary.RatingRapid); err != nil {
			return nil, fmt.Errorf("failed to scan checkin row: %w", err)
		}
		summary.ID = c.PlayerID
		c.Player = &summary
		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during checkin rows iteration: %w", err)
	}
	return checkins, nil
}

func (r *postgresCheckinRepository) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tournament_checkins WHERE tournament_session_id = $1`
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count checkins for session %s: %w", sessionID, err)
	}
	return count, nil
}

func (r *postgresCheckinRepository) Exists(ctx context.Context, sessionID, playerID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
		SELECT 1 FROM tournament_checkins
		WHERE tournament_session_id = $1 AND player_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, sessionID, playerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check checkin existence: %w", err)
	}
	return exists, nil
}
