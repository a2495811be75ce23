package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	ListByStatus(ctx context.Context, status models.TournamentStatus) ([]*models.Tournament, error)
	GetOngoing(ctx context.Context) (*models.Tournament, error)
	UpdateLogoKey(ctx context.Context, id uuid.UUID, logoKey *string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, edition, type, status, time_control, start_date, created_at, logo_key`

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Edition, &t.Type, &t.Status, &t.TimeControl, &t.StartDate, &t.CreatedAt, &t.LogoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %s: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE status = $1
		ORDER BY start_date DESC NULLS LAST, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments with status %s: %w", status, err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Edition, &t.Type, &t.Status, &t.TimeControl, &t.StartDate, &t.CreatedAt, &t.LogoKey); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

// GetOngoing returns the single tournament currently in progress, or
// ErrTournamentNotFound when none is.
func (r *postgresTournamentRepository) GetOngoing(ctx context.Context) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE status = 'ongoing'
		ORDER BY created_at DESC
		LIMIT 1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&t.ID, &t.Name, &t.Edition, &t.Type, &t.Status, &t.TimeControl, &t.StartDate, &t.CreatedAt, &t.LogoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan ongoing tournament: %w", err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id uuid.UUID, logoKey *string) error {
	query := `UPDATE tournaments SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update logo key for tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
