package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListByTournamentAndRounds(ctx context.Context, tournamentID uuid.UUID, rounds []int) ([]models.Match, error)
	ListRecent(ctx context.Context, limit int) ([]models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, round_number, player_white, player_black,
	       result_white, result_black, is_walkover, created_at`

func (r *postgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.RoundNumber, &m.WhiteID, &m.BlackID,
		&m.ResultWhite, &m.ResultBlack, &m.IsWalkover, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %s: %w", id, err)
	}
	return m, nil
}

// ListByTournamentAndRounds is the re-fetch feeding the reconciliation
// merge: every registered result for the rounds the current pairing set
// spans.
func (r *postgresMatchRepository) ListByTournamentAndRounds(ctx context.Context, tournamentID uuid.UUID, rounds []int) ([]models.Match, error) {
	if len(rounds) == 0 {
		return []models.Match{}, nil
	}

	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1 AND round_number = ANY($2)
		ORDER BY round_number ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, pq.Array(rounds))
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.RoundNumber, &m.WhiteID, &m.BlackID,
			&m.ResultWhite, &m.ResultBlack, &m.IsWalkover, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

// ListRecent returns the newest registered matches with player names joined,
// for the recent-activity list.
func (r *postgresMatchRepository) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	query := `
		SELECT m.id, m.tournament_id, m.round_number, m.player_white, m.player_black,
		       m.result_white, m.result_black, m.is_walkover, m.created_at,
		       pw.full_name, pb.full_name
		FROM matches m
		LEFT JOIN players pw ON pw.id = m.player_white
		LEFT JOIN players pb ON pb.id = m.player_black
		ORDER BY m.created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		var whiteName, blackName *string
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.RoundNumber, &m.WhiteID, &m.BlackID,
			&m.ResultWhite, &m.ResultBlack, &m.IsWalkover, &m.CreatedAt,
			&whiteName, &blackName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recent match row: %w", err)
		}
		if whiteName != nil {
			m.White = &models.PlayerSummary{ID: m.WhiteID, FullName: *whiteName}
		}
		if blackName != nil {
			m.Black = &models.PlayerSummary{ID: m.BlackID, FullName: *blackName}
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during recent match rows iteration: %w", err)
	}
	return matches, nil
}
