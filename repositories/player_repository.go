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

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListByRatingDesc(ctx context.Context, limit int) ([]*models.Player, error)
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	query := `
		SELECT id, full_name, email, rating_rapid, games_played_rapid, created_at
		FROM players
		WHERE id = $1`

	p := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Email, &p.RatingRapid, &p.GamesPlayedRapid, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player %s: %w", id, err)
	}
	return p, nil
}

// ListByRatingDesc backs the public ratings page and the top-N widget.
// limit <= 0 means no limit.
func (r *postgresPlayerRepository) ListByRatingDesc(ctx context.Context, limit int) ([]*models.Player, error) {
	query := `
		SELECT id, full_name, email, rating_rapid, games_played_rapid, created_at
		FROM players
		ORDER BY rating_rapid DESC NULLS LAST, full_name ASC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players by rating: %w", err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.RatingRapid, &p.GamesPlayedRapid, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := `SELECT id, full_name FROM players WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query player names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan player name row: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player name rows iteration: %w", err)
	}
	return names, nil
}
