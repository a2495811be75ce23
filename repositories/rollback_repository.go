package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
)

type RollbackRepository interface {
	ListRecent(ctx context.Context, limit int) ([]models.RollbackEntry, error)
}

type postgresRollbackRepository struct {
	db *sql.DB
}

func NewPostgresRollbackRepository(db *sql.DB) RollbackRepository {
	return &postgresRollbackRepository{db: db}
}

// ListRecent returns the rollback audit log newest-first. Player and referee
// ids are returned raw; the audit service batch-resolves names.
func (r *postgresRollbackRepository) ListRecent(ctx context.Context, limit int) ([]models.RollbackEntry, error) {
	query := `
		SELECT id, round_number, player_white, player_black, referee_id, reason, created_at
		FROM match_rollbacks
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match rollbacks: %w", err)
	}
	defer rows.Close()

	entries := make([]models.RollbackEntry, 0)
	for rows.Next() {
		var e models.RollbackEntry
		if err := rows.Scan(&e.ID, &e.RoundNumber, &e.WhiteID, &e.BlackID, &e.RefereeID, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rollback row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rollback rows iteration: %w", err)
	}
	return entries, nil
}
