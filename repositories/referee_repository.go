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

var ErrRefereeNotFound = errors.New("referee not found")

type RefereeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Referee, error)
	GetByEmail(ctx context.Context, email string) (*models.Referee, error)
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type postgresRefereeRepository struct {
	db *sql.DB
}

func NewPostgresRefereeRepository(db *sql.DB) RefereeRepository {
	return &postgresRefereeRepository{db: db}
}

const refereeColumns = `id, full_name, email, password_hash, role, created_at`

func (r *postgresRefereeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Referee, error) {
	query := `SELECT ` + refereeColumns + ` FROM referees WHERE id = $1`
	return r.scanReferee(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRefereeRepository) GetByEmail(ctx context.Context, email string) (*models.Referee, error) {
	query := `SELECT ` + refereeColumns + ` FROM referees WHERE email = $1`
	return r.scanReferee(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresRefereeRepository) scanReferee(row *sql.Row) (*models.Referee, error) {
	ref := &models.Referee{}
	err := row.Scan(&ref.ID, &ref.FullName, &ref.Email, &ref.PasswordHash, &ref.Role, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRefereeNotFound
		}
		return nil, fmt.Errorf("failed to scan referee: %w", err)
	}
	return ref, nil
}

// NamesByIDs batch-resolves referee display names for the rollback audit.
func (r *postgresRefereeRepository) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := `SELECT id, full_name FROM referees WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query referee names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan referee name row: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during referee name rows iteration: %w", err)
	}
	return names, nil
}
