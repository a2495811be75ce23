package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
)

type PairingRepository interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Pairing, error)
}

type postgresPairingRepository struct {
	db *sql.DB
}

func NewPostgresPairingRepository(db *sql.DB) PairingRepository {
	return &postgresPairingRepository{db: db}
}

// ListBySession fetches a session's pairings with both player summaries
// joined, ordered by round then table so the board renders stably. The black
// side is left-joined: a NULL black player is a bye.
func (r *postgresPairingRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Pairing, error) {
	query := `
		SELECT p.id, p.tournament_session_id, p.round_number, p.table_number,
		       pw.id, pw.full_name, pw.rating_rapid,
		       pb.id, pb.full_name, pb.rating_rapid
		FROM pairings p
		JOIN players pw ON pw.id = p.player_white
		LEFT JOIN players pb ON pb.id = p.player_black
		WHERE p.tournament_session_id = $1
		ORDER BY p.round_number ASC, p.table_number ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairings for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	pairings := make([]models.Pairing, 0)
	for rows.Next() {
		var p models.Pairing
		var white models.PlayerSummary
		var blackID *uuid.UUID
		var blackName *string
		var blackRating *int

		if err := rows.Scan(
			&p.ID, &p.SessionID, &p.RoundNumber, &p.TableNumber,
			&white.ID, &white.FullName, &white.RatingRapid,
			&blackID, &blackName, &blackRating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pairing row: %w", err)
		}

		p.White = &white
		if blackID != nil {
			black := models.PlayerSummary{ID: *blackID, RatingRapid: blackRating}
			if blackName != nil {
				black.FullName = *blackName
			}
			p.Black = &black
		}
		pairings = append(pairings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during pairing rows iteration: %w", err)
	}
	return pairings, nil
}
