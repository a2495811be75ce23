package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
)

type StandingRepository interface {
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

// ListByTournament returns the classification ordered by points, the way
// both the ongoing and the final standings pages show it. rating_at_end is
// only filled for finished tournaments.
func (r *postgresStandingRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	query := `
		SELECT s.tournament_id, s.player_id, s.points, s.games_played, s.rating_at_end,
		       p.full_name, p.rating_rapid
		FROM tournament_standings s
		JOIN players p ON p.id = s.player_id
		WHERE s.tournament_id = $1
		ORDER BY s.points DESC, p.full_name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	standings := make([]models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		var summary models.PlayerSummary
		if err := rows.Scan(&s.TournamentID, &s.PlayerID, &s.Points, &s.GamesPlayed, &s.RatingAtEnd, &summary.FullName, &summary.RatingRapid); err != nil {
			return nil, fmt.Errorf("failed to scan standing row: %w", err)
		}
		summary.ID = s.PlayerID
		s.Player = &summary
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during standing rows iteration: %w", err)
	}
	return standings, nil
}
