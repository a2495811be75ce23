package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Errors surfaced by the stored procedures. ErrDuplicateMatch corresponds to
// the unique_match_per_round constraint on (tournament, round, white, black).
var (
	ErrDuplicateMatch = errors.New("match already registered for this pairing and round")
)

// ProcedureRepository invokes the named server-side procedures that hold all
// substantive tournament logic: pairing generation, result registration with
// rating updates, rollback bookkeeping, check-in validation. Their internals
// are opaque to this service; the contract is the parameter list and the
// error message.
type ProcedureRepository interface {
	RegisterMatch(ctx context.Context, in RegisterMatchInput) error
	RollbackMatch(ctx context.Context, matchID, refereeID uuid.UUID, reason *string) error
	GeneratePairings(ctx context.Context, sessionID uuid.UUID) error
	CreateSession(ctx context.Context, tournamentID uuid.UUID, sessionNumber int, matchDate time.Time, maxPlayers int) error
	CheckinPlayer(ctx context.Context, sessionID, playerID uuid.UUID) error
	CancelCheckin(ctx context.Context, sessionID, playerID uuid.UUID) error
}

type RegisterMatchInput struct {
	TournamentID uuid.UUID
	RoundNumber  int
	WhiteID      uuid.UUID
	BlackID      uuid.UUID
	ResultWhite  float64
	ResultBlack  float64
	RefereeID    uuid.UUID
	IsWalkover   bool
}

type postgresProcedureRepository struct {
	db *sql.DB
}

func NewPostgresProcedureRepository(db *sql.DB) ProcedureRepository {
	return &postgresProcedureRepository{db: db}
}

func (r *postgresProcedureRepository) RegisterMatch(ctx context.Context, in RegisterMatchInput) error {
	query := `SELECT register_match($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		in.TournamentID,
		in.RoundNumber,
		in.WhiteID,
		in.BlackID,
		in.ResultWhite,
		in.ResultBlack,
		in.RefereeID,
		in.IsWalkover,
	)
	if err != nil {
		if isDuplicateMatch(err) {
			return ErrDuplicateMatch
		}
		return fmt.Errorf("register_match failed: %w", err)
	}
	return nil
}

func (r *postgresProcedureRepository) RollbackMatch(ctx context.Context, matchID, refereeID uuid.UUID, reason *string) error {
	query := `SELECT rollback_match($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, matchID, refereeID, reason); err != nil {
		return fmt.Errorf("rollback_match failed: %w", err)
	}
	return nil
}

func (r *postgresProcedureRepository) GeneratePairings(ctx context.Context, sessionID uuid.UUID) error {
	query := `SELECT generate_pairings($1)`
	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("generate_pairings failed: %w", err)
	}
	return nil
}

func (r *postgresProcedureRepository) CreateSession(ctx context.Context, tournamentID uuid.UUID, sessionNumber int, matchDate time.Time, maxPlayers int) error {
	query := `SELECT create_tournament_session($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, tournamentID, sessionNumber, matchDate, maxPlayers); err != nil {
		return fmt.Errorf("create_tournament_session failed: %w", err)
	}
	return nil
}

func (r *postgresProcedureRepository) CheckinPlayer(ctx context.Context, sessionID, playerID uuid.UUID) error {
	query := `SELECT checkin_tournament($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, playerID); err != nil {
		return fmt.Errorf("checkin_tournament failed: %w", err)
	}
	return nil
}

func (r *postgresProcedureRepository) CancelCheckin(ctx context.Context, sessionID, playerID uuid.UUID) error {
	query := `SELECT cancel_checkin($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, playerID); err != nil {
		return fmt.Errorf("cancel_checkin failed: %w", err)
	}
	return nil
}

// isDuplicateMatch recognizes the unique_match_per_round violation whether it
// arrives as a raw constraint error or re-raised from inside the procedure
// with the constraint name in the message.
func isDuplicateMatch(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Constraint == "unique_match_per_round" {
			return true
		}
		return strings.Contains(pqErr.Message, "unique_match_per_round")
	}
	return false
}
