package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/clubedopeao/tournament-api/live"
	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/reconcile"
	"github.com/clubedopeao/tournament-api/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	session *models.Session
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	if f.session == nil || f.session.ID != id {
		return nil, repositories.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeSessionRepo) ListOpen(ctx context.Context) ([]*models.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*models.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error {
	return nil
}

type fakePairingRepo struct {
	pairings []models.Pairing
}

func (f *fakePairingRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Pairing, error) {
	return f.pairings, nil
}

type fakeMatchRepo struct {
	matches []models.Match
	recent  []models.Match
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListByTournamentAndRounds(ctx context.Context, tournamentID uuid.UUID, rounds []int) ([]models.Match, error) {
	return f.matches, nil
}

func (f *fakeMatchRepo) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fakeProcRepo struct {
	registered []repositories.RegisterMatchInput
	registerFn func(repositories.RegisterMatchInput) error
	rolledBack []uuid.UUID
}

func (f *fakeProcRepo) RegisterMatch(ctx context.Context, in repositories.RegisterMatchInput) error {
	if f.registerFn != nil {
		if err := f.registerFn(in); err != nil {
			return err
		}
	}
	f.registered = append(f.registered, in)
	return nil
}

func (f *fakeProcRepo) RollbackMatch(ctx context.Context, matchID, refereeID uuid.UUID, reason *string) error {
	f.rolledBack = append(f.rolledBack, matchID)
	return nil
}

func (f *fakeProcRepo) GeneratePairings(ctx context.Context, sessionID uuid.UUID) error {
	return nil
}

func (f *fakeProcRepo) CreateSession(ctx context.Context, tournamentID uuid.UUID, sessionNumber int, matchDate time.Time, maxPlayers int) error {
	return nil
}

func (f *fakeProcRepo) CheckinPlayer(ctx context.Context, sessionID, playerID uuid.UUID) error {
	return nil
}

func (f *fakeProcRepo) CancelCheckin(ctx context.Context, sessionID, playerID uuid.UUID) error {
	return nil
}

func testHub() *live.Hub {
	return live.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type boardFixture struct {
	service   BoardService
	session   *models.Session
	pairings  []models.Pairing
	matchRepo *fakeMatchRepo
	procRepo  *fakeProcRepo
}

func newBoardFixture(t *testing.T) *boardFixture {
	t.Helper()

	session := &models.Session{
		ID:           uuid.New(),
		TournamentID: uuid.New(),
		Status:       models.SessionInProgress,
	}

	white := &models.PlayerSummary{ID: uuid.New(), FullName: "Alice"}
	black := &models.PlayerSummary{ID: uuid.New(), FullName: "Bruno"}
	pairings := []models.Pairing{
		{
			ID:          uuid.New(),
			SessionID:   session.ID,
			RoundNumber: 1,
			TableNumber: 1,
			White:       white,
			Black:       black,
		},
		{
			ID:          uuid.New(),
			SessionID:   session.ID,
			RoundNumber: 1,
			TableNumber: 2,
			White:       &models.PlayerSummary{ID: uuid.New(), FullName: "Carla"},
		},
	}

	matchRepo := &fakeMatchRepo{}
	procRepo := &fakeProcRepo{}

	svc := NewBoardService(
		&fakeSessionRepo{session: session},
		&fakePairingRepo{pairings: pairings},
		matchRepo,
		procRepo,
		testHub(),
	)

	return &boardFixture{
		service:   svc,
		session:   session,
		pairings:  pairings,
		matchRepo: matchRepo,
		procRepo:  procRepo,
	}
}

func TestBoardReturnsMergedCards(t *testing.T) {
	fx := newBoardFixture(t)

	view, err := fx.service.Board(context.Background(), fx.session.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, fx.session.ID, view.Session.ID)
	assert.Equal(t, []int{1}, view.Rounds)
	assert.Equal(t, 1, view.CurrentRound)
	require.Len(t, view.Cards, 2)
	assert.Equal(t, reconcile.StatePending, view.Cards[0].State)
	assert.Equal(t, reconcile.StateBye, view.Cards[1].State)
}

func TestBoardUnknownSession(t *testing.T) {
	fx := newBoardFixture(t)

	_, err := fx.service.Board(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBoardUnknownRound(t *testing.T) {
	fx := newBoardFixture(t)

	_, err := fx.service.Board(context.Background(), fx.session.ID, 9)
	assert.ErrorIs(t, err, ErrUnknownRound)
}

func TestBoardWithoutPairings(t *testing.T) {
	session := &models.Session{ID: uuid.New(), TournamentID: uuid.New()}
	svc := NewBoardService(
		&fakeSessionRepo{session: session},
		&fakePairingRepo{},
		&fakeMatchRepo{},
		&fakeProcRepo{},
		testHub(),
	)

	_, err := svc.Board(context.Background(), session.ID, 0)
	assert.ErrorIs(t, err, ErrNoPairingsGenerated)
}

func TestConfirmIntentRegistersResult(t *testing.T) {
	fx := newBoardFixture(t)
	ctx := context.Background()
	playable := fx.pairings[0]
	refereeID := uuid.New()

	intent, err := fx.service.OpenIntent(ctx, fx.session.ID, playable.ID, reconcile.ResultWhiteWin)
	require.NoError(t, err)
	assert.Equal(t, "1 – 0 · Brancas vencem", intent.ResultLabel)
	assert.Equal(t, "Alice vs Bruno", intent.Matchup)
	assert.Equal(t, "-", intent.WhiteRating)
	assert.Equal(t, "-", intent.BlackRating)

	// The refresh after registration sees the new match.
	fx.matchRepo.matches = []models.Match{{
		ID:          uuid.New(),
		RoundNumber: playable.RoundNumber,
		WhiteID:     playable.White.ID,
		BlackID:     playable.Black.ID,
		ResultWhite: 1,
		CreatedAt:   time.Now(),
	}}

	require.NoError(t, fx.service.ConfirmIntent(ctx, fx.session.ID, playable.ID, refereeID))

	require.Len(t, fx.procRepo.registered, 1)
	in := fx.procRepo.registered[0]
	assert.Equal(t, fx.session.TournamentID, in.TournamentID)
	assert.Equal(t, playable.White.ID, in.WhiteID)
	assert.Equal(t, playable.Black.ID, in.BlackID)
	assert.Equal(t, float64(1), in.ResultWhite)
	assert.Equal(t, float64(0), in.ResultBlack)
	assert.Equal(t, refereeID, in.RefereeID)
	assert.False(t, in.IsWalkover)

	view, err := fx.service.Board(ctx, fx.session.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, reconcile.StateDone, view.Cards[0].State)
}

func TestConfirmIntentWithoutSelection(t *testing.T) {
	fx := newBoardFixture(t)

	err := fx.service.ConfirmIntent(context.Background(), fx.session.ID, fx.pairings[0].ID, uuid.New())
	assert.ErrorIs(t, err, reconcile.ErrNothingPending)
	assert.Empty(t, fx.procRepo.registered)
}

func TestOpenIntentRejectsBye(t *testing.T) {
	fx := newBoardFixture(t)
	bye := fx.pairings[1]

	_, err := fx.service.OpenIntent(context.Background(), fx.session.ID, bye.ID, reconcile.ResultWhiteWin)
	assert.ErrorIs(t, err, reconcile.ErrPairingIsBye)
}

func TestCancelIntentDiscardsSelection(t *testing.T) {
	fx := newBoardFixture(t)
	ctx := context.Background()
	playable := fx.pairings[0]

	_, err := fx.service.OpenIntent(ctx, fx.session.ID, playable.ID, reconcile.ResultDraw)
	require.NoError(t, err)
	require.NoError(t, fx.service.CancelIntent(ctx, fx.session.ID, playable.ID))

	err = fx.service.ConfirmIntent(ctx, fx.session.ID, playable.ID, uuid.New())
	assert.ErrorIs(t, err, reconcile.ErrNothingPending)
}

func TestConfirmIntentTranslatesDuplicate(t *testing.T) {
	fx := newBoardFixture(t)
	ctx := context.Background()
	playable := fx.pairings[0]

	fx.procRepo.registerFn = func(repositories.RegisterMatchInput) error {
		return repositories.ErrDuplicateMatch
	}

	_, err := fx.service.OpenIntent(ctx, fx.session.ID, playable.ID, reconcile.ResultDraw)
	require.NoError(t, err)

	err = fx.service.ConfirmIntent(ctx, fx.session.ID, playable.ID, uuid.New())
	assert.ErrorIs(t, err, ErrMatchAlreadyRegistered)
	assert.Equal(t,
		"this pairing already has a recorded result for this round",
		ErrMatchAlreadyRegistered.Error())

	// The failed confirmation releases the machine for a retry.
	_, err = fx.service.OpenIntent(ctx, fx.session.ID, playable.ID, reconcile.ResultDraw)
	assert.NoError(t, err)
}

func TestRollbackRequiresAdmin(t *testing.T) {
	fx := newBoardFixture(t)

	err := fx.service.Rollback(context.Background(), uuid.New(), uuid.New(), nil, models.RoleReferee)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	assert.Empty(t, fx.procRepo.rolledBack)
}

func TestRollbackInvalidatesBoards(t *testing.T) {
	fx := newBoardFixture(t)
	ctx := context.Background()
	playable := fx.pairings[0]

	fx.matchRepo.matches = []models.Match{{
		ID:          uuid.New(),
		RoundNumber: playable.RoundNumber,
		WhiteID:     playable.White.ID,
		BlackID:     playable.Black.ID,
		ResultWhite: 1,
		CreatedAt:   time.Now(),
	}}

	view, err := fx.service.Board(ctx, fx.session.ID, 0)
	require.NoError(t, err)
	require.Equal(t, reconcile.StateDone, view.Cards[0].State)

	matchID := fx.matchRepo.matches[0].ID
	fx.matchRepo.matches = nil

	require.NoError(t, fx.service.Rollback(ctx, matchID, uuid.New(), nil, models.RoleAdmin))
	assert.Equal(t, []uuid.UUID{matchID}, fx.procRepo.rolledBack)

	// The next read rebuilds the board and the card is pending again.
	view, err = fx.service.Board(ctx, fx.session.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatePending, view.Cards[0].State)
}

func TestRecentMatchesPreview(t *testing.T) {
	fx := newBoardFixture(t)
	for i := 0; i < 10; i++ {
		fx.matchRepo.recent = append(fx.matchRepo.recent, models.Match{
			ID:          uuid.New(),
			RoundNumber: 1,
			WhiteID:     uuid.New(),
			BlackID:     uuid.New(),
			ResultWhite: 1,
			White:       &models.PlayerSummary{FullName: fmt.Sprintf("White %d", i)},
			Black:       &models.PlayerSummary{FullName: fmt.Sprintf("Black %d", i)},
		})
	}

	view, err := fx.service.RecentMatches(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 10, view.Total)
	assert.Len(t, view.Matches, 3)
	assert.Equal(t, "1 – 0", view.Matches[0].Score)
	assert.Equal(t, 7, view.Hidden)
	assert.False(t, view.Expanded)

	view, err = fx.service.RecentMatches(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, view.Matches, 10)
	assert.Zero(t, view.Hidden)
	assert.True(t, view.Expanded)
}

func TestRecentMatchesShortListAlwaysExpanded(t *testing.T) {
	fx := newBoardFixture(t)
	fx.matchRepo.recent = []models.Match{{ID: uuid.New()}, {ID: uuid.New()}}

	view, err := fx.service.RecentMatches(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, view.Matches, 2)
	assert.Zero(t, view.Hidden)
	assert.True(t, view.Expanded)
}
