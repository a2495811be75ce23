package services

import (
	"context"
	"testing"
	"time"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckinRepo struct {
	checkins map[uuid.UUID][]models.Checkin
}

func (f *fakeCheckinRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Checkin, error) {
	return f.checkins[sessionID], nil
}

func (f *fakeCheckinRepo) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	return len(f.checkins[sessionID]), nil
}

func (f *fakeCheckinRepo) Exists(ctx context.Context, sessionID, playerID uuid.UUID) (bool, error) {
	for _, c := range f.checkins[sessionID] {
		if c.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

type fakeOpenSessionRepo struct {
	fakeSessionRepo
	open []*models.Session
}

func (f *fakeOpenSessionRepo) ListOpen(ctx context.Context) ([]*models.Session, error) {
	return f.open, nil
}

func TestListOpenWithOccupancy(t *testing.T) {
	edition := "2025.2"
	daily := &models.Tournament{ID: uuid.New(), Name: "Aberto Relâmpago", Type: models.TypeDaily}
	quarterly := &models.Tournament{ID: uuid.New(), Name: "Quadrimestral", Edition: &edition, Type: models.TypeQuarterly}

	full := &models.Session{ID: uuid.New(), MaxPlayers: 2, Tournament: daily}
	roomy := &models.Session{ID: uuid.New(), MaxPlayers: 18, Tournament: quarterly}

	checkinRepo := &fakeCheckinRepo{checkins: map[uuid.UUID][]models.Checkin{
		full.ID: {
			{PlayerID: uuid.New()},
			{PlayerID: uuid.New()},
			{PlayerID: uuid.New()}, // over capacity; spots clamp at zero
		},
		roomy.ID: {
			{PlayerID: uuid.New()},
		},
	}}

	svc := NewSessionService(
		&fakeOpenSessionRepo{open: []*models.Session{full, roomy}},
		checkinRepo,
		&fakeProcRepo{},
		testHub(),
	)

	summaries, err := svc.ListOpenWithOccupancy(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, 3, summaries[0].CheckedIn)
	assert.Equal(t, 0, summaries[0].SpotsLeft)
	assert.True(t, summaries[0].IsStandalone)
	assert.Equal(t, "Aberto Relâmpago", summaries[0].Label)

	assert.Equal(t, 1, summaries[1].CheckedIn)
	assert.Equal(t, 17, summaries[1].SpotsLeft)
	assert.False(t, summaries[1].IsStandalone)
	assert.Equal(t, "Quadrimestral • Ed. 2025.2", summaries[1].Label)
}

func TestCreateSessionValidation(t *testing.T) {
	svc := NewSessionService(&fakeOpenSessionRepo{}, &fakeCheckinRepo{}, &fakeProcRepo{}, testHub())
	ctx := context.Background()

	base := CreateSessionInput{
		TournamentID:  uuid.New(),
		SessionNumber: 1,
		MatchDate:     time.Now().Add(24 * time.Hour),
	}

	missingTournament := base
	missingTournament.TournamentID = uuid.Nil
	assert.ErrorIs(t, svc.Create(ctx, missingTournament), ErrValidationFailed)

	badNumber := base
	badNumber.SessionNumber = 0
	assert.ErrorIs(t, svc.Create(ctx, badNumber), ErrValidationFailed)

	noDate := base
	noDate.MatchDate = time.Time{}
	assert.ErrorIs(t, svc.Create(ctx, noDate), ErrValidationFailed)

	assert.NoError(t, svc.Create(ctx, base))
}

func TestGeneratePairingsRequiresOpenSession(t *testing.T) {
	session := &models.Session{
		ID:     uuid.New(),
		Status: models.SessionInProgress,
	}
	repo := &fakeOpenSessionRepo{}
	repo.session = session

	procRepo := &fakeProcRepo{}
	svc := NewSessionService(repo, &fakeCheckinRepo{}, procRepo, testHub())

	err := svc.GeneratePairings(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotOpen)

	session.Status = models.SessionOpen
	assert.NoError(t, svc.GeneratePairings(context.Background(), session.ID))
}

func TestGeneratePairingsUnknownSession(t *testing.T) {
	svc := NewSessionService(&fakeOpenSessionRepo{}, &fakeCheckinRepo{}, &fakeProcRepo{}, testHub())

	err := svc.GeneratePairings(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestIsPlayerCheckedIn(t *testing.T) {
	sessionID := uuid.New()
	playerID := uuid.New()
	checkinRepo := &fakeCheckinRepo{checkins: map[uuid.UUID][]models.Checkin{
		sessionID: {{PlayerID: playerID}},
	}}
	svc := NewSessionService(&fakeOpenSessionRepo{}, checkinRepo, &fakeProcRepo{}, testHub())

	ok, err := svc.IsPlayerCheckedIn(context.Background(), sessionID, playerID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsPlayerCheckedIn(context.Background(), sessionID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
