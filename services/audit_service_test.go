package services

import (
	"context"
	"testing"
	"time"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRollbackRepo struct {
	entries []models.RollbackEntry
}

func (f *fakeRollbackRepo) ListRecent(ctx context.Context, limit int) ([]models.RollbackEntry, error) {
	return f.entries, nil
}

type fakePlayerRepo struct {
	players []*models.Player
	names   map[uuid.UUID]string
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	for _, p := range f.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (f *fakePlayerRepo) ListByRatingDesc(ctx context.Context, limit int) ([]*models.Player, error) {
	if limit > 0 && len(f.players) > limit {
		return f.players[:limit], nil
	}
	return f.players, nil
}

func (f *fakePlayerRepo) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeRefereeRepo struct {
	referees []*models.Referee
	names    map[uuid.UUID]string
}

func (f *fakeRefereeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Referee, error) {
	for _, r := range f.referees {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repositories.ErrRefereeNotFound
}

func (f *fakeRefereeRepo) GetByEmail(ctx context.Context, email string) (*models.Referee, error) {
	for _, r := range f.referees {
		if r.Email == email {
			return r, nil
		}
	}
	return nil, repositories.ErrRefereeNotFound
}

func (f *fakeRefereeRepo) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func TestListRollbacksRequiresAdmin(t *testing.T) {
	svc := NewAuditService(&fakeRollbackRepo{}, &fakePlayerRepo{}, &fakeRefereeRepo{})

	_, err := svc.ListRollbacks(context.Background(), models.RoleReferee)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestListRollbacksResolvesNames(t *testing.T) {
	whiteID := uuid.New()
	blackID := uuid.New()
	refereeID := uuid.New()
	orphanID := uuid.New()
	round := 2

	rollbackRepo := &fakeRollbackRepo{entries: []models.RollbackEntry{
		{
			ID:          uuid.New(),
			RoundNumber: &round,
			WhiteID:     &whiteID,
			BlackID:     &blackID,
			RefereeID:   &refereeID,
			CreatedAt:   time.Now(),
		},
		{
			// Player deleted since the rollback; no referee recorded.
			ID:        uuid.New(),
			WhiteID:   &orphanID,
			CreatedAt: time.Now(),
		},
	}}
	playerRepo := &fakePlayerRepo{names: map[uuid.UUID]string{
		whiteID: "Alice Andrade",
		blackID: "Bruno Braga",
	}}
	refereeRepo := &fakeRefereeRepo{names: map[uuid.UUID]string{
		refereeID: "Carla Couto",
	}}

	svc := NewAuditService(rollbackRepo, playerRepo, refereeRepo)
	entries, err := svc.ListRollbacks(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Alice Andrade", entries[0].WhiteName)
	assert.Equal(t, "Bruno Braga", entries[0].BlackName)
	assert.Equal(t, "Carla Couto", entries[0].RefereeName)

	assert.Equal(t, "?", entries[1].WhiteName)
	assert.Equal(t, "?", entries[1].BlackName)
	assert.Equal(t, "—", entries[1].RefereeName)
}

func TestListRollbacksEmpty(t *testing.T) {
	svc := NewAuditService(&fakeRollbackRepo{}, &fakePlayerRepo{}, &fakeRefereeRepo{})

	entries, err := svc.ListRollbacks(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
