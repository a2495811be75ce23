package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/repositories"
	"github.com/clubedopeao/tournament-api/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTournamentRepo struct {
	tournaments []*models.Tournament
	logoKeys    map[uuid.UUID]*string
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	for _, t := range f.tournaments {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (f *fakeTournamentRepo) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]*models.Tournament, error) {
	var out []*models.Tournament
	for _, t := range f.tournaments {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTournamentRepo) GetOngoing(ctx context.Context) (*models.Tournament, error) {
	for _, t := range f.tournaments {
		if t.Status == models.TournamentOngoing {
			return t, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (f *fakeTournamentRepo) UpdateLogoKey(ctx context.Context, id uuid.UUID, logoKey *string) error {
	if f.logoKeys == nil {
		f.logoKeys = make(map[uuid.UUID]*string)
	}
	f.logoKeys[id] = logoKey
	return nil
}

type fakeStandingRepo struct {
	standings map[uuid.UUID][]models.Standing
}

func (f *fakeStandingRepo) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	return f.standings[tournamentID], nil
}

type fakeUploader struct {
	uploads []string
	deletes []string
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (*storage.UploadResult, error) {
	f.uploads = append(f.uploads, key)
	return &storage.UploadResult{Key: key}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.clube.com/" + key
}

func TestGetOngoingTournament(t *testing.T) {
	ongoing := &models.Tournament{ID: uuid.New(), Name: "Quadrimestral", Status: models.TournamentOngoing}
	svc := NewTournamentService(
		&fakeTournamentRepo{tournaments: []*models.Tournament{ongoing}},
		&fakeStandingRepo{},
		nil,
	)

	got, err := svc.GetOngoing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ongoing.ID, got.ID)
}

func TestGetOngoingTournamentNone(t *testing.T) {
	finished := &models.Tournament{ID: uuid.New(), Status: models.TournamentFinished}
	svc := NewTournamentService(
		&fakeTournamentRepo{tournaments: []*models.Tournament{finished}},
		&fakeStandingRepo{},
		nil,
	)

	_, err := svc.GetOngoing(context.Background())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestStandingsUnknownTournament(t *testing.T) {
	svc := NewTournamentService(&fakeTournamentRepo{}, &fakeStandingRepo{}, nil)

	_, err := svc.Standings(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	svc := NewTournamentService(&fakeTournamentRepo{}, &fakeStandingRepo{}, nil)

	_, err := svc.UploadLogo(context.Background(), uuid.New(), "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrLogoUnavailable)
}

func TestUploadLogoRejectsNonImage(t *testing.T) {
	tournament := &models.Tournament{ID: uuid.New(), Status: models.TournamentOngoing}
	svc := NewTournamentService(
		&fakeTournamentRepo{tournaments: []*models.Tournament{tournament}},
		&fakeStandingRepo{},
		&fakeUploader{},
	)

	_, err := svc.UploadLogo(context.Background(), tournament.ID, "application/pdf", strings.NewReader("%PDF"))
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUploadLogoReplacesPrevious(t *testing.T) {
	oldKey := "tournaments/old/logo-1"
	tournament := &models.Tournament{
		ID:      uuid.New(),
		Status:  models.TournamentOngoing,
		LogoKey: &oldKey,
	}
	repo := &fakeTournamentRepo{tournaments: []*models.Tournament{tournament}}
	uploader := &fakeUploader{}
	svc := NewTournamentService(repo, &fakeStandingRepo{}, uploader)

	got, err := svc.UploadLogo(context.Background(), tournament.ID, "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	require.Len(t, uploader.uploads, 1)
	assert.Contains(t, uploader.uploads[0], "tournaments/"+tournament.ID.String()+"/logo-")

	// The superseded object is removed and the new key persisted.
	assert.Equal(t, []string{oldKey}, uploader.deletes)
	require.NotNil(t, repo.logoKeys[tournament.ID])
	assert.Equal(t, uploader.uploads[0], *repo.logoKeys[tournament.ID])

	require.NotNil(t, got.LogoURL)
	assert.Equal(t, "https://cdn.clube.com/"+uploader.uploads[0], *got.LogoURL)
}
