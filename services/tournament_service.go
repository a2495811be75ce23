package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/repositories"
	"github.com/clubedopeao/tournament-api/storage"
	"github.com/google/uuid"
)

type TournamentService interface {
	GetOngoing(ctx context.Context) (*models.Tournament, error)
	ListFinished(ctx context.Context) ([]*models.Tournament, error)
	Standings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error)
	UploadLogo(ctx context.Context, tournamentID uuid.UUID, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	standingRepo   repositories.StandingRepository
	uploader       storage.FileUploader // nil when R2 is not configured
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	standingRepo repositories.StandingRepository,
	uploader storage.FileUploader,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		standingRepo:   standingRepo,
		uploader:       uploader,
	}
}

// GetOngoing returns the tournament in progress, or ErrTournamentNotFound
// when the club is between tournaments.
func (s *tournamentService) GetOngoing(ctx context.Context) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetOngoing(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get ongoing tournament: %w", err)
	}
	s.fillLogoURL(t)
	return t, nil
}

func (s *tournamentService) ListFinished(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListByStatus(ctx, models.TournamentFinished)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished tournaments: %w", err)
	}
	for _, t := range tournaments {
		s.fillLogoURL(t)
	}
	return tournaments, nil
}

func (s *tournamentService) Standings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", tournamentID, err)
	}
	standings, err := s.standingRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	return standings, nil
}

// UploadLogo stores a tournament logo in the object store, replacing and
// deleting the previous one when present.
func (s *tournamentService) UploadLogo(ctx context.Context, tournamentID uuid.UUID, contentType string, file io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrLogoUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrValidationFailed
	}

	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", tournamentID, err)
	}

	key := fmt.Sprintf("tournaments/%s/logo-%s", tournamentID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	oldKey := t.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, tournamentID, &result.Key); err != nil {
		// Best effort: don't leave the fresh object orphaned.
		_ = s.uploader.Delete(ctx, result.Key)
		return nil, fmt.Errorf("failed to persist logo key: %w", err)
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	t.LogoKey = &result.Key
	s.fillLogoURL(t)
	return t, nil
}

func (s *tournamentService) fillLogoURL(t *models.Tournament) {
	if s.uploader == nil || t == nil || t.LogoKey == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*t.LogoKey); url != "" {
		t.LogoURL = &url
	}
}
