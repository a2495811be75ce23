package services

import (
	"context"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/repositories"
)

const topPlayersDefault = 6

type PlayerService interface {
	CurrentRatings(ctx context.Context) ([]*models.Player, error)
	TopPlayers(ctx context.Context, limit int) ([]*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) CurrentRatings(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByRatingDesc(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return players, nil
}

// TopPlayers backs the home-page highlight; the site shows six.
func (s *playerService) TopPlayers(ctx context.Context, limit int) ([]*models.Player, error) {
	if limit <= 0 {
		limit = topPlayersDefault
	}
	players, err := s.playerRepo.ListByRatingDesc(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top players: %w", err)
	}
	return players, nil
}
