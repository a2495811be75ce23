package services

import (
	"context"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const rollbackListLimit = 100

type AuditService interface {
	ListRollbacks(ctx context.Context, role models.RefereeRole) ([]models.RollbackEntry, error)
}

type auditService struct {
	rollbackRepo repositories.RollbackRepository
	playerRepo   repositories.PlayerRepository
	refereeRepo  repositories.RefereeRepository
}

func NewAuditService(
	rollbackRepo repositories.RollbackRepository,
	playerRepo repositories.PlayerRepository,
	refereeRepo repositories.RefereeRepository,
) AuditService {
	return &auditService{
		rollbackRepo: rollbackRepo,
		playerRepo:   playerRepo,
		refereeRepo:  refereeRepo,
	}
}

// ListRollbacks returns the rollback audit log, admin-only, with player and
// referee names batch-resolved by two concurrent lookups.
func (s *auditService) ListRollbacks(ctx context.Context, role models.RefereeRole) ([]models.RollbackEntry, error) {
	if role != models.RoleAdmin {
		return nil, ErrForbiddenOperation
	}

	entries, err := s.rollbackRepo.ListRecent(ctx, rollbackListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rollbacks: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	playerIDs := make([]uuid.UUID, 0)
	refereeIDs := make([]uuid.UUID, 0)
	seenPlayer := make(map[uuid.UUID]bool)
	seenReferee := make(map[uuid.UUID]bool)
	for _, e := range entries {
		for _, id := range []*uuid.UUID{e.WhiteID, e.BlackID} {
			if id != nil && !seenPlayer[*id] {
				seenPlayer[*id] = true
				playerIDs = append(playerIDs, *id)
			}
		}
		if e.RefereeID != nil && !seenReferee[*e.RefereeID] {
			seenReferee[*e.RefereeID] = true
			refereeIDs = append(refereeIDs, *e.RefereeID)
		}
	}

	var playerNames, refereeNames map[uuid.UUID]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		playerNames, err = s.playerRepo.NamesByIDs(gctx, playerIDs)
		return err
	})
	g.Go(func() error {
		var err error
		refereeNames, err = s.refereeRepo.NamesByIDs(gctx, refereeIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve rollback names: %w", err)
	}

	for i := range entries {
		e := &entries[i]
		e.WhiteName = lookupName(playerNames, e.WhiteID, "?")
		e.BlackName = lookupName(playerNames, e.BlackID, "?")
		e.RefereeName = lookupName(refereeNames, e.RefereeID, "—")
	}
	return entries, nil
}

func lookupName(names map[uuid.UUID]string, id *uuid.UUID, fallback string) string {
	if id != nil {
		if name, ok := names[*id]; ok {
			return name
		}
	}
	return fallback
}
