package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.Referee, error)
	GetReferee(ctx context.Context, id uuid.UUID) (*models.Referee, error)
}

type LoginInput struct {
	Email    string
	Password string
}

type authService struct {
	refereeRepo repositories.RefereeRepository
}

func NewAuthService(refereeRepo repositories.RefereeRepository) AuthService {
	return &authService{refereeRepo: refereeRepo}
}

// Login authenticates a referee by email and password. Unknown email and
// wrong password collapse into the same error on purpose.
func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Referee, error) {
	referee, err := s.refereeRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrRefereeNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up referee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(referee.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return referee, nil
}

// GetReferee resolves the authenticated referee, used by handlers to read
// the current role.
func (s *authService) GetReferee(ctx context.Context, id uuid.UUID) (*models.Referee, error) {
	referee, err := s.refereeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRefereeNotFound) {
			return nil, ErrRefereeNotFound
		}
		return nil, fmt.Errorf("failed to get referee %s: %w", id, err)
	}
	return referee, nil
}
