package services

import (
	"context"
	"testing"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testReferee(t *testing.T, email, password string) *models.Referee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Referee{
		ID:           uuid.New(),
		FullName:     "Carla Couto",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleReferee,
	}
}

func TestLogin(t *testing.T) {
	referee := testReferee(t, "carla@clube.com", "s3gredo")
	svc := NewAuthService(&fakeRefereeRepo{referees: []*models.Referee{referee}})
	ctx := context.Background()

	got, err := svc.Login(ctx, LoginInput{Email: "carla@clube.com", Password: "s3gredo"})
	require.NoError(t, err)
	assert.Equal(t, referee.ID, got.ID)
}

func TestLoginCollapsesFailures(t *testing.T) {
	referee := testReferee(t, "carla@clube.com", "s3gredo")
	svc := NewAuthService(&fakeRefereeRepo{referees: []*models.Referee{referee}})
	ctx := context.Background()

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := svc.Login(ctx, LoginInput{Email: "nobody@clube.com", Password: "s3gredo"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "carla@clube.com", Password: "errada"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetReferee(t *testing.T) {
	referee := testReferee(t, "carla@clube.com", "s3gredo")
	svc := NewAuthService(&fakeRefereeRepo{referees: []*models.Referee{referee}})

	got, err := svc.GetReferee(context.Background(), referee.ID)
	require.NoError(t, err)
	assert.Equal(t, referee.Email, got.Email)

	_, err = svc.GetReferee(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRefereeNotFound)
}
