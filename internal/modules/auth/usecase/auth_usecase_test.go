package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/middleware"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/auth/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/testutil"
)

const secret = "test-secret"

func TestRegisterThenLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	uc := NewAuthUsecase(repository.NewPlayerRepository(db, db), secret, time.Hour)
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterInput{
		Email: "Alice@Example.com", Username: "alice", Password: "correct-horse", Currency: "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", reg.Player.Email)
	assert.Equal(t, model.CurrencyEUR, reg.Player.Currency)
	assert.True(t, reg.Player.Balance.IsZero())
	assert.NotEqual(t, "correct-horse", reg.Player.PasswordHash)

	claims, err := middleware.ParseToken(secret, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.Player.ID, claims.PlayerID)
	assert.Equal(t, model.RolePlayer, claims.Role)

	login, err := uc.Login(ctx, dto.LoginInput{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, reg.Player.ID, login.Player.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	uc := NewAuthUsecase(repository.NewPlayerRepository(db, db), secret, time.Hour)
	in := dto.RegisterInput{Email: "bob@example.com", Username: "bob", Password: "password123"}

	_, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, errs.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := testutil.NewTestDB(t)
	uc := NewAuthUsecase(repository.NewPlayerRepository(db, db), secret, time.Hour)
	_, err := uc.Register(context.Background(), dto.RegisterInput{Email: "carol@example.com", Username: "carol", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginInput{Email: "carol@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}
