package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/middleware"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/auth/dto"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

type AuthUsecase struct {
	players  *repository.PlayerRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthUsecase(players *repository.PlayerRepository, secret string, tokenTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{players: players, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a player with a zero balance and signs them in.
func (u *AuthUsecase) Register(ctx context.Context, in dto.RegisterInput) (*dto.TokenOutput, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	currency := model.CurrencyUSD
	if in.Currency != "" {
		currency = model.Currency(strings.ToUpper(in.Currency))
	}

	p := &model.Player{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         model.RolePlayer,
		Currency:     currency,
		IsActive:     true,
	}
	if err := u.players.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Infof("✅ player %d registered (%s)", p.ID, p.Currency)
	return u.issue(p)
}

func (u *AuthUsecase) Login(ctx context.Context, in dto.LoginInput) (*dto.TokenOutput, error) {
	p, err := u.players.GetByEmail(ctx, in.Email)
	if errors.Is(err, errs.ErrPlayerNotFound) {
		return nil, errs.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return u.issue(p)
}

func (u *AuthUsecase) issue(p *model.Player) (*dto.TokenOutput, error) {
	token, exp, err := middleware.GenerateToken(u.secret, u.tokenTTL, p.ID, p.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenOutput{Token: token, ExpiresAt: exp, Player: p}, nil
}
