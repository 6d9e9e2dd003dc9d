package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
)

type PeriodSummary struct {
	From         *time.Time             `json:"from,omitempty"`
	To           *time.Time             `json:"to,omitempty"`
	ByType       []repository.TypeTotal `json:"byType"`
	PlatformFees decimal.Decimal        `json:"platformFees"`
}

type DashboardOutput struct {
	ActivePlayers      int64                     `json:"activePlayers"`
	PendingWithdrawals int64                     `json:"pendingWithdrawals"`
	Today              PeriodSummary             `json:"today"`
	AllTime            PeriodSummary             `json:"allTime"`
	Live               map[string]store.TypeStat `json:"live,omitempty"`
	GeneratedAt        time.Time                 `json:"generatedAt"`
}
