package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulgarg55/casino-games-backend/internal/app/factory"
	"github.com/rahulgarg55/casino-games-backend/internal/config"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/payout"
	"github.com/rahulgarg55/casino-games-backend/internal/middleware"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/testutil"
)

const (
	jwtSecret  = "jwt-secret"
	gameSecret = "game-secret"
	paySecret  = "pay-secret"
)

type stubPayout struct{}

func (stubPayout) Payout(_ context.Context, req payout.Request) (*payout.Result, error) {
	return &payout.Result{PayoutID: "po_" + req.TransactionID, Status: "paid"}, nil
}

type envelope struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	Error         string           `json:"error"`
	Data          json.RawMessage  `json:"data"`
	NewBalance    *decimal.Decimal `json:"newBalance"`
	PlatformFee   *decimal.Decimal `json:"platformFee"`
	NetAmount     *decimal.Decimal `json:"netAmount"`
	TransactionID string           `json:"transactionId"`
}

type harness struct {
	t   *testing.T
	app *App
	mr  *miniredis.Miniredis
}

func newHarness(t *testing.T) (*harness, *model.Player) {
	t.Helper()
	db := testutil.NewTestDB(t)
	mr, rdb := testutil.NewTestRedis(t)
	testutil.SeedFeeConfig(t, db, "2", "0.5", "100", true)
	player := testutil.SeedPlayer(t, db, "10")

	cfg := &config.Config{
		App:      &config.AppConfig{Name: "casino-test"},
		Worker:   &config.WorkerConfig{WorkerCount: 0},
		Auth:     &config.AuthConfig{JWTSecret: jwtSecret, TokenTTL: time.Hour},
		Payout:   &config.PayoutConfig{BaseURL: "http://payout.invalid", Timeout: time.Second},
		Wallet:   &config.WalletConfig{FeeCacheTTL: time.Minute, WithdrawalPendingTimeout: time.Hour, IdempotencyKeyTTL: time.Minute},
		Webhooks: &config.WebhookConfig{GameServerSecret: gameSecret, PaymentWebhookSecret: paySecret},
	}
	f := factory.NewFactory(cfg, db, db, rdb)
	f.PayoutClient = stubPayout{}

	return &harness{t: t, app: NewAppWithContainer(cfg, factory.BuildWith(cfg, f, rdb)), mr: mr}, player
}

func (h *harness) do(method, path string, body any, headers map[string]string) (int, envelope) {
	h.t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(h.t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if sig, ok := headers["sign"]; ok {
		req.Header.Del("sign")
		req.Header.Set(middleware.HeaderSignature, middleware.Sign(sig, raw))
	}

	resp, err := h.app.Fiber.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func token(t *testing.T, id int64, role model.Role) string {
	t.Helper()
	tok, _, err := middleware.GenerateToken(jwtSecret, time.Hour, id, role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestGameWinThroughHTTP(t *testing.T) {
	h, player := newHarness(t)
	body := map[string]any{"playerId": player.ID, "amount": "100", "gameRoundId": "round-1"}

	status, _ := h.do(http.MethodPost, "/api/games/win", body, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "unsigned callbacks are rejected")

	status, env := h.do(http.MethodPost, "/api/games/win", body, map[string]string{"sign": gameSecret})
	require.Equal(t, http.StatusCreated, status, env.Error)

	var win struct {
		Success     bool            `json:"success"`
		NewBalance  decimal.Decimal `json:"newBalance"`
		PlatformFee decimal.Decimal `json:"platformFee"`
		NetAmount   decimal.Decimal `json:"netAmount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &win))
	assert.True(t, win.Success)
	assert.True(t, win.NewBalance.Equal(decimal.NewFromInt(108)), win.NewBalance.String())
	assert.True(t, win.PlatformFee.Equal(decimal.NewFromInt(2)))
	assert.True(t, win.NetAmount.Equal(decimal.NewFromInt(98)))

	require.NotNil(t, env.NewBalance)
	require.NotNil(t, env.PlatformFee)
	require.NotNil(t, env.NetAmount)
	assert.True(t, env.NewBalance.Equal(decimal.NewFromInt(108)), env.NewBalance.String())
	assert.True(t, env.PlatformFee.Equal(decimal.NewFromInt(2)))
	assert.True(t, env.NetAmount.Equal(decimal.NewFromInt(98)))
	assert.NotEmpty(t, env.TransactionID)

	status, _ = h.do(http.MethodPost, "/api/games/win", body, map[string]string{"sign": gameSecret})
	assert.Equal(t, http.StatusOK, status, "a replayed round is not settled twice")

	status, env = h.do(http.MethodGet, "/api/wallet/balance", nil, map[string]string{"Authorization": token(t, player.ID, model.RolePlayer)})
	require.Equal(t, http.StatusOK, status)
	var bal struct {
		Balance decimal.Decimal `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &bal))
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(108)))
}

func TestGameWinRejectsAmountBeyondScale(t *testing.T) {
	h, player := newHarness(t)
	body := map[string]any{"playerId": player.ID, "amount": "1.000000001", "gameRoundId": "round-scale"}

	status, env := h.do(http.MethodPost, "/api/games/win", body, map[string]string{"sign": gameSecret})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Nil(t, env.NewBalance)
}

func TestWithdrawalThroughHTTP(t *testing.T) {
	h, player := newHarness(t)
	auth := map[string]string{"Authorization": token(t, player.ID, model.RolePlayer)}

	status, env := h.do(http.MethodPost, "/api/wallet/withdrawals",
		map[string]any{"amount": "4", "currency": "USD", "paymentMethodId": "pm_1"}, auth)
	require.Equal(t, http.StatusCreated, status, env.Error)
	require.NotNil(t, env.NewBalance)
	assert.True(t, env.NewBalance.Equal(decimal.NewFromInt(6)), env.NewBalance.String())
	assert.Nil(t, env.PlatformFee)

	status, env = h.do(http.MethodPost, "/api/wallet/withdrawals",
		map[string]any{"amount": "400", "currency": "USD", "paymentMethodId": "pm_1"}, auth)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.False(t, env.Success)

	status, env = h.do(http.MethodGet, "/api/wallet/transactions?type=withdrawal", nil, auth)
	require.Equal(t, http.StatusOK, status)
	var rows []model.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, model.StatusCompleted, rows[0].Status)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	h, player := newHarness(t)

	status, _ := h.do(http.MethodGet, "/api/admin/fee-config", nil, map[string]string{"Authorization": token(t, player.ID, model.RolePlayer)})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := h.do(http.MethodGet, "/api/admin/fee-config", nil, map[string]string{"Authorization": token(t, 1, model.RoleAdmin)})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, _ = h.do(http.MethodGet, fmt.Sprintf("/api/admin/players/%d/transactions", player.ID), nil,
		map[string]string{"Authorization": token(t, 1, model.RoleAdmin)})
	assert.Equal(t, http.StatusOK, status)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	h, _ := newHarness(t)
	status, env := h.do(http.MethodGet, "/api/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
}

func TestHealthzReadiness(t *testing.T) {
	h, _ := newHarness(t)

	status, env := h.do(http.MethodGet, "/api/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, env = h.do(http.MethodGet, "/api/healthz/ready", nil, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	var checks map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &checks))
	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "ok"}, checks)

	h.mr.Close()
	status, env = h.do(http.MethodGet, "/api/healthz/ready", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "redis")
	require.NoError(t, json.Unmarshal(env.Data, &checks))
	assert.Equal(t, "ok", checks["postgres"])
	assert.NotEqual(t, "ok", checks["redis"])
}
