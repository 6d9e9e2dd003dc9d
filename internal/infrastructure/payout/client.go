package payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/rahulgarg55/casino-games-backend/internal/config"
)

type Request struct {
	TransactionID   string          `json:"transaction_id"`
	PlayerID        int64           `json:"player_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	PaymentMethodID string          `json:"payment_method_id"`
}

type Result struct {
	PayoutID string `json:"id"`
	Status   string `json:"status"`
}

// Payouter transfers funds to a player outside the platform.
type Payouter interface {
	Payout(ctx context.Context, req Request) (*Result, error)
}

// FailedError is returned when the processor accepted the request but
// reported the payout as failed. PayoutID is the processor's reference.
type FailedError struct {
	PayoutID string
	Status   string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("payout %s %s", e.PayoutID, e.Status)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client calls the payment processor's payout API.
type Client struct {
	http *resty.Client
}

func NewClient(cfg *config.PayoutConfig) *Client {
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		c.SetAuthToken(cfg.APIKey)
	}
	return &Client{http: c}
}

func (c *Client) Payout(ctx context.Context, req Request) (*Result, error) {
	var (
		out     Result
		failure errorBody
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", req.TransactionID).
		SetBody(req).
		SetResult(&out).
		SetError(&failure).
		Post("/v1/payouts")
	if err != nil {
		return nil, fmt.Errorf("payout request: %w", err)
	}
	if resp.IsError() {
		msg := failure.Message
		if msg == "" {
			msg = failure.Error
		}
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("payout rejected (%d): %s", resp.StatusCode(), msg)
	}
	if out.PayoutID == "" {
		return nil, errors.New("payout response missing id")
	}
	if out.Status == "failed" {
		return nil, &FailedError{PayoutID: out.PayoutID, Status: out.Status}
	}
	return &out, nil
}
