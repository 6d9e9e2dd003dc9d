package errs

import "errors"

var (
	ErrPlayerNotFound         = errors.New("player not found")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrConfigurationMissing   = errors.New("platform fee configuration missing")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrExternalPayoutFailed   = errors.New("external payout failed")
	ErrDuplicateTransaction   = errors.New("duplicate transaction")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrTransactionNotEditable = errors.New("transaction is no longer pending")
	ErrRequestInProgress      = errors.New("request with the same idempotency key is in progress")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailTaken             = errors.New("email already registered")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrInvalidFeeConfig       = errors.New("invalid fee configuration")
)
