package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Currency string `json:"currency" validate:"required,oneof=USD EUR"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(&registerInput{Email: "nope", Password: "short", Currency: "JPY"})
	require.Error(t, err)

	msgs := FormatValidationError(err)
	assert.ElementsMatch(t, []string{
		"email must be a valid email",
		"password must have minimum length 8",
		"currency must be one of [USD EUR]",
	}, msgs)
	assert.Contains(t, Message(err), "; ")
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(&registerInput{Email: "a@b.io", Password: "longenough", Currency: "USD"}))
}

type walletInput struct {
	Currency string `json:"currency" validate:"required,currency"`
}

func TestCurrencyRule(t *testing.T) {
	assert.NoError(t, Struct(&walletInput{Currency: "usd"}))
	assert.NoError(t, Struct(&walletInput{Currency: "INR"}))

	err := Struct(&walletInput{Currency: "JPY"})
	require.Error(t, err)
	assert.Equal(t, "currency is not a supported currency", Message(err))
}
