package errs

import (
	"errors"
	"net/http"

	"github.com/rahulgarg55/casino-games-backend/pkg/i18n"
)

type mapping struct {
	err    error
	status int
	msgKey string
}

var table = []mapping{
	{ErrPlayerNotFound, http.StatusNotFound, i18n.MsgPlayerNotFound},
	{ErrInvalidAmount, http.StatusBadRequest, i18n.MsgInvalidAmount},
	{ErrInvalidFeeConfig, http.StatusBadRequest, i18n.MsgValidationError},
	{ErrConfigurationMissing, http.StatusServiceUnavailable, i18n.MsgConfigurationMissing},
	{ErrInsufficientBalance, http.StatusUnprocessableEntity, i18n.MsgInsufficientBalance},
	{ErrExternalPayoutFailed, http.StatusBadGateway, i18n.MsgExternalPayoutFailed},
	{ErrDuplicateTransaction, http.StatusConflict, i18n.MsgDuplicateTransaction},
	{ErrRequestInProgress, http.StatusConflict, i18n.MsgRequestInProgress},
	{ErrTransactionNotFound, http.StatusNotFound, i18n.MsgTransactionNotFound},
	{ErrTransactionNotEditable, http.StatusConflict, i18n.MsgTransactionNotEditable},
	{ErrInvalidCredentials, http.StatusUnauthorized, i18n.MsgInvalidCredentials},
	{ErrEmailTaken, http.StatusConflict, i18n.MsgEmailTaken},
	{ErrUnauthorized, http.StatusUnauthorized, i18n.MsgUnauthorized},
	{ErrForbidden, http.StatusForbidden, i18n.MsgForbidden},
	{ErrInvalidSignature, http.StatusUnauthorized, i18n.MsgInvalidSignature},
}

// HTTPStatus maps a domain error to a status code and catalog message key.
// Unknown errors map to 500.
func HTTPStatus(err error) (int, string) {
	for _, m := range table {
		if errors.Is(err, m.err) {
			return m.status, m.msgKey
		}
	}
	return http.StatusInternalServerError, i18n.MsgInternalError
}
