package i18n

const (
	MsgPlayerNotFound         = "player_not_found"
	MsgInvalidAmount          = "invalid_amount"
	MsgConfigurationMissing   = "configuration_missing"
	MsgInsufficientBalance    = "insufficient_balance"
	MsgExternalPayoutFailed   = "external_payout_failed"
	MsgDuplicateTransaction   = "duplicate_transaction"
	MsgRequestInProgress      = "request_in_progress"
	MsgInvalidRequestBody     = "invalid_request_body"
	MsgValidationError        = "validation_error"
	MsgInvalidCredentials     = "invalid_credentials"
	MsgEmailTaken             = "email_taken"
	MsgUnauthorized           = "unauthorized"
	MsgForbidden              = "forbidden"
	MsgInvalidSignature       = "invalid_signature"
	MsgInternalError          = "internal_error"
	MsgWinSettled             = "win_settled"
	MsgWagerPlaced            = "wager_placed"
	MsgWithdrawalCompleted    = "withdrawal_completed"
	MsgBalanceFetched         = "balance_fetched"
	MsgHistoryFetched         = "history_fetched"
	MsgFeeConfigFetched       = "fee_config_fetched"
	MsgFeeConfigUpdated       = "fee_config_updated"
	MsgWebhookProcessed       = "webhook_processed"
	MsgPlayerRegistered       = "player_registered"
	MsgLoginSuccessful        = "login_successful"
	MsgDashboardFetched       = "dashboard_fetched"
	MsgTransactionNotEditable = "transaction_not_editable"
	MsgTransactionNotFound    = "transaction_not_found"
)

var catalog = map[Locale]map[string]string{
	LocaleEN: {
		MsgPlayerNotFound:         "Player not found",
		MsgInvalidAmount:          "Invalid amount",
		MsgConfigurationMissing:   "Platform fee configuration is missing",
		MsgInsufficientBalance:    "Insufficient balance",
		MsgExternalPayoutFailed:   "Payout could not be completed, funds were returned to your balance",
		MsgDuplicateTransaction:   "Transaction already processed",
		MsgRequestInProgress:      "A request with this idempotency key is in progress",
		MsgInvalidRequestBody:     "Invalid request body",
		MsgValidationError:        "Validation error",
		MsgInvalidCredentials:     "Invalid email or password",
		MsgEmailTaken:             "Email is already registered",
		MsgUnauthorized:           "Missing or invalid token",
		MsgForbidden:              "You do not have permission to access this resource",
		MsgInvalidSignature:       "Invalid signature",
		MsgInternalError:          "Internal server error",
		MsgWinSettled:             "Win settled",
		MsgWagerPlaced:            "Wager placed",
		MsgWithdrawalCompleted:    "Withdrawal completed",
		MsgBalanceFetched:         "Balance fetched",
		MsgHistoryFetched:         "Transaction history fetched",
		MsgFeeConfigFetched:       "Fee configuration fetched",
		MsgFeeConfigUpdated:       "Fee configuration updated",
		MsgWebhookProcessed:       "Webhook processed",
		MsgPlayerRegistered:       "Player registered",
		MsgLoginSuccessful:        "Login successful",
		MsgDashboardFetched:       "Dashboard fetched",
		MsgTransactionNotEditable: "Transaction can no longer be changed",
		MsgTransactionNotFound:    "Transaction not found",
	},
	LocaleES: {
		MsgPlayerNotFound:       "Jugador no encontrado",
		MsgInvalidAmount:        "Importe no válido",
		MsgConfigurationMissing: "Falta la configuración de la comisión de la plataforma",
		MsgInsufficientBalance:  "Saldo insuficiente",
		MsgExternalPayoutFailed: "No se pudo completar el pago, los fondos se devolvieron a su saldo",
		MsgDuplicateTransaction: "Transacción ya procesada",
		MsgInvalidRequestBody:   "Cuerpo de solicitud no válido",
		MsgValidationError:      "Error de validación",
		MsgInvalidCredentials:   "Correo o contraseña no válidos",
		MsgUnauthorized:         "Token ausente o no válido",
		MsgForbidden:            "No tiene permiso para acceder a este recurso",
		MsgInternalError:        "Error interno del servidor",
		MsgWinSettled:           "Ganancia liquidada",
		MsgWithdrawalCompleted:  "Retiro completado",
		MsgBalanceFetched:       "Saldo obtenido",
	},
	LocaleDE: {
		MsgPlayerNotFound:       "Spieler nicht gefunden",
		MsgInvalidAmount:        "Ungültiger Betrag",
		MsgConfigurationMissing: "Plattformgebühr ist nicht konfiguriert",
		MsgInsufficientBalance:  "Unzureichendes Guthaben",
		MsgExternalPayoutFailed: "Auszahlung fehlgeschlagen, der Betrag wurde Ihrem Guthaben gutgeschrieben",
		MsgDuplicateTransaction: "Transaktion bereits verarbeitet",
		MsgInvalidRequestBody:   "Ungültiger Anfrageinhalt",
		MsgValidationError:      "Validierungsfehler",
		MsgInvalidCredentials:   "E-Mail oder Passwort ungültig",
		MsgUnauthorized:         "Token fehlt oder ist ungültig",
		MsgForbidden:            "Keine Berechtigung für diese Ressource",
		MsgInternalError:        "Interner Serverfehler",
		MsgWinSettled:           "Gewinn gutgeschrieben",
		MsgWithdrawalCompleted:  "Auszahlung abgeschlossen",
		MsgBalanceFetched:       "Guthaben abgerufen",
	},
}
