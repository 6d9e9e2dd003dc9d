package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

// registerDefaultRules adds the project-specific tags:
//
//	currency  a wallet currency code, case-insensitive
func registerDefaultRules(v *validator.Validate) {
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return model.ValidCurrency(strings.ToUpper(fl.Field().String()))
	})
}
