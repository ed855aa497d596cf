package handlers

import (
	"log/slog"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		slog.Warn("Binding engine is not go-playground/validator; custom tags unavailable")
		return
	}
	if err := v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		return domain.ValidCurrencyCode(fl.Field().String())
	}); err != nil {
		slog.Error("Failed to register currency_code validator", slog.String("error", err.Error()))
	}
}
