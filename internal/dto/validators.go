package dto

import (
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request DTOs.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		return domain.IsValidDate(fl.Field().String())
	})
}
