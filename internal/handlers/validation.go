package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("denominations", validateDenominations)
}

// validateDenominations accepts a nil or empty count; otherwise every value
// must be positive and every count non-negative.
func validateDenominations(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(domain.Denominations)
	if !ok {
		return false
	}
	return d.Validate() == nil
}
