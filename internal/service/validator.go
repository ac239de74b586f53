package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// NewValidator returns a validator with the portal's enum rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.UserRole(strings.ToUpper(fl.Field().String())).Valid()
	})
	_ = v.RegisterValidation("event_type", func(fl validator.FieldLevel) bool {
		return models.EventType(strings.ToUpper(fl.Field().String())).Valid()
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return models.AnnouncementPriority(strings.ToUpper(fl.Field().String())).Valid()
	})
	_ = v.RegisterValidation("material_type", func(fl validator.FieldLevel) bool {
		return models.MaterialType(strings.ToUpper(fl.Field().String())).Valid()
	})
	return v
}
