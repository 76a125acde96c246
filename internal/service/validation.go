package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/event-board/internal/models"
)

// NewEventValidator builds the validator used for event forms. Field errors
// carry the JSON field names and the "timestamp" rule accepts every layout
// models.ParseTimestamp does.
func NewEventValidator() (*validator.Validate, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	if err := validate.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := models.ParseTimestamp(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("register timestamp validation: %w", err)
	}
	return validate, nil
}
