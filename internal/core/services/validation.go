package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tag validation and converts failures into a
// domain validation error naming every offending field.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.Error{Kind: domain.KindValidation, Message: "invalid input", Err: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
	}
	return domain.NewValidationError("invalid fields: %s", strings.Join(fields, ", "))
}
