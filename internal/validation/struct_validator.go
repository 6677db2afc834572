package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
)

// StructValidator validates option structs using struct tags
type StructValidator struct {
	validator *validator.Validate
}

// NewStructValidator creates a validator with the custom tags registered.
// Error messages use the `flag` tag name when present.
func NewStructValidator() *StructValidator {
	v := validator.New()

	v.RegisterValidation("tzname", isTimeZone)
	v.RegisterValidation("colname", isColumnName)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("flag"); name != "" && name != "-" {
			return "--" + name
		}
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &StructValidator{validator: v}
}

// Validate validates a struct and returns a VALIDATION error listing every
// failing field
func (s *StructValidator) Validate(v interface{}) error {
	err := s.validator.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, "invalid options", err)
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, formatValidationError(fe))
	}
	appErr := apperrors.NewAppValidationError(strings.Join(messages, "; "))
	appErr.WithContext("fields", len(verrs))
	return appErr
}

// formatValidationError creates human-readable messages
func formatValidationError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_without":
		return fmt.Sprintf("%s is required when %s is not set", field, param)
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "tzname":
		return fmt.Sprintf("%s must be an IANA time zone name", field)
	case "colname":
		return fmt.Sprintf("%s must contain non-empty column names", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Custom validators

// isTimeZone accepts empty strings and names the zone database knows
func isTimeZone(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	if name == "" {
		return true
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// isColumnName rejects blank entries in column lists
func isColumnName(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
