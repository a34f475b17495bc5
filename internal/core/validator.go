package core

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"skycheck/internal/types"
)

// Validator wraps go-playground/validator with the domain-specific rules
// used by request payloads.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a Validator and registers custom validation tags.
func NewValidator(logger *slog.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// clocktime: a wall-clock "HH:MM" string.
	_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, err := types.ParseClockMinutes(fl.Field().String())
		return err == nil
	})

	return &Validator{
		validate: v,
		logger:   logger,
	}
}

// ValidateStruct runs struct-tag validation on dst and converts failures
// into a field-keyed AppError suitable for the response envelope.
func (v *Validator) ValidateStruct(dst interface{}) error {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "validation could not run", err)
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "validation failed", err)
	}

	fields := make(map[string]any, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fieldPath(fe)] = failureMessage(fe)
	}

	return types.NewAppErrorWithDetails(
		types.ErrCodeValidationMissingField,
		"request payload failed validation",
		nil,
		map[string]any{"fields": fields},
	)
}

// fieldPath strips the top-level struct name from the validator namespace,
// leaving a stable dotted path for clients.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

// failureMessage renders a short human-readable reason for a field failure.
func failureMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "clocktime":
		return "must be a wall-clock time in HH:MM format"
	case "max":
		return "exceeds the maximum of " + fe.Param()
	case "min":
		return "below the minimum of " + fe.Param()
	default:
		return "failed rule: " + fe.Tag()
	}
}
