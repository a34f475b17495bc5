// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Enforce UTC timezone to prevent drift bugs.
//  2. Load a .env file via godotenv (non-fatal if absent).
//  3. Use envconfig to process struct tags and populate the Config struct.
//  4. Populate BuildInfo from linker-injected variables.
//  5. Validate the struct using go-playground/validator.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"skycheck/internal/types"
)

// ConfigError is a diagnostic error type returned by LoadConfig.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadConfig loads and validates the skycheck configuration from the
// environment and an optional .env file.
func LoadConfig() (*Config, error) {
	// Enforce UTC to prevent drift bugs; all wall-clock handling in the
	// domain is done on naive local timestamps, never on time.Local.
	time.Local = time.UTC

	// godotenv does not override variables already set in the environment,
	// preserving the priority chain: OS env > .env file.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	cfg.Build = NewBuildInfo()

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	if err := validateShiftClocks(cfg.Commute); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateShiftClocks checks the default commute window clocks, which the
// struct validator cannot express without the chassis's custom tag.
func validateShiftClocks(c CommuteConfig) error {
	clocks := map[string]string{
		"COMMUTE_OUTBOUND_START": c.DefaultOutboundStart,
		"COMMUTE_OUTBOUND_END":   c.DefaultOutboundEnd,
		"COMMUTE_RETURN_START":   c.DefaultReturnStart,
		"COMMUTE_RETURN_END":     c.DefaultReturnEnd,
	}
	for name, value := range clocks {
		if _, err := types.ParseClockMinutes(value); err != nil {
			return &ConfigError{
				Type:    ErrValidation,
				Message: fmt.Sprintf("%s must be a wall-clock HH:MM time, got %q", name, value),
				Err:     err,
			}
		}
	}
	return nil
}

// DefaultShiftWindow builds the fallback shift window from configuration.
func (c CommuteConfig) DefaultShiftWindow() types.ShiftWindow {
	return types.ShiftWindow{
		Name:          "default",
		OutboundStart: c.DefaultOutboundStart,
		OutboundEnd:   c.DefaultOutboundEnd,
		ReturnStart:   c.DefaultReturnStart,
		ReturnEnd:     c.DefaultReturnEnd,
	}
}
