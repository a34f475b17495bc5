package config

import (
	"errors"
	"testing"
)

// setRequiredEnv sets the minimal environment for a successful load and
// restores it via t.Setenv cleanup.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "local")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Environment != "local" {
		t.Errorf("Environment = %q, want local", cfg.Environment)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Forecast.BaseURL != "https://api.open-meteo.com" {
		t.Errorf("Forecast.BaseURL = %q", cfg.Forecast.BaseURL)
	}
	if cfg.Forecast.ForecastDays != 3 {
		t.Errorf("Forecast.ForecastDays = %d, want 3", cfg.Forecast.ForecastDays)
	}
	if cfg.Build.Version == "" {
		t.Error("Build.Version must be populated from ldflags defaults")
	}
}

func TestLoadConfig_MissingEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "")

	_, err := LoadConfig()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want ConfigError", err)
	}
	if cfgErr.Type != ErrValidation {
		t.Errorf("Type = %v, want validation failure", cfgErr.Type)
	}
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production") // not in the allowed set

	_, err := LoadConfig()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != ErrValidation {
		t.Fatalf("got %v, want validation ConfigError", err)
	}
}

func TestLoadConfig_InvalidForecastDays(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FORECAST_DAYS", "40")

	_, err := LoadConfig()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != ErrValidation {
		t.Fatalf("got %v, want validation ConfigError", err)
	}
}

func TestLoadConfig_UnparseableDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FORECAST_CACHE_TTL", "soon")

	_, err := LoadConfig()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != ErrParsing {
		t.Fatalf("got %v, want parsing ConfigError", err)
	}
}

func TestLoadConfig_BadShiftClock(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMMUTE_OUTBOUND_START", "25:99")

	_, err := LoadConfig()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != ErrValidation {
		t.Fatalf("got %v, want validation ConfigError", err)
	}
}

func TestDefaultShiftWindow(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMMUTE_RETURN_END", "18:30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	shift := cfg.Commute.DefaultShiftWindow()
	if shift.Name != "default" {
		t.Errorf("Name = %q, want default", shift.Name)
	}
	if shift.OutboundStart != "07:30" || shift.ReturnEnd != "18:30" {
		t.Errorf("unexpected window: %+v", shift)
	}
}
