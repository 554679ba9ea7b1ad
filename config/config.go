// Package config loads runtime configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig carries process level settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// ClientConfig carries the fax account credentials and defaults.
type ClientConfig struct {
	// AccessID and AccessPwd authenticate every request.
	AccessID  string
	AccessPwd string
	// CallerID, SenderEmail and AccountCode are account wide defaults that
	// individual requests may override.
	CallerID    string
	SenderEmail string
	AccountCode string
	// URL is the WSDL location, the production service when empty.
	URL string
	// Endpoint selects the RPC backend: "soap" (default) or "mock".
	Endpoint string
	// TimeoutSeconds bounds one SOAP round trip.
	TimeoutSeconds int
}

// Config aggregates all runtime configuration.
type Config struct {
	App AppConfig
	Fax ClientConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present. All problems are collected and
// reported together.
func Load() (*Config, error) {
	_ = godotenv.Load()

	loader := &envLoader{}

	cfg := &Config{
		App: AppConfig{
			Env:      loader.getString("APP_ENV", "development", false),
			LogLevel: loader.getString("LOG_LEVEL", "info", false),
		},
		Fax: ClientConfig{
			AccessID:       loader.getString("SRFAX_ACCESS_ID", "", true),
			AccessPwd:      loader.getString("SRFAX_ACCESS_PWD", "", true),
			CallerID:       loader.getString("SRFAX_CALLER_ID", "", false),
			SenderEmail:    loader.getString("SRFAX_SENDER_EMAIL", "", false),
			AccountCode:    loader.getString("SRFAX_ACCOUNT_CODE", "", false),
			URL:            loader.getString("SRFAX_URL", "", false),
			Endpoint:       loader.getString("SRFAX_ENDPOINT", "soap", false),
			TimeoutSeconds: loader.getInt("SRFAX_TIMEOUT_SECONDS", 30, false),
		},
	}

	switch strings.ToLower(cfg.Fax.Endpoint) {
	case "soap", "mock":
	default:
		loader.errs = append(loader.errs, fmt.Sprintf("SRFAX_ENDPOINT must be one of soap, mock; got %q", cfg.Fax.Endpoint))
	}

	if len(loader.errs) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(loader.errs, "; "))
	}
	return cfg, nil
}

// envLoader reads environment values and accumulates every problem it finds
// so Load can report them in one pass.
type envLoader struct {
	errs []string
}

func (l *envLoader) getString(key, def string, required bool) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		if required {
			l.errs = append(l.errs, fmt.Sprintf("%s is required", key))
		}
		return def
	}
	return value
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		if required {
			l.errs = append(l.errs, fmt.Sprintf("%s is required", key))
		}
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		l.errs = append(l.errs, fmt.Sprintf("%s must be an integer, got %q", key, value))
		return def
	}
	return parsed
}
