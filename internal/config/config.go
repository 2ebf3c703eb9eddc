// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// Config holds everything cmd/siteadmin needs to wire the process.
type Config struct {
	Port            string
	DatabasePath    string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
	RiverWorkers    int

	ProtectedPageKeys           []string
	ProtectedBusinessModelCodes []string
	ProtectedLegalPageTypes     []string
	ProtectedSpecialtySlugs     []string
}

// Validate checks value ranges after parsing.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.By(isPort)),
		validation.Field(&c.DatabasePath, validation.Required),
		validation.Field(&c.ShutdownTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.RiverWorkers, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

func isPort(value any) error {
	s, _ := value.(string)
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("must be a TCP port between 1 and 65535")
	}
	return nil
}

// Load reads envFiles (".env" when none are given) into the environment without
// overriding variables that are already set, then parses and validates the result.
// A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}

	cfg := Config{
		Port:                        envOrDefault("PORT", "8080"),
		DatabasePath:                envOrDefault("DATABASE_PATH", "siteadmin.db"),
		ProtectedPageKeys:           listOrDefault("PROTECTED_PAGE_KEYS", domain.DefaultProtectedPageKeys),
		ProtectedBusinessModelCodes: listOrDefault("PROTECTED_BUSINESS_MODEL_CODES", domain.DefaultProtectedBusinessModelCodes),
		ProtectedLegalPageTypes:     listOrDefault("PROTECTED_LEGAL_PAGE_TYPES", domain.DefaultProtectedLegalPageTypes),
		ProtectedSpecialtySlugs:     listOrDefault("PROTECTED_SPECIALTY_SLUGS", domain.DefaultProtectedSpecialtySlugs),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(envOrDefault("LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.RiverWorkers, err = strconv.Atoi(envOrDefault("RIVER_WORKERS", "2")); err != nil {
		return Config{}, fmt.Errorf("RIVER_WORKERS: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// listOrDefault splits a comma-separated variable. Set but empty means an
// empty list, which disables the corresponding protection.
func listOrDefault(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
