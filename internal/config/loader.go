package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if NASEA_CONFIG is set
//  3. env (prefix NASEA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("NASEA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: NASEA_CSV_URL, NASEA_PAGE_SIZE, ...
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("NASEA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "nasea_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces startup invariants. A missing fetch target is fatal
// before the first render; there is no partial mode.
func (c *Config) validate() error {
	if strings.TrimSpace(c.CSVURL) == "" {
		return fmt.Errorf("%w: csv_url is required", ErrMissingSource)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%w: page_size must be at least 1", ErrInvalidConfig)
	}
	if c.RefreshIntervalSec < 1 {
		return fmt.Errorf("%w: refresh_interval_sec must be at least 1", ErrInvalidConfig)
	}
	if c.Unit != UnitThousands && c.Unit != UnitDollars {
		return fmt.Errorf("%w: unit must be %q or %q", ErrInvalidConfig, UnitThousands, UnitDollars)
	}
	if c.CrackedPenalty < 0 || c.EMRefund < 0 {
		return fmt.Errorf("%w: scoring constants must not be negative", ErrInvalidConfig)
	}
	return nil
}
