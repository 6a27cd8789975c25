// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Unit denominations for costs and scoring constants. The whole pipeline
// works in one unit; only the presenter converts for display.
const (
	UnitThousands = "thousands"
	UnitDollars   = "dollars"
)

// Default scoring constants, denominated in $K. When the unit is dollars
// they scale by a fixed factor of 1000.
const (
	defaultCrackedPenaltyK = 1_000
	defaultEMRefundK       = 10
	thousandsToDollars     = 1_000
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CSVURL is the published CSV to pull submissions from. Required.
	CSVURL string `koanf:"csv_url"`

	// RefreshIntervalSec drives the tick counter and page rotation.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	// CacheTTLSec bounds how often the CSV is actually re-fetched.
	CacheTTLSec int `koanf:"cache_ttl_sec"`

	// PageSize is the number of rows shown per rotation page.
	PageSize int `koanf:"page_size"`

	// Unit selects the denomination: "thousands" (default) or "dollars".
	Unit string `koanf:"unit"`

	// CrackedPenalty is the mid-tier outcome penalty in the configured unit.
	// Zero means use the default for the unit. The broken penalty is always
	// 10x this value.
	CrackedPenalty float64 `koanf:"cracked_penalty"`

	// EMRefund is subtracted from the score when the EM flag is set.
	// Zero means use the default for the unit.
	EMRefund float64 `koanf:"em_refund"`

	// FetchTimeoutSec bounds a single CSV fetch.
	FetchTimeoutSec int `koanf:"fetch_timeout_sec"`

	// FetchRetries sets how many attempts a tick's fetch gets. A single
	// attempt by default: a failed fetch is fatal for its tick and waits
	// for the next one.
	FetchRetries int `koanf:"fetch_retries"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		RefreshIntervalSec: 10,
		CacheTTLSec:        10,
		PageSize:           18,
		Unit:               UnitThousands,
		FetchTimeoutSec:    10,
		FetchRetries:       1,
	}
}

// RefreshInterval returns the tick interval as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSec) * time.Second
}

// CacheTTL returns the fetch cache window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// FetchTimeout returns the per-fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// unitScale is the factor between the $K defaults and the configured unit.
func (c *Config) unitScale() float64 {
	if c.Unit == UnitDollars {
		return thousandsToDollars
	}
	return 1
}

// ScoringCrackedPenalty returns the mid-tier penalty in the configured unit.
func (c *Config) ScoringCrackedPenalty() float64 {
	if c.CrackedPenalty > 0 {
		return c.CrackedPenalty
	}
	return defaultCrackedPenaltyK * c.unitScale()
}

// ScoringEMRefund returns the EM refund in the configured unit.
func (c *Config) ScoringEMRefund() float64 {
	if c.EMRefund > 0 {
		return c.EMRefund
	}
	return defaultEMRefundK * c.unitScale()
}

// DisplayMultiplier converts a score in the configured unit to raw dollars
// for rendering.
func (c *Config) DisplayMultiplier() float64 {
	if c.Unit == UnitThousands {
		return thousandsToDollars
	}
	return 1
}
