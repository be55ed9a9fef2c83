// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package config provides layered application configuration via Koanf v2.
//
// Precedence, highest wins: environment variables > YAML config file >
// built-in defaults. See koanf.go for the loading pipeline.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/roadwatch/internal/validation"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Providers ProvidersConfig `koanf:"providers"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// Timeout bounds request read/write and graceful shutdown.
	Timeout time.Duration `koanf:"timeout" validate:"min=1"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds paging limits for list endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size" validate:"min=1"`
	MaxPageSize     int `koanf:"max_page_size" validate:"min=1"`
}

// SecurityConfig holds CORS and client rate-limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// UpstreamConfig holds shared settings for all upstream feed clients.
type UpstreamConfig struct {
	// Timeout is the per-call deadline for one upstream HTTP request.
	Timeout time.Duration `koanf:"timeout" validate:"min=1"`

	// RatePerSecond and RateBurst bound how fast we hit any single
	// upstream host, independent of the raw-feed cache.
	RatePerSecond float64 `koanf:"rate_per_second"`
	RateBurst     int     `koanf:"rate_burst"`
}

// ProvidersConfig enables and points at the individual camera providers.
type ProvidersConfig struct {
	Caltrans CaltransConfig `koanf:"caltrans"`
	WSDOT    WSDOTConfig    `koanf:"wsdot"`
	NY511    NY511Config    `koanf:"ny511"`
}

// CaltransConfig configures the Caltrans CWWP2 adapter.
type CaltransConfig struct {
	Enabled bool `koanf:"enabled"`

	// BaseURL is the CWWP2 data root; district feeds live at
	// {base}/d{district}/cctv/cctvStatusD{district:02d}.json.
	BaseURL string `koanf:"base_url"`

	// CacheTTL is the raw district feed cache lifetime.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// WSDOTConfig configures the Washington State DOT adapter.
type WSDOTConfig struct {
	Enabled bool `koanf:"enabled"`

	// FeedURL returns every camera statewide as one JSON document.
	FeedURL string `koanf:"feed_url"`

	// CameraURL is the single-camera endpoint; the native id is appended
	// as the CameraID query parameter.
	CameraURL string `koanf:"camera_url"`

	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// NY511Config configures the 511NY adapter.
type NY511Config struct {
	Enabled bool `koanf:"enabled"`

	FeedURL  string        `koanf:"feed_url"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Default returns a Config with all default values. Useful for tests
// and tooling; production code goes through Load.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8487,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		API: APIConfig{
			DefaultPageSize: 30,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Upstream: UpstreamConfig{
			Timeout:       15 * time.Second,
			RatePerSecond: 4,
			RateBurst:     12,
		},
		Providers: ProvidersConfig{
			// Caltrans is the only provider enabled by default; the others
			// ship disabled until their feeds are vetted.
			Caltrans: CaltransConfig{
				Enabled:  true,
				BaseURL:  "https://cwwp2.dot.ca.gov/data",
				CacheTTL: 60 * time.Second,
			},
			WSDOT: WSDOTConfig{
				Enabled:   false,
				FeedURL:   "https://wsdot.wa.gov/Traffic/api/v2/TravelMonitoringCamera/GetCamerasAsJson",
				CameraURL: "https://wsdot.wa.gov/Traffic/api/v2/TravelMonitoringCamera/GetCameraAsJson",
				CacheTTL:  120 * time.Second,
			},
			NY511: NY511Config{
				Enabled:  false,
				FeedURL:  "https://511ny.org/api/getitems?datatype=cameras&format=json",
				CacheTTL: 120 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks invariants the loader cannot express structurally.
func (c *Config) Validate() error {
	// Range invariants live in validate struct tags; only cross-field and
	// conditional rules are checked by hand.
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.Providers.Caltrans.Enabled && c.Providers.Caltrans.BaseURL == "" {
		return fmt.Errorf("providers.caltrans.base_url is required when the provider is enabled")
	}
	if c.Providers.WSDOT.Enabled && c.Providers.WSDOT.FeedURL == "" {
		return fmt.Errorf("providers.wsdot.feed_url is required when the provider is enabled")
	}
	if c.Providers.NY511.Enabled && c.Providers.NY511.FeedURL == "" {
		return fmt.Errorf("providers.ny511.feed_url is required when the provider is enabled")
	}
	return nil
}
