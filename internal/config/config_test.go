// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8487 {
		t.Errorf("Server.Port = %d, want 8487", cfg.Server.Port)
	}
	if cfg.API.DefaultPageSize != 30 || cfg.API.MaxPageSize != 100 {
		t.Errorf("API paging = %d/%d, want 30/100", cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
	}
	if !cfg.Providers.Caltrans.Enabled {
		t.Error("Caltrans provider must be enabled by default")
	}
	if cfg.Providers.WSDOT.Enabled || cfg.Providers.NY511.Enabled {
		t.Error("WSDOT and NY511 providers must be disabled by default")
	}
	if cfg.Providers.Caltrans.CacheTTL != 60*time.Second {
		t.Errorf("Caltrans.CacheTTL = %s, want 60s", cfg.Providers.Caltrans.CacheTTL)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("Upstream.Timeout = %s, want 15s", cfg.Upstream.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("CALTRANS_ENABLED", "false")
	t.Setenv("WSDOT_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SECURITY_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Providers.Caltrans.Enabled {
		t.Error("CALTRANS_ENABLED=false must disable the provider")
	}
	if !cfg.Providers.WSDOT.Enabled {
		t.Error("WSDOT_ENABLED=true must enable the provider")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 ||
		cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port above range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero default page size", func(c *Config) { c.API.DefaultPageSize = 0 }, true},
		{"max below default page size", func(c *Config) { c.API.MaxPageSize = 5 }, true},
		{"enabled caltrans without url", func(c *Config) { c.Providers.Caltrans.BaseURL = "" }, true},
		{"disabled caltrans without url", func(c *Config) {
			c.Providers.Caltrans.Enabled = false
			c.Providers.Caltrans.BaseURL = ""
		}, false},
		{"enabled ny511 without url", func(c *Config) {
			c.Providers.NY511.Enabled = true
			c.Providers.NY511.FeedURL = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SERVER_PORT", "server.port"},
		{"SECURITY_RATE_LIMIT_REQUESTS", "security.rate_limit_requests"},
		{"CALTRANS_CACHE_TTL", "providers.caltrans.cache_ttl"},
		{"NY511_FEED_URL", "providers.ny511.feed_url"},
		{"LOG_FORMAT", "logging.format"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
