// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/roadwatch/config.yaml",
	"/etc/roadwatch/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads configuration with layered sources:
//
//  1. Defaults: built-in struct defaults
//  2. Config file: optional YAML (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables: highest priority (SERVER_PORT -> server.port)
//
// The merged result is unmarshaled, validated and returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envPrefixes maps environment variable prefixes to config sections.
// Everything after the prefix becomes the snake_case leaf key, so
// SECURITY_RATE_LIMIT_REQUESTS -> security.rate_limit_requests and
// CALTRANS_CACHE_TTL -> providers.caltrans.cache_ttl.
var envPrefixes = []struct {
	prefix  string
	section string
}{
	{"SERVER_", "server."},
	{"API_", "api."},
	{"SECURITY_", "security."},
	{"UPSTREAM_", "upstream."},
	{"CALTRANS_", "providers.caltrans."},
	{"WSDOT_", "providers.wsdot."},
	{"NY511_", "providers.ny511."},
	{"LOG_", "logging."},
	{"LOGGING_", "logging."},
}

// envTransformFunc maps environment variable names to koanf paths.
// Variables outside the known prefixes are ignored (empty key) so
// unrelated environment noise never leaks into the configuration.
func envTransformFunc(key string) string {
	for _, m := range envPrefixes {
		if strings.HasPrefix(key, m.prefix) {
			rest := strings.ToLower(strings.TrimPrefix(key, m.prefix))
			if rest == "" {
				return ""
			}
			return m.section + rest
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when provided through the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env strings into slices for
// the known slice fields. YAML-sourced values are already slices and are
// left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}
