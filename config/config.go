//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads the server configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aynumosir/ainu-mcp-go/gateway"
	"github.com/aynumosir/ainu-mcp-go/gateway/huggingface"
	"github.com/aynumosir/ainu-mcp-go/log"
	"github.com/aynumosir/ainu-mcp-go/server"
	"github.com/aynumosir/ainu-mcp-go/telemetry"
)

// Gateway backends.
const (
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
	BackendOllama      = "ollama"
)

// Cache backends.
const (
	CacheNone     = "none"
	CacheInMemory = "inmemory"
	CacheRedis    = "redis"
	CacheSQLite   = "sqlite"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AINU_MCP_"

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Cache     CacheConfig     `yaml:"cache"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Translate TranslateConfig `yaml:"translate"`
}

// ServerConfig selects the transport.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
	Path      string `yaml:"path"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// GatewayConfig selects and tunes the translation backend.
type GatewayConfig struct {
	Backend        string              `yaml:"backend"`
	Model          string              `yaml:"model"`
	BaseURL        string              `yaml:"base_url"`
	APIKey         string              `yaml:"api_key"`
	Timeout        time.Duration       `yaml:"timeout"`
	MaxConcurrency int                 `yaml:"max_concurrency"`
	Retry          gateway.RetryConfig `yaml:"retry"`
	Probe          bool                `yaml:"probe"`
	ProbeTimeout   time.Duration       `yaml:"probe_timeout"`
}

// CacheConfig selects the translation cache.
type CacheConfig struct {
	Backend    string        `yaml:"backend"`
	Size       int           `yaml:"size"`
	TTL        time.Duration `yaml:"ttl"`
	RedisURL   string        `yaml:"redis_url"`
	SQLitePath string        `yaml:"sqlite_path"`
}

// TelemetryConfig controls OpenTelemetry export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Protocol string `yaml:"protocol"`
	Endpoint string `yaml:"endpoint"`
}

// TranslateConfig tunes the translation tool.
type TranslateConfig struct {
	RejectSameLanguage bool `yaml:"reject_same_language"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      server.DefaultName,
			Version:   server.DefaultVersion,
			Transport: server.TransportStdio,
			Addr:      server.DefaultAddr,
			Path:      server.DefaultMCPPath,
		},
		Log: LogConfig{Level: log.LevelInfo},
		Gateway: GatewayConfig{
			Backend:      BackendHuggingFace,
			Model:        huggingface.DefaultModel,
			Retry:        gateway.DefaultRetryConfig,
			Probe:        true,
			ProbeTimeout: 2 * time.Minute,
		},
		Cache: CacheConfig{
			Backend:    CacheNone,
			Size:       1024,
			SQLitePath: "ainu-mcp-cache.db",
		},
		Telemetry: TelemetryConfig{Protocol: telemetry.ProtocolGRPC},
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Warnf("config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from AINU_MCP_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}

	str("TRANSPORT", &c.Server.Transport)
	str("ADDR", &c.Server.Addr)
	str("PATH", &c.Server.Path)
	str("LOG_LEVEL", &c.Log.Level)
	boolean("LOG_JSON", &c.Log.JSON)
	str("BACKEND", &c.Gateway.Backend)
	str("MODEL", &c.Gateway.Model)
	str("BASE_URL", &c.Gateway.BaseURL)
	str("API_KEY", &c.Gateway.APIKey)
	duration("TIMEOUT", &c.Gateway.Timeout)
	integer("MAX_CONCURRENCY", &c.Gateway.MaxConcurrency)
	integer("MAX_RETRIES", &c.Gateway.Retry.MaxRetries)
	boolean("PROBE", &c.Gateway.Probe)
	str("CACHE", &c.Cache.Backend)
	duration("CACHE_TTL", &c.Cache.TTL)
	str("REDIS_URL", &c.Cache.RedisURL)
	str("SQLITE_PATH", &c.Cache.SQLitePath)
	boolean("TELEMETRY", &c.Telemetry.Enabled)
	str("OTLP_PROTOCOL", &c.Telemetry.Protocol)
	str("OTLP_ENDPOINT", &c.Telemetry.Endpoint)
	boolean("REJECT_SAME_LANGUAGE", &c.Translate.RejectSameLanguage)
	return errors.Join(errs...)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains([]string{server.TransportStdio, server.TransportHTTP}, c.Server.Transport) {
		errs = append(errs, fmt.Errorf("server.transport: unknown transport %q", c.Server.Transport))
	}
	if c.Server.Transport == server.TransportHTTP && c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr: required for http transport"))
	}
	if !slices.Contains([]string{log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError, log.LevelFatal}, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if !slices.Contains([]string{BackendHuggingFace, BackendOpenAI, BackendOllama}, c.Gateway.Backend) {
		errs = append(errs, fmt.Errorf("gateway.backend: unknown backend %q", c.Gateway.Backend))
	}
	if c.Gateway.Model == "" {
		errs = append(errs, errors.New("gateway.model: required"))
	}
	if c.Gateway.Timeout < 0 {
		errs = append(errs, errors.New("gateway.timeout: must not be negative"))
	}
	if c.Gateway.MaxConcurrency < 0 {
		errs = append(errs, errors.New("gateway.max_concurrency: must not be negative"))
	}
	if c.Gateway.Retry.MaxRetries < 0 {
		errs = append(errs, errors.New("gateway.retry.max_retries: must not be negative"))
	}
	switch c.Cache.Backend {
	case "", CacheNone:
	case CacheInMemory:
		if c.Cache.Size <= 0 {
			errs = append(errs, errors.New("cache.size: must be positive"))
		}
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			errs = append(errs, errors.New("cache.redis_url: required for redis cache"))
		}
	case CacheSQLite:
		if c.Cache.SQLitePath == "" {
			errs = append(errs, errors.New("cache.sqlite_path: required for sqlite cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend))
	}
	if c.Telemetry.Enabled &&
		!slices.Contains([]string{telemetry.ProtocolGRPC, telemetry.ProtocolHTTP}, c.Telemetry.Protocol) {
		errs = append(errs, fmt.Errorf("telemetry.protocol: unknown protocol %q", c.Telemetry.Protocol))
	}
	return errors.Join(errs...)
}
