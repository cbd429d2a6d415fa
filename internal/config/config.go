package config

import (
	"fmt"
	"time"

	config_pkg "github.com/kumarabd/gokit/config"
	"github.com/kumarabd/ingestion-plane/loggen/internal/metrics"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/cache"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/generator"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/server"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/service"
)

var (
	ApplicationName    = "loggen"
	ApplicationVersion = "dev"
)

type Config struct {
	Server    *server.Config   `json:"server,omitempty" yaml:"server,omitempty"`
	Generator *service.Config  `json:"generator" yaml:"generator"`
	Metrics   *metrics.Options `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Default returns the configuration used when nothing overrides it.
// The gRPC server stays disabled until a grpc section is supplied.
func Default() *Config {
	return &Config{
		Server: &server.Config{
			HTTP: &server.HTTPConfig{
				Host:         "0.0.0.0",
				Port:         "8080",
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			},
		},
		Generator: &service.Config{
			DefaultType:  generator.TypePayment,
			DefaultCount: service.DefaultCount,
			MaxCount:     100000,
			Seed:         0, // random seed per request
			Cache: &cache.Config{
				TTL:             5 * time.Minute,
				CleanupInterval: 10 * time.Minute,
				MaxEntrySize:    cache.DefaultMaxEntrySize,
				MaxSize:         cache.DefaultMaxSize,
			},
		},
		Metrics: &metrics.Options{},
	}
}

// New creates a new config instance
func New() (*Config, error) {
	configObject := Default()

	// Load config using gokit config package
	finalConfig, err := config_pkg.New(configObject)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Safe type assertion
	if finalConfig == nil {
		return nil, fmt.Errorf("config is nil")
	}

	cfg, ok := finalConfig.(*Config)
	if !ok {
		return nil, fmt.Errorf("config type assertion failed: expected *Config, got %T", finalConfig)
	}

	return cfg, nil
}
