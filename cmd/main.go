package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kumarabd/gokit/logger"
	"github.com/kumarabd/ingestion-plane/loggen/internal/config"
	"github.com/kumarabd/ingestion-plane/loggen/internal/metrics"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/server"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/service"
)

const shutdownTimeout = 10 * time.Second

// main is the entry point of the application
func main() {
	// Initialize a new logger with the application name and syslog format
	log, err := logger.New(config.ApplicationName, logger.Options{
		Format: logger.SyslogLogFormat,
	})
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Initialize a new configuration handler
	configHandler, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}

	// Initialize a new metrics handler with the application name
	metricsHandler, err := metrics.New(config.ApplicationName)
	if err != nil {
		log.Error().Err(err).Msg("metrics initialization failed")
		os.Exit(1)
	}

	serviceHandler, err := service.New(log, metricsHandler, configHandler.Generator)
	if err != nil {
		log.Error().Err(err).Msg("service initialization failed")
		os.Exit(1)
	}
	log.Info().Str("version", config.ApplicationVersion).Msg("service initialized")

	srv, err := server.New(log, metricsHandler, configHandler.Server, serviceHandler)
	if err != nil {
		log.Error().Err(err).Msg("server initialization failed")
		os.Exit(1)
	}
	log.Info().Msg("server initialized")

	// Run until a server exits or the process is asked to stop
	ch := make(chan struct{}, 2)
	srv.Start(ch)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ch:
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutdown requested")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
