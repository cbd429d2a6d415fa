package server

import (
	"context"
	"errors"

	"github.com/kumarabd/gokit/logger"
	"github.com/kumarabd/ingestion-plane/loggen/internal/metrics"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/service"
)

// Config contains configuration for all server types
type Config struct {
	HTTP *HTTPConfig `json:"http" yaml:"http"`
	GRPC *GRPCConfig `json:"grpc,omitempty" yaml:"grpc,omitempty"`
}

type Handler struct {
	HTTP   *HTTP
	GRPC   *GRPC
	config *Config
	log    *logger.Handler
}

// New creates the configured servers; a nil section disables that server
func New(l *logger.Handler, m *metrics.Handler, serverConfig *Config, svc *service.Handler) (*Handler, error) {
	if serverConfig == nil || (serverConfig.HTTP == nil && serverConfig.GRPC == nil) {
		return nil, errors.New("no server configured")
	}

	var httpServer *HTTP
	if serverConfig.HTTP != nil {
		httpServer = NewHTTP(serverConfig.HTTP, svc, l, m)
	}

	var grpcServer *GRPC
	if serverConfig.GRPC != nil {
		grpcServer = NewGRPC(serverConfig.GRPC, l, m)
	}

	return &Handler{
		HTTP:   httpServer,
		GRPC:   grpcServer,
		config: serverConfig,
		log:    l,
	}, nil
}

// Start runs every configured server in its own goroutine and signals ch
// once per server when it exits
func (h *Handler) Start(ch chan struct{}) {
	if h.HTTP != nil {
		go func() {
			if err := h.HTTP.Start(); err != nil {
				h.log.Error().Err(err).Msg("HTTP server failed")
			}
			ch <- struct{}{}
		}()
	}

	if h.GRPC != nil {
		go func() {
			if err := h.GRPC.Start(); err != nil {
				h.log.Error().Err(err).Msg("gRPC server failed")
			}
			ch <- struct{}{}
		}()
	}
}

// Stop shuts down every configured server
func (h *Handler) Stop(ctx context.Context) error {
	var errs []error
	if h.HTTP != nil {
		errs = append(errs, h.HTTP.Stop(ctx))
	}
	if h.GRPC != nil {
		errs = append(errs, h.GRPC.Stop(ctx))
	}
	return errors.Join(errs...)
}
