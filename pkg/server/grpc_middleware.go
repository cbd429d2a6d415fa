package server

import (
	"context"
	"time"

	"github.com/kumarabd/gokit/logger"
	"github.com/kumarabd/ingestion-plane/loggen/internal/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func grpcLoggingInterceptor(log *logger.Handler) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		if err != nil {
			log.Error().
				Err(err).
				Str("method", info.FullMethod).
				Dur("latency", time.Since(start)).
				Msg("gRPC Request failed")
		} else {
			log.Info().
				Str("method", info.FullMethod).
				Dur("latency", time.Since(start)).
				Msg("gRPC Request")
		}

		return resp, err
	}
}

func grpcMetricsInterceptor(metric *metrics.Handler) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)

		result := "success"
		if err != nil {
			result = "error"
		}
		if metric != nil {
			metric.IncGRPCRequestsTotal(info.FullMethod, result)
		}

		return resp, err
	}
}

// grpcRecoveryHandler turns a handler panic into an Internal status
func grpcRecoveryHandler(log *logger.Handler) func(p interface{}) error {
	return func(p interface{}) error {
		log.Error().Msgf("gRPC handler panic: %v", p)
		return status.Errorf(codes.Internal, "internal error")
	}
}
