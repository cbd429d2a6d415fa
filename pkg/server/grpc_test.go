package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/kumarabd/gokit/logger"
	"github.com/kumarabd/ingestion-plane/loggen/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestGRPCHealth(t *testing.T) {
	log, err := logger.New("test", logger.Options{Format: logger.JSONLogFormat})
	require.NoError(t, err)
	metric, err := metrics.New("test")
	require.NoError(t, err)

	server := NewGRPC(&GRPCConfig{Host: "127.0.0.1", Port: "0"}, log, metric)
	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = server.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := healthpb.NewHealthClient(conn)

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: HealthServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "unknown"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))

	assert.True(t, server.IsRunning())
	assert.Equal(t, 2.0, testutil.ToFloat64(metric.GRPCRequestsTotal.WithLabelValues(healthpb.Health_Check_FullMethodName, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metric.GRPCRequestsTotal.WithLabelValues(healthpb.Health_Check_FullMethodName, "error")))

	require.NoError(t, conn.Close())
	require.NoError(t, server.Stop(ctx))
	assert.False(t, server.IsRunning())
}

func TestGRPCRecoveryHandler(t *testing.T) {
	log, err := logger.New("test", logger.Options{Format: logger.JSONLogFormat})
	require.NoError(t, err)

	err = grpcRecoveryHandler(log)("boom")
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestNewRequiresAServer(t *testing.T) {
	_, err := New(nil, nil, &Config{}, nil)
	assert.Error(t, err)

	_, err = New(nil, nil, nil, nil)
	assert.Error(t, err)
}
