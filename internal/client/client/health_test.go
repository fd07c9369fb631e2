package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestCheckHealth(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	hs := health.NewServer()
	hs.SetServingStatus(HealthServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) })
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := CheckHealth(ctx, "passthrough:///bufnet", "", dialer)
	require.NoError(t, err)
	assert.Equal(t, "SERVING", status)

	status, err = CheckHealth(ctx, "passthrough:///bufnet", HealthServiceName, dialer)
	require.NoError(t, err)
	assert.Equal(t, "NOT_SERVING", status)

	_, err = CheckHealth(ctx, "passthrough:///bufnet", "unknown.service", dialer)
	assert.ErrorIs(t, err, ErrUnavailable)
}
