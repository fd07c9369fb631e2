package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServiceName is the service name the server reports next to the
// overall status.
const HealthServiceName = "travelmate.api"

// CheckHealth asks the gRPC health service at addr for the status of
// service ("" for the server as a whole).
func CheckHealth(ctx context.Context, addr, service string, opts ...grpc.DialOption) (string, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return "", fmt.Errorf("health client: %w", err)
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp.GetStatus().String(), nil
}
