package grpc_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	revogrpc "github.com/shashiranjanraj/revoshop/pkg/grpc"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

type downStore struct{ *kv.Memory }

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func check(t *testing.T, store kv.Store) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := revogrpc.New(store)
	go func() { _ = srv.Serve(lis) }()
	defer revogrpc.Stop(srv)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthServingWhileStorePings(t *testing.T) {
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, kv.NewMemory()))
}

func TestHealthNotServingWhenStoreIsDown(t *testing.T) {
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, downStore{kv.NewMemory()}))
}

type flakyStore struct {
	*kv.Memory
	down atomic.Bool
}

func (f *flakyStore) Ping(context.Context) error {
	if f.down.Load() {
		return errors.New("connection reset")
	}
	return nil
}

func TestWatchReportsStatusChanges(t *testing.T) {
	old := revogrpc.WatchInterval
	revogrpc.WatchInterval = 20 * time.Millisecond
	defer func() { revogrpc.WatchInterval = old }()

	store := &flakyStore{Memory: kv.NewMemory()}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := revogrpc.New(store)
	go func() { _ = srv.Serve(lis) }()
	defer revogrpc.Stop(srv)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := grpc_health_v1.NewHealthClient(conn).Watch(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)

	resp, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	store.down.Store(true)
	resp, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
