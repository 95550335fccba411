// Package grpc runs the gRPC health endpoint of RevoShop.
//
// The server reports SERVING on grpc.health.v1.Health only while the
// key-value store answers a ping. Unary calls go through panic recovery and
// an observer that logs and records revoshop_grpc_server_handled_total and
// revoshop_grpc_server_handling_seconds. Reflection is enabled for grpcurl.
//
//	grpcSrv, _, err := grpc.Start(config.GRPCPort(), store)
//	// ...run until signal...
//	grpc.Stop(grpcSrv)
package grpc

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
	"github.com/shashiranjanraj/revoshop/pkg/metrics"
)

const (
	// pingTimeout bounds one store probe.
	pingTimeout = 2 * time.Second
	// stopTimeout is how long Stop waits for open streams before cutting them.
	stopTimeout = 5 * time.Second
	maxMsgSize  = 1 << 20
)

// WatchInterval is how often a Watch stream re-probes the store.
var WatchInterval = 5 * time.Second

var (
	handledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "revoshop",
		Name:      "grpc_server_handled_total",
		Help:      "Total number of gRPC calls completed by method and code.",
	}, []string{"grpc_method", "grpc_code"})

	handlingSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "revoshop",
		Name:      "grpc_server_handling_seconds",
		Help:      "Histogram of gRPC response latency in seconds.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"grpc_method"})
)

func init() {
	metrics.MustRegister(handledTotal, handlingSeconds)
}

// recoverUnary turns a handler panic into codes.Internal.
func recoverUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("grpc: panic recovered", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

// observeUnary logs and records every unary call.
func observeUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	observe(info.FullMethod, start, err)
	return resp, err
}

// observeStream does the same for streams, once the stream ends.
func observeStream(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	observe(info.FullMethod, start, err)
	return err
}

func observe(method string, start time.Time, err error) {
	dur := time.Since(start)
	code := status.Code(err)

	handledTotal.WithLabelValues(method, code.String()).Inc()
	handlingSeconds.WithLabelValues(method).Observe(dur.Seconds())
	logger.Debug("grpc: request", "method", method, "duration_ms", dur.Milliseconds(), "code", code.String())
}

// healthServer answers grpc.health.v1 from a store ping.
type healthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	store kv.Store
}

func (h *healthServer) probe(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := kv.Ping(ctx, h.store); err != nil {
		logger.Warn("grpc: store ping failed", "error", err)
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_SERVING
}

func (h *healthServer) Check(ctx context.Context, _ *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	return &grpc_health_v1.HealthCheckResponse{Status: h.probe(ctx)}, nil
}

// Watch sends the current status, then re-probes every WatchInterval and
// sends again whenever the status changes.
func (h *healthServer) Watch(_ *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	ctx := stream.Context()
	last := grpc_health_v1.HealthCheckResponse_UNKNOWN

	ticker := time.NewTicker(WatchInterval)
	defer ticker.Stop()

	for {
		if s := h.probe(ctx); s != last {
			if err := stream.Send(&grpc_health_v1.HealthCheckResponse{Status: s}); err != nil {
				return err
			}
			last = s
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// New builds the server with interceptors, health and reflection registered.
func New(store kv.Store) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(recoverUnary, observeUnary),
		grpc.ChainStreamInterceptor(observeStream),
		grpc.MaxRecvMsgSize(maxMsgSize),
		grpc.MaxSendMsgSize(maxMsgSize),
	)

	grpc_health_v1.RegisterHealthServer(srv, &healthServer{store: store})
	reflection.Register(srv)
	return srv
}

// Start listens on port and serves New(store) in the background.
func Start(port string, store kv.Store) (*grpc.Server, net.Listener, error) {
	addr := ":" + port

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("grpc: listen on %s: %w", addr, err)
	}

	srv := New(store)
	logger.Info("gRPC server starting", "addr", addr)

	go func() {
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc: serve error", "error", err)
		}
	}()

	return srv, lis, nil
}

// Stop drains in-flight RPCs. Streams still open after stopTimeout, such
// as health watchers, are closed forcibly.
func Stop(srv *grpc.Server) {
	if srv == nil {
		return
	}
	logger.Info("gRPC server shutting down")

	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(stopTimeout):
		srv.Stop()
		<-done
	}
}
