// Package server owns the process lifecycle: it opens the store, builds the
// HTTP kernel, runs the HTTP and gRPC listeners and shuts both down when the
// context ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/revoshop/app/routes"
	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/config"
	"github.com/shashiranjanraj/revoshop/internal/kernel"
	"github.com/shashiranjanraj/revoshop/pkg/cache"
	"github.com/shashiranjanraj/revoshop/pkg/grpc"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
	"github.com/shashiranjanraj/revoshop/pkg/ws"
)

const shutdownTimeout = 15 * time.Second

// Deps builds the shared handler dependencies around store. The caller runs
// the returned hub.
func Deps(store kv.Store) routes.Deps {
	catalog := services.NewCatalogFromConfig(
		services.WithCache(cache.New(store, "revoshop:cache:"), config.CatalogCacheTTL()),
	)
	return routes.Deps{
		Store:      store,
		Notifier:   kv.NewNotifier(),
		Hub:        ws.NewHub(),
		Storefront: services.NewStorefront(catalog, config.DefaultStock()),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}

	store, err := kv.Open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close(store)

	deps := Deps(store)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go deps.Hub.Run(hubCtx)
	defer deps.Hub.Attach(deps.Notifier)()

	k, err := kernel.NewHTTPKernel(deps)
	if err != nil {
		return fmt.Errorf("build kernel: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if port := config.GRPCPort(); port != "off" {
		grpcSrv, _, err := grpc.Start(port, store)
		if err != nil {
			return err
		}
		defer grpc.Stop(grpcSrv)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("RevoShop HTTP server starting", "addr", srv.Addr, "store", config.StoreDriver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("RevoShop HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
