package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/revoshop/config"
	"github.com/shashiranjanraj/revoshop/internal/kernel"
	"github.com/shashiranjanraj/revoshop/internal/server"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

// revoshop serve: run HTTP and gRPC until SIGINT or SIGTERM.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx)
	},
}

// revoshop route:list: print all named routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := kernel.NewHTTPKernel(server.Deps(kv.NewMemory()))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

// revoshop store:ping: check the configured key-value backend.
var storePingCmd = &cobra.Command{
	Use:   "store:ping",
	Short: "Open the configured store and ping it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		store, err := kv.Open(ctx)
		if err != nil {
			return fmt.Errorf("open %s store: %w", config.StoreDriver(), err)
		}
		defer kv.Close(store)

		if err := kv.Ping(ctx, store); err != nil {
			return fmt.Errorf("ping %s store: %w", config.StoreDriver(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s store OK\n", config.StoreDriver())
		return nil
	},
}
