package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "revoshop",
	Short:         "RevoShop storefront API",
	Long:          "RevoShop serves the storefront API and offers a few maintenance commands.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(storePingCmd)

	// Catalog and coupons
	rootCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(couponGenerateCmd)
	rootCmd.AddCommand(couponCheckCmd)
}
