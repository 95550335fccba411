package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/config"
)

var (
	catalogCategory string
	catalogSort     string
	catalogURL      string
	couponCount     int
)

// revoshop catalog:list: fetch the upstream catalog and print it.
var catalogListCmd = &cobra.Command{
	Use:   "catalog:list",
	Short: "Fetch and print the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, ok := services.ParseCategory(catalogCategory)
		if !ok {
			return fmt.Errorf("unknown category %q", catalogCategory)
		}
		order, ok := services.ParseSortOrder(catalogSort)
		if !ok {
			return fmt.Errorf("unknown sort %q", catalogSort)
		}

		catalog := services.NewCatalogFromConfig()
		if catalogURL != "" {
			catalog = services.NewCatalog(catalogURL, services.WithTimeout(config.CatalogTimeout()))
		}

		products, err := catalog.Products(cmd.Context())
		if err != nil {
			return err
		}
		products = services.SortByPrice(services.FilterByCategory(products, category), order)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tPRICE\tCATEGORY\tTITLE")
		for _, p := range products {
			fmt.Fprintf(w, "%d\t%.2f\t%s\t%s\n", p.ID, p.Price, p.Category, p.Title)
		}
		return w.Flush()
	},
}

// revoshop coupon:generate: print fresh coupon codes.
var couponGenerateCmd = &cobra.Command{
	Use:   "coupon:generate",
	Short: "Generate discount coupon codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if couponCount < 1 {
			return fmt.Errorf("-n must be at least 1")
		}
		for i := 0; i < couponCount; i++ {
			fmt.Fprintln(cmd.OutOrStdout(), services.GenerateUniqueCoupon())
		}
		return nil
	},
}

// revoshop coupon:check CODE: report whether CODE is a valid coupon.
var couponCheckCmd = &cobra.Command{
	Use:   "coupon:check CODE",
	Short: "Check a coupon code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := services.NormalizeCoupon(args[0])
		if !services.IsValidCoupon(code) {
			return fmt.Errorf("%s is not a valid coupon", code)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %.0f%% off\n", code, services.DiscountRate*100)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringVarP(&catalogCategory, "category", "c", "all", "all, bags, clothing, electronics or jewelery")
	catalogListCmd.Flags().StringVarP(&catalogSort, "sort", "s", "default", "default, price_asc or price_desc")
	catalogListCmd.Flags().StringVar(&catalogURL, "url", "", "catalog base URL (default CATALOG_URL)")
	couponGenerateCmd.Flags().IntVarP(&couponCount, "count", "n", 1, "how many codes to print")
}
