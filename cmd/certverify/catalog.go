package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/vendor"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate vendor catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate a vendor-catalog JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := vendor.ValidateCatalogJSON(raw); err != nil {
			return err
		}
		catalog, err := vendor.LoadJSON(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d vendors\n", len(catalog.Profiles()))
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in vendor catalog",
	Run: func(_ *cobra.Command, _ []string) {
		for _, p := range vendor.Default().Profiles() {
			fmt.Printf("%-12s %s (%d patterns)\n", p.Key, p.DisplayName, len(p.CertPatterns))
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
