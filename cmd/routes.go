package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"precal/config"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the configured shipping routes",
	RunE:  runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	table, err := cfg.Fleet.Table()
	if err != nil {
		return fmt.Errorf("fleet table: %w", err)
	}
	for _, r := range table.Routes() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2f MM bbl/year per vessel\n", r.Key, r.DisplayName, r.Divisor)
	}
	return nil
}
