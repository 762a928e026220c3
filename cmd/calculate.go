package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"precal/config"
	"precal/core/planner"
	"precal/infra/logger"
)

var (
	calcRoute  string
	calcYear   int
	calcVolume float64
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute the vessel requirement for one route",
	RunE:  runCalculate,
}

func init() {
	calculateCmd.Flags().StringVar(&calcRoute, "route", "", "route key, e.g. vlcc_china")
	calculateCmd.Flags().IntVar(&calcYear, "year", 2030, "target year")
	calculateCmd.Flags().Float64Var(&calcVolume, "volume", 0, "export volume in MM bbl/year")
	if err := calculateCmd.MarkFlagRequired("route"); err != nil {
		panic(err)
	}
	if err := calculateCmd.MarkFlagRequired("volume"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(calculateCmd)
}

func runCalculate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	table, err := cfg.Fleet.Table()
	if err != nil {
		return fmt.Errorf("fleet table: %w", err)
	}
	if !planner.SupportedYear(calcYear) {
		logger.New("calculate").Warnf("year %d outside supported horizons %v, schedule defaults to zero", calcYear, planner.YearOptions())
	}
	res, err := planner.Calculate(table, calcRoute, calcYear, calcVolume)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
