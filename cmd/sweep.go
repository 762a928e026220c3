package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"precal/config"
	"precal/core/planner"
)

var (
	sweepRoute string
	sweepYear  int
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sample the requirement curve over a volume range",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepRoute, "route", "", "route key")
	sweepCmd.Flags().IntVar(&sweepYear, "year", 2030, "target year")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "lower volume bound in MM bbl/year")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0, "upper volume bound in MM bbl/year")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 25, "number of samples")
	if err := sweepCmd.MarkFlagRequired("route"); err != nil {
		panic(err)
	}
	if err := sweepCmd.MarkFlagRequired("min"); err != nil {
		panic(err)
	}
	if err := sweepCmd.MarkFlagRequired("max"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	table, err := cfg.Fleet.Table()
	if err != nil {
		return fmt.Errorf("fleet table: %w", err)
	}
	points, err := planner.Sweep(table, sweepRoute, sweepYear, sweepMin, sweepMax, sweepSteps)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	return enc.Encode(points)
}
