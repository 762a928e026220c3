package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"precal/config"
	"precal/core/planner"
	"precal/infra/broadcast"
	"precal/infra/logger"
	"precal/pkg/export"
)

var (
	planYear    int
	planVolumes map[string]string
	planFormat  string
	planOutput  string
	planPublish bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a batch plan across routes",
	Long: `Compute the vessel requirement for several routes against one shared
target year. Each route uses its own export volume; a route with invalid
input is reported without aborting the others.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().IntVar(&planYear, "year", 2030, "target year")
	planCmd.Flags().StringToStringVar(&planVolumes, "volumes", nil, "per-route export volumes, e.g. vlcc_china=289.4,suez_sing=123.3")
	planCmd.Flags().StringVar(&planFormat, "format", "json", "output format: json or csv")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "output file (default stdout)")
	planCmd.Flags().BoolVar(&planPublish, "publish", false, "broadcast the plan on the configured MQTT topic")
	if err := planCmd.MarkFlagRequired("volumes"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	table, err := cfg.Fleet.Table()
	if err != nil {
		return fmt.Errorf("fleet table: %w", err)
	}

	logg := logger.New("plan-command")
	if !planner.SupportedYear(planYear) {
		logg.Warnf("year %d outside supported horizons %v, schedule defaults to zero", planYear, planner.YearOptions())
	}
	volumes := make(map[string]float64, len(planVolumes))
	for key, raw := range planVolumes {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("volume for %s: %w", key, err)
		}
		volumes[key] = v
	}

	rep := planner.Plan(table, planYear, volumes)
	for key, rerr := range rep.Errors {
		logg.Errorf("route %s: %v", key, rerr)
	}

	if planPublish {
		pub, err := broadcast.NewPahoPublisher(cfg.Broadcast)
		if err != nil {
			return fmt.Errorf("plan broadcast: %w", err)
		}
		defer func() {
			if err := pub.Close(); err != nil {
				logg.Errorf("publisher close: %v", err)
			}
		}()
		if err := pub.PublishPlan(rep); err != nil {
			return fmt.Errorf("publish plan: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if planOutput != "" {
		f, err := os.Create(planOutput)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				logg.Errorf("output close: %v", err)
			}
		}()
		out = f
	}
	switch planFormat {
	case "json":
		if err := export.WriteJSON(out, rep); err != nil {
			return err
		}
	case "csv":
		if err := export.WriteCSV(out, rep); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %s", planFormat)
	}
	if len(rep.Errors) > 0 {
		return fmt.Errorf("plan finished with %d failed route(s)", len(rep.Errors))
	}
	return nil
}
