package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/simulator"
	"github.com/paanihub/paanictl/internal/telemetry"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a synthetic marketplace through the telemetry sinks",
	Long: `Generates customers, drivers and delivery requests and runs them through
the order lifecycle without contacting a backend. Every transition is
written to the configured telemetry sink, which makes this the easy way
to fill a Kafka topic, Postgres table or parquet dataset with plausible
PaaniHub traffic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		applySimulateFlags(cmd, cfg)

		sinkCfg := cfg.Telemetry
		if !sinkCfg.Enabled {
			sinkCfg.Sink = "console"
		}
		sink, err := telemetry.NewSink(sinkCfg, log)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		rec := telemetry.NewRecorder(sink, log)
		defer rec.Close()

		sim := simulator.New(cfg, rec, log)
		sim.Run()
		return nil
	},
}

func applySimulateFlags(cmd *cobra.Command, cfg *models.Config) {
	if cmd.Flags().Changed("seed") {
		cfg.Simulate.Seed, _ = cmd.Flags().GetInt("seed")
	}
	if cmd.Flags().Changed("duration") {
		cfg.Simulate.Duration, _ = cmd.Flags().GetDuration("duration")
	}
	if cmd.Flags().Changed("customers") {
		cfg.Simulate.InitialCustomers, _ = cmd.Flags().GetInt("customers")
	}
	if cmd.Flags().Changed("drivers") {
		cfg.Simulate.InitialDrivers, _ = cmd.Flags().GetInt("drivers")
	}
	if cmd.Flags().Changed("order-frequency") {
		cfg.Simulate.OrderFrequency, _ = cmd.Flags().GetFloat64("order-frequency")
	}
	if cmd.Flags().Changed("accept-probability") {
		cfg.Simulate.AcceptProbability, _ = cmd.Flags().GetFloat64("accept-probability")
	}
	if cmd.Flags().Changed("cancellation-rate") {
		cfg.Simulate.CancellationRate, _ = cmd.Flags().GetFloat64("cancellation-rate")
	}
	if cfg.Simulate.InitialCustomers == 0 {
		cfg.Simulate.InitialCustomers = 50
	}
	if cfg.Simulate.InitialDrivers == 0 {
		cfg.Simulate.InitialDrivers = 10
	}
	if cfg.Simulate.AcceptProbability == 0 {
		cfg.Simulate.AcceptProbability = 0.7
	}
}

func init() {
	simulateCmd.Flags().Int("seed", 42, "random seed")
	simulateCmd.Flags().Duration("duration", 0, "simulated time span, e.g. 24h")
	simulateCmd.Flags().Int("customers", 0, "initial number of customers")
	simulateCmd.Flags().Int("drivers", 0, "initial number of drivers")
	simulateCmd.Flags().Float64("order-frequency", 0, "requests per customer per hour")
	simulateCmd.Flags().Float64("accept-probability", 0, "chance a driver accepts a request")
	simulateCmd.Flags().Float64("cancellation-rate", 0, "chance an accepted order is cancelled")

	rootCmd.AddCommand(simulateCmd)
}
