// fixedstep is a deterministic fixed-timestep simulation runtime.
//
// Usage:
//
//	fixedstep demo               - Run the bouncing-particle demo in the terminal
//	fixedstep bench              - Run scripted frame profiles and report scheduler stats
//	fixedstep replay record      - Simulate headless and store a checksum trace
//	fixedstep replay list        - List stored replay sessions
//	fixedstep replay verify <id> - Re-simulate a session and compare checksums
//
// Global flags:
//
//	--tick-rate <hz>  - Override simulation tick rate
//	--config <path>   - Path to a YAML config file
//	--db <path>       - Override replay database path
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/fixedstep/config"
)

var (
	// Global flags
	flagTickRate int
	flagConfig   string
	flagDBPath   string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fixedstep",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fixedstep",
	Short: "Deterministic fixed-timestep simulation runtime",
	Long: `fixedstep runs simulations on a fixed timestep with frame-time
clamping, render interpolation, and deterministic replay.

Available commands:
  demo     - Bouncing-particle demo rendered in the terminal
  bench    - Scripted frame profiles with scheduler statistics
  replay   - Record, list, and verify deterministic replay sessions

Examples:
  fixedstep demo
  fixedstep demo --tick-rate 30
  fixedstep bench --profile spiky
  fixedstep replay record --ticks 3600
  fixedstep replay verify 1`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 0, "Simulation steps per second (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to replay database (overrides config)")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadConfig loads configuration and applies flag overrides
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagTickRate > 0 {
		cfg.Timestep.TickRate = flagTickRate
	}
	if flagDBPath != "" {
		cfg.Replay.DBPath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	applyLogLevel(cfg.Timestep.LogLevel)
	return cfg, nil
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}
