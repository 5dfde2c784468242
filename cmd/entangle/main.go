package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "entangle",
		Short: "Oscillator network synchronization experiments",
		Long: `entangle synchronizes a pool of phase oscillators through a small pulsed
seed crystal and compares that against correcting every oscillator directly.

Results can be printed, written as JSON, plotted to PNG and stored in SQLite.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.entangle/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("store", "", "SQLite results database (overrides store.path)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newParamsCmd(),
		newCrystalCmd(),
		// Simulation commands
		newTestCmd(),
		newCompareCmd(),
		newScaleCmd(),
		// Stored results
		newRunsCmd(),
	)

	return rootCmd
}
