package main

import (
	"context"
	"fmt"
	"io"

	"github.com/katalvlaran/entangle/experiment"
	"github.com/katalvlaran/entangle/fault"
	"github.com/katalvlaran/entangle/report"
	"github.com/katalvlaran/entangle/store"
	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <pool>",
		Short: "Test fault tolerance at one pool size",
		Long: `Builds the network for the pool size, lets it converge, resets a share of
the pool oscillators to random phases and measures the recovery.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := parsePool(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if !jsonOut {
				fmt.Fprintf(out, "Testing fault tolerance: pool=%d, corruption=%g\n\n", pool, s.cfg.Fault.Corruption)
			}

			sum, err := experiment.FaultTolerance(pool, s.options())
			if err != nil {
				return err
			}
			err = s.save(cmd.Context(), store.KindFault, func(ctx context.Context, st *store.SQLiteStore) (string, error) {
				return st.SaveFault(ctx, sum, s.cfg.Simulation.Seed)
			})
			if err != nil {
				return err
			}

			return emit(cmd, sum, func(w io.Writer) error { return report.WriteFault(w, sum) })
		},
	}

	def := fault.DefaultFraction
	cmd.Flags().Int("trials", 5, "Number of trials")
	cmd.Flags().Float64("corruption", def, "Share of pool oscillators to corrupt")
	cmd.Flags().BoolP("verbose", "v", false, "Log every trial")
	simulationFlags(cmd)

	return cmd
}
