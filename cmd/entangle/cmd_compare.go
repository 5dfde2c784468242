package main

import (
	"context"
	"fmt"
	"io"

	"github.com/katalvlaran/entangle/experiment"
	"github.com/katalvlaran/entangle/report"
	"github.com/katalvlaran/entangle/store"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare geometric synchronization against reactive correction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			c, err := experiment.Compare(cmd.Context(), s.cfg.Sweep.MaxPool, s.cfg.Sweep.Trials, s.options())
			if err != nil {
				if c == nil || len(c.Points) == 0 {
					return err
				}
				s.logger.Warn("comparison stopped early", "pools", len(c.Points), "error", err)
			}

			saveErr := s.save(cmd.Context(), store.KindCompare, func(ctx context.Context, st *store.SQLiteStore) (string, error) {
				return st.SaveComparison(ctx, c, s.cfg.Simulation.Seed)
			})
			if saveErr != nil {
				return saveErr
			}
			plotPath, _ := cmd.Flags().GetString("plot")
			if perr := s.plot(plotPath, func(w io.Writer) error { return report.PlotComparison(w, c) }); perr != nil {
				return perr
			}
			if eerr := emit(cmd, c, func(w io.Writer) error { return report.WriteComparison(w, c) }); eerr != nil {
				return eerr
			}
			if err != nil {
				return fmt.Errorf("compare interrupted: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Int("max-pool", 10000, "Largest pool size to test")
	cmd.Flags().Int("trials", 3, "Trials per pool size and strategy")
	cmd.Flags().Float64("threshold", 0.5, "Correction threshold in radians")
	cmd.Flags().Float64("strength", 0.3, "Correction step in radians")
	cmd.Flags().String("plot", "", "Write a PNG chart to this path")
	simulationFlags(cmd)

	return cmd
}
