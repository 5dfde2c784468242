package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/entangle/experiment"
	"github.com/katalvlaran/entangle/report"
	"github.com/katalvlaran/entangle/store"
	"github.com/spf13/cobra"
)

func newScaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Run the fault-tolerance test across growing pool sizes",
		Long: `Runs the fault-tolerance test at 50, 100, 200 and 500 times every power of
ten up to --max-pool. With --output the partial results are rewritten after
every pool size, so an interrupted sweep keeps what it finished.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			jsonOut, _ := cmd.Flags().GetBool("json")
			output, _ := cmd.Flags().GetString("output")
			out := cmd.OutOrStdout()
			maxPool, trials := s.cfg.Sweep.MaxPool, s.cfg.Sweep.Trials

			total := len(experiment.ScalingPoolSizes(maxPool))
			if !jsonOut {
				fmt.Fprintln(out, strings.Repeat("=", 70))
				fmt.Fprintln(out, "SCALING TEST")
				fmt.Fprintln(out, strings.Repeat("=", 70))
				fmt.Fprintf(out, "Max pool:   %s\nTrials:     %d\nTest sizes: %d\n\n", humanize.Comma(int64(maxPool)), trials, total)
			}

			progress := func(done int, partial *experiment.Scaling) {
				if !jsonOut {
					report.WriteScalePoint(out, done, total, partial.Points[len(partial.Points)-1])
				}
				if output == "" {
					return
				}
				if werr := report.WriteJSONFile(output, partial); werr != nil {
					s.logger.Warn("writing partial results", "path", output, "error", werr)
				}
			}

			sc, err := experiment.Scale(cmd.Context(), maxPool, trials, s.options(), progress)
			if err != nil {
				if sc == nil || len(sc.Points) == 0 {
					return err
				}
				s.logger.Warn("scaling test stopped early", "pools", len(sc.Points), "error", err)
			}

			saveErr := s.save(cmd.Context(), store.KindScale, func(ctx context.Context, st *store.SQLiteStore) (string, error) {
				return st.SaveScaling(ctx, sc, s.cfg.Simulation.Seed)
			})
			if saveErr != nil {
				return saveErr
			}
			plotPath, _ := cmd.Flags().GetString("plot")
			if perr := s.plot(plotPath, func(w io.Writer) error { return report.PlotScaling(w, sc) }); perr != nil {
				return perr
			}

			if jsonOut {
				if eerr := report.WriteJSON(out, sc); eerr != nil {
					return eerr
				}
			} else {
				fmt.Fprintln(out)
				if eerr := report.WriteScaling(out, sc); eerr != nil {
					return eerr
				}
				if output != "" {
					fmt.Fprintf(out, "\nResults saved to: %s\n", output)
				}
			}
			if err != nil {
				return fmt.Errorf("scaling test interrupted: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Int("max-pool", 10000, "Largest pool size to test")
	cmd.Flags().Int("trials", 3, "Trials per pool size")
	cmd.Flags().Float64("corruption", 0.5, "Share of pool oscillators to corrupt")
	cmd.Flags().StringP("output", "o", "", "Write results as JSON to this path")
	cmd.Flags().String("plot", "", "Write a PNG chart to this path")
	simulationFlags(cmd)

	return cmd
}
