package main

import (
	"context"
	"fmt"
	"io"

	"github.com/katalvlaran/entangle/report"
	"github.com/katalvlaran/entangle/store"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if runs == nil {
				runs = []store.Run{}
			}
			return emit(cmd, runs, func(w io.Writer) error { return report.WriteRuns(w, runs) })
		},
	}

	cmd.AddCommand(newRunsShowCmd(), newRunsDeleteCmd())
	return cmd
}

func newRunsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			kind, err := runKind(ctx, st, args[0])
			if err != nil {
				return err
			}
			plotPath, _ := cmd.Flags().GetString("plot")

			switch kind {
			case store.KindScale:
				sc, err := st.LoadScaling(ctx, args[0])
				if err != nil {
					return err
				}
				if plotPath != "" {
					if err := report.SavePNG(plotPath, func(w io.Writer) error { return report.PlotScaling(w, sc) }); err != nil {
						return err
					}
				}
				return emit(cmd, sc, func(w io.Writer) error { return report.WriteScaling(w, sc) })
			case store.KindCompare:
				c, err := st.LoadComparison(ctx, args[0])
				if err != nil {
					return err
				}
				if plotPath != "" {
					if err := report.SavePNG(plotPath, func(w io.Writer) error { return report.PlotComparison(w, c) }); err != nil {
						return err
					}
				}
				return emit(cmd, c, func(w io.Writer) error { return report.WriteComparison(w, c) })
			default:
				sum, err := st.LoadFault(ctx, args[0])
				if err != nil {
					return err
				}
				return emit(cmd, sum, func(w io.Writer) error { return report.WriteFault(w, sum) })
			}
		},
	}
	cmd.Flags().String("plot", "", "Write a PNG chart of a scale or compare run")
	return cmd
}

func newRunsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteRun(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return err
		},
	}
}

func requireStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	s, err := newSession(cmd)
	if err != nil {
		return nil, err
	}
	defer s.close()

	st, err := s.openStore()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("no store configured: pass --store or set store.path")
	}
	return st, nil
}

func runKind(ctx context.Context, st *store.SQLiteStore, id string) (string, error) {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range runs {
		if r.ID == id {
			return r.Kind, nil
		}
	}
	return "", fmt.Errorf("run %s: %w", id, store.ErrRunNotFound)
}
