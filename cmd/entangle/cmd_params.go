package main

import (
	"io"

	"github.com/katalvlaran/entangle/params"
	"github.com/katalvlaran/entangle/report"
	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params <pool>",
		Short: "Show the crystal parameters selected for a pool size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := parsePool(args[0])
			if err != nil {
				return err
			}
			p, err := params.EntanglementParams(pool)
			if err != nil {
				return err
			}
			return emit(cmd, p, func(w io.Writer) error { return report.WriteParams(w, p) })
		},
	}
	cmd.Flags().Bool("yaml", false, "Output as YAML")
	return cmd
}

func newCrystalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crystal",
		Short: "Show crystal vertex counts per layer count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			maxK, _ := cmd.Flags().GetInt("max-k")
			rows := params.CrystalTable(maxK)
			if rows == nil {
				rows = []params.CrystalRow{}
			}
			return emit(cmd, rows, func(w io.Writer) error { return report.WriteCrystalTable(w, rows) })
		},
	}
	cmd.Flags().Int("max-k", 6, "Maximum layer count K")
	return cmd
}
