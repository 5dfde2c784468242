package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/katalvlaran/entangle/config"
	"github.com/katalvlaran/entangle/experiment"
	"github.com/katalvlaran/entangle/logging"
	"github.com/katalvlaran/entangle/report"
	"github.com/katalvlaran/entangle/store"
	"github.com/spf13/cobra"
)

// session carries the loaded configuration and loggers of one command run.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	trials *logging.TrialLogger
}

// newSession loads the config, applies command-line overrides and validates
// the result. Local flags only override the config when set explicitly.
func newSession(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &session{
		cfg:    cfg,
		logger: logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
		trials: logging.NewTrialLogger(cfg.Logging.TrialLog),
	}, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.Logging.Level, _ = f.GetString("log-level")
	}
	if verbose, _ := f.GetBool("verbose"); verbose && cfg.Logging.Level != "trace" {
		cfg.Logging.Level = "debug"
	}
	if f.Changed("store") {
		cfg.Store.Path, _ = f.GetString("store")
	}
	if f.Changed("max-steps") {
		cfg.Simulation.MaxSteps, _ = f.GetInt("max-steps")
	}
	if f.Changed("target") {
		cfg.Simulation.Target, _ = f.GetFloat64("target")
	}
	if f.Changed("seed") {
		cfg.Simulation.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("threshold") {
		cfg.Correction.Threshold, _ = f.GetFloat64("threshold")
	}
	if f.Changed("strength") {
		cfg.Correction.Strength, _ = f.GetFloat64("strength")
	}
	if f.Changed("corruption") {
		cfg.Fault.Corruption, _ = f.GetFloat64("corruption")
	}
	if f.Changed("trials") {
		n, _ := f.GetInt("trials")
		cfg.Fault.Trials, cfg.Sweep.Trials = n, n
	}
	if f.Changed("max-pool") {
		cfg.Sweep.MaxPool, _ = f.GetInt("max-pool")
	}
}

func (s *session) options() experiment.Options {
	o := experiment.FromConfig(s.cfg)
	o.Logger = s.logger
	o.TrialLog = s.trials
	return o
}

// openStore returns nil when no store path is configured.
func (s *session) openStore() (*store.SQLiteStore, error) {
	if s.cfg.Store.Path == "" {
		return nil, nil
	}
	st, err := store.Open(s.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return st, nil
}

// save persists a result through fn when a store is configured. The store
// context ignores cancellation of ctx, so an interrupted sweep is still saved.
func (s *session) save(ctx context.Context, kind string, fn func(context.Context, *store.SQLiteStore) (string, error)) error {
	st, err := s.openStore()
	if err != nil || st == nil {
		return err
	}
	defer st.Close()

	id, err := fn(context.WithoutCancel(ctx), st)
	if err != nil {
		return fmt.Errorf("saving %s run: %w", kind, err)
	}
	s.logger.Info("run saved", "id", id, "kind", kind, "store", st.Path())
	return nil
}

func (s *session) close() { s.trials.Close() }

// simulationFlags registers the loop overrides shared by the simulation commands.
func simulationFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().Int("max-steps", def.Simulation.MaxSteps, "Step budget per convergence run")
	cmd.Flags().Float64("target", def.Simulation.Target, "Coherence target in (0,1]")
	cmd.Flags().Int64("seed", def.Simulation.Seed, "Random seed (0 for a fresh stream per trial)")
}

func parsePool(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid pool size %q: %w", s, err)
	}
	return n, nil
}

// emit writes v as JSON or YAML when requested, and as text otherwise.
func emit(cmd *cobra.Command, v any, text func(io.Writer) error) error {
	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return report.WriteJSON(out, v)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		return report.WriteYAML(out, v)
	}
	return text(out)
}

// plot renders a PNG when path is set.
func (s *session) plot(path string, fn func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	if err := report.SavePNG(path, fn); err != nil {
		return fmt.Errorf("writing plot: %w", err)
	}
	s.logger.Info("plot saved", "path", path)
	return nil
}
