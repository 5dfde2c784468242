package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/entangle/config"
	"github.com/katalvlaran/entangle/experiment"
	"github.com/katalvlaran/entangle/fault"
	"github.com/katalvlaran/entangle/logging"
	"github.com/katalvlaran/entangle/params"
	"github.com/katalvlaran/entangle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at a temp directory so ~/.entangle/config.yaml is never read.
func isolateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "entangle version 0.1.0-dev (commit: none, built: unknown)\n", out)

	out, _, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, version, got["version"])
}

func TestParamsCmd(t *testing.T) {
	out, _, err := execute(t, "params", "50")
	require.NoError(t, err)
	assert.Equal(t, "Pool size: 50\n  K (layers): 2\n  V (vertices): 13\n  Amplitude: 0.500\n", out)

	out, _, err = execute(t, "params", "1000", "--json")
	require.NoError(t, err)
	var p params.Params
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 4, p.K)
	assert.Equal(t, 52, p.V)
	assert.Len(t, p.Rhythm, params.CycleLength)

	out, _, err = execute(t, "params", "200", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "K: 3\n")
	assert.Contains(t, out, "V: 16\n")
}

func TestParamsCmd_Errors(t *testing.T) {
	_, _, err := execute(t, "params", "abc")
	assert.ErrorContains(t, err, "invalid pool size")

	_, _, err = execute(t, "params", "0")
	assert.ErrorIs(t, err, params.ErrInvalidPool)

	_, _, err = execute(t, "params")
	assert.Error(t, err)
}

func TestCrystalCmd(t *testing.T) {
	out, _, err := execute(t, "crystal", "--max-k", "3")
	require.NoError(t, err)
	assert.Equal(t, "Crystal vertex counts:\n  K=2: 13 vertices\n  K=3: 16 vertices\n", out)

	out, _, err = execute(t, "crystal", "--json")
	require.NoError(t, err)
	var rows []params.CrystalRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)
	assert.Equal(t, params.CrystalRow{K: 6, V: 484}, rows[4])
}

func TestTestCmd(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "test", "50", "--trials", "2", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Testing fault tolerance: pool=50, corruption=0.5")
	assert.Contains(t, out, "Crystal: K=2, V=13")

	out, _, err = execute(t, "test", "50", "--trials", "2", "--seed", "7", "--json")
	require.NoError(t, err)
	var sum fault.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 50, sum.Pool)
	assert.Equal(t, 2, sum.Trials)
}

func TestTestCmd_Verbose(t *testing.T) {
	isolateHome(t)

	_, errOut, err := execute(t, "test", "50", "--trials", "1", "--seed", "3", "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG msg=trial")
	assert.Contains(t, errOut, "msg=\"fault tolerance\"")
}

func TestTestCmd_InvalidConfig(t *testing.T) {
	isolateHome(t)

	_, _, err := execute(t, "test", "50", "--corruption", "1.5")
	assert.ErrorContains(t, err, "invalid config")

	_, _, err = execute(t, "test", "50", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")

	_, _, err = execute(t, "test", "50", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "loading config file")
}

func TestTestCmd_ConfigFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".entangle")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	cfg := "simulation:\n  seed: 11\nfault:\n  trials: 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o600))

	out, _, err := execute(t, "test", "50", "--json")
	require.NoError(t, err)
	var sum fault.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 1, sum.Trials)
}

func TestCompareCmd(t *testing.T) {
	isolateHome(t)
	png := filepath.Join(t.TempDir(), "compare.png")

	out, _, err := execute(t, "compare", "--max-pool", "100", "--trials", "1", "--seed", "5", "--json", "--plot", png)
	require.NoError(t, err)
	var c experiment.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, 100, c.MaxPool)
	require.Len(t, c.Points, 4)
	assert.Equal(t, []int{50, 63, 94, 100}, []int{c.Points[0].Pool, c.Points[1].Pool, c.Points[2].Pool, c.Points[3].Pool})

	data, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestScaleCmd(t *testing.T) {
	isolateHome(t)
	output := filepath.Join(t.TempDir(), "scaling.json")

	out, _, err := execute(t, "scale", "--max-pool", "100", "--trials", "1", "--seed", "9", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "SCALING TEST")
	assert.Contains(t, out, "[1/2] Pool")
	assert.Contains(t, out, "[2/2] Pool")
	assert.Contains(t, out, "Step trend:")
	assert.Contains(t, out, "Results saved to: "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var sc experiment.Scaling
	require.NoError(t, json.Unmarshal(data, &sc))
	assert.Len(t, sc.Points, 2)
	assert.Equal(t, 2, sc.Total)
}

func TestRunsCmd_Lifecycle(t *testing.T) {
	isolateHome(t)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, _, err := execute(t, "runs", "--store", db)
	require.NoError(t, err)
	assert.Equal(t, "No stored runs.\n", out)

	_, errOut, err := execute(t, "test", "50", "--trials", "1", "--seed", "2", "--store", db)
	require.NoError(t, err)
	assert.Contains(t, errOut, "msg=\"run saved\"")

	out, _, err = execute(t, "runs", "--store", db, "--json")
	require.NoError(t, err)
	var runs []store.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, store.KindFault, runs[0].Kind)
	id := runs[0].ID

	out, _, err = execute(t, "runs", "show", id, "--store", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Crystal: K=2, V=13")

	out, _, err = execute(t, "runs", "delete", id, "--store", db)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Deleted run "))

	_, _, err = execute(t, "runs", "show", id, "--store", db)
	assert.ErrorIs(t, err, store.ErrRunNotFound)
}

func TestRunsCmd_NoStore(t *testing.T) {
	isolateHome(t)
	t.Setenv("ENTANGLE_STORE_PATH", "")

	_, _, err := execute(t, "runs")
	assert.ErrorContains(t, err, "no store configured")
}

func TestSessionSave_CancelledContext(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	cfg := config.Default()
	cfg.Store.Path = db
	s := &session{cfg: cfg, logger: logging.Discard()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	partial := &experiment.Scaling{
		MaxPool: 200, Trials: 1, Total: 3, AllPassed: true,
		Points: []experiment.ScalePoint{{Summary: fault.Summary{Pool: 50, K: 2, V: 13, SuccessRate: 1, Trials: 1}}},
	}
	err := s.save(ctx, store.KindScale, func(ctx context.Context, st *store.SQLiteStore) (string, error) {
		return st.SaveScaling(ctx, partial, 0)
	})
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Points)
	assert.Equal(t, 3, runs[0].Total)
}

func TestScaleCmd_InterruptedSweepIsStored(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	output := filepath.Join(dir, "scaling.json")

	// Cancel as soon as the first pool size has been written out.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for ctx.Err() == nil {
			if _, err := os.Stat(output); err == nil {
				cancel()
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	out, _, err := executeContext(t, ctx, "scale", "--max-pool", "5000", "--trials", "1", "--seed", "4",
		"-o", output, "--store", db)
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out, "[1/7] Pool")
	assert.Contains(t, out, "Step trend:")

	out, _, err = execute(t, "runs", "--store", db, "--json")
	require.NoError(t, err)
	var runs []store.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, store.KindScale, runs[0].Kind)
	assert.Equal(t, 7, runs[0].Total)
	assert.GreaterOrEqual(t, runs[0].Points, 1)
	assert.Less(t, runs[0].Points, runs[0].Total)
}
