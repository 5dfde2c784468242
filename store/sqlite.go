// Package store persists sweep and fault-test results in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/entangle/experiment"
	"github.com/katalvlaran/entangle/fault"

	_ "modernc.org/sqlite" // SQLite driver
)

// ErrRunNotFound is returned when no run has the requested ID and kind.
var ErrRunNotFound = errors.New("store: run not found")

// Run kinds.
const (
	KindScale   = "scale"
	KindCompare = "compare"
	KindFault   = "fault"
)

// Run is the header row of a stored result set.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      string    `json:"kind" yaml:"kind"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	MaxPool   int       `json:"max_pool" yaml:"max_pool"`
	Trials    int       `json:"trials" yaml:"trials"`
	Seed      int64     `json:"seed" yaml:"seed"`
	AllPassed bool      `json:"all_passed" yaml:"all_passed"`
	Points    int       `json:"points" yaml:"points"`
	// Total is the number of planned pool sizes; Points < Total marks an interrupted sweep.
	Total int `json:"total" yaml:"total"`
}

// SQLiteStore stores runs in a single SQLite file.
type SQLiteStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// timeLayout has fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timeLayout), Valid: true}
}

func parseTime(ns sql.NullString) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	t, _ := time.Parse(timeLayout, ns.String)
	return t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func insertRun(ctx context.Context, tx *sql.Tx, kind string, started, completed time.Time, maxPool, trials, total int, seed int64, allPassed bool) (string, error) {
	id := uuid.NewString()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, kind, created_at, started_at, completed_at, max_pool, trials, seed, all_passed, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, kind, time.Now().UTC().Format(timeLayout),
		formatTime(started), formatTime(completed),
		maxPool, trials, seed, boolInt(allPassed), total)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

func insertFaultPoint(ctx context.Context, tx *sql.Tx, runID string, p fault.Summary, secs float64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO fault_points (run_id, pool, k, v, amplitude, avg_steps, min_steps, max_steps,
		                          avg_coherence, success_rate, trials, test_time_sec)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, p.Pool, p.K, p.V, p.Amplitude, p.AvgSteps, p.MinSteps, p.MaxSteps,
		p.AvgCoherence, p.SuccessRate, p.Trials, secs)
	if err != nil {
		return fmt.Errorf("failed to insert fault point pool=%d: %w", p.Pool, err)
	}
	return nil
}

// SaveScaling stores a scaling sweep and returns its run ID.
func (s *SQLiteStore) SaveScaling(ctx context.Context, sc *experiment.Scaling, seed int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := insertRun(ctx, tx, KindScale, sc.Started, sc.Completed, sc.MaxPool, sc.Trials, sc.Total, seed, sc.AllPassed)
	if err != nil {
		return "", err
	}
	for _, p := range sc.Points {
		if err := insertFaultPoint(ctx, tx, id, p.Summary, p.TestTimeSec); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// SaveFault stores a single fault-tolerance summary and returns its run ID.
func (s *SQLiteStore) SaveFault(ctx context.Context, sum fault.Summary, seed int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := insertRun(ctx, tx, KindFault, time.Time{}, time.Time{}, sum.Pool, sum.Trials, 1, seed, sum.Passed())
	if err != nil {
		return "", err
	}
	if err := insertFaultPoint(ctx, tx, id, sum, 0); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// SaveComparison stores a comparison sweep and returns its run ID.
func (s *SQLiteStore) SaveComparison(ctx context.Context, c *experiment.Comparison, seed int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	passed := true
	for _, p := range c.Points {
		if p.Geometry.SuccessRate < 1 {
			passed = false
		}
	}
	id, err := insertRun(ctx, tx, KindCompare, time.Time{}, time.Time{}, c.MaxPool, c.Trials, c.Total, seed, passed)
	if err != nil {
		return "", err
	}
	for _, p := range c.Points {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO compare_points (run_id, pool, seed_size,
			    geo_steps, geo_coherence, geo_corrections, geo_success,
			    cor_steps, cor_coherence, cor_corrections, cor_success, ratio)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, p.Pool, p.Seed,
			p.Geometry.Steps, p.Geometry.Coherence, p.Geometry.Corrections, p.Geometry.SuccessRate,
			p.Correction.Steps, p.Correction.Coherence, p.Correction.Corrections, p.Correction.SuccessRate,
			p.Ratio)
		if err != nil {
			return "", fmt.Errorf("failed to insert compare point pool=%d: %w", p.Pool, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// ListRuns returns all runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.kind, r.created_at, r.max_pool, r.trials, r.seed, r.all_passed, r.total,
		       (SELECT COUNT(*) FROM fault_points f WHERE f.run_id = r.id) +
		       (SELECT COUNT(*) FROM compare_points c WHERE c.run_id = r.id)
		FROM runs r
		ORDER BY r.created_at DESC, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			created sql.NullString
			passed  int
		)
		if err := rows.Scan(&r.ID, &r.Kind, &created, &r.MaxPool, &r.Trials, &r.Seed, &passed, &r.Total, &r.Points); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = parseTime(created)
		r.AllPassed = passed != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// getRun loads a run header of the given kind.
func (s *SQLiteStore) getRun(ctx context.Context, id, kind string) (Run, sql.NullString, sql.NullString, error) {
	var (
		r                 Run
		created, from, to sql.NullString
		passed            int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, kind, created_at, started_at, completed_at, max_pool, trials, seed, all_passed, total
		FROM runs WHERE id = ? AND kind = ?`, id, kind).
		Scan(&r.ID, &r.Kind, &created, &from, &to, &r.MaxPool, &r.Trials, &r.Seed, &passed, &r.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, from, to, fmt.Errorf("%s %s: %w", kind, id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, from, to, fmt.Errorf("failed to load run: %w", err)
	}
	r.CreatedAt = parseTime(created)
	r.AllPassed = passed != 0
	return r, from, to, nil
}

func (s *SQLiteStore) faultPoints(ctx context.Context, id string) ([]experiment.ScalePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pool, k, v, amplitude, avg_steps, min_steps, max_steps,
		       avg_coherence, success_rate, trials, test_time_sec
		FROM fault_points WHERE run_id = ? ORDER BY pool`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query fault points: %w", err)
	}
	defer rows.Close()

	var out []experiment.ScalePoint
	for rows.Next() {
		var p experiment.ScalePoint
		if err := rows.Scan(&p.Pool, &p.K, &p.V, &p.Amplitude, &p.AvgSteps, &p.MinSteps, &p.MaxSteps,
			&p.AvgCoherence, &p.SuccessRate, &p.Trials, &p.TestTimeSec); err != nil {
			return nil, fmt.Errorf("failed to scan fault point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// LoadScaling reassembles a stored scaling sweep.
func (s *SQLiteStore) LoadScaling(ctx context.Context, id string) (*experiment.Scaling, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, from, to, err := s.getRun(ctx, id, KindScale)
	if err != nil {
		return nil, err
	}
	points, err := s.faultPoints(ctx, id)
	if err != nil {
		return nil, err
	}

	sc := &experiment.Scaling{
		Started:   parseTime(from),
		Completed: parseTime(to),
		MaxPool:   r.MaxPool,
		Trials:    r.Trials,
		Total:     r.Total,
		Points:    points,
		AllPassed: r.AllPassed,
		Failures:  []int{},
	}
	for _, p := range points {
		if !p.Passed() {
			sc.Failures = append(sc.Failures, p.Pool)
		}
	}
	return sc, nil
}

// LoadFault returns a stored fault-tolerance summary.
func (s *SQLiteStore) LoadFault(ctx context.Context, id string) (fault.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, _, err := s.getRun(ctx, id, KindFault); err != nil {
		return fault.Summary{}, err
	}
	points, err := s.faultPoints(ctx, id)
	if err != nil {
		return fault.Summary{}, err
	}
	if len(points) != 1 {
		return fault.Summary{}, fmt.Errorf("fault run %s has %d points", id, len(points))
	}
	return points[0].Summary, nil
}

// LoadComparison reassembles a stored comparison sweep, recomputing its summary.
func (s *SQLiteStore) LoadComparison(ctx context.Context, id string) (*experiment.Comparison, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, _, _, err := s.getRun(ctx, id, KindCompare)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT pool, seed_size,
		       geo_steps, geo_coherence, geo_corrections, geo_success,
		       cor_steps, cor_coherence, cor_corrections, cor_success, ratio
		FROM compare_points WHERE run_id = ? ORDER BY pool`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query compare points: %w", err)
	}
	defer rows.Close()

	c := &experiment.Comparison{MaxPool: r.MaxPool, Trials: r.Trials, Total: r.Total}
	for rows.Next() {
		var p experiment.ComparisonPoint
		if err := rows.Scan(&p.Pool, &p.Seed,
			&p.Geometry.Steps, &p.Geometry.Coherence, &p.Geometry.Corrections, &p.Geometry.SuccessRate,
			&p.Correction.Steps, &p.Correction.Coherence, &p.Correction.Corrections, &p.Correction.SuccessRate,
			&p.Ratio); err != nil {
			return nil, fmt.Errorf("failed to scan compare point: %w", err)
		}
		c.Points = append(c.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	c.Summary = experiment.Summarize(c.Points)
	return c, nil
}

// DeleteRun removes a run and its points.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	return nil
}
