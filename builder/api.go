// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - One orchestrator: BuildGraph(n, gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Apply(g, bopts, cons...) runs constructors against an existing graph (pool assembly on a seed clone).
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.
//   - Safety: never panic; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/entangle/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Only reference vertex indices that already exist in g.
//   - Preserve determinism for the same config and call order.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with n vertices and graph options gopts,
// resolves the builder configuration from bopts, and applies all constructors
// in order. Any constructor error is wrapped with "BuildGraph: %w".
//
// Complexity: O(n + len(bopts)) plus Σ cost of each constructor.
func BuildGraph(n int, gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(n, gopts...)
	if err := apply(g, newBuilderConfig(bopts...), cons); err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}

	return g, nil
}

// Apply resolves bopts and runs cons against an existing graph, in order.
// On error g may hold a partial result; callers discard it.
func Apply(g *core.Graph, bopts []BuilderOption, cons ...Constructor) error {
	if g == nil {
		return fmt.Errorf("Apply: nil graph: %w", ErrConstructFailed)
	}
	if err := apply(g, newBuilderConfig(bopts...), cons); err != nil {
		return fmt.Errorf("Apply: %w", err)
	}

	return nil
}

// apply runs constructors sequentially against a resolved config.
func apply(g *core.Graph, cfg builderConfig, cons []Constructor) error {
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return err
		}
	}

	return nil
}
