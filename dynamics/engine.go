// SPDX-License-Identifier: MIT
// Package: entangle/dynamics
//
// engine.go: synchronous phase update of one trial.
//
// Step contract:
//   - Coupling reads the pre-step phases only; results go to a second buffer
//     which is swapped in at the end of the step.
//   - Frozen (seed) oscillators never couple; they move only when their layer
//     is pulsed.
//   - Every phase leaves Step wrapped into [0, 2π).
//
// Complexity: Step is O(V + E) time, O(1) extra space (buffers are reused).

package dynamics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/entangle/builder"
	"github.com/katalvlaran/entangle/params"
	"github.com/katalvlaran/entangle/rng"
)

const (
	// NaturalFrequency is the per-step intrinsic phase advance of a pool oscillator.
	NaturalFrequency = 0.1
	// CouplingStrength scales the mean sine pull of a pool oscillator's neighbors.
	CouplingStrength = 0.3
)

// Engine holds the phase state of one trial.
type Engine struct {
	phases []float64
	next   []float64

	frozen    []bool
	neighbors [][]int

	amplitude float64
	rhythm    []Layer
	pulse     [LayerNotApplicable][]int // indices per pulsed layer; nil if absent
}

// NewEngine prepares a phase state for net: seed oscillators start at 0, pool
// oscillators at independent uniform draws from r.
// Complexity: O(V + E) for the neighbor table.
func NewEngine(net *builder.Network, amplitude float64, rhythm []params.Beat, r *rand.Rand) (*Engine, error) {
	if net == nil || net.Graph == nil {
		return nil, fmt.Errorf("NewEngine: %w", ErrNilNetwork)
	}
	if r == nil {
		return nil, fmt.Errorf("NewEngine: %w", ErrNilRand)
	}
	n := net.Graph.VertexCount()
	if len(net.Frozen) != n {
		return nil, fmt.Errorf("NewEngine: mask=%d graph=%d: %w", len(net.Frozen), n, ErrShapeMismatch)
	}
	if len(rhythm) == 0 {
		return nil, fmt.Errorf("NewEngine: %w", ErrEmptyRhythm)
	}

	e := &Engine{
		phases:    make([]float64, n),
		next:      make([]float64, n),
		frozen:    append([]bool(nil), net.Frozen...),
		neighbors: net.Graph.NeighborTable(),
		amplitude: amplitude,
		rhythm:    make([]Layer, len(rhythm)),
	}
	for i, b := range rhythm {
		e.rhythm[i] = LayerFromIndex(b.Layer)
	}
	for l := LayerCenter; l < LayerNotApplicable; l++ {
		if idx, ok := net.Layers.Lookup(l.Name()); ok {
			e.pulse[l] = idx
		}
	}
	for i := range e.phases {
		if !e.frozen[i] {
			e.phases[i] = rng.UniformPhase(r)
		}
	}

	return e, nil
}

// Size returns the number of oscillators.
func (e *Engine) Size() int { return len(e.phases) }

// Phases returns a copy of the current phase vector.
func (e *Engine) Phases() []float64 { return append([]float64(nil), e.phases...) }

// SetPhase overwrites oscillator i's phase, wrapped into [0, 2π).
func (e *Engine) SetPhase(i int, phase float64) error {
	if i < 0 || i >= len(e.phases) {
		return fmt.Errorf("SetPhase: i=%d n=%d: %w", i, len(e.phases), ErrIndexOutOfRange)
	}
	e.phases[i] = Wrap(phase)
	return nil
}

// IsFrozen reports whether oscillator i belongs to the seed.
func (e *Engine) IsFrozen(i int) bool { return i >= 0 && i < len(e.frozen) && e.frozen[i] }

// Coherence returns the order parameter of the current state.
func (e *Engine) Coherence() float64 { return Coherence(e.phases) }

// PulsedLayers returns the distinct layers the rhythm drives that exist in
// this network, in schedule order.
func (e *Engine) PulsedLayers() []Layer {
	var out []Layer
	seen := [LayerNotApplicable + 1]bool{}
	for _, l := range e.rhythm {
		if seen[l] || l == LayerNotApplicable || len(e.pulse[l]) == 0 {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// Schedule returns the layer pulsed at step s and the pulse direction (±1).
func (e *Engine) Schedule(s int) (Layer, float64) {
	n := len(e.rhythm)
	cycle, beat := s/n, s%n
	if beat < 0 {
		beat += n
		cycle--
	}
	dir := 1.0
	if cycle%2 != 0 {
		dir = -1
	}
	return e.rhythm[beat], dir
}

// Step advances the state by one synchronous update at schedule index s.
// Complexity: O(V + E).
func (e *Engine) Step(s int) {
	copy(e.next, e.phases)

	layer, dir := e.Schedule(s)
	if layer != LayerNotApplicable {
		shift := dir * e.amplitude
		for _, i := range e.pulse[layer] {
			e.next[i] = Wrap(e.phases[i] + shift)
		}
	}

	for i, nb := range e.neighbors {
		if e.frozen[i] || len(nb) == 0 {
			continue
		}
		pi := e.phases[i]
		var sum float64
		for _, j := range nb {
			sum += math.Sin(e.phases[j] - pi)
		}
		e.next[i] = Wrap(pi + NaturalFrequency + CouplingStrength/float64(len(nb))*sum)
	}

	e.phases, e.next = e.next, e.phases
}
