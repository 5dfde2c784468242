// Package dynamics advances the phase state of an oscillator network.
//
// An Engine owns one phase vector and steps it synchronously: every update in
// a step reads the same pre-step snapshot and writes into a second buffer that
// is swapped in when the step completes. Two forces act per step:
//
//   - Pulse: the seed layer selected by the rhythm beat (s mod len(rhythm)) is
//     shifted by ±amplitude; the sign flips every full rhythm cycle.
//   - Coupling: every pool oscillator with neighbors moves by
//     NaturalFrequency + CouplingStrength/deg · Σ sin(φj − φi).
//
// Seed oscillators never couple. Only the center, triad and icosa layers are
// ever pulsed; outer shells resolve to LayerNotApplicable.
//
// An Engine is not safe for concurrent use.
package dynamics
