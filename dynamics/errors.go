package dynamics

import "errors"

var (
	// ErrNilNetwork is returned when no network is supplied.
	ErrNilNetwork = errors.New("dynamics: network is nil")
	// ErrShapeMismatch indicates phase, mask and graph sizes disagree.
	ErrShapeMismatch = errors.New("dynamics: state length mismatch")
	// ErrEmptyRhythm indicates a pulse schedule with no beats.
	ErrEmptyRhythm = errors.New("dynamics: rhythm is empty")
	// ErrNilRand is returned when no randomness source is supplied.
	ErrNilRand = errors.New("dynamics: rng is nil")
	// ErrIndexOutOfRange is returned by SetPhase for a bad oscillator index.
	ErrIndexOutOfRange = errors.New("dynamics: oscillator index out of range")
)
