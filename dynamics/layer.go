package dynamics

import (
	"github.com/katalvlaran/entangle/builder"
	"github.com/katalvlaran/entangle/params"
)

// Layer is a pulse target selected by a rhythm beat.
type Layer int

const (
	// LayerCenter is the single center oscillator.
	LayerCenter Layer = iota
	// LayerTriad is the three-vertex triad (present for K >= 3).
	LayerTriad
	// LayerIcosa is the twelve-vertex icosahedral shell.
	LayerIcosa
	// LayerNotApplicable marks a beat index with no pulsed layer.
	LayerNotApplicable
)

// LayerFromIndex maps a rhythm layer index to a Layer.
func LayerFromIndex(idx int) Layer {
	switch idx {
	case params.LayerCenter:
		return LayerCenter
	case params.LayerTriad:
		return LayerTriad
	case params.LayerIcosa:
		return LayerIcosa
	default:
		return LayerNotApplicable
	}
}

// Name returns the seed layer name, or "" for LayerNotApplicable.
func (l Layer) Name() string {
	switch l {
	case LayerCenter:
		return builder.LayerCenter
	case LayerTriad:
		return builder.LayerTriad
	case LayerIcosa:
		return builder.LayerIcosa
	default:
		return ""
	}
}

func (l Layer) String() string {
	if n := l.Name(); n != "" {
		return n
	}
	return "n/a"
}
