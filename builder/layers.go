// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// layers.go: named, immutable vertex groups of a crystal seed.

package builder

import "strconv"

// Layer is a named group of crystal vertex indices.
type Layer struct {
	Name    string
	Indices []int
}

// Layers is the ordered list of crystal layers, innermost first.
// Layers are created once per crystal build and never mutated.
type Layers []Layer

// Lookup returns a copy of the indices of the named layer.
// ok is false when the crystal has no such layer (e.g. "triad" at K=2).
func (ls Layers) Lookup(name string) (indices []int, ok bool) {
	for _, l := range ls {
		if l.Name == name {
			return append([]int(nil), l.Indices...), true
		}
	}
	return nil, false
}

// Names returns the layer names in order.
func (ls Layers) Names() []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Name
	}
	return out
}

// ShellLayerName returns the name of outer shell number n (n ≥ 4): "shell_n".
func ShellLayerName(n int) string {
	return shellLayerPrefix + strconv.Itoa(n)
}

// indexRange returns [from, to) as a slice.
func indexRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
