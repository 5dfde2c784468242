package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilderConfig_Defaults verifies the zero-option configuration.
func TestBuilderConfig_Defaults(t *testing.T) {
	cfg := newBuilderConfig()
	assert.Nil(t, cfg.rng)
	assert.Equal(t, DefaultContactFraction, cfg.contactFraction)
	assert.Equal(t, DefaultMeshFactor, cfg.meshFactor)
	assert.Equal(t, DefaultNearestNeighbors, cfg.nearest)
}

// TestBuilderOptions_LastWins verifies options apply in order.
func TestBuilderOptions_LastWins(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	cfg := newBuilderConfig(
		WithSeed(1),
		WithRand(r),
		WithContactFraction(0.5),
		WithContactFraction(0.2),
		WithMeshFactor(0),
		WithNearestNeighbors(3),
	)
	require.Same(t, r, cfg.rng)
	assert.Equal(t, 0.2, cfg.contactFraction)
	assert.Equal(t, 0, cfg.meshFactor)
	assert.Equal(t, 3, cfg.nearest)
}

func TestBuilderOptions_PanicOnInvalid(t *testing.T) {
	assert.Panics(t, func() { WithRand(nil) })
	assert.Panics(t, func() { WithContactFraction(0) })
	assert.Panics(t, func() { WithContactFraction(1.5) })
	assert.Panics(t, func() { WithMeshFactor(-1) })
	assert.Panics(t, func() { WithNearestNeighbors(0) })
	assert.NotPanics(t, func() { WithContactFraction(1) })
}

// TestWithSeed_Reproducible checks identical seeds give identical streams.
func TestWithSeed_Reproducible(t *testing.T) {
	a := newBuilderConfig(WithSeed(42))
	b := newBuilderConfig(WithSeed(42))
	for i := 0; i < 8; i++ {
		assert.Equal(t, a.rng.Int63(), b.rng.Int63())
	}
}
