package dynamics_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/entangle/builder"
	"github.com/katalvlaran/entangle/core"
	"github.com/katalvlaran/entangle/dynamics"
	"github.com/katalvlaran/entangle/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNetwork(t testing.TB, k, pool int, seed int64) *builder.Network {
	t.Helper()
	s, err := builder.Crystal(k)
	require.NoError(t, err)
	net, err := builder.AssemblePool(s, pool, builder.WithSeed(seed))
	require.NoError(t, err)
	return net
}

func TestWrap(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-0.5, 2*math.Pi - 0.5},
		{7 * math.Pi, math.Pi},
		{-1e-18, 0},
	}
	for _, c := range cases {
		got := dynamics.Wrap(c.in)
		assert.InDelta(t, c.want, got, 1e-12, "Wrap(%v)", c.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, dynamics.TwoPi)
	}
}

func TestWrapSigned(t *testing.T) {
	assert.InDelta(t, 0.0, dynamics.WrapSigned(0), 1e-12)
	assert.InDelta(t, -0.5, dynamics.WrapSigned(2*math.Pi-0.5), 1e-12)
	assert.InDelta(t, 0.5, dynamics.WrapSigned(0.5), 1e-12)
	assert.InDelta(t, -math.Pi, dynamics.WrapSigned(math.Pi), 1e-12)
	for _, x := range []float64{-10, -3.2, 3.2, 10, 100} {
		got := dynamics.WrapSigned(x)
		assert.GreaterOrEqual(t, got, -math.Pi)
		assert.Less(t, got, math.Pi)
	}
}

func TestCoherence(t *testing.T) {
	assert.Zero(t, dynamics.Coherence(nil))
	assert.InDelta(t, 1.0, dynamics.Coherence([]float64{1.3, 1.3, 1.3}), 1e-12)

	// Evenly spread phases cancel.
	spread := make([]float64, 8)
	for i := range spread {
		spread[i] = float64(i) * dynamics.TwoPi / 8
	}
	assert.InDelta(t, 0.0, dynamics.Coherence(spread), 1e-12)

	two := dynamics.Coherence([]float64{0, math.Pi / 2})
	assert.InDelta(t, math.Sqrt2/2, two, 1e-12)
	assert.Less(t, two, 1.0)
}

// TestCoherence_ShiftInvariant checks a global phase shift leaves the order parameter unchanged.
func TestCoherence_ShiftInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	phases := make([]float64, 64)
	for i := range phases {
		phases[i] = r.Float64() * dynamics.TwoPi
	}
	base := dynamics.Coherence(phases)
	for _, c := range []float64{0.1, 1, math.Pi, 5.9, -2} {
		shifted := make([]float64, len(phases))
		for i, p := range phases {
			shifted[i] = dynamics.Wrap(p + c)
		}
		assert.InDelta(t, base, dynamics.Coherence(shifted), 1e-9, "shift %v", c)
	}
}

func TestLayer(t *testing.T) {
	assert.Equal(t, dynamics.LayerCenter, dynamics.LayerFromIndex(0))
	assert.Equal(t, dynamics.LayerTriad, dynamics.LayerFromIndex(1))
	assert.Equal(t, dynamics.LayerIcosa, dynamics.LayerFromIndex(2))
	assert.Equal(t, dynamics.LayerNotApplicable, dynamics.LayerFromIndex(3))
	assert.Equal(t, dynamics.LayerNotApplicable, dynamics.LayerFromIndex(-1))
	assert.Equal(t, "icosa", dynamics.LayerIcosa.String())
	assert.Equal(t, "n/a", dynamics.LayerNotApplicable.String())
	assert.Empty(t, dynamics.LayerNotApplicable.Name())
}

func TestLayer_SeedSizes(t *testing.T) {
	want := map[dynamics.Layer]int{dynamics.LayerCenter: 1, dynamics.LayerTriad: 3, dynamics.LayerIcosa: 12}
	net := newNetwork(t, 3, 10, 1)
	for l, n := range want {
		idx, ok := net.Layers.Lookup(l.Name())
		require.True(t, ok, l.String())
		assert.Len(t, idx, n, l.String())
	}

	// K=2 has no triad.
	_, ok := newNetwork(t, 2, 10, 1).Layers.Lookup(dynamics.LayerTriad.Name())
	assert.False(t, ok)
}

func TestNewEngine_Errors(t *testing.T) {
	net := newNetwork(t, 2, 10, 1)
	r := rand.New(rand.NewSource(1))
	rhythm := params.RhythmSequence()

	_, err := dynamics.NewEngine(nil, 0.5, rhythm, r)
	assert.ErrorIs(t, err, dynamics.ErrNilNetwork)
	_, err = dynamics.NewEngine(net, 0.5, rhythm, nil)
	assert.ErrorIs(t, err, dynamics.ErrNilRand)
	_, err = dynamics.NewEngine(net, 0.5, nil, r)
	assert.ErrorIs(t, err, dynamics.ErrEmptyRhythm)

	bad := *net
	bad.Frozen = bad.Frozen[:3]
	_, err = dynamics.NewEngine(&bad, 0.5, rhythm, r)
	assert.ErrorIs(t, err, dynamics.ErrShapeMismatch)
}

func TestNewEngine_InitialState(t *testing.T) {
	net := newNetwork(t, 3, 30, 2)
	e, err := dynamics.NewEngine(net, 0.5, params.RhythmSequence(), rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	require.Equal(t, net.Size(), e.Size())

	for i, p := range e.Phases() {
		if i < net.SeedSize {
			assert.True(t, e.IsFrozen(i))
			assert.Zero(t, p, "seed %d", i)
			continue
		}
		assert.False(t, e.IsFrozen(i))
		assert.GreaterOrEqual(t, p, 0.0)
		assert.Less(t, p, dynamics.TwoPi)
	}
	assert.False(t, e.IsFrozen(-1))
	assert.False(t, e.IsFrozen(e.Size()))
}

func TestPulsedLayers(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	e2, err := dynamics.NewEngine(newNetwork(t, 2, 10, 1), 0.5, params.RhythmSequence(), r)
	require.NoError(t, err)
	assert.Equal(t, []dynamics.Layer{dynamics.LayerCenter, dynamics.LayerIcosa}, e2.PulsedLayers())

	e5, err := dynamics.NewEngine(newNetwork(t, 5, 10, 1), 0.5, params.RhythmSequence(), r)
	require.NoError(t, err)
	assert.Equal(t, []dynamics.Layer{dynamics.LayerCenter, dynamics.LayerTriad, dynamics.LayerIcosa}, e5.PulsedLayers())
}

func TestSchedule(t *testing.T) {
	e, err := dynamics.NewEngine(newNetwork(t, 3, 10, 1), 0.5, params.RhythmSequence(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	cases := []struct {
		s     int
		layer dynamics.Layer
		dir   float64
	}{
		{0, dynamics.LayerCenter, 1},
		{1, dynamics.LayerTriad, 1},
		{2, dynamics.LayerIcosa, 1},
		{11, dynamics.LayerIcosa, 1},
		{12, dynamics.LayerCenter, -1},
		{23, dynamics.LayerIcosa, -1},
		{24, dynamics.LayerCenter, 1},
		{-1, dynamics.LayerIcosa, -1},
	}
	for _, c := range cases {
		l, d := e.Schedule(c.s)
		assert.Equal(t, c.layer, l, "s=%d", c.s)
		assert.Equal(t, c.dir, d, "s=%d", c.s)
	}
}

// TestStep_FrozenOnlyOnActiveBeat checks that a seed phase moves exactly on
// the beats that pulse its layer, and that outer shells never move.
func TestStep_FrozenOnlyOnActiveBeat(t *testing.T) {
	const amp = 0.3
	net := newNetwork(t, 4, 60, 4)
	e, err := dynamics.NewEngine(net, amp, params.RhythmSequence(), rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	layerOf := make(map[int]dynamics.Layer, net.SeedSize)
	for i := 0; i < net.SeedSize; i++ {
		layerOf[i] = dynamics.LayerNotApplicable
	}
	for l := dynamics.LayerCenter; l < dynamics.LayerNotApplicable; l++ {
		idx, ok := net.Layers.Lookup(l.Name())
		require.True(t, ok)
		for _, i := range idx {
			layerOf[i] = l
		}
	}

	for s := 0; s < 48; s++ {
		before := e.Phases()
		e.Step(s)
		after := e.Phases()
		active, dir := e.Schedule(s)

		for i := 0; i < net.SeedSize; i++ {
			if layerOf[i] == active {
				assert.InDelta(t, dynamics.Wrap(before[i]+dir*amp), after[i], 1e-12, "s=%d i=%d", s, i)
			} else {
				assert.Equal(t, before[i], after[i], "s=%d i=%d", s, i)
			}
		}
	}
}

// TestStep_Synchronous verifies both ends of an edge read the pre-step snapshot.
func TestStep_Synchronous(t *testing.T) {
	g := core.NewGraph(3)
	_, err := g.AddEdge(0, 1)
	require.NoError(t, err)
	net := &builder.Network{Graph: g, Frozen: make([]bool, 3), PoolSize: 3}

	e, err := dynamics.NewEngine(net, 0.5, params.RhythmSequence(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, e.SetPhase(0, 1.0))
	require.NoError(t, e.SetPhase(1, 2.0))
	require.NoError(t, e.SetPhase(2, 4.0))

	e.Step(0)
	p := e.Phases()
	assert.InDelta(t, 1.0+0.1+0.3*math.Sin(1.0), p[0], 1e-12)
	assert.InDelta(t, 2.0+0.1+0.3*math.Sin(-1.0), p[1], 1e-12)
	// Isolated oscillators do not move.
	assert.Equal(t, 4.0, p[2])
}

func TestStep_PhasesStayWrapped(t *testing.T) {
	net := newNetwork(t, 2, 50, 6)
	e, err := dynamics.NewEngine(net, 0.5, params.RhythmSequence(), rand.New(rand.NewSource(6)))
	require.NoError(t, err)
	for s := 0; s < 500; s++ {
		e.Step(s)
	}
	for i, p := range e.Phases() {
		assert.GreaterOrEqual(t, p, 0.0, "i=%d", i)
		assert.Less(t, p, dynamics.TwoPi, "i=%d", i)
	}
	c := e.Coherence()
	assert.GreaterOrEqual(t, c, 0.0)
	assert.LessOrEqual(t, c, 1.0)
}

func TestSetPhase(t *testing.T) {
	e, err := dynamics.NewEngine(newNetwork(t, 2, 5, 1), 0.5, params.RhythmSequence(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.ErrorIs(t, e.SetPhase(-1, 0), dynamics.ErrIndexOutOfRange)
	assert.ErrorIs(t, e.SetPhase(e.Size(), 0), dynamics.ErrIndexOutOfRange)
	require.NoError(t, e.SetPhase(14, -0.5))
	assert.InDelta(t, dynamics.TwoPi-0.5, e.Phases()[14], 1e-12)

	// Phases returns a copy.
	p := e.Phases()
	p[14] = 0
	assert.NotEqual(t, 0.0, e.Phases()[14])
}
