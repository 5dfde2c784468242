package fault_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/entangle/converge"
	"github.com/katalvlaran/entangle/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phases []float64

func (p phases) Size() int { return len(p) }
func (p phases) SetPhase(i int, v float64) error {
	p[i] = v
	return nil
}

func TestCorruptCount(t *testing.T) {
	assert.Equal(t, 25, fault.CorruptCount(50, 0.5))
	assert.Equal(t, 0, fault.CorruptCount(50, 0))
	assert.Equal(t, 50, fault.CorruptCount(50, 1))
	assert.Equal(t, 2, fault.CorruptCount(3, 0.5))
}

func TestInject_OnlyPoolRange(t *testing.T) {
	const sentinel = -1.0
	p := make(phases, 30)
	for i := range p {
		p[i] = sentinel
	}

	idx, err := fault.Inject(p, 10, 20, 0.5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, idx, 10)
	assert.IsIncreasing(t, idx)

	hit := make(map[int]bool, len(idx))
	for _, i := range idx {
		assert.GreaterOrEqual(t, i, 10)
		assert.Less(t, i, 30)
		hit[i] = true
	}
	for i, v := range p {
		if hit[i] {
			assert.GreaterOrEqual(t, v, 0.0)
		} else {
			assert.Equal(t, sentinel, v, "index %d", i)
		}
	}
}

func TestInject_Reproducible(t *testing.T) {
	a, err := fault.Inject(make(phases, 40), 0, 40, 0.3, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	b, err := fault.Inject(make(phases, 40), 0, 40, 0.3, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInject_Errors(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := make(phases, 10)

	_, err := fault.Inject(nil, 0, 1, 0.5, r)
	assert.ErrorIs(t, err, fault.ErrNilTarget)
	_, err = fault.Inject(p, 0, 10, 1.5, r)
	assert.ErrorIs(t, err, fault.ErrInvalidFraction)
	_, err = fault.Inject(p, 0, 10, -0.1, r)
	assert.ErrorIs(t, err, fault.ErrInvalidFraction)
	_, err = fault.Inject(p, 5, 6, 0.5, r)
	assert.ErrorIs(t, err, fault.ErrInvalidRange)
	_, err = fault.Inject(p, 0, 10, 0.5, nil)
	assert.ErrorIs(t, err, fault.ErrNilRand)

	idx, err := fault.Inject(p, 0, 10, 0, r)
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestSummarize(t *testing.T) {
	s, err := fault.Summarize([]converge.Result{
		{Steps: 10, Coherence: 0.9, Success: true},
		{Steps: 20, Coherence: 0.95, Success: true},
		{Steps: 100, Coherence: 0.5, Success: false},
		{Steps: 14, Coherence: 0.91, Success: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Trials)
	assert.Equal(t, 36.0, s.AvgSteps)
	assert.Equal(t, 10, s.MinSteps)
	assert.Equal(t, 100, s.MaxSteps)
	assert.InDelta(t, 0.815, s.AvgCoherence, 1e-12)
	assert.Equal(t, 0.75, s.SuccessRate)
	assert.False(t, s.Passed())

	_, err = fault.Summarize(nil)
	assert.ErrorIs(t, err, fault.ErrInvalidTrials)
}

func TestSummary_Passed(t *testing.T) {
	s, err := fault.Summarize([]converge.Result{{Steps: 3, Coherence: 0.92, Success: true}})
	require.NoError(t, err)
	assert.True(t, s.Passed())
	assert.False(t, fault.Summary{}.Passed())
}
