package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_KnownDistribution(t *testing.T) {
	s := summarize([]float64{1, 2, 3, 4, 5})

	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 3.0, s.Median)
	assert.InDelta(t, math.Sqrt(2), s.Std, 1e-12, "population standard deviation")
	assert.InDelta(t, 2.0, s.P25, 1e-12)
	assert.InDelta(t, 4.0, s.P75, 1e-12)
	assert.InDelta(t, 1.2, s.P5, 1e-12)
	assert.InDelta(t, 4.8, s.P95, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 5, s.Count)
}

func TestSummarize_FiltersNonFinite(t *testing.T) {
	s := summarize([]float64{math.NaN(), 10, math.Inf(1), 20, math.NaN()})

	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 15.0, s.Mean)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 20.0, s.Max)
}

func TestSummarize_DegenerateInputs(t *testing.T) {
	for name, input := range map[string][]float64{
		"empty":   {},
		"nil":     nil,
		"all NaN": {math.NaN(), math.NaN()},
	} {
		t.Run(name, func(t *testing.T) {
			s := summarize(input)

			assert.Equal(t, 0, s.Count)
			for _, v := range []float64{s.Mean, s.Median, s.Std, s.P5, s.P25, s.P75, s.P95, s.Min, s.Max} {
				assert.True(t, math.IsNaN(v), "all statistics must be NaN for degenerate input")
			}
		})
	}
}
