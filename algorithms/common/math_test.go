package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/chordsense/algorithms/common"
)

func TestMeanAndSum(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	assert.InDelta(t, 2.5, common.Mean(data), 1e-9)
	assert.InDelta(t, 10.0, common.Sum(data), 1e-9)

	assert.Zero(t, common.Mean(nil))
	assert.Zero(t, common.Sum(nil))
}

func TestRMS(t *testing.T) {
	assert.InDelta(t, 2.0, common.RMS([]float64{2, -2, 2, -2}), 1e-9)
	assert.Zero(t, common.RMS([]float64{0, 0, 0}))
	assert.Zero(t, common.RMS(nil))
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	assert.InDelta(t, 1.0, common.Correlation(x, y), 1e-9)

	inverted := []float64{10, 8, 6, 4, 2}
	assert.InDelta(t, -1.0, common.Correlation(x, inverted), 1e-9)

	// Mismatched or empty input degrades to zero
	assert.Zero(t, common.Correlation(x, []float64{1, 2}))
	assert.Zero(t, common.Correlation(nil, nil))

	// Constant series have undefined correlation; report zero
	assert.Zero(t, common.Correlation([]float64{3, 3, 3}, []float64{1, 2, 3}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, common.Clamp(10, 0, 5))
	assert.Equal(t, 0.0, common.Clamp(-1, 0, 5))
	assert.Equal(t, 3.0, common.Clamp(3, 0, 5))

	assert.Equal(t, 5, common.ClampInt(10, 0, 5))
	assert.Equal(t, 0, common.ClampInt(-1, 0, 5))
}

func TestPowerOfTwoHelpers(t *testing.T) {
	assert.True(t, common.IsPowerOfTwo(1))
	assert.True(t, common.IsPowerOfTwo(1024))
	assert.False(t, common.IsPowerOfTwo(0))
	assert.False(t, common.IsPowerOfTwo(100))

	assert.Equal(t, 1, common.NextPowerOfTwo(0))
	assert.Equal(t, 8, common.NextPowerOfTwo(5))
	assert.Equal(t, 1024, common.NextPowerOfTwo(1024))
}

func TestParabolicPeak(t *testing.T) {
	// Symmetric neighbors leave the peak where it is
	data := []float64{0, 1, 2, 1, 0}
	assert.InDelta(t, 2.0, common.ParabolicPeak(data, 2), 1e-9)

	// A heavier right neighbor pulls the vertex right
	skewed := []float64{0, 1, 2, 1.8, 0}
	refined := common.ParabolicPeak(skewed, 2)
	assert.Greater(t, refined, 2.0)
	assert.Less(t, refined, 3.0)

	// Edges cannot be refined
	assert.Equal(t, 0.0, common.ParabolicPeak(data, 0))
	assert.Equal(t, 4.0, common.ParabolicPeak(data, 4))
}
