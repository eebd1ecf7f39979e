package analytics

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestEngine() *Engine {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return NewEngine(DefaultThresholds(), log)
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		sorted   []float64
		q        float64
		expected float64
	}{
		{
			name:     "Median of even count interpolates",
			sorted:   []float64{100, 110, 120, 130},
			q:        0.5,
			expected: 115,
		},
		{
			name:     "Single value returns itself",
			sorted:   []float64{10},
			q:        0.5,
			expected: 10,
		},
		{
			name:     "Q1 of four values",
			sorted:   []float64{148, 150, 152, 300},
			q:        0.25,
			expected: 149.5,
		},
		{
			name:     "Q3 of four values",
			sorted:   []float64{148, 150, 152, 300},
			q:        0.75,
			expected: 189,
		},
		{
			name:     "P10 lands between first two values",
			sorted:   []float64{100, 110, 120, 130},
			q:        0.1,
			expected: 103,
		},
		{
			name:     "P90 lands between last two values",
			sorted:   []float64{100, 110, 120, 130},
			q:        0.9,
			expected: 127,
		},
		{
			name:     "Quantile at exact index",
			sorted:   []float64{100, 110, 120},
			q:        0.5,
			expected: 110,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, quantile(tt.sorted, tt.q), 1e-9)
		})
	}
}

func TestQuantileEmpty(t *testing.T) {
	assert.True(t, math.IsNaN(quantile(nil, 0.5)))
}

func TestQuantileOf(t *testing.T) {
	// Input is unsorted; quantileOf must not mutate it
	values := []float64{130, 100, 120, 110}
	median := quantileOf(values, 0.5)
	assert.NotNil(t, median)
	assert.Equal(t, 115.0, *median)
	assert.Equal(t, []float64{130, 100, 120, 110}, values)

	assert.Nil(t, quantileOf(nil, 0.5))
}

func TestMeanOf(t *testing.T) {
	avg := meanOf([]float64{100, 110, 121})
	assert.NotNil(t, avg)
	assert.Equal(t, 110.3, *avg)

	assert.Nil(t, meanOf(nil))
}

func TestStdDevOf(t *testing.T) {
	// Sample standard deviation uses the n-1 denominator
	sd := stdDevOf([]float64{100, 110, 120, 130})
	assert.NotNil(t, sd)
	assert.Equal(t, 12.9, *sd)

	assert.Nil(t, stdDevOf([]float64{150}))
	assert.Nil(t, stdDevOf(nil))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 151.0, round1(151.04))
	assert.Equal(t, 151.1, round1(151.06))
	assert.Equal(t, -12.5, round1(-12.5))
	assert.Equal(t, 0.0, round1(0.04))
}

func TestPearson(t *testing.T) {
	t.Run("Perfect positive correlation", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5}
		y := []float64{10, 20, 30, 40, 50}
		r, ok := pearson(x, y)
		assert.True(t, ok)
		assert.InDelta(t, 1.0, r, 1e-9)
	})

	t.Run("Fewer than three pairs is undefined", func(t *testing.T) {
		_, ok := pearson([]float64{1, 2}, []float64{3, 4})
		assert.False(t, ok)
	})

	t.Run("Zero variance is undefined", func(t *testing.T) {
		x := []float64{5, 5, 5, 5}
		y := []float64{1, 2, 3, 4}
		_, ok := pearson(x, y)
		assert.False(t, ok)
	})

	t.Run("Length mismatch is undefined", func(t *testing.T) {
		_, ok := pearson([]float64{1, 2, 3}, []float64{1, 2})
		assert.False(t, ok)
	})
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 0, 100))
	assert.Equal(t, 100, clampInt(140, 0, 100))
	assert.Equal(t, 42, clampInt(42, 0, 100))
}
