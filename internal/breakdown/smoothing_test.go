package breakdown

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/targetplan/daily-breakdown/pkg/mathutil"
)

func TestSmoothIdentityAtZeroFactor(t *testing.T) {
	input := []float64{1.2, 0.8, 1.0, 1.5, 0.9}
	smoothed := Smooth(input, 0)
	assert.Equal(t, input, smoothed)
}

func TestSmoothSingleElement(t *testing.T) {
	smoothed := Smooth([]float64{1.3}, 0.7)
	assert.Equal(t, []float64{1.3}, smoothed)
}

func TestSmoothEmpty(t *testing.T) {
	smoothed := Smooth(nil, 0.5)
	assert.Empty(t, smoothed)
}

func TestSmoothPureLocalAverage(t *testing.T) {
	input := []float64{1.0, 2.0, 3.0, 4.0}
	smoothed := Smooth(input, 1)

	expected := []float64{
		(1.0 + 2.0) / 2,
		(1.0 + 2.0 + 3.0) / 3,
		(2.0 + 3.0 + 4.0) / 3,
		(3.0 + 4.0) / 2,
	}
	for i := range expected {
		assert.InDelta(t, expected[i], smoothed[i], 1e-12, "index %d", i)
	}
}

func TestSmoothBlend(t *testing.T) {
	input := []float64{1.0, 2.0, 1.0}
	smoothed := Smooth(input, 0.5)

	// Interior element: 2*(1-0.5) + ((1+2+1)/3)*0.5
	assert.InDelta(t, 2.0*0.5+(4.0/3)*0.5, smoothed[1], 1e-12)
	// Endpoint: 1*(1-0.5) + ((1+2)/2)*0.5
	assert.InDelta(t, 1.0*0.5+1.5*0.5, smoothed[0], 1e-12)
}

func TestSmoothDoesNotChangeLength(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 31} {
		input := make([]float64, n)
		assert.Len(t, Smooth(input, 0.4), n)
	}
}

// Smoothing at full strength never increases the maximum absolute
// day-to-day delta of a sequence.
func TestSmoothNonExpansiveOnLocalVariation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		n := 2 + rng.Intn(30)
		input := make([]float64, n)
		for i := range input {
			input[i] = rng.Float64() * 10
		}

		smoothed := Smooth(input, 1)
		before := mathutil.MaxAbsFirstDifference(input)
		after := mathutil.MaxAbsFirstDifference(smoothed)
		assert.LessOrEqual(t, after, before+1e-12, "trial %d input %v", trial, input)
	}
}
