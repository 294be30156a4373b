// Package breakdown implements the daily target breakdown engine: the
// smoothing primitive, the weekly and monthly seasonality weighters, the
// fixed and regression growth curves, and the combiner that normalizes
// the three weight series into daily allocations.
package breakdown

// Smooth blends each weight with its local moving average and returns a
// new sequence of the same length. For interior index i the local average
// covers positions i-1, i, i+1; the endpoints average with their single
// neighbor. A factor of 0 returns the input unchanged and a factor of 1
// returns the pure local average. A single-element sequence has no
// neighbor and is returned unchanged.
func Smooth(weights []float64, factor float64) []float64 {
	smoothed := make([]float64, len(weights))
	if len(weights) <= 1 {
		copy(smoothed, weights)
		return smoothed
	}

	last := len(weights) - 1
	for i := range weights {
		var local float64
		switch i {
		case 0:
			local = (weights[0] + weights[1]) / 2
		case last:
			local = (weights[last-1] + weights[last]) / 2
		default:
			local = (weights[i-1] + weights[i] + weights[i+1]) / 3
		}
		smoothed[i] = weights[i]*(1-factor) + local*factor
	}
	return smoothed
}
