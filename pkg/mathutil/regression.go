package mathutil

// LinearFit fits an ordinary least-squares line y = slope*x + intercept to
// the given points. The two slices must have equal length of at least 2;
// shorter input returns ok=false. A degenerate x spread (all equal) also
// returns ok=false since the slope is undefined.
func LinearFit(xs, ys []float64) (slope, intercept float64, ok bool) {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return 0, 0, false
	}

	meanX := Mean(xs)
	meanY := Mean(ys)

	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return 0, 0, false
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return slope, intercept, true
}
