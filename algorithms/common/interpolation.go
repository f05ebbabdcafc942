package common

// ParabolicPeak refines a discrete peak location to sub-sample precision by
// fitting a parabola through the three values centered on the peak. Returns
// the peak index unchanged when refinement is not possible (peak at an edge,
// or a degenerate fit).
func ParabolicPeak(data []float64, peakIdx int) float64 {
	if peakIdx <= 0 || peakIdx >= len(data)-1 {
		return float64(peakIdx)
	}

	y1 := data[peakIdx-1]
	y2 := data[peakIdx]
	y3 := data[peakIdx+1]

	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2

	if a == 0 {
		return float64(peakIdx)
	}

	offset := -b / (2 * a)

	// A vertex further than one sample away means the three points do not
	// bracket a real maximum; keep the discrete peak.
	if offset < -1 || offset > 1 {
		return float64(peakIdx)
	}

	return float64(peakIdx) + offset
}
