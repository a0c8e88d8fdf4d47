package peak

// Curate clips the flanks of c that extend more than width samples from
// top. Walking outward from top∓width, the first sample whose outer
// neighbour is not lower becomes the new edge. The returned top is the
// first raw maximum inside the curated range.
func Curate(raw, smoothed []float64, c CandidatePeak, top, width int) CuratedPeak {
	left, right := c.Left, c.Right

	if top-left > width {
		for k := top - width; k > left; k-- {
			if smoothed[k-1] >= smoothed[k] {
				left = k
				break
			}
		}
	}

	if right-top > width {
		for k := top + width; k < right; k++ {
			if smoothed[k+1] >= smoothed[k] {
				right = k
				break
			}
		}
	}

	return NewCuratedPeak(left, argmax(raw, left, right), right)
}
