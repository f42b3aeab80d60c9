package curve

// Reshape aligns value sequences to the shortest one: shorter sequences are padded with
// their last value, longer ones lose trailing elements. Inputs are not modified.
func Reshape(seqs [][]float64) [][]float64 {
	out := make([][]float64, len(seqs))
	if len(seqs) == 0 {
		return out
	}

	minLen := MinLen(seqs)

	for idx, seq := range seqs {
		vs := make([]float64, minLen)

		n := copy(vs, seq)
		for ; n < minLen; n++ {
			vs[n] = seq[len(seq)-1]
		}

		out[idx] = vs
	}

	return out
}

func MinLen(seqs [][]float64) int {
	if len(seqs) == 0 {
		return 0
	}

	minLen := len(seqs[0])

	for _, seq := range seqs[1:] {
		if len(seq) < minLen {
			minLen = len(seq)
		}
	}

	return minLen
}

// MeanDiff is the mean of a[i]-b[i] over the common prefix; 0 when there is none.
func MeanDiff(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	if n == 0 {
		return 0
	}

	var sum float64

	for idx := 0; idx < n; idx++ {
		sum += a[idx] - b[idx]
	}

	return sum / float64(n)
}
