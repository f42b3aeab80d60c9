package classifier

import (
	"cmp"
	"math"

	"github.com/sgostarter/libgrowth/curve"
	"github.com/sgostarter/libgrowth/sweep"
	"golang.org/x/exp/slices"
)

// Usable reports whether r may take part in ranking: a curve longer than two samples,
// a finite first value and a valid average distance.
func Usable(r *sweep.Result) bool {
	if !r.Valid() || len(r.Curve) <= 2 {
		return false
	}

	v := r.Curve[0].V

	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Rank keeps the topK usable results by ascending |AvgDistance| and reshapes them, together
// with the baseline, to their common length. Ranked results are copies; inputs are untouched.
func Rank(rs []*sweep.Result, baseline curve.Curve, topK int) (ranked []*sweep.Result, aligned curve.Curve) {
	kept := make([]*sweep.Result, 0, len(rs))

	for _, r := range rs {
		if Usable(r) {
			kept = append(kept, r)
		}
	}

	slices.SortStableFunc(kept, func(a, b *sweep.Result) int {
		return cmp.Compare(math.Abs(a.AvgDistance), math.Abs(b.AvgDistance))
	})

	if topK > 0 && len(kept) > topK {
		kept = kept[:topK]
	}

	if len(kept) == 0 {
		return nil, baseline
	}

	seqs := make([][]float64, len(kept))
	for idx, r := range kept {
		seqs[idx] = r.Curve.Values()
	}

	seqs = curve.Reshape(seqs)

	ranked = make([]*sweep.Result, len(kept))

	for idx, r := range kept {
		cp := *r
		cp.Curve = fromValues(seqs[idx])
		ranked[idx] = &cp
	}

	aligned = baseline.Truncate(curve.MinLen(seqs))

	return
}

func fromValues(vs []float64) curve.Curve {
	c := make(curve.Curve, len(vs))

	for idx, v := range vs {
		c[idx] = curve.Sample{V: v, N: idx + 1}
	}

	return c
}
