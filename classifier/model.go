package classifier

import (
	"github.com/sgostarter/libgrowth/curve"
	"github.com/sgostarter/libgrowth/sweep"
)

type FamilyFailure struct {
	Task sweep.Task
	Err  error
}

type Stats struct {
	Tasks            int
	Tried            int
	Candidates       int
	Valid            int
	SampleStops      int
	CoefficientStops int
}

// Result is the ranked result set of one classification run. Baseline and every
// ranked curve share one length.
type Result struct {
	Name     string
	Baseline curve.Curve
	Ranked   []*sweep.Result
	Failures []FamilyFailure
	Stats    Stats
}

func (r *Result) Best() *sweep.Result {
	if r == nil || len(r.Ranked) == 0 {
		return nil
	}

	return r.Ranked[0]
}
