package curve

// TrendStopper counts consecutive observations of an increasing trend and
// reports termination once the run reaches Limit. A non-increasing
// observation resets the run. Limit <= 0 never terminates.
type TrendStopper struct {
	Limit int

	run int
}

func (ts *TrendStopper) Observe(increasing bool) (stop bool) {
	if !increasing {
		ts.run = 0

		return
	}

	ts.run++

	return ts.Limit > 0 && ts.run >= ts.Limit
}

func (ts *TrendStopper) Run() int {
	return ts.run
}

func (ts *TrendStopper) Reset() {
	ts.run = 0
}
