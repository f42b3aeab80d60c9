package sweep

import (
	"github.com/sgostarter/libgrowth/catalog"
	"github.com/sgostarter/libgrowth/curve"
	"github.com/spf13/cast"
)

// Task is one coefficient sweep over a family with fixed extra variables.
type Task struct {
	Family   catalog.Family `yaml:"family"`
	SweepVar string         `yaml:"sweepVar"`
	Vars     map[string]any `yaml:"vars,omitempty"`
}

func (t Task) String() string {
	s := t.Family.String()

	if p, ok := t.Vars[catalog.VarPower]; ok && p != nil {
		s += "(" + catalog.VarPower + "=" + cast.ToString(p) + ")"
	}

	return s
}

type Provenance struct {
	Baseline curve.Curve
	Curve    curve.Curve
	Family   catalog.Family
	Args     map[string]float64
}

// Result is the fit of one coefficient value of one family.
type Result struct {
	Curve       curve.Curve
	AvgDistance float64
	Err         error
	Provenance  Provenance
	Name        string
	Coefficient float64
}

func (r *Result) Valid() bool {
	return r != nil && r.Err == nil
}

// Outcome is everything one sweep produced before it terminated.
type Outcome struct {
	Task         Task
	Results      []*Result
	Tried        int
	StoppedEarly bool
	SampleStops  int
}
