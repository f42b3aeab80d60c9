package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libgrowth/catalog"
	"github.com/sgostarter/libgrowth/curve"
	"github.com/spf13/cast"
)

const (
	DefaultStep                 = 0.5
	DefaultMax                  = 100
	DefaultCoefficientThreshold = 25
)

type Options struct {
	Step                 float64
	Max                  float64
	CoefficientThreshold int
	Sampler              curve.Sampler
}

func DefaultOptions() Options {
	return Options{
		Step:                 DefaultStep,
		Max:                  DefaultMax,
		CoefficientThreshold: DefaultCoefficientThreshold,
		Sampler:              curve.NewSampler(curve.DefaultMaxIndex, curve.DefaultSampleThreshold),
	}
}

// Steps is the number of coefficient values in {Step, 2*Step, ..., floor(Max/Step)*Step}.
func (opts Options) Steps() int {
	if opts.Step <= 0 || opts.Max < opts.Step {
		return 0
	}

	return int(math.Floor(opts.Max/opts.Step + 1e-9))
}

func NewSearcher(opts Options, logger l.Wrapper) *Searcher {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &Searcher{
		opts:   opts,
		logger: logger.WithFields(l.StringField(l.ClsKey, "searcherImpl")),
	}
}

type Searcher struct {
	opts   Options
	logger l.Wrapper
}

// Search sweeps the coefficient of task.Family in increasing order. The sweep stops early
// once the mean value difference between consecutive candidate curves has been positive
// CoefficientThreshold times in a row. A resolution failure aborts the sweep; the results
// collected before it are returned together with the error.
func (impl *Searcher) Search(ctx context.Context, baseline curve.Curve, task Task) (o *Outcome, err error) {
	o = &Outcome{
		Task: task,
	}

	steps := impl.opts.Steps()
	if steps == 0 {
		err = fmt.Errorf("%w: step %v max %v", ErrBadOptions, impl.opts.Step, impl.opts.Max)

		return
	}

	sweepVar := task.SweepVar
	if sweepVar == "" {
		sweepVar = catalog.VarCoefficient
	}

	logger := impl.logger.WithFields(l.StringField("task", task.String()))

	vars := make(map[string]any, len(task.Vars)+1)
	for k, v := range task.Vars {
		vars[k] = v
	}

	var (
		prev    []float64
		stopper = curve.TrendStopper{Limit: impl.opts.CoefficientThreshold}
	)

	o.Results = make([]*Result, 0, steps)

	for k := 1; k <= steps; k++ {
		if err = ctx.Err(); err != nil {
			return
		}

		c := float64(k) * impl.opts.Step
		vars[sweepVar] = c

		resolved, e := catalog.Resolve(task.Family, sweepVar, vars)
		if e != nil {
			err = e

			logger.WithFields(l.ErrorField(err), l.IntField("step", k)).Error("resolve family failed")

			return
		}

		sd, e := impl.opts.Sampler.Sample(baseline, resolved.Fn)

		o.Tried++

		if sd.StoppedEarly {
			o.SampleStops++
		}

		r := &Result{
			Curve:       sd.Curve,
			AvgDistance: sd.AvgDistance,
			Err:         e,
			Provenance: Provenance{
				Baseline: baseline,
				Curve:    sd.Curve,
				Family:   task.Family,
				Args:     resolved.Args,
			},
			Name:        resolved.Name,
			Coefficient: c,
		}

		o.Results = append(o.Results, r)

		logger.WithFields(l.StringField("name", r.Name), l.IntField("samples", len(sd.Curve)),
			l.StringField("avgDistance", cast.ToString(sd.AvgDistance))).Debug("coefficient sampled")

		cur := sd.Curve.Values()

		if prev == nil {
			prev = cur

			continue
		}

		aligned := curve.Reshape([][]float64{cur, prev})

		if stopper.Observe(curve.MeanDiff(aligned[0], aligned[1]) > 0) {
			o.StoppedEarly = true

			logger.WithFields(l.IntField("step", k)).Debug("coefficient sweep stopped early")

			break
		}

		prev = aligned[0]
	}

	return
}
