package curve

import (
	"fmt"
	"math"
)

const (
	DefaultMaxIndex        = 100000
	DefaultSampleThreshold = 1000
)

// BuildBaseline samples fn over [1, maxIndex).
func BuildBaseline(fn Func, maxIndex int) Curve {
	if maxIndex < 1 {
		return Curve{}
	}

	c := make(Curve, 0, maxIndex-1)

	for n := 1; n < maxIndex; n++ {
		c = append(c, Sample{V: fn(n), N: n})
	}

	return c
}

// Sampled is the outcome of sampling one candidate against a baseline.
type Sampled struct {
	Curve        Curve
	AvgDistance  float64
	Compared     int
	StoppedEarly bool
}

// Sampler walks the index domain [1, MaxIndex) and abandons a candidate once its
// distance to the baseline has grown Threshold times in a row.
type Sampler struct {
	MaxIndex  int
	Threshold int
}

func NewSampler(maxIndex, threshold int) Sampler {
	if maxIndex <= 0 {
		maxIndex = DefaultMaxIndex
	}

	if threshold <= 0 {
		threshold = DefaultSampleThreshold
	}

	return Sampler{
		MaxIndex:  maxIndex,
		Threshold: threshold,
	}
}

// Sample evaluates fn index by index against baseline. The average distance only covers
// distances accumulated while the run of increasing distances was below Threshold; the
// first distance only seeds the comparison.
//
// A zero accumulated count yields ErrEmptyAggregate, an empty curve or a non-finite
// first value or average yields ErrDegenerateSample. The curve is returned in every case.
func (s Sampler) Sample(baseline Curve, fn Func) (sd Sampled, err error) {
	sd.AvgDistance = math.NaN()

	if len(baseline) == 0 {
		err = ErrNoBaseline

		return
	}

	size := s.MaxIndex - 1
	if len(baseline) < size {
		size = len(baseline)
	}

	if size < 0 {
		size = 0
	}

	sd.Curve = make(Curve, 0, size)

	var (
		avg     AVGData
		prev    float64
		seeded  bool
		stopper = TrendStopper{Limit: s.Threshold}
	)

	for n := 1; n < s.MaxIndex && n-1 < len(baseline); n++ {
		cur := Sample{V: fn(n), N: n}
		sd.Curve = append(sd.Curve, cur)

		d := Distance(baseline[n-1], cur)

		if !seeded {
			prev = d
			seeded = true

			continue
		}

		if stopper.Observe(d > prev) {
			sd.StoppedEarly = true

			break
		}

		prev = d

		avg.Combine(d)
	}

	sd.Compared = avg.Count()

	if len(sd.Curve) == 0 {
		err = fmt.Errorf("%w: empty curve", ErrDegenerateSample)

		return
	}

	if !isFinite(sd.Curve[0].V) {
		err = fmt.Errorf("%w: first value %v", ErrDegenerateSample, sd.Curve[0].V)

		return
	}

	sd.AvgDistance, err = avg.Calc()
	if err != nil {
		return
	}

	if !isFinite(sd.AvgDistance) {
		err = fmt.Errorf("%w: average distance %v", ErrDegenerateSample, sd.AvgDistance)
	}

	return
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
