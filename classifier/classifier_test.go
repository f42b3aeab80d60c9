package classifier

import (
	"context"
	"math"
	"testing"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libgrowth/catalog"
	"github.com/sgostarter/libgrowth/curve"
	"github.com/sgostarter/libgrowth/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxIndex = 1000

	return cfg
}

func TestClassifyLinear(t *testing.T) {
	c, err := NewClassifier(utConfig(), l.NewConsoleLoggerWrapper())
	require.Nil(t, err)

	res, err := c.Classify(context.Background(), "n", func(n int) float64 { return float64(n) })
	require.Nil(t, err)
	require.NotEmpty(t, res.Ranked)

	best := res.Best()
	assert.EqualValues(t, catalog.FamilyN, best.Provenance.Family)
	assert.EqualValues(t, 1, best.Coefficient)
	assert.EqualValues(t, "n * 1", best.Name)
	assert.InDelta(t, 0, best.AvgDistance, 1e-9)

	assert.LessOrEqual(t, len(res.Ranked), DefaultTopK)
	assert.Empty(t, res.Failures)
	assert.EqualValues(t, 6, res.Stats.Tasks)
	assert.EqualValues(t, res.Stats.Candidates, res.Stats.Tried)

	for idx, r := range res.Ranked {
		assert.Len(t, r.Curve, len(res.Baseline))
		assert.Greater(t, len(r.Curve), 2)

		if idx > 0 {
			assert.LessOrEqual(t, math.Abs(res.Ranked[idx-1].AvgDistance), math.Abs(r.AvgDistance))
		}
	}
}

func TestClassifyQuadratic(t *testing.T) {
	c, err := NewClassifier(utConfig(), nil)
	require.Nil(t, err)

	fn := func(n int) float64 { return float64(n) * float64(n) }
	baseline := c.Baseline("", fn)

	tasks := DefaultTasks()
	res, err := c.ClassifyTasks(context.Background(), "n2", fn, tasks)
	require.Nil(t, err)

	best := res.Best()
	assert.EqualValues(t, catalog.FamilyNPow, best.Provenance.Family)
	assert.EqualValues(t, 2, best.Provenance.Args[catalog.ArgPower])

	cfg := c.Config()
	searcher := sweep.NewSearcher(cfg.SweepOptions(), nil)

	for _, task := range tasks {
		switch task.Family {
		case catalog.FamilyLog, catalog.FamilyN, catalog.FamilyNLogN:
		default:
			continue
		}

		o, err := searcher.Search(context.Background(), baseline, task)
		require.Nil(t, err)

		for _, r := range o.Results {
			if !Usable(r) {
				continue
			}

			assert.Greater(t, math.Abs(r.AvgDistance), math.Abs(best.AvgDistance), r.Name)
		}
	}
}

func TestClassifyIsolatesFailures(t *testing.T) {
	c, err := NewClassifier(utConfig(), nil)
	require.Nil(t, err)

	tasks := []sweep.Task{
		{Family: catalog.FamilyNPow, SweepVar: catalog.VarCoefficient},
		{Family: catalog.FamilyN, SweepVar: "c"},
		{Family: catalog.FamilyN, SweepVar: catalog.VarCoefficient},
	}

	res, err := c.ClassifyTasks(context.Background(), "", func(n int) float64 { return float64(n) }, tasks)
	require.Nil(t, err)

	assert.Len(t, res.Failures, 2)

	for _, f := range res.Failures {
		assert.ErrorIs(t, f.Err, catalog.ErrUnboundVariable)
	}

	assert.EqualValues(t, "n * 1", res.Best().Name)
}

func TestClassifyNoValidResults(t *testing.T) {
	c, err := NewClassifier(utConfig(), nil)
	require.Nil(t, err)

	_, err = c.ClassifyTasks(context.Background(), "", func(n int) float64 { return float64(n) },
		[]sweep.Task{{Family: catalog.FamilyNPow}})
	assert.ErrorIs(t, err, ErrNoValidResults)

	_, err = c.ClassifyTasks(context.Background(), "", func(n int) float64 { return 1 }, nil)
	assert.ErrorIs(t, err, ErrNoTasks)

	res, err := c.Classify(context.Background(), "nan", func(n int) float64 { return math.NaN() })
	assert.ErrorIs(t, err, ErrNoValidResults)
	assert.NotNil(t, res)
	assert.Empty(t, res.Ranked)
}

func TestBaselineCache(t *testing.T) {
	c, err := NewClassifier(utConfig(), nil)
	require.Nil(t, err)

	calls := 0
	fn := func(n int) float64 {
		calls++

		return float64(n)
	}

	b1 := c.Baseline("id", fn)
	b2 := c.Baseline("id", fn)
	assert.Len(t, b1, 999)
	assert.EqualValues(t, b1, b2)
	assert.EqualValues(t, 999, calls)

	_ = c.Baseline("", fn)
	assert.EqualValues(t, 999*2, calls)
}

func TestNewClassifierInvalidConfig(t *testing.T) {
	cfg := utConfig()
	cfg.TopK = 0

	_, err := NewClassifier(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestClassifyBoundedConcurrency(t *testing.T) {
	cfg := utConfig()
	cfg.Concurrency = 1

	c, err := NewClassifier(cfg, nil)
	require.Nil(t, err)

	res, err := c.Classify(context.Background(), "", func(n int) float64 { return float64(n) })
	require.Nil(t, err)
	assert.EqualValues(t, "n * 1", res.Best().Name)
}

func TestClassifyUsesCurveDomain(t *testing.T) {
	c, err := NewClassifier(utConfig(), nil)
	require.Nil(t, err)

	res, err := c.Classify(context.Background(), "", func(n int) float64 { return float64(n) })
	require.Nil(t, err)

	for idx, s := range res.Baseline {
		assert.EqualValues(t, curve.Sample{V: float64(idx + 1), N: idx + 1}, s)
	}
}

func TestBaselineCurveStorage(t *testing.T) {
	stg := curve.NewCommonStorage(t.TempDir())

	c, err := NewClassifier(utConfig(), nil, CurveStorageOption(stg))
	require.Nil(t, err)

	calls := 0
	fn := func(n int) float64 {
		calls++

		return float64(n) * 2
	}

	b := c.Baseline("double", fn)
	assert.EqualValues(t, 999, calls)

	stored, err := stg.Load("double-1000.yaml")
	require.Nil(t, err)
	assert.EqualValues(t, b, stored)

	fresh, err := NewClassifier(utConfig(), nil, CurveStorageOption(stg))
	require.Nil(t, err)

	assert.EqualValues(t, b, fresh.Baseline("double", fn))
	assert.EqualValues(t, 999, calls)
}
