package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libgrowth/curve"
	"github.com/sgostarter/libgrowth/sweep"
)

type Option func(impl *Classifier)

// CurveStorageOption persists named baseline curves in storage, keyed by name and N.
func CurveStorageOption(storage curve.Storage) Option {
	return func(impl *Classifier) {
		impl.curveStorage = storage
	}
}

func NewClassifier(cfg Config, logger l.Wrapper, opts ...Option) (*Classifier, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "classifierImpl"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.BaselineCacheTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	cleanup := ttl * 2
	if ttl == cache.NoExpiration {
		cleanup = DefaultBaselineCacheTTL
	}

	impl := &Classifier{
		cfg:       cfg,
		logger:    logger,
		searcher:  sweep.NewSearcher(cfg.SweepOptions(), logger),
		baselines: cache.New(ttl, cleanup),
	}

	for _, opt := range opts {
		opt(impl)
	}

	return impl, nil
}

type Classifier struct {
	cfg       Config
	logger    l.Wrapper
	searcher  *sweep.Searcher
	baselines *cache.Cache

	curveStorage curve.Storage
}

func (impl *Classifier) Config() Config {
	return impl.cfg
}

// Baseline samples fn over the configured domain. Curves of named functions are cached;
// an empty name always samples.
func (impl *Classifier) Baseline(name string, fn curve.Func) curve.Curve {
	if name == "" {
		return curve.BuildBaseline(fn, impl.cfg.MaxIndex)
	}

	key := fmt.Sprintf("%s:%d", name, impl.cfg.MaxIndex)

	if i, ok := impl.baselines.Get(key); ok {
		if c, ok := i.(curve.Curve); ok {
			return c
		}
	}

	c := impl.loadBaseline(key)
	if len(c) == 0 {
		c = curve.BuildBaseline(fn, impl.cfg.MaxIndex)

		impl.saveBaseline(key, c)
	}

	impl.baselines.Set(key, c, cache.DefaultExpiration)

	return c
}

func (impl *Classifier) storageKey(key string) string {
	return strings.ReplaceAll(key, ":", "-") + ".yaml"
}

func (impl *Classifier) loadBaseline(key string) curve.Curve {
	if impl.curveStorage == nil {
		return nil
	}

	c, err := impl.curveStorage.Load(impl.storageKey(key))
	if err != nil {
		return nil
	}

	if len(c) != impl.cfg.MaxIndex-1 {
		impl.logger.WithFields(l.StringField("key", key), l.IntField("length", len(c))).Error("stored baseline length mismatch")

		return nil
	}

	return c
}

func (impl *Classifier) saveBaseline(key string, c curve.Curve) {
	if impl.curveStorage == nil {
		return
	}

	if err := impl.curveStorage.Save(impl.storageKey(key), c); err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("save baseline failed")
	}
}

// Classify runs the configured tasks, or DefaultTasks when none are configured.
func (impl *Classifier) Classify(ctx context.Context, name string, fn curve.Func) (*Result, error) {
	tasks := impl.cfg.Tasks
	if len(tasks) == 0 {
		tasks = DefaultTasks()
	}

	return impl.ClassifyTasks(ctx, name, fn, tasks)
}

// ClassifyTasks sweeps every task concurrently against the baseline of fn and ranks the
// merged results. Failed tasks are reported in Result.Failures; only a run without any
// usable result fails with ErrNoValidResults.
func (impl *Classifier) ClassifyTasks(ctx context.Context, name string, fn curve.Func, tasks []sweep.Task) (res *Result, err error) {
	if len(tasks) == 0 {
		err = ErrNoTasks

		return
	}

	logger := impl.logger.WithFields(l.StringField("baseline", name))

	baseline := impl.Baseline(name, fn)

	outcomes, failures, err := impl.runSweeps(ctx, baseline, tasks)
	if err != nil {
		return
	}

	res = &Result{
		Name:     name,
		Failures: failures,
		Stats: Stats{
			Tasks: len(tasks),
		},
	}

	var merged []*sweep.Result

	for _, o := range outcomes {
		merged = append(merged, o.Results...)

		res.Stats.Tried += o.Tried
		res.Stats.SampleStops += o.SampleStops

		if o.StoppedEarly {
			res.Stats.CoefficientStops++
		}
	}

	res.Stats.Candidates = len(merged)

	for _, r := range merged {
		if Usable(r) {
			res.Stats.Valid++
		}
	}

	res.Ranked, res.Baseline = Rank(merged, baseline, impl.cfg.TopK)

	if len(res.Ranked) == 0 {
		err = ErrNoValidResults

		logger.WithFields(l.IntField("candidates", res.Stats.Candidates),
			l.IntField("failures", len(failures))).Error("no valid results")

		return
	}

	logger.WithFields(l.StringField("best", res.Ranked[0].Name), l.IntField("tried", res.Stats.Tried),
		l.IntField("length", len(res.Baseline))).Debug("classified")

	return
}
