package runner

import (
	"context"
	"sync"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/sgostarter/libgrowth/classifier"
	"github.com/sgostarter/libgrowth/curve"
	"github.com/sgostarter/libgrowth/report"
	"github.com/spf13/cast"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "growth_runner_runs_total",
		Help: "Classification runs finished by the runner",
	}, []string{"status"})

	stalledRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growth_runner_stalled_runs_total",
		Help: "Classification runs exceeding the stall timeout",
	})
)

// Outcome is the final state of one submitted run. Report is nil when the run
// produced no ranked results.
type Outcome struct {
	ID     uint64
	Name   string
	Report *report.Report
	Result *classifier.Result
	Err    error
}

type job struct {
	id   uint64
	name string
	fn   curve.Func
}

// Runner classifies submitted functions one at a time on a background routine and
// persists the reports.
type Runner struct {
	logger     l.Wrapper
	classifier *classifier.Classifier
	storage    report.Storage
	opts       *Options

	routineMan routineman.RoutineMan
	dog        *watchDog

	chJob chan *job

	lock     sync.Mutex
	stopped  bool
	pending  map[uint64]chan struct{}
	outcomes *cache.Cache
}

func NewRunner(ctx context.Context, c *classifier.Classifier, storage report.Storage, logger l.Wrapper,
	option ...Option) *Runner {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "runnerImpl"))

	if c == nil {
		logger.Fatal("no classifier")
	}

	opts := optionNew(option...)

	impl := &Runner{
		logger:     logger,
		classifier: c,
		storage:    storage,
		opts:       opts,
		routineMan: routineman.NewRoutineMan(ctx, logger),
		chJob:      make(chan *job, opts.queueSize),
		pending:    make(map[uint64]chan struct{}),
		outcomes:   cache.New(opts.outcomeTTL, opts.outcomeTTL),
	}

	impl.init()

	return impl
}

func (impl *Runner) init() {
	if impl.opts.stallTimeout > 0 {
		impl.dog = newWatchDog(impl.opts.checkInterval, impl.opts.stallTimeout, impl.onStalled)

		impl.routineMan.StartRoutine(impl.dog.routine, "watchDogRoutine")
	}

	impl.routineMan.StartRoutine(impl.mainRoutine, "mainRoutine")
}

func (impl *Runner) onStalled(id uint64, elapsed time.Duration) {
	stalledRuns.Inc()

	impl.logger.WithFields(l.UInt64Field("id", id), l.StringField("elapsed", elapsed.String())).
		Error("classification run stalled")

	if impl.opts.stallNotify != nil {
		impl.opts.stallNotify(id, elapsed)
	}
}

// Submit queues fn for classification under name and returns the run id.
func (impl *Runner) Submit(name string, fn curve.Func) (id uint64, err error) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	if impl.stopped {
		err = ErrStopped

		return
	}

	id = snowflake.ID()

	select {
	case impl.chJob <- &job{id: id, name: name, fn: fn}:
		impl.pending[id] = make(chan struct{})
	default:
		id = 0
		err = ErrQueueFull
	}

	return
}

// Wait blocks until run id finished or ctx is done.
func (impl *Runner) Wait(ctx context.Context, id uint64) (*Outcome, error) {
	impl.lock.Lock()

	if o, ok := impl.outcome(id); ok {
		impl.lock.Unlock()

		return o, nil
	}

	ch, ok := impl.pending[id]

	impl.lock.Unlock()

	if !ok {
		return nil, ErrUnknownRun
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-ch:
	}

	impl.lock.Lock()
	defer impl.lock.Unlock()

	if o, ok := impl.outcome(id); ok {
		return o, nil
	}

	return nil, ErrUnknownRun
}

func (impl *Runner) TriggerStop() {
	impl.lock.Lock()
	impl.stopped = true
	impl.lock.Unlock()

	impl.routineMan.TriggerStop()
}

func (impl *Runner) StopAndWait() {
	impl.TriggerStop()
	impl.routineMan.Wait()
}

func (impl *Runner) outcome(id uint64) (*Outcome, bool) {
	i, ok := impl.outcomes.Get(cast.ToString(id))
	if !ok {
		return nil, false
	}

	o, ok := i.(*Outcome)

	return o, ok
}

func (impl *Runner) finish(o *Outcome) {
	status := "ok"
	if o.Err != nil {
		status = "failed"
	}

	runsTotal.WithLabelValues(status).Inc()

	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.outcomes.Set(cast.ToString(o.ID), o, cache.DefaultExpiration)

	if ch, ok := impl.pending[o.ID]; ok {
		close(ch)
		delete(impl.pending, o.ID)
	}
}

func (impl *Runner) mainRoutine(ctx context.Context, _ func() bool) {
	for {
		select {
		case <-ctx.Done():
			impl.lock.Lock()
			impl.stopped = true
			impl.lock.Unlock()

			impl.drain()

			return
		case j := <-impl.chJob:
			impl.run(ctx, j)
		}
	}
}

func (impl *Runner) drain() {
	for {
		select {
		case j := <-impl.chJob:
			impl.finish(&Outcome{
				ID:   j.id,
				Name: j.name,
				Err:  ErrStopped,
			})
		default:
			return
		}
	}
}

func (impl *Runner) run(ctx context.Context, j *job) {
	logger := impl.logger.WithFields(l.UInt64Field("id", j.id), l.StringField("baseline", j.name))

	if impl.dog != nil {
		impl.dog.Start(j.id)
		defer impl.dog.Stop()
	}

	o := &Outcome{
		ID:   j.id,
		Name: j.name,
	}

	defer impl.finish(o)

	o.Result, o.Err = impl.classifier.Classify(ctx, j.name, j.fn)
	if o.Err != nil {
		logger.WithFields(l.ErrorField(o.Err)).Error("classify failed")

		return
	}

	o.Report = report.FromResult(j.id, j.name, o.Result)

	if impl.storage == nil {
		return
	}

	if o.Err = impl.storage.Save(o.Report); o.Err != nil {
		logger.WithFields(l.ErrorField(o.Err)).Error("save report failed")

		return
	}

	logger.WithFields(l.StringField("best", o.Result.Best().Name)).Debug("report saved")
}
