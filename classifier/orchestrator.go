package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libgrowth/curve"
	"github.com/sgostarter/libgrowth/sweep"
)

type taskOutcome struct {
	task    sweep.Task
	outcome *sweep.Outcome
	err     error
}

// runSweeps runs one coefficient sweep per task on a result pool and waits for all of them.
// Outcomes keep task order; a failed task contributes the results it collected before failing.
func (impl *Classifier) runSweeps(ctx context.Context, baseline curve.Curve, tasks []sweep.Task) (
	outcomes []*sweep.Outcome, failures []FamilyFailure, err error) {
	workers := impl.cfg.Concurrency
	if workers <= 0 || workers > len(tasks) {
		workers = len(tasks)
	}

	pool := pond.NewResultPool[taskOutcome](workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()

	for _, task := range tasks {
		group.Submit(func() taskOutcome {
			start := time.Now()

			o, e := impl.searcher.Search(ctx, baseline, task)

			family := task.Family.String()

			sweepDuration.WithLabelValues(family).Observe(time.Since(start).Seconds())

			if o != nil {
				sweepCoefficients.WithLabelValues(family).Add(float64(o.Tried))
				sweepEarlyStops.WithLabelValues("sample").Add(float64(o.SampleStops))

				if o.StoppedEarly {
					sweepEarlyStops.WithLabelValues("coefficient").Inc()
				}
			}

			return taskOutcome{
				task:    task,
				outcome: o,
				err:     e,
			}
		})
	}

	tos, err := group.Wait()
	if err != nil {
		err = fmt.Errorf("classifier: sweep group: %w", err)

		return
	}

	for _, to := range tos {
		if to.outcome != nil {
			outcomes = append(outcomes, to.outcome)
		}

		if to.err == nil {
			continue
		}

		failures = append(failures, FamilyFailure{
			Task: to.task,
			Err:  to.err,
		})

		familyFailures.WithLabelValues(to.task.Family.String(), errorType(to.err)).Inc()

		impl.logger.WithFields(l.ErrorField(to.err), l.StringField("task", to.task.String())).
			Error("family sweep failed")
	}

	return
}
