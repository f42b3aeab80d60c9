package runner

import (
	"context"
	"sync"
	"time"
)

// watchDog watches the run in progress and notifies once per run when it has been
// running for longer than maxDuration.
type watchDog struct {
	checkInterval time.Duration
	maxDuration   time.Duration
	notify        FNStallNotify

	lock      sync.Mutex
	started   bool
	notified  bool
	runID     uint64
	startedAt time.Time
}

func newWatchDog(checkInterval, maxDuration time.Duration, notify FNStallNotify) *watchDog {
	if checkInterval <= 0 {
		checkInterval = time.Second
	}

	return &watchDog{
		checkInterval: checkInterval,
		maxDuration:   maxDuration,
		notify:        notify,
	}
}

func (dog *watchDog) Start(runID uint64) {
	dog.lock.Lock()
	defer dog.lock.Unlock()

	dog.started = true
	dog.notified = false
	dog.runID = runID
	dog.startedAt = time.Now()
}

func (dog *watchDog) Stop() {
	dog.lock.Lock()
	defer dog.lock.Unlock()

	dog.started = false
}

func (dog *watchDog) check() (runID uint64, elapsed time.Duration, stalled bool) {
	dog.lock.Lock()
	defer dog.lock.Unlock()

	if !dog.started || dog.notified {
		return
	}

	runID = dog.runID
	elapsed = time.Since(dog.startedAt)

	if elapsed >= dog.maxDuration {
		dog.notified = true
		stalled = true
	}

	return
}

func (dog *watchDog) routine(ctx context.Context, _ func() bool) {
	ticker := time.NewTicker(dog.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if runID, elapsed, stalled := dog.check(); stalled {
				dog.notify(runID, elapsed)
			}
		}
	}
}
