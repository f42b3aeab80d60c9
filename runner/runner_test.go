// nolint
package runner

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libgrowth/classifier"
	"github.com/sgostarter/libgrowth/report"
	"github.com/sgostarter/libgrowth/report/impls/fmstorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utClassifier(t *testing.T) *classifier.Classifier {
	cfg := classifier.DefaultConfig()
	cfg.MaxIndex = 300

	c, err := classifier.NewClassifier(cfg, nil)
	require.Nil(t, err)

	return c
}

func linear(n int) float64 {
	return float64(n)
}

// blockingFn blocks its first call until release is closed.
func blockingFn(started chan<- struct{}, release <-chan struct{}) func(n int) float64 {
	var once sync.Once

	return func(n int) float64 {
		once.Do(func() {
			close(started)
			<-release
		})

		return float64(n)
	}
}

func TestRunnerSubmitAndWait(t *testing.T) {
	stg := fmstorage.NewFMStorage(t.TempDir(), nil)

	r := NewRunner(context.Background(), utClassifier(t), stg, l.NewConsoleLoggerWrapper())
	defer r.StopAndWait()

	id, err := r.Submit("n", linear)
	require.Nil(t, err)
	assert.True(t, id > 0)

	o, err := r.Wait(context.Background(), id)
	require.Nil(t, err)
	require.Nil(t, o.Err)
	assert.EqualValues(t, id, o.ID)
	assert.EqualValues(t, "n * 1", o.Result.Best().Name)

	require.NotNil(t, o.Report)
	assert.EqualValues(t, report.BaselineColumn, o.Report.Columns[0])
	assert.EqualValues(t, "n * 1", o.Report.Columns[1])

	saved, err := stg.Load(id)
	require.Nil(t, err)
	assert.EqualValues(t, o.Report.Columns, saved.Columns)

	again, err := r.Wait(context.Background(), id)
	assert.Nil(t, err)
	assert.Equal(t, o, again)

	_, err = r.Wait(context.Background(), id+1)
	assert.ErrorIs(t, err, ErrUnknownRun)
}

func TestRunnerFailedRun(t *testing.T) {
	stg := fmstorage.NewFMStorage(t.TempDir(), nil)

	r := NewRunner(context.Background(), utClassifier(t), stg, nil)
	defer r.StopAndWait()

	id, err := r.Submit("nan", func(n int) float64 { return math.NaN() })
	require.Nil(t, err)

	o, err := r.Wait(context.Background(), id)
	require.Nil(t, err)
	assert.ErrorIs(t, o.Err, classifier.ErrNoValidResults)
	assert.Nil(t, o.Report)

	ids, err := stg.List()
	assert.Nil(t, err)
	assert.Empty(t, ids)
}

func TestRunnerQueueFull(t *testing.T) {
	r := NewRunner(context.Background(), utClassifier(t), nil, nil, QueueSizeOption(1))
	defer r.StopAndWait()

	started, release := make(chan struct{}), make(chan struct{})

	id1, err := r.Submit("", blockingFn(started, release))
	require.Nil(t, err)

	<-started

	id2, err := r.Submit("", linear)
	require.Nil(t, err)

	_, err = r.Submit("", linear)
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)

	for _, id := range []uint64{id1, id2} {
		o, err := r.Wait(context.Background(), id)
		assert.Nil(t, err)
		assert.Nil(t, o.Err)
		assert.NotNil(t, o.Report)
	}
}

func TestRunnerWaitContext(t *testing.T) {
	r := NewRunner(context.Background(), utClassifier(t), nil, nil)

	started, release := make(chan struct{}), make(chan struct{})

	id, err := r.Submit("", blockingFn(started, release))
	require.Nil(t, err)

	<-started

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
	defer cancel()

	_, err = r.Wait(ctx, id)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	r.StopAndWait()
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner(context.Background(), utClassifier(t), nil, nil)

	started, release := make(chan struct{}), make(chan struct{})

	id1, err := r.Submit("", blockingFn(started, release))
	require.Nil(t, err)

	<-started

	id2, err := r.Submit("", linear)
	require.Nil(t, err)

	r.TriggerStop()

	_, err = r.Submit("", linear)
	assert.ErrorIs(t, err, ErrStopped)

	close(release)
	r.StopAndWait()

	for _, id := range []uint64{id1, id2} {
		o, err := r.Wait(context.Background(), id)
		assert.Nil(t, err)
		assert.NotNil(t, o.Err)
	}
}

func TestRunnerStalled(t *testing.T) {
	chStalled := make(chan uint64, 1)

	r := NewRunner(context.Background(), utClassifier(t), nil, nil,
		StallOption(time.Millisecond*30, time.Millisecond*5, func(id uint64, elapsed time.Duration) {
			assert.True(t, elapsed >= time.Millisecond*30)
			chStalled <- id
		}))
	defer r.StopAndWait()

	started, release := make(chan struct{}), make(chan struct{})

	id, err := r.Submit("", blockingFn(started, release))
	require.Nil(t, err)

	<-started

	select {
	case stalledID := <-chStalled:
		assert.EqualValues(t, id, stalledID)
	case <-time.After(time.Second * 5):
		assert.Fail(t, "no stall notification")
	}

	close(release)

	o, err := r.Wait(context.Background(), id)
	assert.Nil(t, err)
	assert.Nil(t, o.Err)
}

func TestWatchDogNotifiesOncePerRun(t *testing.T) {
	dog := newWatchDog(time.Millisecond, 0, nil)

	_, _, stalled := dog.check()
	assert.False(t, stalled)

	dog.Start(1)

	id, _, stalled := dog.check()
	assert.True(t, stalled)
	assert.EqualValues(t, 1, id)

	_, _, stalled = dog.check()
	assert.False(t, stalled)

	dog.Start(2)

	id, _, stalled = dog.check()
	assert.True(t, stalled)
	assert.EqualValues(t, 2, id)

	dog.Stop()

	_, _, stalled = dog.check()
	assert.False(t, stalled)
}
