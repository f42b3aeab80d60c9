package runner

import "errors"

var (
	ErrStopped    = errors.New("runner: stopped")
	ErrQueueFull  = errors.New("runner: queue full")
	ErrUnknownRun = errors.New("runner: unknown run")
)
