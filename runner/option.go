package runner

import "time"

const (
	DefaultQueueSize    = 16
	DefaultOutcomeTTL   = time.Hour
	DefaultStallTimeout = time.Minute * 10
)

type FNStallNotify func(id uint64, elapsed time.Duration)

type Options struct {
	queueSize     int
	outcomeTTL    time.Duration
	stallTimeout  time.Duration
	checkInterval time.Duration
	stallNotify   FNStallNotify
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{
		queueSize:    DefaultQueueSize,
		outcomeTTL:   DefaultOutcomeTTL,
		stallTimeout: DefaultStallTimeout,
	}

	for _, o := range option {
		o(opts)
	}

	if opts.queueSize <= 0 {
		opts.queueSize = DefaultQueueSize
	}

	if opts.outcomeTTL <= 0 {
		opts.outcomeTTL = DefaultOutcomeTTL
	}

	if opts.checkInterval <= 0 {
		opts.checkInterval = opts.stallTimeout / 4
	}

	return opts
}

func QueueSizeOption(n int) Option {
	return func(o *Options) {
		o.queueSize = n
	}
}

// OutcomeTTLOption bounds how long finished outcomes stay available to Wait.
func OutcomeTTLOption(d time.Duration) Option {
	return func(o *Options) {
		o.outcomeTTL = d
	}
}

// StallOption reports runs taking longer than timeout; timeout <= 0 disables the check.
func StallOption(timeout, checkInterval time.Duration, notify FNStallNotify) Option {
	return func(o *Options) {
		o.stallTimeout = timeout
		o.checkInterval = checkInterval
		o.stallNotify = notify
	}
}
