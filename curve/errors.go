package curve

import "errors"

var (
	ErrEmptyAggregate   = errors.New("curve: average over zero accumulated distances")
	ErrDegenerateSample = errors.New("curve: degenerate sample")
	ErrNoBaseline       = errors.New("curve: empty baseline")
)
