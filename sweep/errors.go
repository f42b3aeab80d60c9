package sweep

import "errors"

var (
	ErrBadOptions = errors.New("sweep: bad options")
)
