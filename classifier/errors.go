package classifier

import "errors"

var (
	ErrInvalidConfig  = errors.New("classifier: invalid config")
	ErrNoTasks        = errors.New("classifier: no tasks")
	ErrNoValidResults = errors.New("classifier: no valid results")
)
