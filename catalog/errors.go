package catalog

import "errors"

var (
	ErrUnboundVariable = errors.New("catalog: unbound variable")
	ErrUnknownFamily   = errors.New("catalog: unknown family")
	ErrBadBinding      = errors.New("catalog: bad binding")
)
