package shape

import "errors"

var (
	errInternal = errors.New("internal error")

	ErrQuery       = errors.New("invalid query")
	ErrMarker      = errors.New("invalid marker")
	ErrNotSequence = errors.New("not a sequence")
)
