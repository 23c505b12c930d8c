package catalogue

import "errors"

var (
	ErrDuplicateStop = errors.New("duplicate stop")
	ErrDuplicateBus  = errors.New("duplicate bus")
	ErrUnknownStop   = errors.New("unknown stop")
	ErrEmptyRoute    = errors.New("bus route has no stops")
	// Returned by every Builder method once Build has handed the data to a Catalogue.
	ErrSealed = errors.New("catalogue builder already built")
)
