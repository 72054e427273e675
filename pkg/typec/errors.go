package typec

import "errors"

var (
	// ErrNoBackend is returned by Initialize when no backend could be bound.
	// It wraps the probe error of every candidate.
	ErrNoBackend = errors.New("no usable type-c backend")
	// ErrUnsupported is returned for queries the bound backend cannot answer.
	ErrUnsupported = errors.New("operation not supported by backend")
	// ErrNotBound is returned for queries before Initialize or after Close.
	ErrNotBound = errors.New("session is not bound to a backend")
	// ErrAlreadyBound is returned when Initialize is called on a bound session.
	ErrAlreadyBound = errors.New("session is already bound")
	// ErrInvalidConnector is returned for connector indexes outside
	// [0, NumConnectors).
	ErrInvalidConnector = errors.New("invalid connector index")
	// ErrNotPresent is returned when a partner, cable or identity is absent.
	ErrNotPresent = errors.New("not present")
)
