package registry

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrBadSection = errors.New("unknown section")
	ErrPersist    = errors.New("persist registry failed")
)
