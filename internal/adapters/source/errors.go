package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrFetch   = errors.New("feed fetch failed")
	ErrExtract = errors.New("feed extract failed")
)
