package notify

import "errors"

// Sentinel kinds for delivery errors.
var (
	ErrDeliver = errors.New("notification delivery failed")
)
