package store

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrEncode = errors.New("encode document failed")
	ErrWrite  = errors.New("write document failed")
	ErrDecode = errors.New("decode document failed")
)
