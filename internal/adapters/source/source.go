// Package source defines the feed boundary: fetching the raw live-match
// document and extracting typed snapshots from it.
package source

import (
	"context"

	"github.com/scorewatch/scorewatch/internal/domain/model"
)

// Fetcher retrieves the raw feed document. Implementations may fail or
// return stale content; the poll loop treats any error as a skipped
// tick, never as corrupted state.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Extractor turns a raw feed document into typed event snapshots.
type Extractor interface {
	Extract(ctx context.Context, doc []byte) ([]model.EventSnapshot, error)
}
