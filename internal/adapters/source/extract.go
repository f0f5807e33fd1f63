package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scorewatch/scorewatch/internal/domain/model"
)

// feedEvent is the wire shape of one event entry. All fields except the
// id are optional; downstream accessors fill in placeholders.
type feedEvent struct {
	EventID  *int     `json:"event_id"`
	Teams    []string `json:"teams"`
	Format   string   `json:"format"`
	MapScore []string `json:"map_score"`
	MapsWon  []string `json:"maps_won"`
	URL      string   `json:"url"`
}

// feedDocument is the wire shape of the whole feed response.
type feedDocument struct {
	Events []feedEvent `json:"events"`
}

// JSONExtractor decodes the feed's JSON document into event snapshots.
// It is deliberately lenient: a malformed entry is dropped, a malformed
// field degrades to its placeholder, and only an undecodable document
// fails the tick.
type JSONExtractor struct{}

// NewJSONExtractor creates a JSON feed extractor.
func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

// Extract decodes doc. Both the enveloped form {"events": [...]} and a
// bare top-level array are accepted.
func (x *JSONExtractor) Extract(ctx context.Context, doc []byte) ([]model.EventSnapshot, error) {
	var wrapped feedDocument
	if err := json.Unmarshal(doc, &wrapped); err != nil {
		var bare []feedEvent
		if err2 := json.Unmarshal(doc, &bare); err2 != nil {
			return nil, fmt.Errorf("%w: %w", ErrExtract, err)
		}
		wrapped.Events = bare
	}

	out := make([]model.EventSnapshot, 0, len(wrapped.Events))
	for _, e := range wrapped.Events {
		if e.EventID == nil {
			continue // nothing to key the event on
		}
		out = append(out, model.EventSnapshot{
			EventID:  *e.EventID,
			Teams:    capPair(e.Teams),
			Format:   e.Format,
			MapScore: capPair(e.MapScore),
			MapsWon:  capPair(e.MapsWon),
			URL:      e.URL,
		})
	}
	return out, nil
}

// capPair trims a feed slice to the two positions the model carries.
func capPair(s []string) []string {
	if len(s) > 2 {
		return s[:2]
	}
	return s
}
