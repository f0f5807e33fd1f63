// Package model contains domain models passed between layers.
package model

import "strconv"

// EventSnapshot is one in-progress match as observed at a single poll of
// the feed. The feed is best-effort: any of the paired slices may carry
// fewer than two elements, so readers go through the defensive accessors
// instead of indexing directly.
type EventSnapshot struct {
	EventID  int      `json:"event_id"`
	Teams    []string `json:"teams"`     // ordered pair of display names
	Format   string   `json:"format"`    // win-condition label, e.g. "bo3"
	MapScore []string `json:"map_score"` // in-progress sub-scores, may be placeholders
	MapsWon  []string `json:"maps_won"`  // completed-map counts, may be placeholders
	URL      string   `json:"url"`       // optional deep link, display only
}

// Team returns the display name at position i, or "?" when the feed did
// not carry it.
func (e EventSnapshot) Team(i int) string {
	if i < 0 || i >= len(e.Teams) || e.Teams[i] == "" {
		return "?"
	}
	return e.Teams[i]
}

// MapScoreAt returns the in-progress sub-score at position i, or "?"
// when absent.
func (e EventSnapshot) MapScoreAt(i int) string {
	if i < 0 || i >= len(e.MapScore) || e.MapScore[i] == "" {
		return "?"
	}
	return e.MapScore[i]
}

// MapsWonAt returns the raw completed-map entry at position i, or "?"
// when absent.
func (e EventSnapshot) MapsWonAt(i int) string {
	if i < 0 || i >= len(e.MapsWon) || e.MapsWon[i] == "" {
		return "?"
	}
	return e.MapsWon[i]
}

// MapsWonCount returns the completed-map count at position i. Missing or
// non-numeric entries count as zero.
func (e EventSnapshot) MapsWonCount(i int) int {
	if i < 0 || i >= len(e.MapsWon) {
		return 0
	}
	n, err := strconv.Atoi(e.MapsWon[i])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Kind selects the granularity of updates a subscriber asked for. The
// engine carries it through untouched; only message composition above
// the engine cares about the distinction.
type Kind string

// Subscription kinds.
const (
	KindRound   Kind = "round"
	KindMap     Kind = "map"
	KindOutcome Kind = "outcome"
)

// Valid reports whether k names a known kind.
func (k Kind) Valid() bool {
	return k == KindRound || k == KindMap || k == KindOutcome
}

// Section is the registry partition a subscription lives in.
type Section string

// Registry sections.
const (
	SectionLive    Section = "live"
	SectionPending Section = "pending"
)

// Valid reports whether s names a known section.
func (s Section) Valid() bool {
	return s == SectionLive || s == SectionPending
}

// Subscription ties a recipient to one monitored event.
type Subscription struct {
	EventID     int    `json:"event_id"`
	RecipientID string `json:"recipient_id"`
	Kind        Kind   `json:"kind"`
}
