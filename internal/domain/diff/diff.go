// Package diff compares consecutive feed snapshots and classifies what
// changed per event. It is pure: callers resolve recipients and perform
// delivery.
package diff

import (
	"fmt"

	"github.com/scorewatch/scorewatch/internal/domain/model"
	"github.com/scorewatch/scorewatch/internal/domain/outcome"
)

// ScoreChange pairs the previous and current observation of one event
// whose score moved between ticks.
type ScoreChange struct {
	Old model.EventSnapshot
	New model.EventSnapshot
}

// Decision marks an event whose winner became known this tick.
type Decision struct {
	Event  model.EventSnapshot
	Winner string
}

// Report is the classified outcome of one old/new comparison.
type Report struct {
	// ScoreChanged lists events whose map score or maps-won moved.
	// Events with no prior observation are excluded.
	ScoreChanged []ScoreChange

	// Decided lists events that gained a winner this tick. Score and
	// decision notices are independent; both may fire for one event.
	Decided []Decision

	// Disappeared lists events present before and gone now, carrying
	// their last known state.
	Disappeared []model.EventSnapshot
}

// Compute classifies the transition from the previous snapshot list to
// the current one. Events are matched by EventID; order within the
// report follows the current list, disappeared events follow the old
// list.
func Compute(oldList, newList []model.EventSnapshot) Report {
	prev := make(map[int]model.EventSnapshot, len(oldList))
	for _, e := range oldList {
		prev[e.EventID] = e
	}

	var r Report
	seen := make(map[int]struct{}, len(newList))
	for _, cur := range newList {
		seen[cur.EventID] = struct{}{}

		before, observed := prev[cur.EventID]
		if observed && scoreMoved(before, cur) {
			r.ScoreChanged = append(r.ScoreChanged, ScoreChange{Old: before, New: cur})
		}

		winner, decided := outcome.Winner(cur)
		if !decided {
			continue
		}
		if observed {
			if _, had := outcome.Winner(before); had {
				continue // already decided in a previous tick
			}
		}
		r.Decided = append(r.Decided, Decision{Event: cur, Winner: winner})
	}

	for _, before := range oldList {
		if _, ok := seen[before.EventID]; !ok {
			r.Disappeared = append(r.Disappeared, before)
		}
	}
	return r
}

// scoreMoved reports an element-wise difference in either score pair.
// Comparison goes through the defensive accessors so a pair shrinking
// from two elements to none still registers as a change.
func scoreMoved(before, cur model.EventSnapshot) bool {
	for i := 0; i < 2; i++ {
		if before.MapScoreAt(i) != cur.MapScoreAt(i) {
			return true
		}
		if before.MapsWonAt(i) != cur.MapsWonAt(i) {
			return true
		}
	}
	return false
}

// ScoreText renders the combined score notice for one event: one message
// covering both the maps-won and in-progress score pairs.
func ScoreText(e model.EventSnapshot) string {
	text := fmt.Sprintf("%s %s:%s %s (maps %s:%s)",
		e.Team(0), e.MapScoreAt(0), e.MapScoreAt(1), e.Team(1),
		e.MapsWonAt(0), e.MapsWonAt(1))
	if e.URL != "" {
		text += "\n" + e.URL
	}
	return text
}

// DecidedText renders the one-time outcome notice.
func DecidedText(d Decision) string {
	return fmt.Sprintf("%s vs %s is decided: %s wins %s:%s",
		d.Event.Team(0), d.Event.Team(1), d.Winner,
		d.Event.MapsWonAt(0), d.Event.MapsWonAt(1))
}

// FinalText renders the disappearance notice from the last known state.
func FinalText(e model.EventSnapshot) string {
	return fmt.Sprintf("%s vs %s is over, final maps %s:%s",
		e.Team(0), e.Team(1), e.MapsWonAt(0), e.MapsWonAt(1))
}

// StartedText renders the promotion acknowledgement for a recipient whose
// pending event was first observed live.
func StartedText(e model.EventSnapshot) string {
	text := fmt.Sprintf("%s vs %s has started", e.Team(0), e.Team(1))
	if e.URL != "" {
		text += "\n" + e.URL
	}
	return text
}
