// Package outcome holds the pure win-condition rules for monitored events.
package outcome

import (
	"strconv"
	"strings"

	"github.com/scorewatch/scorewatch/internal/domain/model"
)

// RequiredWins extracts the number of maps needed to win from a format
// label such as "bo3" or "BO5". The second return is false when the
// label is empty, unrecognized, or names an even series length: in all
// of those cases the outcome stays undecidable rather than wrong.
func RequiredWins(format string) (int, bool) {
	f := strings.ToLower(strings.TrimSpace(format))
	if !strings.HasPrefix(f, "bo") {
		return 0, false
	}
	n, err := strconv.Atoi(f[2:])
	if err != nil || n <= 0 || n%2 == 0 {
		return 0, false
	}
	return n/2 + 1, true
}

// Winner returns the display name of the team whose win count equals
// the required count, if any. An unparsable format means no winner, and
// so does a count past the threshold: that can only come from a
// malformed feed, not from a match that was won.
func Winner(e model.EventSnapshot) (string, bool) {
	need, ok := RequiredWins(e.Format)
	if !ok {
		return "", false
	}
	for i := 0; i < 2; i++ {
		if e.MapsWonCount(i) == need {
			return e.Team(i), true
		}
	}
	return "", false
}
