package diff_test

import (
	"strings"
	"testing"

	"github.com/scorewatch/scorewatch/internal/domain/diff"
	"github.com/scorewatch/scorewatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func event(id int, mapScore, mapsWon []string) model.EventSnapshot {
	return model.EventSnapshot{
		EventID:  id,
		Teams:    []string{"Alpha", "Bravo"},
		Format:   "bo3",
		MapScore: mapScore,
		MapsWon:  mapsWon,
	}
}

func TestComputeScoreChanges(t *testing.T) {
	Convey("Given an event whose in-progress score moved", t, func() {
		oldList := []model.EventSnapshot{event(1, []string{"3", "3"}, []string{"0", "0"})}
		newList := []model.EventSnapshot{event(1, []string{"4", "3"}, []string{"0", "0"})}

		r := diff.Compute(oldList, newList)

		Convey("Then exactly one score change is reported and nothing else", func() {
			So(r.ScoreChanged, ShouldHaveLength, 1)
			So(r.ScoreChanged[0].New.MapScoreAt(0), ShouldEqual, "4")
			So(r.Decided, ShouldBeEmpty)
			So(r.Disappeared, ShouldBeEmpty)
		})
	})

	Convey("Given an event whose maps-won moved but score strings did not", t, func() {
		oldList := []model.EventSnapshot{event(1, []string{"0", "0"}, []string{"0", "0"})}
		newList := []model.EventSnapshot{event(1, []string{"0", "0"}, []string{"1", "0"})}

		r := diff.Compute(oldList, newList)
		So(r.ScoreChanged, ShouldHaveLength, 1)
	})

	Convey("Given an unchanged event", t, func() {
		list := []model.EventSnapshot{event(1, []string{"7", "5"}, []string{"1", "0"})}

		r := diff.Compute(list, list)
		So(r.ScoreChanged, ShouldBeEmpty)
		So(r.Decided, ShouldBeEmpty)
		So(r.Disappeared, ShouldBeEmpty)
	})

	Convey("Given an event with no prior observation", t, func() {
		newList := []model.EventSnapshot{event(2, []string{"1", "0"}, []string{"0", "0"})}

		r := diff.Compute(nil, newList)

		Convey("Then no score change is reported for it", func() {
			So(r.ScoreChanged, ShouldBeEmpty)
		})
	})

	Convey("Given a score pair that shrank to nothing", t, func() {
		oldList := []model.EventSnapshot{event(1, []string{"9", "9"}, []string{"0", "0"})}
		newList := []model.EventSnapshot{event(1, nil, []string{"0", "0"})}

		r := diff.Compute(oldList, newList)
		So(r.ScoreChanged, ShouldHaveLength, 1)
	})
}

func TestComputeDecisions(t *testing.T) {
	Convey("Given an event reaching the required win count this tick", t, func() {
		oldList := []model.EventSnapshot{event(1, []string{"0", "0"}, []string{"1", "1"})}
		newList := []model.EventSnapshot{event(1, []string{"0", "0"}, []string{"2", "1"})}

		r := diff.Compute(oldList, newList)

		So(r.Decided, ShouldHaveLength, 1)
		So(r.Decided[0].Winner, ShouldEqual, "Alpha")
	})

	Convey("Given an event already decided in the previous tick", t, func() {
		list := []model.EventSnapshot{event(1, []string{"0", "0"}, []string{"2", "0"})}

		r := diff.Compute(list, list)

		Convey("Then no duplicate outcome notice is produced", func() {
			So(r.Decided, ShouldBeEmpty)
		})
	})

	Convey("Given an event first observed with a winner", t, func() {
		newList := []model.EventSnapshot{event(2, nil, []string{"2", "0"})}

		r := diff.Compute(nil, newList)

		Convey("Then the outcome notice fires despite no prior state", func() {
			So(r.Decided, ShouldHaveLength, 1)
			So(r.ScoreChanged, ShouldBeEmpty)
		})
	})

	Convey("Given a score change and a decision in the same tick", t, func() {
		oldList := []model.EventSnapshot{event(1, []string{"10", "12"}, []string{"1", "1"})}
		newList := []model.EventSnapshot{event(1, []string{"16", "12"}, []string{"2", "1"})}

		r := diff.Compute(oldList, newList)

		Convey("Then both notices fire independently", func() {
			So(r.ScoreChanged, ShouldHaveLength, 1)
			So(r.Decided, ShouldHaveLength, 1)
		})
	})

	Convey("Given an unparsable format", t, func() {
		oldList := []model.EventSnapshot{event(1, nil, []string{"1", "0"})}
		e := event(1, nil, []string{"2", "0"})
		e.Format = "exhibition"
		oldList[0].Format = "exhibition"

		r := diff.Compute(oldList, []model.EventSnapshot{e})
		So(r.Decided, ShouldBeEmpty)
	})
}

func TestComputeDisappearance(t *testing.T) {
	Convey("Given an event that vanished from the feed", t, func() {
		oldList := []model.EventSnapshot{event(3, []string{"5", "5"}, []string{"1", "1"})}

		r := diff.Compute(oldList, nil)

		Convey("Then it is reported once with its last known state", func() {
			So(r.Disappeared, ShouldHaveLength, 1)
			So(r.Disappeared[0].EventID, ShouldEqual, 3)
			So(r.Disappeared[0].MapsWonAt(0), ShouldEqual, "1")
		})
	})

	Convey("Given one vanished and one surviving event", t, func() {
		oldList := []model.EventSnapshot{
			event(1, nil, []string{"0", "0"}),
			event(2, nil, []string{"0", "0"}),
		}
		newList := []model.EventSnapshot{event(2, nil, []string{"0", "0"})}

		r := diff.Compute(oldList, newList)
		So(r.Disappeared, ShouldHaveLength, 1)
		So(r.Disappeared[0].EventID, ShouldEqual, 1)
	})
}

func TestTexts(t *testing.T) {
	Convey("Given message builders", t, func() {
		e := event(1, []string{"4", "3"}, []string{"1", "0"})

		Convey("Then the score text carries both pairs", func() {
			text := diff.ScoreText(e)
			So(text, ShouldContainSubstring, "4:3")
			So(text, ShouldContainSubstring, "maps 1:0")
		})

		Convey("Then the URL is appended when present", func() {
			e.URL = "https://feed.example/match/1"
			So(diff.ScoreText(e), ShouldContainSubstring, e.URL)
			So(diff.StartedText(e), ShouldContainSubstring, e.URL)
		})

		Convey("Then decided and final texts name the teams", func() {
			d := diff.Decision{Event: e, Winner: "Alpha"}
			So(diff.DecidedText(d), ShouldContainSubstring, "Alpha wins")
			So(diff.FinalText(e), ShouldContainSubstring, "final maps 1:0")
		})

		Convey("Then placeholder fields never break rendering", func() {
			bare := model.EventSnapshot{EventID: 9}
			So(strings.Count(diff.ScoreText(bare), "?"), ShouldBeGreaterThan, 0)
			So(func() { diff.FinalText(bare) }, ShouldNotPanic)
		})
	})
}
