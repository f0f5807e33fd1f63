package model_test

import (
	"testing"

	"github.com/scorewatch/scorewatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEventSnapshotAccessors(t *testing.T) {
	Convey("Given a fully populated snapshot", t, func() {
		e := model.EventSnapshot{
			EventID:  42,
			Teams:    []string{"Alpha", "Bravo"},
			Format:   "bo3",
			MapScore: []string{"12", "9"},
			MapsWon:  []string{"1", "0"},
		}

		Convey("Then accessors return the stored values", func() {
			So(e.Team(0), ShouldEqual, "Alpha")
			So(e.Team(1), ShouldEqual, "Bravo")
			So(e.MapScoreAt(0), ShouldEqual, "12")
			So(e.MapsWonAt(1), ShouldEqual, "0")
			So(e.MapsWonCount(0), ShouldEqual, 1)
		})
	})

	Convey("Given a snapshot with missing fields", t, func() {
		e := model.EventSnapshot{EventID: 7, Teams: []string{"Solo"}}

		Convey("Then missing entries degrade to placeholders", func() {
			So(e.Team(1), ShouldEqual, "?")
			So(e.MapScoreAt(0), ShouldEqual, "?")
			So(e.MapsWonAt(0), ShouldEqual, "?")
			So(e.MapsWonCount(0), ShouldEqual, 0)
		})

		Convey("And out-of-range indexes never panic", func() {
			So(func() { e.Team(-1) }, ShouldNotPanic)
			So(e.Team(-1), ShouldEqual, "?")
			So(e.MapsWonCount(5), ShouldEqual, 0)
		})
	})

	Convey("Given non-numeric maps-won entries", t, func() {
		e := model.EventSnapshot{MapsWon: []string{"-", "2"}}

		Convey("Then they count as zero", func() {
			So(e.MapsWonCount(0), ShouldEqual, 0)
			So(e.MapsWonCount(1), ShouldEqual, 2)
		})
	})
}

func TestSectionAndKind(t *testing.T) {
	Convey("Given section values", t, func() {
		So(model.SectionLive.Valid(), ShouldBeTrue)
		So(model.SectionPending.Valid(), ShouldBeTrue)
		So(model.Section("archived").Valid(), ShouldBeFalse)
	})

	Convey("Given kind values", t, func() {
		So(model.KindRound.Valid(), ShouldBeTrue)
		So(model.KindMap.Valid(), ShouldBeTrue)
		So(model.KindOutcome.Valid(), ShouldBeTrue)
		So(model.Kind("everything").Valid(), ShouldBeFalse)
	})
}
