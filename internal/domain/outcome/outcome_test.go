package outcome_test

import (
	"testing"

	"github.com/scorewatch/scorewatch/internal/domain/model"
	"github.com/scorewatch/scorewatch/internal/domain/outcome"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRequiredWins(t *testing.T) {
	Convey("Given best-of-N format labels", t, func() {
		cases := map[string]int{
			"bo1": 1,
			"bo3": 2,
			"BO5": 3,
			"bo7": 4,
		}
		for format, want := range cases {
			n, ok := outcome.RequiredWins(format)
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, want)
		}
	})

	Convey("Given labels that cannot decide an outcome", t, func() {
		for _, format := range []string{"", "bo", "bo2", "bo-3", "best of 3", "3 maps", "boX"} {
			_, ok := outcome.RequiredWins(format)
			So(ok, ShouldBeFalse)
		}
	})

	Convey("Given a padded label", t, func() {
		n, ok := outcome.RequiredWins("  bo3 ")
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 2)
	})
}

func TestWinner(t *testing.T) {
	Convey("Given a decided bo3", t, func() {
		e := model.EventSnapshot{
			Teams:   []string{"Alpha", "Bravo"},
			Format:  "bo3",
			MapsWon: []string{"2", "0"},
		}

		name, ok := outcome.Winner(e)
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "Alpha")
	})

	Convey("Given an undecided bo3", t, func() {
		e := model.EventSnapshot{
			Teams:   []string{"Alpha", "Bravo"},
			Format:  "bo3",
			MapsWon: []string{"1", "1"},
		}

		_, ok := outcome.Winner(e)
		So(ok, ShouldBeFalse)
	})

	Convey("Given a win count past the threshold", t, func() {
		e := model.EventSnapshot{
			Teams:   []string{"Alpha", "Bravo"},
			Format:  "bo3",
			MapsWon: []string{"3", "0"},
		}

		Convey("Then no winner is declared; only the exact count decides", func() {
			_, ok := outcome.Winner(e)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given an unrecognized format", t, func() {
		e := model.EventSnapshot{
			Teams:   []string{"Alpha", "Bravo"},
			Format:  "showmatch",
			MapsWon: []string{"2", "0"},
		}

		_, ok := outcome.Winner(e)
		So(ok, ShouldBeFalse)
	})

	Convey("Given a winner with a missing name", t, func() {
		e := model.EventSnapshot{
			Format:  "bo3",
			MapsWon: []string{"0", "2"},
		}

		name, ok := outcome.Winner(e)
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "?")
	})
}
