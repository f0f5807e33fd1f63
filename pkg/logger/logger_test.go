package logger

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "hello",
					String("k", "v"),
					Int("n", 1),
					Int64("big", 2),
					Float64("f", 3.5),
					Duration("d", time.Second),
					Any("any", struct{}{}),
				)
			}, ShouldNotPanic)
		})

		Convey("Then Named returns a scoped logger", func() {
			So(Named("test"), ShouldNotBeNil)
		})

		Convey("Then Sync never fails", func() {
			So(Sync(), ShouldBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then known levels parse", func() {
			for _, level := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO "} {
				So(SetLevelString(level), ShouldBeNil)
			}
		})

		Convey("Then unknown levels fail", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
