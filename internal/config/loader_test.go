package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given no file and no environment", t, func() {
		os.Unsetenv("SCOREWATCH_CONFIG")

		cfg, err := Load(ctx)

		Convey("Then defaults come through", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, New().Addr)
		})
	})

	Convey("Given environment overrides", t, func() {
		t.Setenv("SCOREWATCH_ADDR", ":7070")
		t.Setenv("SCOREWATCH_ACTIVE_POLL_SEC", "45")

		cfg, err := Load(ctx)

		Convey("Then env wins over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.ActivePollSec, ShouldEqual, 45)
		})
	})

	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		So(os.WriteFile(path, []byte("feed_url: https://other.example/feed\nidle_align_min: 5\n"), 0o644), ShouldBeNil)
		t.Setenv("SCOREWATCH_CONFIG", path)

		cfg, err := Load(ctx)

		Convey("Then file values override defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.FeedURL, ShouldEqual, "https://other.example/feed")
			So(cfg.IdleAlignMin, ShouldEqual, 5)
		})

		Convey("And env still overrides the file", func() {
			t.Setenv("SCOREWATCH_FEED_URL", "https://env.example/feed")
			cfg, err := Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.FeedURL, ShouldEqual, "https://env.example/feed")
		})
	})

	Convey("Given an invalid override", t, func() {
		os.Unsetenv("SCOREWATCH_ADDR")
		path := filepath.Join(t.TempDir(), "config.yaml")
		So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o644), ShouldBeNil)
		t.Setenv("SCOREWATCH_CONFIG", path)

		_, err := Load(ctx)
		So(err, ShouldWrap, ErrInvalidConfig)
	})

	Convey("Given a missing config file path", t, func() {
		t.Setenv("SCOREWATCH_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

		_, err := Load(ctx)
		So(err, ShouldWrap, ErrLoadConfig)
	})
}
