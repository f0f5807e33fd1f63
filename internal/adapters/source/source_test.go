package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scorewatch/scorewatch/internal/adapters/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFeedClient(t *testing.T) {
	ctx := context.Background()

	Convey("Given a feed endpoint serving a document", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"events":[]}`))
		}))
		defer srv.Close()

		client := source.NewFeedClient(srv.URL, source.WithRetryCount(0))

		Convey("When fetching", func() {
			body, err := client.Fetch(ctx)

			Convey("Then the raw body comes back", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, `{"events":[]}`)
			})
		})
	})

	Convey("Given a feed endpoint returning a server error", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := source.NewFeedClient(srv.URL, source.WithRetryCount(0))

		Convey("When fetching", func() {
			_, err := client.Fetch(ctx)

			Convey("Then the error wraps the fetch sentinel", func() {
				So(err, ShouldWrap, source.ErrFetch)
			})
		})
	})

	Convey("Given an unreachable endpoint", t, func() {
		client := source.NewFeedClient("http://127.0.0.1:1", source.WithRetryCount(0))

		_, err := client.Fetch(ctx)
		So(err, ShouldWrap, source.ErrFetch)
	})
}

func TestJSONExtractor(t *testing.T) {
	ctx := context.Background()
	x := source.NewJSONExtractor()

	Convey("Given an enveloped feed document", t, func() {
		doc := []byte(`{"events":[
			{"event_id":1,"teams":["Alpha","Bravo"],"format":"bo3","map_score":["4","3"],"maps_won":["1","0"],"url":"https://feed.example/1"},
			{"event_id":2,"teams":["Charlie"]}
		]}`)

		events, err := x.Extract(ctx, doc)

		Convey("Then all keyed entries decode", func() {
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 2)
			So(events[0].EventID, ShouldEqual, 1)
			So(events[0].Team(1), ShouldEqual, "Bravo")
			So(events[1].Team(1), ShouldEqual, "?")
		})
	})

	Convey("Given a bare top-level array", t, func() {
		doc := []byte(`[{"event_id":5,"format":"bo5"}]`)

		events, err := x.Extract(ctx, doc)
		So(err, ShouldBeNil)
		So(events, ShouldHaveLength, 1)
		So(events[0].Format, ShouldEqual, "bo5")
	})

	Convey("Given entries without an event id", t, func() {
		doc := []byte(`{"events":[{"teams":["A","B"]}]}`)

		events, err := x.Extract(ctx, doc)

		Convey("Then they are dropped, not fatal", func() {
			So(err, ShouldBeNil)
			So(events, ShouldBeEmpty)
		})
	})

	Convey("Given oversized field pairs", t, func() {
		doc := []byte(`{"events":[{"event_id":1,"teams":["A","B","C"],"maps_won":["1","0","9"]}]}`)

		events, err := x.Extract(ctx, doc)
		So(err, ShouldBeNil)
		So(events[0].Teams, ShouldHaveLength, 2)
		So(events[0].MapsWon, ShouldHaveLength, 2)
	})

	Convey("Given an undecodable document", t, func() {
		_, err := x.Extract(ctx, []byte(`<html>not json</html>`))
		So(err, ShouldWrap, source.ErrExtract)
	})
}
