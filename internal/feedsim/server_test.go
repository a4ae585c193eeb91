package feedsim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/medalwatch/podium/internal/adapters/feed"
	"github.com/medalwatch/podium/internal/domain/medal"
	"github.com/medalwatch/podium/internal/feedsim"
	"github.com/medalwatch/podium/pkg/logger"
)

//nolint:gochecknoinits // test logging setup
func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestServer(t *testing.T) {
	Convey("Given a feed server with generated events", t, func() {
		gen := feedsim.NewGenerator(8, 17)
		srv := feedsim.NewServer(gen.Events(3))

		mux := http.NewServeMux()
		srv.Register(mux)
		ts := httptest.NewServer(mux)
		Reset(ts.Close)

		source := feed.NewHTTPSource(ts.URL)

		Convey("The watcher's own client should parse the served document", func() {
			awards, err := source.Fetch(context.Background())

			So(err, ShouldBeNil)
			So(len(awards), ShouldEqual, 9)
			for _, a := range awards {
				So(a.Validate(), ShouldBeNil)
			}
		})

		Convey("Appended events should appear in the next fetch", func() {
			before, err := source.Fetch(context.Background())
			So(err, ShouldBeNil)

			srv.Append(gen.Event())

			after, err := source.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(len(after), ShouldEqual, len(before)+3)
			So(srv.EventCount(), ShouldEqual, 4)
		})

		Convey("Non-GET requests should be rejected", func() {
			resp, err := http.Post(ts.URL, "application/json", nil)

			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Request counting should reflect served documents", func() {
			So(srv.RequestCount(), ShouldEqual, 0)

			_, err := source.Fetch(context.Background())
			So(err, ShouldBeNil)
			_, err = source.Fetch(context.Background())
			So(err, ShouldBeNil)

			So(srv.RequestCount(), ShouldEqual, 2)
		})
	})

	Convey("Given an event without a country object", t, func() {
		srv := feedsim.NewServer([]feedsim.Event{{
			ID:        "11111111-1111-1111-1111-111111111111",
			Title:     "Mixed 4x400m Relay Final 1",
			TitleOnly: true,
			Awards: []medal.Award{
				{Class: medal.Gold, Entrant: "Jamaica"},
				{Class: medal.Silver, Entrant: "France"},
			},
		}})

		mux := http.NewServeMux()
		srv.Register(mux)
		ts := httptest.NewServer(mux)
		Reset(ts.Close)

		Convey("The participant title should still carry the entrant name", func() {
			awards, err := feed.NewHTTPSource(ts.URL).Fetch(context.Background())

			So(err, ShouldBeNil)
			So(awards, ShouldResemble, []medal.Award{
				{Class: medal.Gold, Entrant: "Jamaica"},
				{Class: medal.Silver, Entrant: "France"},
			})
		})
	})
}
