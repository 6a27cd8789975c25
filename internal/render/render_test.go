package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rmclanahan/nasea-leaderboard/internal/domain/page"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/types"
	"github.com/rmclanahan/nasea-leaderboard/internal/render"
	. "github.com/smartystreets/goconvey/convey"
)

var renderTime = time.Date(2024, 5, 1, 14, 30, 45, 0, time.UTC)

func TestFormatScore(t *testing.T) {
	Convey("Given a renderer for the $K unit", t, func() {
		r, err := render.New(render.WithDisplayMultiplier(1000))
		So(err, ShouldBeNil)

		Convey("Then scores convert to grouped display dollars", func() {
			So(r.FormatScore(10490), ShouldEqual, "$10,490,000")
			So(r.FormatScore(500), ShouldEqual, "$500,000")
			So(r.FormatScore(0), ShouldEqual, "$0")
		})
	})

	Convey("Given a renderer for raw dollars", t, func() {
		r, err := render.New(render.WithDisplayMultiplier(1))
		So(err, ShouldBeNil)

		Convey("Then no unit conversion happens", func() {
			So(r.FormatScore(10_490_000), ShouldEqual, "$10,490,000")
		})
	})
}

func TestBoard(t *testing.T) {
	Convey("Given a renderer and a page of entries", t, func() {
		r, err := render.New(render.WithDisplayMultiplier(1000), render.WithRefreshSeconds(10))
		So(err, ShouldBeNil)

		entries := []types.Entry{
			{Rank: 1, TeamName: "Apollo", Score: 490, Status: "✅ CLEARED"},
			{Rank: 2, TeamName: "Gemini", Score: 10500, Status: "\U0001f4b8 F&F CLAIM"},
		}
		view := page.Slice(2, 18, 0)

		html, err := r.Board(view, entries, renderTime)
		So(err, ShouldBeNil)
		body := string(html)

		Convey("Then the four-column table is rendered", func() {
			So(body, ShouldContainSubstring, "<th class=\"rank\">#</th>")
			So(body, ShouldContainSubstring, "<th class=\"team\">Team</th>")
			So(body, ShouldContainSubstring, "Apollo")
			So(body, ShouldContainSubstring, "$490,000")
			So(body, ShouldContainSubstring, "CLEARED")
		})

		Convey("Then the caption shows the window and last-updated clock", func() {
			So(body, ShouldContainSubstring, "14:30:45")
			So(body, ShouldContainSubstring, "(page 1/1)")
			So(body, ShouldContainSubstring, "Total entries:</span> 2")
		})

		Convey("Then the page self-refreshes at the configured interval", func() {
			So(body, ShouldContainSubstring, `http-equiv="refresh" content="10"`)
		})
	})

	Convey("Given a team name containing markup", t, func() {
		r, err := render.New()
		So(err, ShouldBeNil)

		entries := []types.Entry{
			{Rank: 1, TeamName: "<script>alert('x')</script>", Score: 1, Status: "<b>raw</b>"},
		}
		html, err := r.Board(page.Slice(1, 18, 0), entries, renderTime)
		So(err, ShouldBeNil)
		body := string(html)

		Convey("Then cell text is escaped on output", func() {
			So(body, ShouldNotContainSubstring, "<script>alert")
			So(body, ShouldContainSubstring, "&lt;script&gt;")
			So(body, ShouldNotContainSubstring, "<b>raw</b>")
		})
	})

	Convey("Given no entries at all", t, func() {
		r, err := render.New()
		So(err, ShouldBeNil)

		html, err := r.Board(page.Slice(0, 18, 0), nil, renderTime)
		So(err, ShouldBeNil)
		body := string(html)

		Convey("Then the explicit empty state replaces the table", func() {
			So(body, ShouldContainSubstring, "No submissions yet.")
			So(body, ShouldNotContainSubstring, "<table")
		})
	})
}

func TestErrorPage(t *testing.T) {
	Convey("Given a renderer", t, func() {
		r, err := render.New()
		So(err, ShouldBeNil)

		Convey("When rendering a diagnostic state", func() {
			html, err := r.Error("could not resolve columns; found headers: [A, B]", renderTime)
			So(err, ShouldBeNil)
			body := string(html)

			Convey("Then the message replaces the entire table", func() {
				So(body, ShouldContainSubstring, "error-banner")
				So(body, ShouldContainSubstring, "found headers: [A, B]")
				So(body, ShouldNotContainSubstring, "<table")
			})

			Convey("Then the page still self-refreshes so recovery is automatic", func() {
				So(body, ShouldContainSubstring, "http-equiv=\"refresh\"")
			})
		})

		Convey("When the diagnostic text itself contains markup", func() {
			html, err := r.Error("bad <img src=x>", renderTime)
			So(err, ShouldBeNil)
			So(strings.Contains(string(html), "<img"), ShouldBeFalse)
		})
	})
}
