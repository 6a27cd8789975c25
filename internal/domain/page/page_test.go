package page_test

import (
	"testing"

	"github.com/rmclanahan/nasea-leaderboard/internal/domain/page"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSlice(t *testing.T) {
	Convey("Given a ranked list of 40 entries and a page size of 18", t, func() {
		const n, p = 40, 18

		Convey("When the tick is zero", func() {
			v := page.Slice(n, p, 0)
			So(v.Page, ShouldEqual, 0)
			So(v.TotalPages, ShouldEqual, 3)
			So(v.Start, ShouldEqual, 0)
			So(v.End, ShouldEqual, 18)
			So(v.Total, ShouldEqual, 40)
		})

		Convey("When the tick reaches the short last page", func() {
			v := page.Slice(n, p, 2)
			So(v.Start, ShouldEqual, 36)
			So(v.End, ShouldEqual, 40)
		})

		Convey("When the tick wraps past the last page", func() {
			v := page.Slice(n, p, 3)
			So(v.Page, ShouldEqual, 0)
			So(v.Start, ShouldEqual, 0)
		})

		Convey("Then one full tick cycle covers every entry exactly once", func() {
			seen := make([]int, n)
			total := page.Slice(n, p, 0).TotalPages
			for tick := 0; tick < total; tick++ {
				v := page.Slice(n, p, tick)
				for i := v.Start; i < v.End; i++ {
					seen[i]++
				}
			}
			for _, count := range seen {
				So(count, ShouldEqual, 1)
			}
		})
	})

	Convey("Given fewer entries than one page", t, func() {
		Convey("Then there is a single page whatever the tick", func() {
			for _, tick := range []int{0, 1, 7, 1000} {
				v := page.Slice(5, 18, tick)
				So(v.Page, ShouldEqual, 0)
				So(v.TotalPages, ShouldEqual, 1)
				So(v.Start, ShouldEqual, 0)
				So(v.End, ShouldEqual, 5)
			}
		})
	})

	Convey("Given no entries", t, func() {
		v := page.Slice(0, 18, 3)

		Convey("Then the view is explicitly empty, not an error", func() {
			So(v.Empty(), ShouldBeTrue)
			So(v.TotalPages, ShouldEqual, 1)
			So(v.Page, ShouldEqual, 0)
			So(v.Start, ShouldEqual, 0)
			So(v.End, ShouldEqual, 0)
		})
	})

	Convey("Given arbitrary inputs", t, func() {
		Convey("Then the window invariants always hold", func() {
			for _, n := range []int{0, 1, 17, 18, 19, 36, 37, 100} {
				for _, p := range []int{1, 5, 18, 50} {
					for tick := 0; tick < 12; tick++ {
						v := page.Slice(n, p, tick)
						So(v.Start, ShouldBeGreaterThanOrEqualTo, 0)
						So(v.End, ShouldBeGreaterThanOrEqualTo, v.Start)
						So(v.End, ShouldBeLessThanOrEqualTo, n)
						So(v.End-v.Start, ShouldBeLessThanOrEqualTo, p)
						So(v.TotalPages, ShouldBeGreaterThanOrEqualTo, 1)
					}
				}
			}
		})
	})

	Convey("Given defensive inputs", t, func() {
		Convey("Then negative and zero parameters are clamped", func() {
			v := page.Slice(-3, 0, -1)
			So(v.Empty(), ShouldBeTrue)
			So(v.TotalPages, ShouldEqual, 1)
		})
	})
}
