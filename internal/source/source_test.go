package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rmclanahan/nasea-leaderboard/internal/source"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCSV = "Timestamp,Team Name,Supply Cost in $,Outcome,EM Questions Completed\n" +
	"2024-05-01,Apollo,500,Broken Egg,Yes\n" +
	"2024-05-01,Gemini,\"1,000\",Unharmed Egg,No\n"

func TestParseCSV(t *testing.T) {
	Convey("Given a well-formed CSV body", t, func() {
		table, err := source.ParseCSV(strings.NewReader(sampleCSV))
		So(err, ShouldBeNil)

		Convey("Then the header row is split from the data rows", func() {
			So(table.Headers, ShouldResemble, []string{"Timestamp", "Team Name", "Supply Cost in $", "Outcome", "EM Questions Completed"})
			So(len(table.Rows), ShouldEqual, 2)
			So(table.Rows[1][2], ShouldEqual, "1,000")
		})
	})

	Convey("Given an empty body", t, func() {
		table, err := source.ParseCSV(strings.NewReader(""))
		So(err, ShouldBeNil)
		So(len(table.Headers), ShouldEqual, 0)
		So(len(table.Rows), ShouldEqual, 0)
	})

	Convey("Given ragged rows", t, func() {
		table, err := source.ParseCSV(strings.NewReader("a,b,c\n1,2\n1,2,3,4\n"))

		Convey("Then varying field counts are tolerated", func() {
			So(err, ShouldBeNil)
			So(len(table.Rows), ShouldEqual, 2)
		})
	})

	Convey("Given a malformed body", t, func() {
		_, err := source.ParseCSV(strings.NewReader("a,\"b\nunterminated"))

		Convey("Then the error is a fetch failure", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
		})
	})
}

func TestCSVClient(t *testing.T) {
	Convey("Given an upstream serving the published CSV", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(sampleCSV))
		}))
		defer srv.Close()

		client := source.NewCSVClient(srv.URL)

		Convey("When fetching", func() {
			table, err := client.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(len(table.Rows), ShouldEqual, 2)
		})
	})

	Convey("Given an upstream returning a non-200 status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "denied", http.StatusForbidden)
		}))
		defer srv.Close()

		client := source.NewCSVClient(srv.URL)
		_, err := client.Fetch(context.Background())

		Convey("Then the error is a fetch failure naming the status", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "403")
		})
	})

	Convey("Given an unreachable upstream", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // closed immediately

		client := source.NewCSVClient(srv.URL)
		_, err := client.Fetch(context.Background())

		Convey("Then the network error surfaces as a fetch failure", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
		})
	})
}

func TestCachedProvider(t *testing.T) {
	Convey("Given a cached provider over a fixture", t, func() {
		fixture := source.NewFixture(source.Table{Headers: []string{"a"}, Rows: [][]string{{"1"}}})

		now := time.Unix(1_700_000_000, 0)
		clock := func() time.Time { return now }
		cached := source.NewCached(fixture, 10*time.Second, clock)

		Convey("When several ticks arrive inside the TTL window", func() {
			for i := 0; i < 5; i++ {
				_, err := cached.Fetch(context.Background())
				So(err, ShouldBeNil)
			}

			Convey("Then only one upstream fetch happens", func() {
				So(fixture.Fetches(), ShouldEqual, 1)
			})
		})

		Convey("When the TTL elapses", func() {
			_, _ = cached.Fetch(context.Background())
			now = now.Add(11 * time.Second)
			_, _ = cached.Fetch(context.Background())

			Convey("Then the table is re-fetched", func() {
				So(fixture.Fetches(), ShouldEqual, 2)
			})
		})

		Convey("When the upstream fails", func() {
			fixture.SetError(errors.New("boom"))
			_, err := cached.Fetch(context.Background())
			So(err, ShouldNotBeNil)

			Convey("Then the error is not cached and the next tick retries", func() {
				fixture.SetTable(source.Table{Headers: []string{"a"}})
				_, err := cached.Fetch(context.Background())
				So(err, ShouldBeNil)
				So(fixture.Fetches(), ShouldEqual, 2)
			})
		})
	})
}

type flakyProvider struct {
	failures int
	calls    int
	table    source.Table
}

func (f *flakyProvider) Fetch(context.Context) (source.Table, error) {
	f.calls++
	if f.calls <= f.failures {
		return source.Table{}, errors.New("transient")
	}
	return f.table, nil
}

func TestRetryingProvider(t *testing.T) {
	Convey("Given an inner provider that fails twice then succeeds", t, func() {
		flaky := &flakyProvider{failures: 2, table: source.Table{Headers: []string{"a"}}}
		retrying := source.NewRetrying(flaky, nil, 3, time.Millisecond)

		Convey("When fetching", func() {
			table, err := retrying.Fetch(context.Background())

			Convey("Then the tick still gets a table", func() {
				So(err, ShouldBeNil)
				So(table.Headers, ShouldResemble, []string{"a"})
				So(flaky.calls, ShouldEqual, 3)
			})
		})
	})

	Convey("Given an inner provider that always fails", t, func() {
		flaky := &flakyProvider{failures: 100}
		retrying := source.NewRetrying(flaky, nil, 3, time.Millisecond)

		Convey("Then the last error is returned once attempts are exhausted", func() {
			_, err := retrying.Fetch(context.Background())
			So(err, ShouldNotBeNil)
			So(flaky.calls, ShouldEqual, 3)
		})
	})

	Convey("Given a cancelled context", t, func() {
		flaky := &flakyProvider{failures: 100}
		retrying := source.NewRetrying(flaky, nil, 5, 50*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then the backoff wait aborts promptly", func() {
			_, err := retrying.Fetch(ctx)
			So(err, ShouldNotBeNil)
		})
	})
}
