package service

import (
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/page"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/rank"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/schema"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/scoring"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/types"
	"github.com/rmclanahan/nasea-leaderboard/internal/source"
)

// Result is the outcome of one pipeline run: the page window, the entries
// inside it, and the aggregate count of rows dropped by validation.
type Result struct {
	View        page.View
	PageEntries []types.Entry
	Dropped     int
}

// RunPipeline executes the full transform for one tick:
// normalize -> clean -> score -> rank -> paginate. It is a pure function of
// its inputs; the tick counter and table are threaded in explicitly, never
// read from ambient state.
//
// A table with no header row at all is the empty board, not a schema error;
// a header row that cannot be resolved is.
func RunPipeline(table source.Table, tick, pageSize int, scorer *scoring.Scorer) (Result, error) {
	if len(table.Headers) == 0 {
		return Result{View: page.Slice(0, pageSize, tick)}, nil
	}

	mapping, err := schema.Resolve(table.Headers)
	if err != nil {
		return Result{}, err
	}

	subs, dropped := mapping.Submissions(table.Rows)
	entries := rank.Entries(subs, scorer)
	view := page.Slice(len(entries), pageSize, tick)

	return Result{
		View:        view,
		PageEntries: entries[view.Start:view.End],
		Dropped:     dropped,
	}, nil
}
