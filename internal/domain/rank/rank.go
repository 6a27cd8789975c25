// Package rank orders scored submissions into the final leaderboard.
package rank

import (
	"sort"

	"github.com/rmclanahan/nasea-leaderboard/internal/domain/model"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/scoring"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/types"
)

// Entries scores every submission and returns them ordered by
// (score ascending, team name ascending) with a dense 1-based rank.
// Team name participates in the sort key, so the order is total and
// identical scores never tie arbitrarily. Pure; the input slice is not
// modified.
func Entries(subs []model.Submission, scorer *scoring.Scorer) []types.Entry {
	entries := make([]types.Entry, len(subs))
	for i, sub := range subs {
		entries[i] = types.Entry{
			TeamName: sub.TeamName,
			Score:    scorer.Score(sub),
			Status:   sub.StatusLabel(),
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].TeamName < entries[j].TeamName
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
