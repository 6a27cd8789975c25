// Package schema resolves variant spreadsheet headers onto the fixed
// internal submission layout.
//
// Resolution has exactly two strategies: a case-insensitive alias match per
// field (column order irrelevant), then a positional fallback for the
// standard form export where the first column is a timestamp. Anything else
// is a MismatchError; there is no further guessing.
package schema

import (
	"strings"

	"github.com/rmclanahan/nasea-leaderboard/internal/domain/model"
)

// Positional fallback layout: [timestamp, team, cost, outcome, em, ...].
const (
	fallbackMinColumns = 5
	fallbackTeamCol    = 1
	fallbackCostCol    = 2
	fallbackOutcomeCol = 3
	fallbackEMCol      = 4
)

// Header alias sets, matched after normalization. The EM column appears with
// both singular and plural phrasing across form revisions.
var (
	teamAliases    = []string{"team name", "team"}
	costAliases    = []string{"supply cost in $", "supply cost ($k)", "supply cost", "cost"}
	outcomeAliases = []string{"outcome"}
	emAliases      = []string{"em questions completed", "em question completed", "em completed"}
)

// Mapping holds the resolved column index for each semantic field.
type Mapping struct {
	TeamName    int
	Cost        int
	Outcome     int
	EMCompleted int
}

// Resolve locates the four semantic fields in the header row. It tries the
// alias match first and falls back to the positional layout; failure of both
// returns a *MismatchError carrying the observed headers.
func Resolve(headers []string) (Mapping, error) {
	if m, ok := resolveNamed(headers); ok {
		return m, nil
	}
	if len(headers) >= fallbackMinColumns {
		return Mapping{
			TeamName:    fallbackTeamCol,
			Cost:        fallbackCostCol,
			Outcome:     fallbackOutcomeCol,
			EMCompleted: fallbackEMCol,
		}, nil
	}
	return Mapping{}, &MismatchError{Headers: append([]string(nil), headers...)}
}

// Submissions projects raw data rows through the mapping and cleans them.
// Rows missing a required field or with an unparsable cost are silently
// dropped; the count of dropped rows is returned for aggregate reporting.
func (m Mapping) Submissions(rows [][]string) ([]model.Submission, int) {
	subs := make([]model.Submission, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		sub, ok := model.NewSubmission(
			cell(row, m.TeamName),
			cell(row, m.Cost),
			cell(row, m.Outcome),
			cell(row, m.EMCompleted),
		)
		if !ok {
			dropped++
			continue
		}
		subs = append(subs, sub)
	}
	return subs, dropped
}

func resolveNamed(headers []string) (Mapping, bool) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	team, okTeam := lookup(index, teamAliases)
	cost, okCost := lookup(index, costAliases)
	outcome, okOutcome := lookup(index, outcomeAliases)
	em, okEM := lookup(index, emAliases)
	if !okTeam || !okCost || !okOutcome || !okEM {
		return Mapping{}, false
	}
	return Mapping{TeamName: team, Cost: cost, Outcome: outcome, EMCompleted: em}, true
}

func lookup(index map[string]int, aliases []string) (int, bool) {
	for _, a := range aliases {
		if i, ok := index[a]; ok {
			return i, true
		}
	}
	return 0, false
}

// normalizeHeader lowercases and collapses internal whitespace.
func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
