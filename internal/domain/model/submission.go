// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
	"strings"
)

// Outcome is the closed set of attempt results. Raw text from the sheet is
// matched against the alias vocabulary exactly once, at the boundary;
// everything downstream works with this enum.
type Outcome int

const (
	// OutcomeUnknown passes through unrecognized outcome text with no penalty.
	OutcomeUnknown Outcome = iota
	OutcomeUnharmed
	OutcomeCracked
	OutcomeBroken
)

// Display badges shown in the Status column.
const (
	badgeUnharmed = "✅ CLEARED"
	badgeCracked  = "⚖️ LITIGATION"
	badgeBroken   = "\U0001f4b8 F&F CLAIM"
)

// affirmative is the set of strings treated as a true completion flag.
var affirmative = map[string]struct{}{
	"yes":  {},
	"y":    {},
	"true": {},
}

// outcomeAliases maps normalized outcome text to the enum. Both observed
// vocabularies ("Survived/Cracked/Broken" and the "... Egg" variants) land on
// the same values.
var outcomeAliases = map[string]Outcome{
	"unharmed":     OutcomeUnharmed,
	"unharmed egg": OutcomeUnharmed,
	"survived":     OutcomeUnharmed,
	"cracked":      OutcomeCracked,
	"cracked egg":  OutcomeCracked,
	"broken":       OutcomeBroken,
	"broken egg":   OutcomeBroken,
}

// Submission is one team's cleaned, typed entry for a round.
type Submission struct {
	TeamName    string
	Cost        float64 // in the configured unit; never mixed
	Outcome     Outcome
	RawOutcome  string // trimmed original text, kept for unknown badges
	EMCompleted bool
}

// ParseOutcome matches s against the alias vocabulary, ignoring case and
// surrounding whitespace.
func ParseOutcome(s string) Outcome {
	key := strings.ToLower(strings.TrimSpace(s))
	if o, ok := outcomeAliases[key]; ok {
		return o
	}
	return OutcomeUnknown
}

// ParseAffirmative reports whether s is an affirmative completion flag.
func ParseAffirmative(s string) bool {
	_, ok := affirmative[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// ParseCost strips grouping commas and parses a non-negative finite number.
// The second return is false when the value is missing or unusable.
func ParseCost(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// StatusLabel returns the display badge for the submission's outcome.
// Unrecognized outcomes show their original text.
func (s Submission) StatusLabel() string {
	switch s.Outcome {
	case OutcomeUnharmed:
		return badgeUnharmed
	case OutcomeCracked:
		return badgeCracked
	case OutcomeBroken:
		return badgeBroken
	default:
		return s.RawOutcome
	}
}

// NewSubmission builds a Submission from the four raw field values. The
// second return is false when a required field is missing or the cost does
// not parse; such rows are dropped, never defaulted.
func NewSubmission(teamName, cost, outcome, emCompleted string) (Submission, bool) {
	team := strings.TrimSpace(teamName)
	rawOutcome := strings.TrimSpace(outcome)
	if team == "" || rawOutcome == "" {
		return Submission{}, false
	}
	c, ok := ParseCost(cost)
	if !ok {
		return Submission{}, false
	}
	return Submission{
		TeamName:    team,
		Cost:        c,
		Outcome:     ParseOutcome(rawOutcome),
		RawOutcome:  rawOutcome,
		EMCompleted: ParseAffirmative(emCompleted),
	}, true
}
