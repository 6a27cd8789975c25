// Package scoring computes penalty-adjusted scores for submissions.
//
// Lower is better. All arithmetic happens in the configured unit; converting
// back to display dollars is the presenter's job and never occurs here.
package scoring

import (
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/model"
)

// Default constants, denominated in $K (the default unit).
const (
	defaultCrackedPenalty = 1_000
	defaultEMRefund       = 10

	// The broken penalty is always a fixed multiple of the cracked one.
	brokenPenaltyFactor = 10
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithCrackedPenalty sets the mid-tier penalty. The broken penalty is derived
// as a fixed multiple so the ratio between tiers cannot drift.
func WithCrackedPenalty(p float64) Option {
	return func(s *Scorer) {
		if p > 0 {
			s.crackedPenalty = p
		}
	}
}

// WithEMRefund sets the refund granted for a completed EM question.
func WithEMRefund(r float64) Option {
	return func(s *Scorer) {
		if r > 0 {
			s.emRefund = r
		}
	}
}

// Scorer computes scores from cleaned submissions. It is pure and
// deterministic; the constants are fixed at construction.
type Scorer struct {
	crackedPenalty float64
	emRefund       float64
}

// New creates a Scorer with the given options applied over the $K defaults.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		crackedPenalty: defaultCrackedPenalty,
		emRefund:       defaultEMRefund,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns cost plus the outcome penalty minus the EM refund.
// Unrecognized outcomes carry no penalty.
func (s *Scorer) Score(sub model.Submission) float64 {
	penalty := 0.0
	switch sub.Outcome {
	case model.OutcomeCracked:
		penalty = s.crackedPenalty
	case model.OutcomeBroken:
		penalty = s.crackedPenalty * brokenPenaltyFactor
	}

	refund := 0.0
	if sub.EMCompleted {
		refund = s.emRefund
	}

	return sub.Cost + penalty - refund
}

// CrackedPenalty exposes the configured mid-tier penalty.
func (s *Scorer) CrackedPenalty() float64 { return s.crackedPenalty }

// BrokenPenalty exposes the derived top-tier penalty.
func (s *Scorer) BrokenPenalty() float64 { return s.crackedPenalty * brokenPenaltyFactor }

// EMRefund exposes the configured refund constant.
func (s *Scorer) EMRefund() float64 { return s.emRefund }
