package scoring_test

import (
	"testing"

	"github.com/rmclanahan/nasea-leaderboard/internal/domain/model"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func sub(cost float64, outcome model.Outcome, em bool) model.Submission {
	return model.Submission{TeamName: "team", Cost: cost, Outcome: outcome, EMCompleted: em}
}

func TestScorerDefaults(t *testing.T) {
	Convey("Given a scorer with the $K defaults", t, func() {
		s := scoring.New()

		Convey("When the outcome is unharmed and EM is not completed", func() {
			Convey("Then the score equals the cost exactly", func() {
				for _, c := range []float64{0, 1, 250, 500, 99999.5} {
					So(s.Score(sub(c, model.OutcomeUnharmed, false)), ShouldEqual, c)
				}
			})
		})

		Convey("When the outcome is cracked", func() {
			So(s.Score(sub(500, model.OutcomeCracked, false)), ShouldEqual, 1500)
		})

		Convey("When the outcome is broken", func() {
			Convey("Then the penalty is exactly ten times the cracked penalty", func() {
				So(s.BrokenPenalty(), ShouldEqual, 10*s.CrackedPenalty())
				So(s.Score(sub(500, model.OutcomeBroken, false)), ShouldEqual, 500+10*s.CrackedPenalty())
			})
		})

		Convey("When the outcome is unknown", func() {
			Convey("Then it passes through with zero penalty", func() {
				So(s.Score(sub(500, model.OutcomeUnknown, false)), ShouldEqual, 500)
			})
		})

		Convey("When EM is completed", func() {
			Convey("Then the score drops by exactly the refund for every outcome", func() {
				for _, o := range []model.Outcome{model.OutcomeUnharmed, model.OutcomeCracked, model.OutcomeBroken, model.OutcomeUnknown} {
					without := s.Score(sub(500, o, false))
					with := s.Score(sub(500, o, true))
					So(without-with, ShouldEqual, s.EMRefund())
				}
			})
		})

		Convey("Then the reference example holds", func() {
			// cost 500K, broken, EM yes -> 500 + 10000 - 10
			So(s.Score(sub(500, model.OutcomeBroken, true)), ShouldEqual, 10490)
			So(s.Score(sub(500, model.OutcomeBroken, false)), ShouldEqual, 10500)
		})
	})
}

func TestScorerOptions(t *testing.T) {
	Convey("Given a scorer configured for raw dollars", t, func() {
		s := scoring.New(
			scoring.WithCrackedPenalty(1_000_000),
			scoring.WithEMRefund(10_000),
		)

		Convey("Then the constants scale but the shape is identical", func() {
			So(s.CrackedPenalty(), ShouldEqual, 1_000_000)
			So(s.BrokenPenalty(), ShouldEqual, 10_000_000)
			So(s.EMRefund(), ShouldEqual, 10_000)
			So(s.Score(sub(500_000, model.OutcomeBroken, true)), ShouldEqual, 10_490_000)
		})
	})

	Convey("Given non-positive option values", t, func() {
		s := scoring.New(
			scoring.WithCrackedPenalty(0),
			scoring.WithEMRefund(-5),
		)

		Convey("Then the defaults are kept", func() {
			So(s.CrackedPenalty(), ShouldEqual, 1_000)
			So(s.EMRefund(), ShouldEqual, 10)
		})
	})
}

func TestScorerDeterminism(t *testing.T) {
	Convey("Given the same submission scored repeatedly", t, func() {
		s := scoring.New()
		input := sub(1234.5, model.OutcomeCracked, true)

		Convey("Then the score never varies", func() {
			first := s.Score(input)
			for i := 0; i < 100; i++ {
				So(s.Score(input), ShouldEqual, first)
			}
		})
	})
}
