package scheduler

import (
	"math"
	"time"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

// ScorerConfig controls recency-weighted priority scoring.
type ScorerConfig struct {
	// Decay is the per-day weight decay applied to historical attempts.
	// Must be in (0, 1); older attempts contribute exponentially less.
	Decay float64

	// TargetDays is the re-exposure interval the scorer steers toward for
	// consistently-correct questions under daily use.
	TargetDays float64
}

// DefaultScorerConfig returns the scoring constants used when the caller
// does not override them.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Decay:      0.9,
		TargetDays: 14,
	}
}

// baselineIncorrectness keeps fully-known questions in rotation: without
// it a question answered correctly every time would have priority zero
// forever and never be re-asked.
const baselineIncorrectness = 0.1

// Priority derives a selection priority for a question from its attempt
// history. A question with no attempts gets +Inf so that never-asked
// questions are always eligible first.
func (c ScorerConfig) Priority(records []quiz.AttemptRecord, now time.Time) float64 {
	if len(records) == 0 {
		return math.Inf(1)
	}

	incorrectness := 0.0
	lastAsked := records[0].Timestamp
	for _, r := range records {
		if r.Timestamp.After(lastAsked) {
			lastAsked = r.Timestamp
		}
		if r.Ungraded {
			continue
		}
		ageDays := now.Sub(r.Timestamp).Hours() / 24.0
		if ageDays < 0 {
			ageDays = 0
		}
		incorrectness += math.Pow(c.Decay, ageDays) * (1.0 - r.Score)
	}

	daysSince := now.Sub(lastAsked).Hours() / 24.0
	if daysSince < 0 {
		daysSince = 0
	}
	return (incorrectness + baselineIncorrectness) * c.recencyFactor(daysSince)
}

// recencyFactor grows linearly with days since the question was last
// asked and saturates at 1.0 once the target interval has elapsed.
func (c ScorerConfig) recencyFactor(daysSince float64) float64 {
	if c.TargetDays <= 0 {
		return 1.0
	}
	if daysSince >= c.TargetDays {
		return 1.0
	}
	return daysSince / c.TargetDays
}
