package session

import "time"

// Summary holds the aggregate figures shown when a session ends.
type Summary struct {
	Duration  time.Duration
	Answered  int
	Correct   int
	Partial   int
	Incorrect int
	Ungraded  int
	Score     float64 // mean score over graded questions, 0 if none
}

// BuildSummary aggregates the runner's outcomes. Ungraded questions are
// counted separately and excluded from the score.
func (r *Runner) BuildSummary() *Summary {
	s := &Summary{
		Duration: r.now().Sub(r.started),
		Answered: len(r.results),
	}

	var total float64
	graded := 0
	for i := range r.results {
		res := r.results[i].Result
		if res.Ungraded {
			s.Ungraded++
			continue
		}
		graded++
		total += res.Score
		switch {
		case res.Correct():
			s.Correct++
		case res.PartiallyCorrect():
			s.Partial++
		default:
			s.Incorrect++
		}
	}
	if graded > 0 {
		s.Score = total / float64(graded)
	}
	return s
}
