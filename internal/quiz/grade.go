package quiz

// GradeResult is the outcome of grading one submission. Grading never
// fails: an empty or unparsable submission simply scores 0.
type GradeResult struct {
	// Score is in [0, 1]. Meaningless when Ungraded is set.
	Score float64
	// Ungraded marks responses that carry no score and are excluded from
	// correct/incorrect totals.
	Ungraded bool
	// Satisfied marks matched slots for list kinds (after nocredit
	// removal). Single-answer kinds get a one-element slice.
	Satisfied []bool
	// Missed holds the canonical answers the submission failed to cover,
	// for display after the question.
	Missed []string
	// TimedOut is set when a timeout multiplier below 1.0 was applied.
	TimedOut bool
}

// Correct reports full credit.
func (r *GradeResult) Correct() bool {
	return !r.Ungraded && r.Score == 1.0
}

// PartiallyCorrect reports a score strictly between zero and full credit.
func (r *GradeResult) PartiallyCorrect() bool {
	return !r.Ungraded && r.Score > 0 && r.Score < 1.0
}

// Grade scores a submission against a question. Single-answer kinds read
// lines[0]; list kinds consume every line. elapsedSecs is measured from
// prompt display to submission and only matters for timed questions.
func Grade(q *Question, lines []string, elapsedSecs float64) GradeResult {
	switch q.Kind {
	case ShortAnswer, Flashcard, MultipleChoice:
		return gradeSingle(q, lines, elapsedSecs)
	case ListAnswer:
		out := MatchUnordered(q.Answers, q.NoCredit, lines)
		return gradeList(out)
	case OrderedListAnswer:
		out := MatchOrdered(q.Answers, q.NoCredit, lines)
		return gradeList(out)
	case Ungraded:
		return GradeResult{Ungraded: true}
	}
	return GradeResult{}
}

func gradeSingle(q *Question, lines []string, elapsedSecs float64) GradeResult {
	submitted := ""
	if len(lines) > 0 {
		submitted = lines[0]
	}

	matched := submitted != "" && len(q.Answers) > 0 && Match(q.Answers[0], submitted)
	res := GradeResult{Satisfied: []bool{matched}}
	if !matched {
		if len(q.Answers) > 0 {
			res.Missed = []string{q.Answers[0].Canonical()}
		}
		return res
	}

	mult := TimeoutMultiplier(q.TimeoutSecs, elapsedSecs)
	res.Score = 1.0 * mult
	res.TimedOut = mult < 1.0
	return res
}

func gradeList(out ListOutcome) GradeResult {
	res := GradeResult{
		Satisfied: out.Satisfied,
		Missed:    out.Missed(),
	}
	if len(out.Required) == 0 {
		// Every slot was a nocredit entry; nothing to score.
		res.Score = 1.0
		return res
	}
	res.Score = float64(out.MatchedCount()) / float64(len(out.Required))
	return res
}

// TimeoutMultiplier returns the score multiplier for a timed question:
// 1.0 up to the timeout, decaying linearly to 0 at twice the timeout.
// Untimed questions always get 1.0.
func TimeoutMultiplier(timeoutSecs int, elapsedSecs float64) float64 {
	if timeoutSecs <= 0 {
		return 1.0
	}
	t := float64(timeoutSecs)
	switch {
	case elapsedSecs <= t:
		return 1.0
	case elapsedSecs <= 2*t:
		return 1.0 - (elapsedSecs-t)/t
	default:
		return 0.0
	}
}
