package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

// Recorder persists attempt records. *store.ResultLog satisfies it; tests
// substitute an in-memory implementation.
type Recorder interface {
	Append(ctx context.Context, sessionID string, rec quiz.AttemptRecord) error
	RecordOverride(ctx context.Context, sessionID, questionID string, forcedScore float64) error
}

// ErrNoAttempt is returned by Override when there is no graded attempt to
// correct.
var ErrNoAttempt = errors.New("no graded attempt to correct")

// Outcome is the graded result of one submission, for feedback display.
type Outcome struct {
	Question  quiz.Question
	Result    quiz.GradeResult
	Elapsed   time.Duration
	Overrode  bool
	SessionID string
}

// Runner walks one scheduled question sequence, grading each submission and
// persisting it before the next question is served. A crash mid-session
// loses at most the answer currently being typed.
type Runner struct {
	id        string
	questions []quiz.Question
	recorder  Recorder

	index   int
	started time.Time
	asked   time.Time
	last    *Outcome
	results []Outcome

	now func() time.Time
}

// NewRunner creates a runner over an already scheduled question order.
// recorder may be nil, in which case nothing is persisted.
func NewRunner(questions []quiz.Question, recorder Recorder) *Runner {
	r := &Runner{
		id:        uuid.NewString(),
		questions: questions,
		recorder:  recorder,
		now:       time.Now,
	}
	r.started = r.now()
	return r
}

// ID returns the session id attached to every persisted record.
func (r *Runner) ID() string { return r.id }

// Len returns the total number of questions in the session.
func (r *Runner) Len() int { return len(r.questions) }

// Index returns the zero-based position of the current question.
func (r *Runner) Index() int { return r.index }

// Done reports whether every question has been answered.
func (r *Runner) Done() bool { return r.index >= len(r.questions) }

// Current returns the question being asked, or nil when the session is done.
// The first call for each question starts its response timer.
func (r *Runner) Current() *quiz.Question {
	if r.Done() {
		return nil
	}
	if r.asked.IsZero() {
		r.asked = r.now()
	}
	return &r.questions[r.index]
}

// Submit grades the current question against the submitted lines, persists
// the attempt, and advances to the next question. The elapsed time is
// measured from the first Current call for this question.
func (r *Runner) Submit(ctx context.Context, lines []string) (*Outcome, error) {
	q := r.Current()
	if q == nil {
		return nil, errors.New("session is finished")
	}

	elapsed := r.now().Sub(r.asked)
	result := quiz.Grade(q, lines, elapsed.Seconds())

	rec := quiz.AttemptRecord{
		QuestionID:  q.ID,
		Timestamp:   r.now(),
		Score:       result.Score,
		Ungraded:    result.Ungraded,
		ElapsedSecs: elapsed.Seconds(),
	}
	if len(lines) == 1 {
		rec.Response = lines[0]
	} else {
		rec.ResponseList = lines
	}

	if r.recorder != nil {
		if err := r.recorder.Append(ctx, r.id, rec); err != nil {
			return nil, err
		}
	}

	out := Outcome{
		Question:  *q,
		Result:    result,
		Elapsed:   elapsed,
		SessionID: r.id,
	}
	r.results = append(r.results, out)
	r.last = &r.results[len(r.results)-1]
	r.index++
	r.asked = time.Time{}
	return r.last, nil
}

// MarkUngradedCorrect records a judgment for the most recent ungraded
// question. Ungraded questions are self-assessed after seeing the model
// answer.
func (r *Runner) MarkUngradedCorrect(ctx context.Context, correct bool) error {
	if r.last == nil || !r.last.Result.Ungraded {
		return ErrNoAttempt
	}
	score := 0.0
	if correct {
		score = 1.0
	}
	r.last.Result.Ungraded = false
	r.last.Result.Score = score
	if r.recorder == nil {
		return nil
	}
	return r.recorder.RecordOverride(ctx, r.id, r.last.Question.ID, score)
}

// Override marks the most recent graded attempt as fully correct. It
// appends a correction record; the original attempt is never rewritten.
func (r *Runner) Override(ctx context.Context) error {
	if r.last == nil {
		return ErrNoAttempt
	}
	if r.last.Overrode {
		return nil
	}
	r.last.Overrode = true
	r.last.Result.Score = 1.0
	r.last.Result.Ungraded = false
	if r.recorder == nil {
		return nil
	}
	return r.recorder.RecordOverride(ctx, r.id, r.last.Question.ID, 1.0)
}

// Last returns the most recently graded outcome, or nil.
func (r *Runner) Last() *Outcome {
	return r.last
}
