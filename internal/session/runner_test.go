package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

type memRecorder struct {
	records   []quiz.AttemptRecord
	overrides []string
	failNext  bool
}

func (m *memRecorder) Append(_ context.Context, _ string, rec quiz.AttemptRecord) error {
	if m.failNext {
		m.failNext = false
		return errors.New("disk full")
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memRecorder) RecordOverride(_ context.Context, _ string, questionID string, _ float64) error {
	m.overrides = append(m.overrides, questionID)
	return nil
}

func short(id, answer string) quiz.Question {
	return quiz.Question{
		ID:      id,
		Kind:    quiz.ShortAnswer,
		Text:    []string{id + "?"},
		Answers: []quiz.Answer{{answer}},
	}
}

// fakeClock advances by step on every read, so elapsed times are
// deterministic without sleeping.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestRunnerWalksQuestionsInOrder(t *testing.T) {
	rec := &memRecorder{}
	r := NewRunner([]quiz.Question{short("a", "1"), short("b", "2")}, rec)

	if r.Len() != 2 || r.Done() {
		t.Fatalf("Len = %d, Done = %v", r.Len(), r.Done())
	}
	if got := r.Current().ID; got != "a" {
		t.Fatalf("first question = %q", got)
	}

	out, err := r.Submit(context.Background(), []string{"1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Result.Correct() {
		t.Errorf("correct answer scored %v", out.Result.Score)
	}

	if got := r.Current().ID; got != "b" {
		t.Fatalf("second question = %q", got)
	}
	if _, err := r.Submit(context.Background(), []string{"wrong"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !r.Done() {
		t.Error("session should be done")
	}
	if r.Current() != nil {
		t.Error("Current should be nil when done")
	}
	if len(rec.records) != 2 {
		t.Fatalf("persisted %d records, want 2", len(rec.records))
	}
	if rec.records[0].Score != 1.0 || rec.records[1].Score != 0.0 {
		t.Errorf("scores = %v, %v", rec.records[0].Score, rec.records[1].Score)
	}
	if rec.records[0].Response != "1" {
		t.Errorf("response = %q", rec.records[0].Response)
	}
}

func TestRunnerPersistFailureDoesNotAdvance(t *testing.T) {
	rec := &memRecorder{failNext: true}
	r := NewRunner([]quiz.Question{short("a", "1")}, rec)

	r.Current()
	if _, err := r.Submit(context.Background(), []string{"1"}); err == nil {
		t.Fatal("expected persist error")
	}
	// Still on the same question: the attempt was not recorded anywhere.
	if r.Done() {
		t.Error("runner advanced past an unpersisted attempt")
	}
	if got := r.Current().ID; got != "a" {
		t.Errorf("current = %q, want a", got)
	}
}

func TestRunnerElapsedMeasuredFromDisplay(t *testing.T) {
	r := NewRunner([]quiz.Question{short("a", "1")}, nil)
	r.now = fakeClock(time.Unix(1000, 0), 5*time.Second)

	r.Current() // starts the timer
	out, err := r.Submit(context.Background(), []string{"1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// One clock step between display and submission.
	if out.Elapsed != 5*time.Second {
		t.Errorf("elapsed = %v, want 5s", out.Elapsed)
	}
}

func TestRunnerOverride(t *testing.T) {
	rec := &memRecorder{}
	r := NewRunner([]quiz.Question{short("a", "1")}, rec)

	if err := r.Override(context.Background()); !errors.Is(err, ErrNoAttempt) {
		t.Fatalf("Override before any attempt = %v, want ErrNoAttempt", err)
	}

	r.Current()
	out, _ := r.Submit(context.Background(), []string{"won"})
	if out.Result.Score != 0 {
		t.Fatalf("misspelled answer scored %v", out.Result.Score)
	}

	if err := r.Override(context.Background()); err != nil {
		t.Fatalf("Override: %v", err)
	}
	if got := r.Last(); got.Result.Score != 1.0 || !got.Overrode {
		t.Errorf("after override: score = %v, overrode = %v", got.Result.Score, got.Overrode)
	}
	if len(rec.overrides) != 1 || rec.overrides[0] != "a" {
		t.Errorf("overrides = %v", rec.overrides)
	}

	// Overriding twice does not append a second correction.
	if err := r.Override(context.Background()); err != nil {
		t.Fatalf("second Override: %v", err)
	}
	if len(rec.overrides) != 1 {
		t.Errorf("overrides after repeat = %v", rec.overrides)
	}
}

func TestRunnerMarkUngraded(t *testing.T) {
	essay := quiz.Question{
		ID:      "essay",
		Kind:    quiz.Ungraded,
		Text:    []string{"Discuss."},
		Answers: []quiz.Answer{{"model answer"}},
	}
	rec := &memRecorder{}
	r := NewRunner([]quiz.Question{essay, short("a", "1")}, rec)

	r.Current()
	out, _ := r.Submit(context.Background(), []string{"my thoughts"})
	if !out.Result.Ungraded {
		t.Fatal("essay should be ungraded")
	}

	if err := r.MarkUngradedCorrect(context.Background(), true); err != nil {
		t.Fatalf("MarkUngradedCorrect: %v", err)
	}
	if got := r.Last(); got.Result.Ungraded || got.Result.Score != 1.0 {
		t.Errorf("after judgment: %+v", got.Result)
	}

	// A graded question cannot be judged.
	r.Current()
	r.Submit(context.Background(), []string{"1"})
	if err := r.MarkUngradedCorrect(context.Background(), true); !errors.Is(err, ErrNoAttempt) {
		t.Errorf("judging graded attempt = %v, want ErrNoAttempt", err)
	}
}

func TestBuildSummary(t *testing.T) {
	list := quiz.Question{
		ID:      "list",
		Kind:    quiz.ListAnswer,
		Text:    []string{"name two"},
		Answers: []quiz.Answer{{"x"}, {"y"}},
	}
	essay := quiz.Question{
		ID:      "essay",
		Kind:    quiz.Ungraded,
		Text:    []string{"Discuss."},
		Answers: []quiz.Answer{{"model"}},
	}
	r := NewRunner([]quiz.Question{short("a", "1"), short("b", "2"), list, essay}, nil)

	ctx := context.Background()
	r.Current()
	r.Submit(ctx, []string{"1"}) // correct
	r.Current()
	r.Submit(ctx, []string{"nope"}) // incorrect
	r.Current()
	r.Submit(ctx, []string{"x", "zzz"}) // partial, 1/2
	r.Current()
	r.Submit(ctx, []string{"free text"}) // ungraded

	s := r.BuildSummary()
	if s.Answered != 4 {
		t.Errorf("Answered = %d", s.Answered)
	}
	if s.Correct != 1 || s.Partial != 1 || s.Incorrect != 1 || s.Ungraded != 1 {
		t.Errorf("tallies = %+v", s)
	}
	want := (1.0 + 0.0 + 0.5) / 3
	if diff := s.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Score = %v, want %v", s.Score, want)
	}
}
