package quiz

import "time"

// Kind identifies the shape of a question and therefore how it is asked
// and graded.
type Kind string

const (
	ShortAnswer       Kind = "short_answer"
	ListAnswer        Kind = "list_answer"
	OrderedListAnswer Kind = "ordered_list_answer"
	MultipleChoice    Kind = "multiple_choice"
	Ungraded          Kind = "ungraded"
	Flashcard         Kind = "flashcard"
)

// Kinds lists every question kind, in declaration order.
var Kinds = []Kind{ShortAnswer, ListAnswer, OrderedListAnswer, MultipleChoice, Ungraded, Flashcard}

// SingleAnswer reports whether the kind takes exactly one submitted line.
// Only single-answer kinds may carry a timeout.
func (k Kind) SingleAnswer() bool {
	switch k {
	case ShortAnswer, MultipleChoice, Flashcard:
		return true
	}
	return false
}

// ListShaped reports whether the kind takes one submitted line per answer slot.
func (k Kind) ListShaped() bool {
	return k == ListAnswer || k == OrderedListAnswer
}

// Gradable reports whether the kind produces a score.
func (k Kind) Gradable() bool {
	return k != Ungraded
}

// Answer is a group of equivalent accepted variants for one answer slot.
// The first variant is the canonical form used for display.
type Answer []string

// Canonical returns the display form of the answer, or "" if empty.
func (a Answer) Canonical() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// Question is a single quiz question. The question set is loaded once and
// is immutable for the duration of a session.
type Question struct {
	// ID is unique within a quiz.
	ID string

	Kind Kind

	// Text holds one or more phrasings of the question. Text[0] is used
	// when asking; the rest are preserved for search and display.
	Text []string

	// Answers holds one slot per required item. Single-answer kinds have
	// exactly one slot.
	Answers []Answer

	// NoCredit entries are removed from both the required slots and the
	// submitted lines before grading. List kinds only.
	NoCredit []string

	// Choices holds the incorrect candidate options for MultipleChoice.
	Choices []string

	// Tags are free-form labels used for session filtering.
	Tags []string

	// TimeoutSecs is the soft time limit in seconds. Zero means untimed.
	// Valid only on single-answer kinds.
	TimeoutSecs int

	// Depends names the id of a question that must be asked before this
	// one whenever both appear in the same session. At most one.
	Depends string

	// BackContext and FrontContext annotate flashcard sides, e.g.
	// "perro [noun]".
	FrontContext string
	BackContext  string
}

// Prompt returns the text shown when the question is asked.
func (q *Question) Prompt() string {
	if len(q.Text) == 0 {
		return ""
	}
	return q.Text[0]
}

// Flip swaps a flashcard's front and back. Other kinds are unaffected.
func (q *Question) Flip() {
	if q.Kind != Flashcard || len(q.Text) == 0 || len(q.Answers) == 0 {
		return
	}
	front := q.Text[0]
	q.Text[0] = q.Answers[0].Canonical()
	q.Answers[0] = Answer{front}
	q.FrontContext, q.BackContext = q.BackContext, q.FrontContext
}

// AllVariants flattens every accepted variant across all answer slots.
func (q *Question) AllVariants() []string {
	var out []string
	for _, a := range q.Answers {
		out = append(out, a...)
	}
	return out
}

// Quiz is an ordered, validated set of questions.
type Quiz struct {
	Instructions string
	Questions    []Question
}

// Find returns the question with the given id, or nil.
func (qz *Quiz) Find(id string) *Question {
	for i := range qz.Questions {
		if qz.Questions[i].ID == id {
			return &qz.Questions[i]
		}
	}
	return nil
}

// AttemptRecord is one past attempt at a question. Records are append-only:
// a correction is a new record with IsCorrection set, never an edit.
type AttemptRecord struct {
	QuestionID   string
	Timestamp    time.Time
	Score        float64
	Ungraded     bool
	ElapsedSecs  float64
	IsCorrection bool
	Response     string
	ResponseList []string
}

// ResultHistory provides read access to past attempts, ordered oldest first.
type ResultHistory interface {
	History(questionID string) ([]AttemptRecord, error)
}
