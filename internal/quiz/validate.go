package quiz

import (
	"errors"
	"fmt"
)

// MalformedQuestionError rejects a whole quiz at load time. It is fatal:
// a quiz with even one malformed question is never scheduled.
type MalformedQuestionError struct {
	QuestionID string
	Reason     string
}

func (e *MalformedQuestionError) Error() string {
	return fmt.Sprintf("malformed question %q: %s", e.QuestionID, e.Reason)
}

// Validate performs all structural checks on the quiz. It returns a
// combined error describing every problem found, or nil if the quiz is
// well formed. Validation runs once, before the first scheduling call.
func Validate(qz *Quiz) error {
	var errs []error

	idSet := make(map[string]bool, len(qz.Questions))
	for i := range qz.Questions {
		q := &qz.Questions[i]
		if q.ID == "" {
			errs = append(errs, errors.New("question with empty id"))
			continue
		}
		if idSet[q.ID] {
			errs = append(errs, fmt.Errorf("duplicate question id: %q", q.ID))
		}
		idSet[q.ID] = true
	}

	for i := range qz.Questions {
		q := &qz.Questions[i]
		if err := validateQuestion(q, idSet); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("quiz validation failed:\n%w", errors.Join(errs...))
	}
	return nil
}

func validateQuestion(q *Question, ids map[string]bool) error {
	if len(q.Text) == 0 || q.Text[0] == "" {
		return &MalformedQuestionError{q.ID, "no question text"}
	}

	if q.Kind.Gradable() {
		if len(q.Answers) == 0 {
			return &MalformedQuestionError{q.ID, "gradable question has no accepted answers"}
		}
		for i, a := range q.Answers {
			if len(a) == 0 || a.Canonical() == "" {
				return &MalformedQuestionError{q.ID, fmt.Sprintf("answer slot %d is empty", i)}
			}
		}
	}

	if q.Kind.SingleAnswer() && len(q.Answers) > 1 {
		return &MalformedQuestionError{q.ID, fmt.Sprintf("%s question has %d answer slots, want 1", q.Kind, len(q.Answers))}
	}

	if q.TimeoutSecs < 0 {
		return &MalformedQuestionError{q.ID, "negative timeout"}
	}
	if q.TimeoutSecs > 0 && !q.Kind.SingleAnswer() {
		return &MalformedQuestionError{q.ID, fmt.Sprintf("timeout set on %s question; only single-answer kinds may be timed", q.Kind)}
	}

	if len(q.NoCredit) > 0 && !q.Kind.ListShaped() {
		return &MalformedQuestionError{q.ID, fmt.Sprintf("nocredit set on %s question; only list kinds accept it", q.Kind)}
	}

	if q.Kind == MultipleChoice && len(q.Choices) == 0 {
		return &MalformedQuestionError{q.ID, "multiple choice question has no choices"}
	}

	// A depends target must exist in the quiz even if a given session
	// never selects it.
	if q.Depends != "" {
		if !ids[q.Depends] {
			return &MalformedQuestionError{q.ID, fmt.Sprintf("depends on nonexistent question %q", q.Depends)}
		}
		if q.Depends == q.ID {
			return &MalformedQuestionError{q.ID, "question depends on itself"}
		}
	}

	return nil
}
