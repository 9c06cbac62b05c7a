package quiz

import (
	"errors"
	"strings"
	"testing"
)

func validQuiz() *Quiz {
	return &Quiz{
		Questions: []Question{
			shortAnswer("a", "alpha"),
			shortAnswer("b", "beta"),
			{
				ID:      "c",
				Kind:    ListAnswer,
				Text:    []string{"?"},
				Answers: []Answer{{"one"}, {"two"}},
				Depends: "a",
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validQuiz()); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Quiz)
		wantSub string
	}{
		{
			"duplicate id",
			func(qz *Quiz) { qz.Questions[1].ID = "a" },
			"duplicate question id",
		},
		{
			"empty answers on gradable kind",
			func(qz *Quiz) { qz.Questions[0].Answers = nil },
			"no accepted answers",
		},
		{
			"timeout on list kind",
			func(qz *Quiz) { qz.Questions[2].TimeoutSecs = 30 },
			"timeout",
		},
		{
			"dangling depends",
			func(qz *Quiz) { qz.Questions[2].Depends = "ghost" },
			`nonexistent question "ghost"`,
		},
		{
			"self dependency",
			func(qz *Quiz) { qz.Questions[2].Depends = "c" },
			"depends on itself",
		},
		{
			"nocredit on short answer",
			func(qz *Quiz) { qz.Questions[0].NoCredit = []string{"x"} },
			"nocredit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qz := validQuiz()
			tt.mutate(qz)
			err := Validate(qz)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidate_DependsTargetNeedNotBeSelected(t *testing.T) {
	// Validation is about quiz integrity, not session selection: the
	// depends target only has to exist in the quiz.
	qz := validQuiz()
	if err := Validate(qz); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestMalformedQuestionError_As(t *testing.T) {
	q := shortAnswer("a", "alpha")
	q.Answers = nil
	err := validateQuestion(&q, map[string]bool{"a": true})

	var mqe *MalformedQuestionError
	if !errors.As(err, &mqe) {
		t.Fatalf("error %T is not a MalformedQuestionError", err)
	}
	if mqe.QuestionID != "a" {
		t.Errorf("QuestionID = %q, want %q", mqe.QuestionID, "a")
	}
}
