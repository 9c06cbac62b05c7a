package quizfile

import (
	"strings"
	"testing"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

const sampleJSON = `{
  "instructions": "Answer from memory.",
  "questions": [
    {
      "id": "capital-fr",
      "kind": "short_answer",
      "text": ["What is the capital of France?"],
      "answers": [["Paris"]],
      "tags": ["geography"],
      "timeout": 20
    },
    {
      "id": "planets",
      "kind": "ordered_list_answer",
      "text": ["Name the inner planets."],
      "answers": [["Mercury"], ["Venus"], ["Earth", "Terra"], ["Mars"]],
      "nocredit": ["Pluto"],
      "depends": "capital-fr"
    }
  ]
}`

func TestParseJSON(t *testing.T) {
	qz, err := ParseJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if qz.Instructions != "Answer from memory." {
		t.Errorf("instructions = %q", qz.Instructions)
	}
	if len(qz.Questions) != 2 {
		t.Fatalf("got %d questions", len(qz.Questions))
	}

	fr := qz.Find("capital-fr")
	if fr.Kind != quiz.ShortAnswer || fr.TimeoutSecs != 20 {
		t.Errorf("capital-fr = %+v", fr)
	}

	planets := qz.Find("planets")
	if planets.Kind != quiz.OrderedListAnswer {
		t.Errorf("planets kind = %q", planets.Kind)
	}
	if len(planets.Answers[2]) != 2 || planets.Answers[2][1] != "Terra" {
		t.Errorf("variants = %v", planets.Answers[2])
	}
	if planets.Depends != "capital-fr" {
		t.Errorf("depends = %q", planets.Depends)
	}
}

func TestParseJSONSchemaRejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not JSON", `{"questions": [`},
		{"missing questions", `{"instructions": "hi"}`},
		{"bad kind", `{"questions": [{"id": "a", "kind": "essay", "text": ["?"]}]}`},
		{"missing id", `{"questions": [{"kind": "short_answer", "text": ["?"]}]}`},
		{"unknown field", `{"questions": [], "author": "me"}`},
		{"empty text", `{"questions": [{"id": "a", "kind": "short_answer", "text": []}]}`},
		{"negative timeout", `{"questions": [{"id": "a", "kind": "short_answer", "text": ["?"], "answers": [["x"]], "timeout": -5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseJSONRunsQuizValidation(t *testing.T) {
	// Passes the schema, fails semantic validation: a gradable question
	// with no answers.
	input := `{"questions": [{"id": "a", "kind": "short_answer", "text": ["?"]}]}`
	_, err := ParseJSON(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "no accepted answers") {
		t.Errorf("err = %v", err)
	}
}
