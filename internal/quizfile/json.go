package quizfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

// jsonQuiz is the on-disk JSON quiz document.
type jsonQuiz struct {
	Instructions string         `json:"instructions,omitempty"`
	Questions    []jsonQuestion `json:"questions"`
}

type jsonQuestion struct {
	ID           string     `json:"id"`
	Kind         string     `json:"kind"`
	Text         []string   `json:"text"`
	Answers      [][]string `json:"answers,omitempty"`
	NoCredit     []string   `json:"nocredit,omitempty"`
	Choices      []string   `json:"choices,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Timeout      int        `json:"timeout,omitempty"`
	Depends      string     `json:"depends,omitempty"`
	FrontContext string     `json:"front_context,omitempty"`
	BackContext  string     `json:"back_context,omitempty"`
}

// ParseJSONFile reads, schema-checks and validates the JSON quiz at path.
func ParseJSONFile(path string) (*quiz.Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quiz file: %w", err)
	}
	defer f.Close()
	return ParseJSON(f)
}

// ParseJSON reads a quiz in the JSON format. The document is validated
// against the quiz schema before decoding, so structural errors surface
// with schema paths instead of decode panics.
func ParseJSON(r io.Reader) (*quiz.Quiz, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := quizSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("quiz schema validation failed: %w", err)
	}

	var doc jsonQuiz
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}

	qz := &quiz.Quiz{Instructions: doc.Instructions}
	for _, jq := range doc.Questions {
		q := quiz.Question{
			ID:           jq.ID,
			Kind:         quiz.Kind(jq.Kind),
			Text:         jq.Text,
			NoCredit:     jq.NoCredit,
			Choices:      jq.Choices,
			Tags:         jq.Tags,
			TimeoutSecs:  jq.Timeout,
			Depends:      jq.Depends,
			FrontContext: jq.FrontContext,
			BackContext:  jq.BackContext,
		}
		for _, variants := range jq.Answers {
			q.Answers = append(q.Answers, quiz.Answer(variants))
		}
		qz.Questions = append(qz.Questions, q)
	}

	if err := quiz.Validate(qz); err != nil {
		return nil, err
	}
	return qz, nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// quizSchema compiles the quiz document schema once and caches it.
func quizSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://quiz.json", quizSchemaDefinition()); err != nil {
			schemaErr = fmt.Errorf("add quiz schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("schema://quiz.json")
	})
	return schema, schemaErr
}

// quizSchemaDefinition returns the JSON schema for quiz documents.
func quizSchemaDefinition() map[string]any {
	kinds := make([]any, 0, len(quiz.Kinds))
	for _, k := range quiz.Kinds {
		kinds = append(kinds, string(k))
	}
	stringArray := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type":                 "object",
		"required":             []any{"questions"},
		"additionalProperties": false,
		"properties": map[string]any{
			"instructions": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"required":             []any{"id", "kind", "text"},
					"additionalProperties": false,
					"properties": map[string]any{
						"id":   map[string]any{"type": "string", "minLength": 1},
						"kind": map[string]any{"enum": kinds},
						"text": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 1,
						},
						"answers": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 1,
							},
						},
						"nocredit":      stringArray,
						"choices":       stringArray,
						"tags":          stringArray,
						"timeout":       map[string]any{"type": "integer", "minimum": 0},
						"depends":       map[string]any{"type": "string"},
						"front_context": map[string]any{"type": "string"},
						"back_context":  map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

// Load parses the quiz at path, choosing the format by file extension.
// ".json" selects the JSON format; everything else uses the text format.
func Load(path string) (*quiz.Quiz, error) {
	if strings.HasSuffix(path, ".json") {
		return ParseJSONFile(path)
	}
	return ParseFile(path)
}
