package quizfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

// ParseError reports a problem in a quiz file with its line number.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseFile reads and parses the quiz file at path, then validates it.
func ParseFile(path string) (*quiz.Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quiz file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a quiz in the line-oriented text format:
//
//	- instructions: Answer from memory.
//	- timeout: 20
//
//	[capital-fr] What is the capital of France?
//	Paris
//	- tags: geography, europe
//
//	[planets] Name the inner planets.
//	Mercury
//	Venus
//	Earth / Terra
//	Mars
//	- ordered: false
//	- nocredit: Pluto
//
// Entries start with a bracketed id, answers follow one per line with
// "/"-separated equivalent variants, and "- key: value" lines attach
// attributes. A quiz-level settings block may precede the first entry.
// Lines starting with "#" are comments. The parsed quiz is validated
// before it is returned.
func Parse(r io.Reader) (*quiz.Quiz, error) {
	p := &parser{scanner: bufio.NewScanner(r)}

	settings, err := p.readSettings()
	if err != nil {
		return nil, err
	}

	qz := &quiz.Quiz{Instructions: settings.instructions}
	for {
		entry, err := p.readEntry()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			break
		}
		q, err := entryToQuestion(entry)
		if err != nil {
			return nil, err
		}
		applySettings(settings, q)
		qz.Questions = append(qz.Questions, *q)
	}

	if err := quiz.Validate(qz); err != nil {
		return nil, err
	}
	return qz, nil
}

// settings holds quiz-level defaults read from the leading block.
type settings struct {
	instructions string
	timeoutSecs  int
}

// applySettings fills in the quiz-level default timeout for single-answer
// questions that don't set their own.
func applySettings(s settings, q *quiz.Question) {
	if s.timeoutSecs > 0 && q.TimeoutSecs == 0 && q.Kind.SingleAnswer() {
		q.TimeoutSecs = s.timeoutSecs
	}
}

// entry is one raw block from the file.
type entry struct {
	line       int
	id         string
	text       string
	following  []string
	attributes map[string]string
}

func entryToQuestion(e *entry) (*quiz.Question, error) {
	q := &quiz.Question{
		ID:   e.id,
		Text: []string{e.text},
	}

	if tags, ok := e.attributes["tags"]; ok {
		q.Tags = splitTrim(tags, ",")
	}
	if dep, ok := e.attributes["depends"]; ok {
		q.Depends = dep
	}
	if timeout, ok := e.attributes["timeout"]; ok {
		n, err := strconv.Atoi(timeout)
		if err != nil || n < 0 {
			return nil, &ParseError{e.line, fmt.Sprintf("invalid timeout %q", timeout)}
		}
		q.TimeoutSecs = n
	}

	switch {
	case len(e.following) == 1 && e.attributes["ungraded"] == "true":
		q.Kind = quiz.Ungraded
		q.Answers = []quiz.Answer{splitTrim(e.following[0], "/")}

	case len(e.following) == 1 && e.attributes["choices"] != "":
		q.Kind = quiz.MultipleChoice
		q.Answers = []quiz.Answer{splitTrim(e.following[0], "/")}
		q.Choices = splitTrim(e.attributes["choices"], "/")

	case len(e.following) == 1:
		q.Kind = quiz.ShortAnswer
		q.Answers = []quiz.Answer{splitTrim(e.following[0], "/")}

	case len(e.following) == 0:
		// Flashcard form: "front = back", with optional [context] on
		// either side.
		eq := strings.Index(e.text, "=")
		if eq < 0 {
			return nil, &ParseError{e.line, "entry has no answer lines and is not a flashcard"}
		}
		front, frontCtx, err := splitContext(strings.TrimSpace(e.text[:eq]), e.line)
		if err != nil {
			return nil, err
		}
		back, backCtx, err := splitContext(strings.TrimSpace(e.text[eq+1:]), e.line)
		if err != nil {
			return nil, err
		}
		q.Kind = quiz.Flashcard
		q.Text = []string{front}
		q.Answers = []quiz.Answer{splitTrim(back, "/")}
		q.FrontContext = frontCtx
		q.BackContext = backCtx

	default:
		if ordered, ok := e.attributes["ordered"]; ok && ordered != "true" && ordered != "false" {
			return nil, &ParseError{e.line, fmt.Sprintf("ordered must be true or false, got %q", ordered)}
		}
		if e.attributes["ordered"] == "true" {
			q.Kind = quiz.OrderedListAnswer
		} else {
			q.Kind = quiz.ListAnswer
		}
		for _, line := range e.following {
			q.Answers = append(q.Answers, splitTrim(line, "/"))
		}
		if nc, ok := e.attributes["nocredit"]; ok {
			q.NoCredit = splitTrim(nc, "/")
		}
	}

	return q, nil
}

// parser scans the file one logical line at a time, with one line of
// pushback for block boundaries.
type parser struct {
	scanner *bufio.Scanner
	lineNum int
	pushed  *line
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineFirst           // "[id] text"
	linePair            // "- key: value"
	lineFollowing
)

type line struct {
	kind  lineKind
	num   int
	id    string
	text  string
	key   string
	value string
}

// readSettings consumes leading "- key: value" pairs up to the first blank
// line or entry.
func (p *parser) readSettings() (settings, error) {
	var s settings
	for {
		ln, err := p.next()
		if err != nil {
			return s, err
		}
		if ln == nil || ln.kind == lineBlank {
			return s, nil
		}
		if ln.kind != linePair {
			p.push(ln)
			return s, nil
		}
		switch ln.key {
		case "instructions":
			s.instructions = ln.value
		case "timeout":
			n, err := strconv.Atoi(ln.value)
			if err != nil || n < 0 {
				return s, &ParseError{ln.num, fmt.Sprintf("invalid timeout %q", ln.value)}
			}
			s.timeoutSecs = n
		default:
			return s, &ParseError{ln.num, fmt.Sprintf("unknown quiz setting %q", ln.key)}
		}
	}
}

// readEntry reads the next question block. Returns nil at end of input.
func (p *parser) readEntry() (*entry, error) {
	var first *line
	for {
		ln, err := p.next()
		if err != nil {
			return nil, err
		}
		if ln == nil {
			return nil, nil
		}
		if ln.kind == lineBlank {
			continue
		}
		if ln.kind != lineFirst {
			return nil, &ParseError{ln.num, "expected an entry starting with [id]"}
		}
		first = ln
		break
	}

	e := &entry{
		line:       first.num,
		id:         first.id,
		text:       first.text,
		attributes: make(map[string]string),
	}
	for {
		ln, err := p.next()
		if err != nil {
			return nil, err
		}
		if ln == nil || ln.kind == lineBlank {
			return e, nil
		}
		switch ln.kind {
		case lineFollowing:
			e.following = append(e.following, ln.text)
		case linePair:
			e.attributes[ln.key] = ln.value
		case lineFirst:
			return nil, &ParseError{ln.num, "entries must be separated by a blank line"}
		}
	}
}

func (p *parser) push(ln *line) {
	p.pushed = ln
}

// next returns the next classified line, skipping comments. Returns nil at
// end of input.
func (p *parser) next() (*line, error) {
	if p.pushed != nil {
		ln := p.pushed
		p.pushed = nil
		return ln, nil
	}

	for p.scanner.Scan() {
		p.lineNum++
		raw := strings.TrimSpace(p.scanner.Text())

		switch {
		case strings.HasPrefix(raw, "#"):
			continue
		case raw == "":
			return &line{kind: lineBlank, num: p.lineNum}, nil
		case strings.HasPrefix(raw, "- "):
			colon := strings.Index(raw, ":")
			if colon < 0 {
				return nil, &ParseError{p.lineNum, "attribute line has no colon"}
			}
			return &line{
				kind:  linePair,
				num:   p.lineNum,
				key:   strings.TrimSpace(raw[2:colon]),
				value: strings.TrimSpace(raw[colon+1:]),
			}, nil
		case strings.HasPrefix(raw, "["):
			close := strings.Index(raw, "]")
			if close < 0 {
				return nil, &ParseError{p.lineNum, "unterminated [id]"}
			}
			return &line{
				kind: lineFirst,
				num:  p.lineNum,
				id:   strings.TrimSpace(raw[1:close]),
				text: strings.TrimSpace(raw[close+1:]),
			}, nil
		default:
			return &line{kind: lineFollowing, num: p.lineNum, text: raw}, nil
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	return nil, nil
}

// splitContext splits "perro [noun]" into the text and its bracketed
// context annotation.
func splitContext(s string, lineNum int) (string, string, error) {
	open := strings.Index(s, "[")
	if open < 0 {
		return s, "", nil
	}
	close := strings.Index(s[open:], "]")
	if close < 0 {
		return "", "", &ParseError{lineNum, "unterminated [context]"}
	}
	close += open
	text := strings.TrimSpace(s[:open])
	ctx := strings.TrimSpace(s[open+1 : close])
	return text, ctx, nil
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
