package tui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anirudhs/quizdrill/internal/quiz"
	"github.com/anirudhs/quizdrill/internal/session"
)

// phase is the session screen's display state.
type phase int

const (
	phaseAsking phase = iota
	phaseFeedback
	phaseJudging // ungraded question awaiting a self-assessment
	phaseQuitConfirm
	phaseSummary
)

// tickMsg drives the countdown display on timed questions.
type tickMsg time.Time

// Model is the root Bubble Tea model for a quiz session.
type Model struct {
	runner       *session.Runner
	instructions string

	phase      phase
	input      answerInput
	lines      []string // accumulated lines for list questions
	mcOptions  []string // shuffled options for multiple choice
	mcSelected int
	askedAt    time.Time
	summary    *session.Summary
	err        error

	width  int
	height int
}

// New creates the session model. instructions is the quiz-level preamble
// shown above the first question, possibly empty.
func New(runner *session.Runner, instructions string) Model {
	m := Model{
		runner:       runner,
		instructions: instructions,
		input:        newAnswerInput("Type your answer..."),
	}
	m.prepareQuestion()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.maybeTick())
}

// prepareQuestion resets per-question state for the runner's current
// question, or moves to the summary when the runner is done.
func (m *Model) prepareQuestion() {
	q := m.runner.Current()
	if q == nil {
		m.summary = m.runner.BuildSummary()
		m.phase = phaseSummary
		return
	}

	m.phase = phaseAsking
	m.lines = nil
	m.input = newAnswerInput(placeholderFor(q))
	m.askedAt = time.Now()

	m.mcOptions = nil
	m.mcSelected = 0
	if q.Kind == quiz.MultipleChoice {
		m.mcOptions = append(m.mcOptions, q.Answers[0].Canonical())
		m.mcOptions = append(m.mcOptions, q.Choices...)
		rand.Shuffle(len(m.mcOptions), func(i, j int) {
			m.mcOptions[i], m.mcOptions[j] = m.mcOptions[j], m.mcOptions[i]
		})
	}
}

func placeholderFor(q *quiz.Question) string {
	switch {
	case q.Kind.ListShaped():
		return "One answer per line, blank line to finish..."
	case q.Kind == quiz.Ungraded:
		return "Answer in your own words..."
	default:
		return "Type your answer..."
	}
}

// maybeTick returns a countdown tick when the current question is timed.
func (m Model) maybeTick() tea.Cmd {
	q := m.runner.Current()
	if m.phase != phaseAsking || q == nil || q.TimeoutSecs == 0 {
		return nil
	}
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, m.maybeTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAsking && m.runner.Current() != nil && m.mcOptions == nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.err != nil {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			m.summary = m.runner.BuildSummary()
			m.phase = phaseSummary
		case "n", "N", "esc":
			m.phase = phaseAsking
		}
		return m, nil

	case phaseSummary:
		return m, tea.Quit

	case phaseJudging:
		switch key {
		case "y", "Y":
			m.err = m.runner.MarkUngradedCorrect(context.Background(), true)
		case "n", "N":
			m.err = m.runner.MarkUngradedCorrect(context.Background(), false)
		default:
			return m, nil
		}
		if m.err != nil {
			return m, nil
		}
		m.prepareQuestion()
		return m, tea.Batch(m.input.Init(), m.maybeTick())

	case phaseFeedback:
		if key == "!" {
			// The grader was too strict; take full credit.
			m.err = m.runner.Override(context.Background())
			return m, nil
		}
		m.prepareQuestion()
		return m, tea.Batch(m.input.Init(), m.maybeTick())

	case phaseAsking:
		return m.handleAskingKey(msg)
	}
	return m, nil
}

func (m Model) handleAskingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	q := m.runner.Current()
	if q == nil {
		return m, nil
	}

	if key == "esc" {
		m.phase = phaseQuitConfirm
		return m, nil
	}

	if m.mcOptions != nil {
		switch key {
		case "up", "k":
			if m.mcSelected > 0 {
				m.mcSelected--
			}
			return m, nil
		case "down", "j":
			if m.mcSelected < len(m.mcOptions)-1 {
				m.mcSelected++
			}
			return m, nil
		case "enter":
			return m.submit([]string{m.mcOptions[m.mcSelected]})
		}
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			n := int(key[0] - '1')
			if n < len(m.mcOptions) {
				m.mcSelected = n
				return m.submit([]string{m.mcOptions[n]})
			}
		}
		return m, nil
	}

	if key == "enter" {
		line := m.input.Value()
		if !q.Kind.ListShaped() {
			return m.submit([]string{line})
		}
		if line == "" {
			// Blank line ends the list early.
			return m.submit(m.lines)
		}
		m.lines = append(m.lines, line)
		m.input.Reset()
		if len(m.lines) == len(q.Answers) {
			return m.submit(m.lines)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(lines []string) (tea.Model, tea.Cmd) {
	out, err := m.runner.Submit(context.Background(), lines)
	if err != nil {
		m.err = err
		return m, nil
	}
	if out.Result.Ungraded {
		m.phase = phaseJudging
	} else {
		m.phase = phaseFeedback
	}
	return m, nil
}

// progress returns a "question 3 of 10" display string.
func (m Model) progress() string {
	idx := m.runner.Index()
	if idx >= m.runner.Len() {
		idx = m.runner.Len() - 1
	}
	return fmt.Sprintf("%d/%d", idx+1, m.runner.Len())
}

// Run drives a full session in the terminal and blocks until it ends.
func Run(runner *session.Runner, instructions string) error {
	p := tea.NewProgram(New(runner, instructions))
	_, err := p.Run()
	return err
}
