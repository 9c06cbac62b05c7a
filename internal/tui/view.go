package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	var content string
	switch {
	case m.err != nil:
		content = wrongStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			"\n\n" + dimStyle.Render("Press any key to exit.")
	case m.phase == phaseSummary:
		content = m.renderSummary()
	case m.phase == phaseQuitConfirm:
		content = m.renderQuitConfirm()
	case m.phase == phaseJudging:
		content = m.renderJudging()
	case m.phase == phaseFeedback:
		content = m.renderFeedback()
	default:
		content = m.renderQuestion()
	}

	v.SetContent("\n" + content)
	return v
}

func (m Model) renderQuestion() string {
	q := m.runner.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	if m.runner.Index() == 0 && m.instructions != "" {
		b.WriteString(dimStyle.Render(m.instructions))
		b.WriteString("\n\n")
	}

	header := dimStyle.Render("  " + m.progress())
	if tally := m.runner.BuildSummary(); tally.Answered > 0 {
		header += "  " + correctStyle.Render(fmt.Sprintf("✓%d", tally.Correct))
		if tally.Incorrect+tally.Partial > 0 {
			header += " " + wrongStyle.Render(fmt.Sprintf("✗%d", tally.Incorrect+tally.Partial))
		}
	}
	if q.TimeoutSecs > 0 {
		remaining := q.TimeoutSecs - int(time.Since(m.askedAt).Seconds())
		var timer string
		if remaining >= 0 {
			timer = accentStyle.Render(fmt.Sprintf("%ds", remaining))
		} else {
			timer = wrongStyle.Render(fmt.Sprintf("%ds over", -remaining))
		}
		header += "  " + timer
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	prompt := q.Prompt()
	if q.FrontContext != "" {
		prompt += " " + dimStyle.Render("["+q.FrontContext+"]")
	}
	b.WriteString(promptStyle.Render("  " + prompt))
	b.WriteString("\n\n")

	switch {
	case m.mcOptions != nil:
		for i, opt := range m.mcOptions {
			line := fmt.Sprintf("  %d) %s", i+1, opt)
			if i == m.mcSelected {
				line = selectedStyle.Render("> " + line[2:])
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  Pick a number or use arrows + Enter"))

	case q.Kind.ListShaped():
		for i, line := range m.lines {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %d. %s", i+1, line)))
			b.WriteString("\n")
		}
		b.WriteString("  " + m.input.View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d answers expected. Blank line to stop early.", len(q.Answers))))

	default:
		b.WriteString("  " + m.input.View())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Enter submit · Esc quit"))
	return b.String()
}

func (m Model) renderFeedback() string {
	out := m.runner.Last()
	if out == nil {
		return ""
	}
	res := out.Result

	var b strings.Builder
	switch {
	case out.Overrode:
		b.WriteString(correctStyle.Render("  Marked correct."))
	case res.Correct():
		b.WriteString(correctStyle.Render("  Correct!"))
	case res.PartiallyCorrect():
		b.WriteString(partialStyle.Render(fmt.Sprintf("  Partially correct: %.0f%%", res.Score*100)))
	default:
		b.WriteString(wrongStyle.Render("  Incorrect."))
	}
	b.WriteString("\n")

	if res.TimedOut {
		b.WriteString(partialStyle.Render("  Over time, credit reduced."))
		b.WriteString("\n")
	}

	if len(res.Missed) > 0 && !out.Overrode {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  You missed:"))
		b.WriteString("\n")
		for _, miss := range res.Missed {
			b.WriteString(accentStyle.Render("    " + miss))
			b.WriteString("\n")
		}
	}

	if out.Question.Kind == quiz.Flashcard && out.Question.BackContext != "" {
		b.WriteString(dimStyle.Render("  [" + out.Question.BackContext + "]"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Any key continue · ! accept my answer"))
	return b.String()
}

func (m Model) renderJudging() string {
	out := m.runner.Last()
	if out == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render("  Sample answer:"))
	b.WriteString("\n")
	for _, a := range out.Question.Answers {
		b.WriteString(accentStyle.Render("    " + a.Canonical()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(promptStyle.Render("  Count it as correct? [y/n]"))
	return b.String()
}

func (m Model) renderQuitConfirm() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("  End the session early?"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Answers given so far are already saved."))
	b.WriteString("\n\n")
	b.WriteString(correctStyle.Render("  [Y] Yes, stop here"))
	b.WriteString("\n")
	b.WriteString(accentStyle.Render("  [N] No, keep going"))
	return b.String()
}

func (m Model) renderSummary() string {
	s := m.summary
	if s == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render("  Session complete"))
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Answered:   %d\n", s.Answered))
	b.WriteString("  " + correctStyle.Render(fmt.Sprintf("Correct:    %d", s.Correct)) + "\n")
	if s.Partial > 0 {
		b.WriteString("  " + partialStyle.Render(fmt.Sprintf("Partial:    %d", s.Partial)) + "\n")
	}
	b.WriteString("  " + wrongStyle.Render(fmt.Sprintf("Incorrect:  %d", s.Incorrect)) + "\n")
	if s.Ungraded > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  Ungraded:   %d", s.Ungraded)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Score: %.0f%%  in %s\n", s.Score*100, s.Duration.Round(time.Second)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Press any key to exit."))
	return b.String()
}
