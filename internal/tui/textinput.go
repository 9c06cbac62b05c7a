package tui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// answerInput wraps bubbles/textinput with the styling and reset behavior
// the session screen needs.
type answerInput struct {
	model textinput.Model
}

func newAnswerInput(placeholder string) answerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	return answerInput{model: ti}
}

func (a answerInput) Init() tea.Cmd {
	return a.model.Focus()
}

func (a answerInput) Update(msg tea.Msg) (answerInput, tea.Cmd) {
	var cmd tea.Cmd
	a.model, cmd = a.model.Update(msg)
	return a, cmd
}

func (a answerInput) View() string {
	return a.model.View()
}

func (a answerInput) Value() string {
	return a.model.Value()
}

func (a *answerInput) Reset() {
	a.model.SetValue("")
}
