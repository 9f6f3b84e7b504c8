package prompt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/ui/styles"
)

type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "answer"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

type confirmModel struct {
	question string
	input    textinput.Model
	keys     keyMap
	styles   *styles.Styles
	done     bool
	accepted bool
}

func newConfirmModel(question string, s *styles.Styles) confirmModel {
	input := textinput.New()
	input.Placeholder = "y/N"
	input.CharLimit = 3
	input.Width = 4
	input.Focus()

	return confirmModel{
		question: question,
		input:    input,
		keys:     defaultKeyMap(),
		styles:   s,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.done = true
			m.accepted = isYes(m.input.Value())
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.done = true
			m.accepted = false
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	question := m.styles.Question.Render(m.question)
	if m.done {
		answer := "no"
		if m.accepted {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", question, m.styles.Hint.Render(answer))
	}
	return fmt.Sprintf("%s %s\n%s\n", question, m.input.View(),
		m.styles.Hint.Render("enter to answer • esc to cancel"))
}

// TeaPrompter asks the question with an inline bubbletea program
type TeaPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer. Cancelling counts as "no".
func (p *TeaPrompter) Confirm(question string) (bool, error) {
	s := styles.NewStyles(lipgloss.NewRenderer(p.Out))
	program := tea.NewProgram(newConfirmModel(question, s),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	)

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected prompt model %T", final)
	}
	return m.accepted, nil
}
