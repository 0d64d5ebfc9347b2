// # internal/scaffold/tui.go
package scaffold

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docwatch/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	entityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))
)

type keyMap struct {
	Accept key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Skip, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Accept, k.Skip, k.Quit}}
}

var keys = keyMap{
	Accept: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "accept"),
	),
	Skip: key.NewBinding(
		key.WithKeys("n", "s"),
		key.WithHelp("n", "skip"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type confirmModel struct {
	suggestions []model.Suggestion
	index       int
	accepted    []model.Suggestion
	help        help.Model
	done        bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Accept):
		m.accepted = append(m.accepted, m.suggestions[m.index])
		m.index++
	case key.Matches(keyMsg, keys.Skip):
		m.index++
	case key.Matches(keyMsg, keys.Quit):
		m.done = true
		return m, tea.Quit
	}

	if m.index >= len(m.suggestions) {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.index >= len(m.suggestions) {
		return ""
	}

	s := m.suggestions[m.index]
	header := titleStyle.Render(fmt.Sprintf("Link suggestion %d/%d", m.index+1, len(m.suggestions)))
	return fmt.Sprintf(
		"%s\n\n%s at %s\n  -> doc section %q (%s)\n  -> %s\n\n%s\n",
		header,
		entityStyle.Render(s.Entity.Name),
		s.Entity.Location.String(),
		s.Section.ID,
		scoreStyle.Render(fmt.Sprintf("%.0f%% match", s.Score*100)),
		AnnotationLine(s.Entity.Location.File, s.Section.ID),
		m.help.View(keys),
	)
}

// Confirm walks the suggestions one by one and returns the accepted
// subset.
func Confirm(suggestions []model.Suggestion) ([]model.Suggestion, error) {
	if len(suggestions) == 0 {
		return nil, nil
	}

	m := confirmModel{suggestions: suggestions, help: help.New()}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}
	return final.(confirmModel).accepted, nil
}
