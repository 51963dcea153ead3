package browse

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmQuestionStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(1, 0, 1, 2)

	confirmItemStyle = lipgloss.NewStyle().
				Padding(0, 0, 0, 4)

	confirmSelectedStyle = lipgloss.NewStyle().
				Foreground(palettes[ThemeLight].primary).
				Bold(true).
				Padding(0, 0, 0, 2)

	confirmHintStyle = lipgloss.NewStyle().
				Foreground(palettes[ThemeLight].textTertiary).
				Padding(1, 0, 0, 2)
)

var confirmChoices = []string{"No", "Yes"}

type confirmModel struct {
	question string
	cursor   int // index into confirmChoices
	answered bool
	yes      bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c", "n":
		m.answered, m.yes = true, false
		return m, tea.Quit
	case "y":
		m.answered, m.yes = true, true
		return m, tea.Quit
	case "up", "k", "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "right", "l", "tab":
		if m.cursor < len(confirmChoices)-1 {
			m.cursor++
		}
	case "enter":
		m.answered, m.yes = true, m.cursor == 1
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	s := confirmQuestionStyle.Render(m.question) + "\n"
	for i, c := range confirmChoices {
		if i == m.cursor {
			s += confirmSelectedStyle.Render("> "+c) + "\n"
		} else {
			s += confirmItemStyle.Render(c) + "\n"
		}
	}
	s += confirmHintStyle.Render("↑/↓ choose  enter confirm  y/n answer  q cancel")
	return s
}

// RunConfirm asks a yes/no question inline. The default answer is No.
func RunConfirm(question string) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question})
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).yes, nil
}
