package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	introNewGame = iota
	introHighScores
)

// IntroModel is the opening menu.
type IntroModel struct {
	selected int // 0: New Game, 1: High Scores
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: introNewGame, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			// two buttons: any horizontal move toggles
			m.selected = 1 - m.selected
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return IntroSubmitMsg(selected) }
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

var titleAscii = `
 ██████╗  ██████╗ ██╗  ██╗ █████╗
 ╚════██╗██╔═████╗██║  ██║██╔══██╗
  █████╔╝██║██╔██║███████║╚█████╔╝
 ██╔═══╝ ████╔╝██║╚════██║██╔══██╗
 ███████╗╚██████╔╝     ██║╚█████╔╝
 ╚══════╝ ╚═════╝      ╚═╝ ╚════╝
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("208")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(titleAscii))
	sb.WriteString("\n")
	sb.WriteString(faintStyle.Render("Slide the tiles, merge equal numbers, reach 2048."))

	newGame := introButtonStyle.Render("New Game")
	highScores := introButtonStyle.Render("High Scores")

	if m.selected == introNewGame {
		newGame = introSelectedButtonStyle.Render("New Game")
	} else {
		highScores = introSelectedButtonStyle.Render("High Scores")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, newGame, highScores)

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
