package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	focusName = iota
	focusSize
	focusSubmit
)

var (
	focusedColor = lipgloss.Color("208")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// SetupModel is the form shown before a game: player name and board size.
type SetupModel struct {
	nameInput  textinput.Model
	gridSize   int
	focusIndex int
	width      int
	height     int
}

func NewInitialSetupModel(gridSize, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.Focus()
	ti.CharLimit = game.MaxPlayerNameLength
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput:  ti,
		gridSize:   min(max(gridSize, game.MinGridSize), game.MaxGridSize),
		focusIndex: focusName,
		width:      w,
		height:     h,
	}
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		if s == "esc" {
			return m, func() tea.Msg { return QuitGameMsg{} }
		}

		if s == "enter" || s == "tab" || s == "shift+tab" {
			if s == "enter" && m.focusIndex == focusSubmit {
				submit := SetupSubmitMsg{Name: m.playerName(), Size: m.gridSize}
				return m, func() tea.Msg { return submit }
			}
			if s == "shift+tab" {
				m.focusIndex = (m.focusIndex + 2) % 3
			} else {
				m.focusIndex = (m.focusIndex + 1) % 3
			}
			if m.focusIndex == focusName {
				return m, m.nameInput.Focus()
			}
			m.nameInput.Blur()
			return m, nil
		}

		if m.focusIndex == focusSize {
			switch s {
			case "left", "down", "-":
				m.gridSize = max(game.MinGridSize, m.gridSize-1)
			case "right", "up", "+":
				m.gridSize = min(game.MaxGridSize, m.gridSize+1)
			}
			return m, nil
		}

		// Remaining keys go to the focused text input.
		if m.focusIndex == focusName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) playerName() string {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return game.DefaultPlayerName
	}
	return name
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	sizeLabel := fmt.Sprintf("Board size: ◀ %d×%d ▶", m.gridSize, m.gridSize)
	if m.focusIndex == focusSize {
		b.WriteString(center(focusedStyle.Render(sizeLabel)))
	} else {
		b.WriteString(center(blurredStyle.Render(sizeLabel)))
	}
	b.WriteString("\n\n")

	if m.focusIndex == focusSubmit {
		b.WriteString(center(submitButtonStyle.Render("Start")))
	} else {
		b.WriteString(center(blurredButtonStyle.Render("Start")))
	}
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(tab/shift+tab to navigate, arrows to change size, enter to confirm, esc to go back)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
