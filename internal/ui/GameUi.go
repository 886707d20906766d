package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/charmbracelet/lipgloss"
)

// --- Styling Definitions ---

const (
	cellWidth  = 6
	cellHeight = 3
)

// lowResColor converts a 6x6x6 RGB cube coordinate (0-5 per channel) into
// its xterm-256 palette index.
func lowResColor(r, g, b int) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(16 + 36*r + 6*g + b))
}

var (
	borderColor = lowResColor(2, 2, 2)
	blankColor  = lowResColor(3, 3, 3)
	darkText    = lowResColor(0, 0, 0)
	lightText   = lowResColor(5, 5, 5)
	// anything above 1024 that is not listed falls back to this
	hotColor = lowResColor(5, 0, 0)

	tileBackgrounds = map[int]lipgloss.Color{
		2:    lowResColor(5, 5, 5),
		4:    lowResColor(5, 5, 4),
		8:    lowResColor(5, 4, 4),
		16:   lowResColor(5, 4, 3),
		32:   lowResColor(5, 3, 3),
		64:   lowResColor(5, 3, 2),
		128:  lowResColor(5, 2, 2),
		256:  lowResColor(5, 2, 1),
		512:  lowResColor(5, 1, 1),
		1024: lowResColor(5, 1, 0),
	}

	gapStyle = lipgloss.NewStyle().Background(borderColor)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")).
			Padding(0, 1)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(0, 2)

	scoreDeltaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("87"))
	faintStyle      = lipgloss.NewStyle().Faint(true)
)

func tileColors(tile game.Tile) (foreground, background lipgloss.Color) {
	if tile.IsBlank() {
		return blankColor, blankColor
	}
	background, ok := tileBackgrounds[tile.Value()]
	if !ok {
		background = hotColor
	}
	if tile.Value() <= 16 {
		return darkText, background
	}
	return lightText, background
}

// renderTile draws one cell as a cellWidth×cellHeight coloured block with
// the number on the middle line.
func renderTile(tile game.Tile) string {
	foreground, background := tileColors(tile)
	style := lipgloss.NewStyle().Foreground(foreground).Background(background)

	pad := strings.Repeat(" ", cellWidth)
	label := pad
	if !tile.IsBlank() {
		label = fmt.Sprintf(" %4d ", tile.Value())
	}
	return style.Render(pad + "\n" + label + "\n" + pad)
}

func renderBoard(grid game.Grid) string {
	size := grid.Size()
	boardWidth := size*cellWidth + size + 1

	verticalGap := gapStyle.Render(strings.TrimSuffix(strings.Repeat(" \n", cellHeight), "\n"))
	horizontalGap := gapStyle.Render(strings.Repeat(" ", boardWidth))

	lines := []string{horizontalGap}
	for row := 0; row < size; row++ {
		cells := []string{verticalGap}
		for col := 0; col < size; col++ {
			cells = append(cells, renderTile(grid.At(row, col)), verticalGap)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...), horizontalGap)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStatusPanel draws score, best and the last move's gain.
func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder
	session := m.gameManager.Session()

	statusContent.WriteString(fmt.Sprintf("Player: %s\n", m.gameManager.PlayerName))
	statusContent.WriteString(fmt.Sprintf("Score: %d", session.Score()))
	if m.lastDelta > 0 {
		statusContent.WriteString(" " + scoreDeltaStyle.Render(fmt.Sprintf("+%d", m.lastDelta)))
	}
	statusContent.WriteString("\n")
	statusContent.WriteString(fmt.Sprintf("Best: %d\n", m.gameManager.BestScore()))
	statusContent.WriteString(fmt.Sprintf("Moves: %d", m.gameManager.Moves()))
	if m.hintText != "" {
		statusContent.WriteString("\n" + hintStyle.Render(m.hintText))
	}

	return statusPanelStyle.Render(statusContent.String())
}
