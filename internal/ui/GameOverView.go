package ui

import (
	"fmt"
	"strconv"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	tryAgainButton = iota
	highScoresButton
	quitButton
)

var gameOverButtons = []string{"Yes", "High Scores", "No"}

const leaderboardTileColumn = 3

// GameOverState is what the end-of-game dialog and the leaderboard render from.
type GameOverState struct {
	Outcome        game.State
	FinalScore     int
	MaxTile        int
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 2).
				Margin(0, 1)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("208")).
				Foreground(lipgloss.Color("0")).
				Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 2).
			Align(lipgloss.Center)

	wonTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	lostTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	leaderboardTitleStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	leaderboardHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1)
	leaderboardRowStyle    = lipgloss.NewStyle().Padding(0, 1)
	leaderboardBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	leaderboardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1)
)

func (g *GameOverState) title() string {
	if g.Outcome == game.Won {
		return wonTitleStyle.Render("You win!")
	}
	return lostTitleStyle.Render("Game over!")
}

// RenderGameOverDialog draws the end-of-game prompt shown under the final board.
func (g *GameOverState) RenderGameOverDialog() string {
	stats := fmt.Sprintf("Final score: %d   Highest tile: %d", g.FinalScore, g.MaxTile)

	buttons := make([]string, len(gameOverButtons))
	for i, label := range gameOverButtons {
		if i == g.SelectedButton {
			buttons[i] = selectedButtonStyle.Render(label)
		} else {
			buttons[i] = gameOverButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		g.title(),
		stats,
		"Try again?",
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
	)
	return dialogStyle.Render(content)
}

// RenderLeaderboardScreen draws the stored high scores table.
func (g *GameOverState) RenderLeaderboardScreen(scores []game.Score) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(leaderboardBorderStyle).
		Headers("#", "Player", "Score", "Tile", "Result").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return leaderboardHeaderStyle
			case col == leaderboardTileColumn && row < len(scores):
				foreground, background := tileColors(game.NumberTile(max(scores[row].MaxTile, 2)))
				return leaderboardRowStyle.Foreground(foreground).Background(background)
			default:
				return leaderboardRowStyle
			}
		})

	for i, score := range scores {
		t.Row(
			strconv.Itoa(i+1),
			score.PlayerName,
			strconv.Itoa(score.Score),
			strconv.Itoa(score.MaxTile),
			score.Outcome,
		)
	}

	body := t.Render()
	if len(scores) == 0 {
		body = lipgloss.JoinVertical(lipgloss.Center, body, faintStyle.Render("No finished games yet."))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		leaderboardTitleStyle.Render("HIGH SCORES"),
		body,
		faintStyle.Margin(1, 0).Render("Press ESC or ENTER to go back."),
	)
	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight, lipgloss.Center, lipgloss.Center,
		leaderboardFrameStyle.Render(content))
}
