package ui

import (
	"fmt"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal Game States for GameViewModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
	StateLeaderboard
)

// QuitGameMsg is sent to the Controller to switch back to the IntroScreen
// when the user leaves the leaderboard without having played.
type QuitGameMsg struct{}

// ShowLeaderboardMsg asks the game view to open the leaderboard directly.
type ShowLeaderboardMsg struct{}

// --- GameViewModel Definition ---

type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int
	gameManager  *game.GameManager // nil if viewing leaderboard from IntroScreen
	scores       game.ScoreStore
	hint         game.Strategy

	keys      keyMap
	help      help.Model
	lastDelta int
	hintText  string

	gameState     GameState
	gameOverState GameOverState
	leaderboard   []game.Score
}

func NewGameModel(gm *game.GameManager, scores game.ScoreStore, hint game.Strategy, screenWidth int, screenHeight int) GameViewModel {
	m := GameViewModel{
		gameManager:  gm,
		scores:       scores,
		hint:         hint,
		keys:         defaultKeyMap,
		help:         help.New(),
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
	// a scripted board can already be over
	if gm != nil && gm.State() != game.Active {
		m.enterGameOver(gm.State())
	}
	return m
}

// --- Init/Update/View Methods ---

func (m GameViewModel) Init() tea.Cmd {
	return nil
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.gameOverState.ScreenWidth, m.gameOverState.ScreenHeight = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ShowLeaderboardMsg:
		m.openLeaderboard()
		return m, nil

	case tea.KeyMsg:
		switch m.gameState {
		case StateLeaderboard:
			return m.updateLeaderboard(msg)
		case StateGameOver:
			return m.updateGameOver(msg)
		default:
			return m.updatePlaying(msg)
		}
	}

	return m, nil
}

func (m GameViewModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.gameManager == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.closeHint()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.gameManager.NewGame()
		m.lastDelta, m.hintText = 0, ""
		return m, nil
	case key.Matches(msg, m.keys.Hint):
		m.hintText = m.suggestMove()
		return m, nil
	}

	direction, ok := m.keys.direction(msg)
	if !ok {
		return m, nil
	}

	outcome := m.gameManager.Move(direction)
	m.lastDelta = outcome.ScoreDelta
	m.hintText = ""
	if outcome.State != game.Active {
		m.enterGameOver(outcome.State)
	}
	return m, nil
}

func (m GameViewModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
	case "right", "l", "tab":
		m.gameOverState.SelectedButton = min(len(gameOverButtons)-1, m.gameOverState.SelectedButton+1)
	case "y", "r":
		return m.restart()
	case "n", "q", "esc":
		m.closeHint()
		return m, tea.Quit
	case "enter":
		switch m.gameOverState.SelectedButton {
		case tryAgainButton:
			return m.restart()
		case highScoresButton:
			m.openLeaderboard()
		default:
			m.closeHint()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameViewModel) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		if m.gameManager != nil {
			// Player was in a game, go back to the Game Over dialog
			m.gameState = StateGameOver
			return m, nil
		}
		return m, func() tea.Msg { return QuitGameMsg{} }
	}
	return m, nil
}

func (m GameViewModel) restart() (tea.Model, tea.Cmd) {
	m.gameManager.NewGame()
	m.gameState = StatePlaying
	m.lastDelta, m.hintText = 0, ""
	return m, nil
}

func (m *GameViewModel) enterGameOver(state game.State) {
	m.gameState = StateGameOver
	m.gameOverState.Outcome = state
	m.gameOverState.FinalScore = m.gameManager.Session().Score()
	m.gameOverState.MaxTile = m.gameManager.Session().Grid().MaxTile()
	m.gameOverState.SelectedButton = tryAgainButton
	log.Info("Game over screen.", "player", m.gameManager.PlayerName, "outcome", state)
}

func (m *GameViewModel) openLeaderboard() {
	m.gameState = StateLeaderboard
	m.leaderboard = nil
	if m.scores == nil {
		return
	}
	scores, err := m.scores.GetHighScores(game.LeaderboardPageSize, 0)
	if err != nil {
		log.Error("Could not load high scores", "error", err)
		return
	}
	m.leaderboard = scores
}

// closeHint releases the hint strategy when it holds resources, such as a
// Lua state.
func (m GameViewModel) closeHint() {
	if closer, ok := m.hint.(interface{ Close() }); ok {
		closer.Close()
	}
}

func (m GameViewModel) suggestMove() string {
	if m.hint == nil {
		return "No hint strategy loaded."
	}
	direction, err := m.hint.NextDirection(m.gameManager.Session())
	if err != nil {
		log.Warn("Hint strategy failed", "error", err)
		return "Hint unavailable."
	}
	return fmt.Sprintf("Hint: try %s", direction)
}

func (m GameViewModel) View() string {
	if m.gameState == StateLeaderboard {
		return m.gameOverState.RenderLeaderboardScreen(m.leaderboard)
	}

	if m.gameManager == nil {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Game Loading...")
	}

	board := renderBoard(m.gameManager.Session().Grid())

	var footer string
	if m.gameState == StateGameOver {
		footer = m.gameOverState.RenderGameOverDialog()
	} else {
		footer = m.help.View(m.keys)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("2 0 4 8"),
		board,
		m.renderStatusPanel(),
		footer,
	)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}
