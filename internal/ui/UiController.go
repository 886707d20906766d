package ui

import (
	"github.com/Mshel/ssh2048/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// IntroSubmitMsg carries the intro button that was pressed.
type IntroSubmitMsg int

// SetupSubmitMsg starts a game with the form values.
type SetupSubmitMsg struct {
	Name string
	Size int
}

// Options carries what a controller needs from the process that hosts it.
// Scores and HintStrategy may be empty.
type Options struct {
	GridSize     int
	Scores       game.ScoreStore
	HintStrategy string
	// NewRandom is called once per player; nil means a clock-seeded source.
	NewRandom func() game.RandomSource
}

type ControllerModel struct {
	CurrentScreen Screen
	Options       Options

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(options Options, screenWidth int, screenHeight int) ControllerModel {
	if options.GridSize == 0 {
		options.GridSize = game.DefaultGridSize
	}
	return ControllerModel{
		Options:       options,
		CurrentScreen: IntroScreen,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(options.GridSize, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			m.closeGame()
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// every screen keeps its own size, so all of them hear about it
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		if msg == introNewGame {
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		}
		m.closeGame()
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(nil, m.Options.Scores, nil, m.ScreenWidth, m.ScreenHeight)
		return m, tea.Sequence(m.GameModel.Init(), func() tea.Msg { return ShowLeaderboardMsg{} })

	case SetupSubmitMsg:
		m.closeGame()
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(m.newGameManager(msg), m.Options.Scores, m.newHintStrategy(),
			m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case QuitGameMsg:
		m.closeGame()
		m.GameModel = nil
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	default:
		// everything else belongs to the screen on display
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// closeGame releases whatever the current game view holds before it is
// dropped or replaced.
func (m ControllerModel) closeGame() {
	if view, ok := m.GameModel.(GameViewModel); ok {
		view.closeHint()
	}
}

func (m ControllerModel) newGameManager(setup SetupSubmitMsg) *game.GameManager {
	opts := []game.GameManagerOption{game.WithGridSize(setup.Size)}
	if m.Options.Scores != nil {
		opts = append(opts, game.WithScoreStore(m.Options.Scores))
	}
	if m.Options.NewRandom != nil {
		opts = append(opts, game.WithRandomSource(m.Options.NewRandom()))
	}
	log.Info("Player joined.", "player", setup.Name, "size", setup.Size)
	return game.NewGameManager(setup.Name, opts...)
}

func (m ControllerModel) newHintStrategy() game.Strategy {
	if m.Options.HintStrategy == "" {
		return nil
	}
	botStrategy, err := game.LoadBotStrategy(m.Options.HintStrategy)
	if err != nil {
		log.Warn("Hint strategy not loaded", "strategy", m.Options.HintStrategy, "error", err)
		return nil
	}
	strategy, err := game.NewLuaStrategy(botStrategy)
	if err != nil {
		log.Warn("Hint strategy not loaded", "strategy", m.Options.HintStrategy, "error", err)
		return nil
	}
	return strategy
}
