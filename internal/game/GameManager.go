package game

import (
	"github.com/charmbracelet/log"
)

// Outcome is what a single Move reports back to the UI.
type Outcome struct {
	State      State
	ScoreDelta int
	Moved      bool
}

// GameManager owns the current Session of one player and replaces it
// wholesale after every move. It is not safe for concurrent use; each
// terminal or SSH connection gets its own.
type GameManager struct {
	PlayerName string

	session   Session
	moves     int
	recorded  bool
	bestScore int

	gridSize int
	random   RandomSource
	scores   ScoreStore
	start    *Session
}

type GameManagerOption func(*GameManager)

func WithGridSize(size int) GameManagerOption {
	return func(gm *GameManager) { gm.gridSize = size }
}

func WithRandomSource(rnd RandomSource) GameManagerOption {
	return func(gm *GameManager) { gm.random = rnd }
}

func WithScoreStore(store ScoreStore) GameManagerOption {
	return func(gm *GameManager) { gm.scores = store }
}

// WithSession makes the first game start from session instead of a fresh
// board. Later NewGame calls start fresh.
func WithSession(session Session) GameManagerOption {
	return func(gm *GameManager) {
		gm.start = &session
		gm.gridSize = session.Grid().Size()
	}
}

func NewGameManager(playerName string, opts ...GameManagerOption) *GameManager {
	if playerName == "" {
		playerName = DefaultPlayerName
	}

	gm := &GameManager{
		PlayerName: playerName,
		gridSize:   DefaultGridSize,
	}
	for _, opt := range opts {
		opt(gm)
	}
	if gm.random == nil {
		gm.random = NewRandomSource(0)
	}

	if gm.scores != nil {
		best, err := gm.scores.GetBestScore()
		if err != nil {
			log.Warn("Could not load best score", "error", err)
		}
		gm.bestScore = best
	}

	if gm.start != nil {
		gm.session = *gm.start
		gm.start = nil
		return gm
	}
	gm.NewGame()
	return gm
}

// NewGame throws away the current session and starts a fresh one.
func (gm *GameManager) NewGame() {
	gm.session = NewSession(gm.gridSize, gm.random)
	gm.moves = 0
	gm.recorded = false
	log.Debug("New game started.", "player", gm.PlayerName, "size", gm.gridSize)
}

func (gm *GameManager) Session() Session {
	return gm.session
}

func (gm *GameManager) Moves() int {
	return gm.moves
}

func (gm *GameManager) BestScore() int {
	return max(gm.bestScore, gm.session.Score())
}

func (gm *GameManager) State() State {
	return gm.session.State()
}

// Move applies direction to the current session. Once the game is won or
// stuck further moves are ignored until NewGame.
func (gm *GameManager) Move(direction Direction) Outcome {
	if state := gm.session.State(); state != Active {
		return Outcome{State: state}
	}

	before := gm.session
	gm.session = before.Apply(direction, gm.random)
	gm.moves++

	slid, _ := before.Slide(direction)
	outcome := Outcome{
		State:      gm.session.State(),
		ScoreDelta: gm.session.Score() - before.Score(),
		Moved:      !slid.Grid().Equal(before.Grid()),
	}

	if outcome.State != Active {
		gm.recordResult(outcome.State)
	}
	return outcome
}

func (gm *GameManager) recordResult(state State) {
	if gm.recorded {
		return
	}
	gm.recorded = true
	gm.bestScore = gm.BestScore()

	log.Info("Game finished.", "player", gm.PlayerName, "outcome", state,
		"score", gm.session.Score(), "maxTile", gm.session.Grid().MaxTile(), "moves", gm.moves)

	if gm.scores == nil {
		return
	}
	err := gm.scores.SaveGameResult(GameResult{
		PlayerName: gm.PlayerName,
		Score:      gm.session.Score(),
		MaxTile:    gm.session.Grid().MaxTile(),
		Moves:      gm.moves,
		Outcome:    state,
	})
	if err != nil {
		log.Error("High score persist failed", "error", err)
	}
}

// HighScores is a convenience for the leaderboard screen; it is empty
// without a store.
func (gm *GameManager) HighScores(limit int) ([]Score, error) {
	if gm.scores == nil {
		return nil, nil
	}
	return gm.scores.GetHighScores(limit, 0)
}
