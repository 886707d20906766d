package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStrategy(t *testing.T, definition string) *LuaStrategy {
	t.Helper()
	strategy, err := NewLuaStrategy(&BotStrategy{StrategyName: t.Name(), StrategyDefinition: definition})
	require.NoError(t, err)
	t.Cleanup(strategy.Close)
	return strategy
}

func TestLoadBotStrategy(t *testing.T) {
	for _, name := range BuiltinStrategyNames() {
		strategy, err := LoadBotStrategy(name)
		require.NoError(t, err)
		require.Equal(t, name, strategy.StrategyName)
	}

	defaultStrategy, err := LoadBotStrategy("")
	require.NoError(t, err)
	require.Equal(t, DefaultStrategyName, defaultStrategy.StrategyName)

	_, err = LoadBotStrategy(filepath.Join(t.TempDir(), "missing.lua"))
	require.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestLoadBotStrategy_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "up.lua")
	require.NoError(t, os.WriteFile(path, []byte(`function nextDirection(state) return "up" end`), 0o644))

	botStrategy, err := LoadBotStrategy(path)
	require.NoError(t, err)

	strategy, err := NewLuaStrategy(botStrategy)
	require.NoError(t, err)
	defer strategy.Close()

	direction, err := strategy.NextDirection(NewSession(4, NewFixedSource(0)))
	require.NoError(t, err)
	require.Equal(t, Up, direction)
}

func TestNewLuaStrategy_Errors(t *testing.T) {
	_, err := NewLuaStrategy(&BotStrategy{StrategyName: "broken", StrategyDefinition: "function ("})
	require.Error(t, err)

	_, err = NewLuaStrategy(&BotStrategy{StrategyName: "empty", StrategyDefinition: "local x = 1"})
	require.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestLuaStrategy_SeesGridAndMoves(t *testing.T) {
	strategy := newStrategy(t, `
		function nextDirection(state)
			if state.size == 4 and state.grid[1][1] == 2 and state.score == 8
				and state.moves.up == nil and state.moves.right.blanks == 15 then
				return "right"
			end
			return "up"
		end
	`)
	session := NewSessionFromGrid(NewGridFromValues([][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}), 8)

	direction, err := strategy.NextDirection(session)
	require.NoError(t, err)
	require.Equal(t, Right, direction)
}

func TestLuaStrategy_InvalidResults(t *testing.T) {
	session := NewSession(4, NewFixedSource(0))

	_, err := newStrategy(t, `function nextDirection(state) return 42 end`).NextDirection(session)
	require.ErrorIs(t, err, ErrInvalidStrategyResult)

	_, err = newStrategy(t, `function nextDirection(state) return "sideways" end`).NextDirection(session)
	require.ErrorIs(t, err, ErrInvalidStrategyResult)

	_, err = newStrategy(t, `function nextDirection(state) error("boom") end`).NextDirection(session)
	require.Error(t, err)
}

func TestCornerStrategy_PrefersDownThenLeft(t *testing.T) {
	botStrategy, err := LoadBotStrategy("corner")
	require.NoError(t, err)
	strategy, err := NewLuaStrategy(botStrategy)
	require.NoError(t, err)
	defer strategy.Close()

	topRow := NewSessionFromGrid(NewGridFromValues([][]int{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}), 0)
	direction, err := strategy.NextDirection(topRow)
	require.NoError(t, err)
	require.Equal(t, Down, direction)

	bottomRight := NewSessionFromGrid(NewGridFromValues([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 2},
	}), 0)
	direction, err = strategy.NextDirection(bottomRight)
	require.NoError(t, err)
	require.Equal(t, Left, direction)
}

func TestBot_PlaysUntilTheGameEnds(t *testing.T) {
	botStrategy, err := LoadBotStrategy("greedy")
	require.NoError(t, err)
	strategy, err := NewLuaStrategy(botStrategy)
	require.NoError(t, err)
	defer strategy.Close()

	store := &memoryScoreStore{}
	bot := &Bot{
		BotStrategy: strategy,
		GameManager: NewGameManager("bot", WithRandomSource(NewRandomSource(3)), WithScoreStore(store)),
	}

	result, err := bot.Play(context.Background(), MaxAutoplayMovesCount)
	require.NoError(t, err)
	require.NotEqual(t, Active, result.Outcome)
	require.Positive(t, result.Moves)
	require.Positive(t, result.Score)
	require.Len(t, store.results, 1)
	require.Equal(t, result, store.results[0])
}

func TestBot_StopsAtMoveLimit(t *testing.T) {
	strategy := newStrategy(t, builtinStrategies["corner"])
	bot := &Bot{BotStrategy: strategy, GameManager: NewGameManager("bot", WithRandomSource(NewRandomSource(5)))}

	result, err := bot.Play(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 3, result.Moves)
	require.Equal(t, Active, result.Outcome)
}

func TestBot_HonoursContext(t *testing.T) {
	strategy := newStrategy(t, builtinStrategies["corner"])
	bot := &Bot{BotStrategy: strategy, GameManager: NewGameManager("bot")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := bot.Play(ctx, 10)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, result.Moves)
}

func TestBotMaster_PlayGamesIsReproducible(t *testing.T) {
	master := NewBotMaster("corner", 11)

	first, err := master.PlayGames(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for _, result := range first {
		require.NotEqual(t, Active, result.Outcome)
		require.Equal(t, "bot:corner", result.PlayerName)
	}

	second, err := master.PlayGames(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBotMaster_UnknownStrategy(t *testing.T) {
	master := NewBotMaster(filepath.Join(t.TempDir(), "nope.lua"), 1)
	_, err := master.PlayGames(context.Background(), 1)
	require.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestBotMaster_RejectsNonPositiveCounts(t *testing.T) {
	master := NewBotMaster("corner", 1)
	for _, count := range []int{0, -1} {
		var results []GameResult
		var err error
		require.NotPanics(t, func() {
			results, err = master.PlayGames(context.Background(), count)
		})
		require.ErrorIs(t, err, ErrInvalidGameCount)
		require.Empty(t, results)
	}
}

func TestBotMaster_GameSeeds(t *testing.T) {
	require.Equal(t, []uint64{7, 8, 9}, NewBotMaster("corner", 7).gameSeeds(3))

	clockSeeds := NewBotMaster("corner", 0).gameSeeds(4)
	require.Len(t, clockSeeds, 4)
	for i := 1; i < len(clockSeeds); i++ {
		require.Equal(t, clockSeeds[0]+uint64(i), clockSeeds[i], "a clock-seeded batch still gets one seed per game")
	}
}

func TestLuaStrategy_CloseTwice(t *testing.T) {
	botStrategy, err := LoadBotStrategy("corner")
	require.NoError(t, err)
	strategy, err := NewLuaStrategy(botStrategy)
	require.NoError(t, err)

	strategy.Close()
	require.NotPanics(t, strategy.Close)
}

func TestLuaStrategy_NextDirectionAfterClose(t *testing.T) {
	botStrategy, err := LoadBotStrategy("corner")
	require.NoError(t, err)
	strategy, err := NewLuaStrategy(botStrategy)
	require.NoError(t, err)
	strategy.Close()

	_, err = strategy.NextDirection(NewSession(4, NewFixedSource(0)))
	require.ErrorIs(t, err, ErrStrategyClosed)
}
