package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// BotMaster runs a batch of autoplay games side by side. Every game gets its
// own Lua state, random source and GameManager.
type BotMaster struct {
	Strategy string
	Seed     uint64
	GridSize int
	MaxMoves int
	Scores   ScoreStore
}

func NewBotMaster(strategy string, seed uint64) *BotMaster {
	return &BotMaster{
		Strategy: strategy,
		Seed:     seed,
		GridSize: DefaultGridSize,
		MaxMoves: MaxAutoplayMovesCount,
	}
}

var ErrInvalidGameCount = errors.New("game count must be positive")

// PlayGames plays count games concurrently and returns their results in
// game order. Game i is seeded with Seed+i so a batch is reproducible.
func (bm *BotMaster) PlayGames(ctx context.Context, count int) ([]GameResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGameCount, count)
	}
	botStrategy, err := LoadBotStrategy(bm.Strategy)
	if err != nil {
		return nil, err
	}

	results := make([]GameResult, count)
	errs := make([]error, count)

	seeds := bm.gameSeeds(count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			results[index], errs[index] = bm.playGame(ctx, botStrategy, index, seeds[index])
		}(i)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

// gameSeeds gives every game of a batch its own seed. A zero Seed reads the
// clock once for the whole batch.
func (bm *BotMaster) gameSeeds(count int) []uint64 {
	base := bm.Seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}
	seeds := make([]uint64, count)
	for i := range seeds {
		seeds[i] = base + uint64(i)
	}
	return seeds
}

func (bm *BotMaster) playGame(ctx context.Context, botStrategy *BotStrategy, index int, seed uint64) (GameResult, error) {
	strategy, err := NewLuaStrategy(botStrategy)
	if err != nil {
		return GameResult{}, err
	}
	defer strategy.Close()

	opts := []GameManagerOption{
		WithGridSize(bm.GridSize),
		WithRandomSource(NewRandomSource(seed)),
	}
	if bm.Scores != nil {
		opts = append(opts, WithScoreStore(bm.Scores))
	}

	bot := &Bot{
		BotStrategy: strategy,
		GameManager: NewGameManager("bot:"+botStrategy.StrategyName, opts...),
	}
	result, err := bot.Play(ctx, bm.MaxMoves)
	log.Debug("Bot game done.", "game", index, "strategy", botStrategy.StrategyName,
		"outcome", result.Outcome, "score", result.Score, "maxTile", result.MaxTile)
	return result, err
}
