package game

import (
	"context"
	"fmt"
)

// Bot plays a game on its own GameManager with a Strategy picking every move.
type Bot struct {
	BotStrategy Strategy
	*GameManager
}

// Play moves until the game is won or stuck, maxMoves is reached, or ctx is
// done. The returned result carries Active when the game was cut short.
func (b *Bot) Play(ctx context.Context, maxMoves int) (GameResult, error) {
	for b.Moves() < maxMoves && b.State() == Active {
		if err := ctx.Err(); err != nil {
			return b.result(), err
		}

		direction, err := b.BotStrategy.NextDirection(b.Session())
		if err != nil {
			return b.result(), fmt.Errorf("bot %s move %d: %w", b.PlayerName, b.Moves()+1, err)
		}
		b.Move(direction)
	}
	return b.result(), nil
}

func (b *Bot) result() GameResult {
	session := b.Session()
	return GameResult{
		PlayerName: b.PlayerName,
		Score:      session.Score(),
		MaxTile:    session.Grid().MaxTile(),
		Moves:      b.Moves(),
		Outcome:    session.State(),
	}
}
