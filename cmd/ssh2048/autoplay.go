package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

var tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

func newAutoplayCommand() *cli.Command {
	return &cli.Command{
		Name:  "autoplay",
		Usage: "let a Lua strategy play headless games",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "strategy",
				Value:   game.DefaultStrategyName,
				Usage:   "one of " + strings.Join(game.BuiltinStrategyNames(), ", ") + " or a path to a .lua file",
				Sources: cli.EnvVars("SSH2048_STRATEGY"),
			},
			&cli.StringFlag{
				Name:  "games",
				Value: strconv.Itoa(game.DefaultAutoplayGames),
				Usage: "number of games to play side by side",
			},
			&cli.StringFlag{
				Name:  "max-moves",
				Value: strconv.Itoa(game.MaxAutoplayMovesCount),
				Usage: "stop a game after this many moves",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "save finished games to the high score database",
			},
		},
		Action: runAutoplay,
	}
}

func runAutoplay(ctx context.Context, cmd *cli.Command) error {
	games, err := intFlag(cmd, "games")
	if err != nil {
		return err
	}
	if games < 1 {
		return fmt.Errorf("--games must be at least 1, got %d", games)
	}
	maxMoves, err := intFlag(cmd, "max-moves")
	if err != nil {
		return err
	}
	size, err := gridSizeFlag(cmd)
	if err != nil {
		return err
	}
	seed, err := seedFlag(cmd)
	if err != nil {
		return err
	}

	botMaster := game.NewBotMaster(cmd.String("strategy"), seed)
	botMaster.GridSize = size
	botMaster.MaxMoves = maxMoves

	if cmd.Bool("record") {
		scores, err := openScores(cmd)
		if err != nil {
			return err
		}
		if scores != nil {
			defer scores.Close()
			botMaster.Scores = scores
		}
	}

	log.Info("Autoplay started.", "strategy", botMaster.Strategy, "games", games, "seed", seed, "size", size)
	results, err := botMaster.PlayGames(ctx, games)
	if len(results) > 0 {
		fmt.Println(renderResults(results))
	}
	return err
}

func renderResults(results []game.GameResult) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("#", "Player", "Outcome", "Score", "Tile", "Moves")

	won := 0
	for i, result := range results {
		if result.Outcome == game.Won {
			won++
		}
		t.Row(
			strconv.Itoa(i+1),
			result.PlayerName,
			result.Outcome.String(),
			strconv.Itoa(result.Score),
			strconv.Itoa(result.MaxTile),
			strconv.Itoa(result.Moves),
		)
	}
	return fmt.Sprintf("%s\nwon %d of %d", t.Render(), won, len(results))
}

func newScoresCommand() *cli.Command {
	return &cli.Command{
		Name:  "scores",
		Usage: "print the high score table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "limit",
				Value: strconv.Itoa(game.LeaderboardPageSize),
			},
		},
		Action: runScores,
	}
}

func runScores(ctx context.Context, cmd *cli.Command) error {
	limit, err := intFlag(cmd, "limit")
	if err != nil {
		return err
	}
	scores, err := openScores(cmd)
	if err != nil {
		return err
	}
	if scores == nil {
		return errors.New("no high score database configured, set --db")
	}
	defer scores.Close()

	highScores, err := scores.GetHighScores(limit, 0)
	if err != nil {
		return err
	}
	total, err := scores.GetTotalScoreCount()
	if err != nil {
		return err
	}
	fmt.Println(renderScores(highScores, total))
	return nil
}

func renderScores(scores []game.Score, total int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("#", "Player", "Score", "Tile", "Moves", "Outcome", "Date")

	for i, score := range scores {
		t.Row(
			strconv.Itoa(i+1),
			score.PlayerName,
			strconv.Itoa(score.Score),
			strconv.Itoa(score.MaxTile),
			strconv.Itoa(score.Moves),
			score.Outcome,
			score.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return fmt.Sprintf("%s\nshowing %d of %d games", t.Render(), len(scores), total)
}
