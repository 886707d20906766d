// Command ssh2048 serves the 2048 sliding-tile game over SSH, plays it in
// the local terminal, and runs Lua bots against it.
//
//	ssh2048 [play]      local game in the alternate screen (default)
//	ssh2048 serve       wish SSH server, one game per session
//	ssh2048 autoplay    headless bot games
//	ssh2048 scores      print the leaderboard
//
// Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const (
	AppName = "ssh2048"
	Version = "1.0.0"
)

func main() {
	// a missing .env is the normal case
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("Could not load .env file", "error", err)
	}

	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.Error("ssh2048 failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	play := newPlayCommand()
	return &cli.Command{
		Name:    AppName,
		Usage:   "slide tiles, merge numbers, reach 2048",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug, info, warn or error",
				Sources: cli.EnvVars("SSH2048_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file instead of stderr",
				Sources: cli.EnvVars("SSH2048_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "db",
				Value:   "ssh2048.db",
				Usage:   "sqlite file for high scores, empty to disable",
				Sources: cli.EnvVars("SSH2048_DB_PATH"),
			},
			&cli.StringFlag{
				Name:    "seed",
				Value:   "0",
				Usage:   "random seed for tile spawns, 0 seeds from the clock",
				Sources: cli.EnvVars("SSH2048_SEED"),
			},
			&cli.StringFlag{
				Name:    "size",
				Value:   strconv.Itoa(game.DefaultGridSize),
				Usage:   "board size",
				Sources: cli.EnvVars("SSH2048_GRID_SIZE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, setupLogging(cmd)
		},
		Commands: []*cli.Command{
			play,
			newServeCommand(),
			newAutoplayCommand(),
			newScoresCommand(),
		},
		Action: play.Action,
	}
}

func setupLogging(cmd *cli.Command) error {
	level, err := log.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cmd.String("log-level"), err)
	}
	log.SetLevel(level)

	if path := cmd.String("log-file"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		log.SetOutput(file)
	}
	return nil
}

// quietLogs keeps log lines from drawing over a local full-screen program.
func quietLogs(cmd *cli.Command) {
	if cmd.String("log-file") == "" {
		log.SetOutput(io.Discard)
	}
}

func intFlag(cmd *cli.Command, name string) (int, error) {
	value, err := strconv.Atoi(cmd.String(name))
	if err != nil {
		return 0, fmt.Errorf("--%s must be a number: %w", name, err)
	}
	return value, nil
}

func seedFlag(cmd *cli.Command) (uint64, error) {
	seed, err := strconv.ParseUint(cmd.String("seed"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("--seed must be a non-negative number: %w", err)
	}
	return seed, nil
}

func gridSizeFlag(cmd *cli.Command) (int, error) {
	size, err := intFlag(cmd, "size")
	if err != nil {
		return 0, err
	}
	if size < game.MinGridSize || size > game.MaxGridSize {
		return 0, fmt.Errorf("--size must be between %d and %d, got %d", game.MinGridSize, game.MaxGridSize, size)
	}
	return size, nil
}

// openScores returns nil without error when persistence is switched off.
func openScores(cmd *cli.Command) (*game.HighScoreService, error) {
	path := cmd.String("db")
	if path == "" {
		return nil, nil
	}
	scores, err := game.NewHighScoreService(path)
	if err != nil {
		return nil, fmt.Errorf("could not open high score database %s: %w", path, err)
	}
	return scores, nil
}

// newRandomFunc hands every player a fresh source. A fixed seed gives every
// player the same spawn sequence.
func newRandomFunc(seed uint64) func() game.RandomSource {
	return func() game.RandomSource {
		return game.NewRandomSource(seed)
	}
}
