package main

import (
	"context"
	"fmt"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/Mshel/ssh2048/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

func newPlayCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play in this terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "hint",
				Value:   game.DefaultStrategyName,
				Usage:   "strategy behind the ? key: a built-in name or a .lua file, empty to disable",
				Sources: cli.EnvVars("SSH2048_HINT_STRATEGY"),
			},
		},
		Action: runLocal,
	}
}

func runLocal(ctx context.Context, cmd *cli.Command) error {
	options, closeScores, err := controllerOptions(cmd)
	if err != nil {
		return err
	}
	defer closeScores()

	quietLogs(cmd)
	p := tea.NewProgram(ui.NewControllerModel(options, 0, 0), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// controllerOptions builds what every player's controller shares. The
// returned func releases the score database.
func controllerOptions(cmd *cli.Command) (ui.Options, func(), error) {
	size, err := gridSizeFlag(cmd)
	if err != nil {
		return ui.Options{}, nil, err
	}
	seed, err := seedFlag(cmd)
	if err != nil {
		return ui.Options{}, nil, err
	}
	scores, err := openScores(cmd)
	if err != nil {
		return ui.Options{}, nil, err
	}

	options := ui.Options{
		GridSize:     size,
		HintStrategy: cmd.String("hint"),
		NewRandom:    newRandomFunc(seed),
	}
	closeScores := func() {}
	if scores != nil {
		options.Scores = scores
		closeScores = func() { scores.Close() }
	}
	return options, closeScores, nil
}
