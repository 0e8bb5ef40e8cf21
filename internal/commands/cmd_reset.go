package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/nexusdl/nexusdl/internal/printer"
)

type ResetCmd struct {
	flags *Flags

	progress string
	yes      bool
}

// NewResetCmd creates the reset command.
func NewResetCmd(flags *Flags) *ResetCmd {
	return &ResetCmd{flags: flags}
}

// Register adds the reset command to the application.
func (cmd *ResetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "reset",
		Usage: "Delete the progress file so the next run starts from scratch",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "progress-file",
				Usage:       "progress tracking file",
				Destination: &cmd.progress,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ResetCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	path := cmd.flags.Config.ProgressLog
	if c.IsSet("progress-file") {
		path = cmd.progress
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		p.Infof("No progress file at %s; nothing to reset", path)
		return nil
	}

	if !cmd.yes {
		var proceed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", path)).
			Description("Every mod will be downloaded again on the next run.").
			Value(&proceed).
			Run()
		if err != nil {
			return err
		}
		if !proceed {
			p.Infof("Reset cancelled")
			return nil
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete progress file: %w", err)
	}

	p.Successf("Progress file %s deleted", path)
	return nil
}
