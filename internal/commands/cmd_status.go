package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nexusdl/nexusdl/internal/core/collection"
	"github.com/nexusdl/nexusdl/internal/core/ledger"
	"github.com/nexusdl/nexusdl/internal/printer"
	"github.com/nexusdl/nexusdl/pkg/iojson"
)

type StatusCmd struct {
	flags *Flags
	fr    *iojson.FileReader[collection.File]

	progress string
	jsonOut  bool
}

// NewStatusCmd creates the status command.
func NewStatusCmd(flags *Flags) *StatusCmd {
	return &StatusCmd{flags: flags, fr: &iojson.FileReader[collection.File]{}}
}

// Register adds the status command to the application.
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "status",
		Usage: "Show run progress for a collection file",
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringFlag{
				Name:        "progress-file",
				Usage:       "progress tracking file",
				Destination: &cmd.progress,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOut,
			},
		},
		Action: cmd.run,
	})

	return app
}

type statusOut struct {
	Collection string `json:"collection,omitempty"`
	Progress   string `json:"progress_file"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Remaining  int    `json:"remaining"`
}

func (cmd *StatusCmd) run(ctx context.Context, c *cli.Command) error {
	progressPath := cmd.flags.Config.ProgressLog
	if c.IsSet("progress-file") {
		progressPath = cmd.progress
	}

	file, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read collection: %w", err)
	}
	if err := file.Validate(); err != nil {
		return fmt.Errorf("invalid collection: %w", err)
	}
	sources := file.Sources()

	led, err := ledger.New(progressPath)
	if err != nil {
		return err
	}

	done, remaining := led.Stats(len(sources))
	out := statusOut{
		Collection: cmd.fr.Path(),
		Progress:   progressPath,
		Total:      len(sources),
		Completed:  done,
		Remaining:  remaining,
	}

	if cmd.jsonOut {
		return iojson.Write(out)
	}

	p := printer.Ctx(ctx)
	p.Headerf("DOWNLOAD PROGRESS")
	p.KeyValue("Progress file", out.Progress)
	p.KeyValue("Total mods", out.Total)
	p.KeyValue("Completed", out.Completed)
	p.KeyValue("Remaining", out.Remaining)
	if out.Remaining == 0 {
		p.Successf("Collection complete")
	}
	return nil
}
