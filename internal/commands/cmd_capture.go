package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nexusdl/nexusdl/internal/automation"
	"github.com/nexusdl/nexusdl/internal/core/config"
	"github.com/nexusdl/nexusdl/internal/core/vision"
	"github.com/nexusdl/nexusdl/internal/printer"
)

type CaptureCmd struct {
	flags *Flags

	template string
	width    int
	height   int
	hover    bool
}

// NewCaptureCmd creates the capture command.
func NewCaptureCmd(flags *Flags) *CaptureCmd {
	return &CaptureCmd{flags: flags}
}

// Register adds the capture command to the application.
func (cmd *CaptureCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "capture",
		Usage: "Capture a button template image for --detect runs",
		Description: `Records a screenshot region around your next click and saves it as a
grayscale template. Open a mod page first so the 'SLOW DOWNLOAD'
button is visible, then click its center.

Run twice to also capture the hover variant: once clicking without
moving the mouse onto the button beforehand, and once with --hover
while the cursor rests on it. Existing template files are never
overwritten.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "template",
				Usage:       "where to save the template image",
				Destination: &cmd.template,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "capture region width in pixels",
				Value:       config.DefaultTemplateWidth,
				Destination: &cmd.width,
			},
			&cli.IntFlag{
				Name:        "height",
				Usage:       "capture region height in pixels",
				Value:       config.DefaultTemplateHeight,
				Destination: &cmd.height,
			},
			&cli.BoolFlag{
				Name:        "hover",
				Usage:       "save as the hover-state variant of the template",
				Destination: &cmd.hover,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CaptureCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	path := cmd.template
	if path == "" {
		path = cmd.flags.Config.Template
	}
	if cmd.hover {
		path = vision.HoverPath(path)
	}
	if cmd.width <= 0 || cmd.height <= 0 {
		return fmt.Errorf("capture region must be positive, got %dx%d", cmd.width, cmd.height)
	}

	p.Headerf("TEMPLATE CAPTURE")
	p.Infof("Position the 'SLOW DOWNLOAD' button on screen, then click its center.")
	if cmd.hover {
		p.Infof("Keep the cursor resting on the button so the hover state is visible.")
	}
	p.Infof("Saving a %dx%d region to %s", cmd.width, cmd.height, path)

	hub := automation.StartHub()
	defer hub.Close()
	pointer := automation.NewRobotPointer(hub)

	x, y, err := pointer.WaitForPress(ctx)
	if err != nil {
		return fmt.Errorf("wait for click: %w", err)
	}
	p.Infof("Click at (%d, %d), capturing...", x, y)

	screen, err := automation.RobotScreen{}.Capture()
	if err != nil {
		return fmt.Errorf("capture screen: %w", err)
	}

	captured, err := vision.CaptureTemplate(screen, x, y, vision.Region{Width: cmd.width, Height: cmd.height}, path)
	if err != nil {
		return err
	}
	if !captured {
		p.Warnf("Template already exists at %s; left untouched", path)
		return nil
	}

	// Confirm the file round-trips through the detector's loader.
	if _, err := vision.NewDetector(path, cmd.flags.Config.Confidence); err != nil {
		return fmt.Errorf("saved template failed to load back: %w", err)
	}

	p.Successf("Template saved to %s", path)
	return nil
}
