package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nexusdl/nexusdl/internal/automation"
	"github.com/nexusdl/nexusdl/internal/core/collection"
	"github.com/nexusdl/nexusdl/internal/core/config"
	"github.com/nexusdl/nexusdl/internal/core/ledger"
	"github.com/nexusdl/nexusdl/internal/core/vision"
	"github.com/nexusdl/nexusdl/internal/downloader"
	"github.com/nexusdl/nexusdl/internal/nexus"
	"github.com/nexusdl/nexusdl/internal/printer"
	"github.com/nexusdl/nexusdl/pkg/iojson"
	"github.com/nexusdl/nexusdl/pkg/logutils"
	"github.com/nexusdl/nexusdl/pkg/randid"
)

type RunCmd struct {
	flags *Flags
	fr    *iojson.FileReader[collection.File]

	game        string
	progress    string
	delayClick  float64
	delayDL     float64
	delayBetw   float64
	noAutoClose bool
	batchSize   int
	forceFocus  bool
	detect      bool
	template    string
	confidence  float64
	yes         bool
}

// NewRunCmd creates the run command.
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags, fr: &iojson.FileReader[collection.File]{}}
}

// Register adds the run command to the application.
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "run",
		Usage: "Download every mod in a collection file",
		UsageText: `nexusdl run -f collection.json [options]

Resume after a crash or F4 by running the same command again;
completed mods are skipped via the progress file.`,
		Description: `Opens each mod's download page in your browser and clicks the
'SLOW DOWNLOAD' button for you.

How it works:
  1. The first page opens
  2. YOU click the 'SLOW DOWNLOAD' button
  3. The click position is recorded
  4. The same position is clicked on every following page

With --detect, step 2-3 are replaced by on-screen template matching
against a previously captured button image (see 'nexusdl capture').

Make sure you are logged in to Nexus Mods, the browser is fullscreen,
and the window is not moved during the run. Press F4 at any time to
stop; progress is kept.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringFlag{
				Name:        "game",
				Usage:       "game domain on Nexus Mods",
				Destination: &cmd.game,
			},
			&cli.StringFlag{
				Name:        "progress-file",
				Usage:       "progress tracking file",
				Destination: &cmd.progress,
			},
			&cli.Float64Flag{
				Name:        "delay-click",
				Usage:       "seconds to wait for a page to load before clicking",
				Destination: &cmd.delayClick,
			},
			&cli.Float64Flag{
				Name:        "delay-download",
				Usage:       "seconds to wait for a download to start",
				Destination: &cmd.delayDL,
			},
			&cli.Float64Flag{
				Name:        "delay-between",
				Usage:       "seconds to wait between mods",
				Destination: &cmd.delayBetw,
			},
			&cli.BoolFlag{
				Name:        "no-auto-close",
				Usage:       "keep tabs open and close them in batches instead",
				Destination: &cmd.noAutoClose,
			},
			&cli.IntFlag{
				Name:        "batch-size",
				Usage:       "tabs to accumulate before a batch close (with --no-auto-close)",
				Destination: &cmd.batchSize,
			},
			&cli.BoolFlag{
				Name:        "force-focus",
				Usage:       "refocus the browser before every click",
				Destination: &cmd.forceFocus,
			},
			&cli.BoolFlag{
				Name:        "detect",
				Usage:       "locate the button by template matching instead of a recorded click",
				Destination: &cmd.detect,
			},
			&cli.StringFlag{
				Name:        "template",
				Usage:       "button template image for --detect",
				Destination: &cmd.template,
			},
			&cli.Float64Flag{
				Name:        "confidence",
				Usage:       "minimum template match confidence (0-1)",
				Destination: &cmd.confidence,
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

// overlay applies command-line overrides onto the loaded config and
// re-validates, returning the immutable per-run configuration.
func (cmd *RunCmd) overlay(c *cli.Command) (*config.Config, error) {
	cfg := *cmd.flags.Config

	if c.IsSet("game") {
		cfg.GameDomain = cmd.game
	}
	if c.IsSet("progress-file") {
		cfg.ProgressLog = cmd.progress
	}
	if c.IsSet("delay-click") {
		cfg.Delays.BeforeClick = cmd.delayClick
	}
	if c.IsSet("delay-download") {
		cfg.Delays.Download = cmd.delayDL
	}
	if c.IsSet("delay-between") {
		cfg.Delays.BetweenMods = cmd.delayBetw
	}
	if c.IsSet("no-auto-close") {
		autoClose := !cmd.noAutoClose
		cfg.AutoClose = &autoClose
	}
	if c.IsSet("batch-size") {
		cfg.BatchSize = cmd.batchSize
	}
	if c.IsSet("force-focus") {
		cfg.ForceFocus = cmd.forceFocus
	}
	if c.IsSet("detect") {
		cfg.Detect = cmd.detect
	}
	if c.IsSet("template") {
		cfg.Template = cmd.template
	}
	if c.IsSet("confidence") {
		cfg.Confidence = cmd.confidence
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &cfg, nil
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	cfg, err := cmd.overlay(c)
	if err != nil {
		return err
	}

	// Each run logs to its own file so a long unattended session can be
	// audited afterwards without console noise during the run.
	if cmd.flags.LogFile == "" {
		runID := randid.Generate(6)
		logPath := filepath.Join(DefaultLogDir(), "run-"+runID+".log")
		logger, closer, err := logutils.New(cmd.flags.LogLevel, logPath)
		if err != nil {
			return fmt.Errorf("setup run logger: %w", err)
		}
		defer closer()
		log.Logger = logger
		p.Infof("Run log: %s", logPath)
	}

	file, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read collection: %w", err)
	}
	if err := file.Validate(); err != nil {
		return fmt.Errorf("invalid collection: %w", err)
	}
	sources := file.Sources()

	led, err := ledger.New(cfg.ProgressLog)
	if err != nil {
		return err
	}

	cmd.printBanner(p, cfg, led, len(sources))

	if !cmd.yes {
		var proceed bool
		err := huh.NewConfirm().
			Title("Start the run?").
			Description("The browser is about to take over your screen.\nPress F4 at any time to stop.").
			Value(&proceed).
			Run()
		if err != nil {
			return err
		}
		if !proceed {
			p.Infof("Run cancelled")
			return nil
		}
	}

	var locator downloader.Locator
	if cfg.Detect {
		det, err := vision.NewDetector(cfg.Template, cfg.Confidence)
		if err != nil {
			return err
		}
		locator = det
	}

	hub := automation.StartHub()
	defer hub.Close()
	stop := automation.WatchStopKey(hub, automation.DefaultStopKey)
	defer stop.Close()

	urls := nexus.NewURLBuilder(cfg.BaseURL, cfg.GameDomain)
	browser := automation.NewTabBrowser(cfg.BaseURL, cfg.Delays.TabCloseD())
	pointer := automation.NewRobotPointer(hub)

	svc := downloader.NewService(cfg, led, urls, browser, pointer, automation.RobotScreen{}, locator, stop, p)

	report, err := svc.Run(ctx, sources)
	printReport(p, cfg, report)
	return err
}

func (cmd *RunCmd) printBanner(p *printer.Printer, cfg *config.Config, led *ledger.Ledger, total int) {
	done, remaining := led.Stats(total)

	p.Headerf("NEXUS AUTO-DOWNLOADER")
	p.KeyValue("Game", cfg.GameDomain)
	p.KeyValue("Progress", cfg.ProgressLog)
	p.KeyValue("Click delay", fmt.Sprintf("%.1fs", cfg.Delays.BeforeClick))
	if cfg.AutoCloseEnabled() {
		p.KeyValue("Auto-close", fmt.Sprintf("yes (waits %.1fs for the download to start)", cfg.Delays.Download))
	} else {
		p.KeyValue("Auto-close", fmt.Sprintf("no (batch close every %d tabs)", cfg.BatchSize))
	}
	if cfg.Detect {
		p.KeyValue("Detection", fmt.Sprintf("template %s (confidence >= %.2f)", cfg.Template, cfg.Confidence))
	}
	p.Infof("")
	p.KeyValue("Total mods", total)
	p.KeyValue("Already downloaded", done)
	p.KeyValue("Remaining", remaining)
	p.Separator()
}

func printReport(p *printer.Printer, cfg *config.Config, report downloader.Report) {
	p.Separator()
	switch {
	case report.Cancelled:
		p.Warnf("Stopped: %d downloaded this run, %d skipped, %d of %d done overall",
			report.Processed, report.Skipped, report.AlreadyDone+report.Processed, report.Total)
	case report.Skipped > 0:
		p.Warnf("Finished with skips: %d downloaded, %d skipped (button not found)",
			report.Processed, report.Skipped)
	default:
		p.Successf("All downloads initiated! (%d this run, %d total)",
			report.Processed, report.AlreadyDone+report.Processed)
	}
	p.Infof("Progress file: %s", cfg.ProgressLog)
}
