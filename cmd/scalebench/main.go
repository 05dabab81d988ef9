package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/scalebench/internal/bench"
	"github.com/linuxmatters/scalebench/internal/cli"
	"github.com/linuxmatters/scalebench/internal/config"
	"github.com/linuxmatters/scalebench/internal/logger"
	"github.com/linuxmatters/scalebench/internal/renderer"
	"github.com/linuxmatters/scalebench/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var errInterrupted = errors.New("sweep interrupted")

type cliArgs struct {
	config.Bench `embed:""`

	UI      bool `help:"Show a live progress UI instead of the plain report" env:"SCALEBENCH_UI"`
	Debug   bool `help:"Log trial and worker diagnostics to stderr" env:"SCALEBENCH_DEBUG"`
	JSONLog bool `name:"json-log" help:"Log diagnostics as JSON lines" env:"SCALEBENCH_JSON_LOG"`
	NoColor bool `name:"no-color" help:"Disable coloured output" env:"SCALEBENCH_NO_COLOR"`
	Version bool `help:"Show version information"`
}

func main() {
	var args cliArgs
	kong.Parse(&args,
		kong.Name("scalebench"),
		kong.Description("Measure image scaling throughput across thread counts."),
		config.Vars(),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if args.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if args.NoColor {
		cli.DisableColour()
	}

	for _, w := range args.Warnings() {
		cli.PrintWarning(w)
	}

	os.Exit(exitCode(os.Stderr, run(&args)))
}

// exitCode reports err and maps it to the process exit status. A failed
// trial prints its failure code before the error.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if code := bench.FailureCode(err); code != 0 {
		cli.PrintFailure(w, code, err)
	} else {
		cli.PrintError(err.Error())
	}
	return 1
}

func run(args *cliArgs) error {
	// Logs would tear the TUI, so hold them until it exits
	var logBuf bytes.Buffer
	logOut := io.Writer(os.Stderr)
	if args.UI {
		logOut = &logBuf
	}
	defer func() {
		if logBuf.Len() > 0 {
			os.Stderr.Write(logBuf.Bytes())
		}
	}()

	var log *logger.Logger
	if args.JSONLog {
		log = logger.NewJSON(logOut, args.Debug)
	} else {
		log = logger.New(logOut, args.Debug, args.NoColor)
	}

	source, err := loadSource(&args.Bench)
	if err != nil {
		return err
	}
	log.Debug().
		Int("width", source.Bounds().Dx()).
		Int("height", source.Bounds().Dy()).
		Str("source", args.Source).
		Msg("source image ready")

	if args.SaveCard != "" {
		if err := renderer.SavePNG(source, args.SaveCard); err != nil {
			return fmt.Errorf("failed to save source image: %w", err)
		}
		log.Info().Str("path", args.SaveCard).Msg("source image saved")
	}

	opts := []bench.Option{
		bench.WithConverter(bench.ScaleConverter(source)),
		bench.WithLogger(log),
	}

	if args.UI {
		return runUI(args.Config(), source, opts)
	}
	return runPlain(os.Stdout, args.Config(), opts)
}

// loadSource renders the test card, or loads --source, at the input size
func loadSource(b *config.Bench) (*image.RGBA, error) {
	if b.Source != "" {
		img, err := renderer.LoadImage(b.Source, b.WidthIn, b.HeightIn)
		if err != nil {
			return nil, fmt.Errorf("failed to load source image: %w", err)
		}
		return img, nil
	}

	card, err := renderer.TestCard(renderer.CardOptions{
		Width:  b.WidthIn,
		Height: b.HeightIn,
		Label:  b.Label(),
		Colour: color.RGBA(b.LabelColour),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render test card: %w", err)
	}
	return card, nil
}

func runPlain(w io.Writer, cfg bench.Config, opts []bench.Option) error {
	opts = append(opts, bench.WithReporter(bench.NewTextReporter(w)))
	d, err := bench.New(cfg, opts...)
	if err != nil {
		return err
	}
	return d.Sweep()
}

func runUI(cfg bench.Config, source image.Image, opts []bench.Option) error {
	model := ui.NewModel()
	model.SetSource(source)
	p := tea.NewProgram(model)

	reporter := ui.NewReporter(p)
	d, err := bench.New(cfg, append(opts, bench.WithReporter(reporter))...)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		err := d.Sweep()
		done <- err
		reporter.Done(err)
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	fmt.Print(model.CompletionSummary())

	select {
	case err := <-done:
		return err
	default:
		return errInterrupted
	}
}
