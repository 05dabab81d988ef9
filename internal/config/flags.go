package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/linuxmatters/scalebench/internal/bench"
	"github.com/linuxmatters/scalebench/internal/pixfmt"
	"github.com/linuxmatters/scalebench/internal/scaler"
)

// PixelFormat is a kong flag value resolved through the pixel format table
type PixelFormat struct {
	pixfmt.Format
}

// Decode implements kong.MapperValue
func (p *PixelFormat) Decode(ctx *kong.DecodeContext) error {
	var name string
	if err := ctx.Scan.PopValueInto("pixel format", &name); err != nil {
		return err
	}
	f, err := pixfmt.Lookup(name)
	if err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	p.Format = f
	return nil
}

// Colour is a kong flag value holding an opaque RRGGBB colour
type Colour color.RGBA

// Decode implements kong.MapperValue
func (c *Colour) Decode(ctx *kong.DecodeContext) error {
	var s string
	if err := ctx.Scan.PopValueInto("colour", &s); err != nil {
		return err
	}
	r, g, b, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = Colour{R: r, G: g, B: b, A: 255}
	return nil
}

// Bench holds the benchmark flags. Every flag can also be set through a
// SCALEBENCH_* environment variable.
type Bench struct {
	PixfmtIn  PixelFormat `name:"pixfmt-in" help:"Source pixel format" default:"${pixfmt_in}" env:"SCALEBENCH_PIXFMT_IN" placeholder:"FMT"`
	PixfmtOut PixelFormat `name:"pixfmt-out" help:"Destination pixel format" default:"${pixfmt_out}" env:"SCALEBENCH_PIXFMT_OUT" placeholder:"FMT"`
	WidthIn   int         `name:"width-in" help:"Source width" default:"${width_in}" env:"SCALEBENCH_WIDTH_IN"`
	HeightIn  int         `name:"height-in" help:"Source height" default:"${height_in}" env:"SCALEBENCH_HEIGHT_IN"`
	WidthOut  int         `name:"width-out" help:"Destination width" default:"${width_out}" env:"SCALEBENCH_WIDTH_OUT"`
	HeightOut int         `name:"height-out" help:"Destination height" default:"${height_out}" env:"SCALEBENCH_HEIGHT_OUT"`
	Times     int         `name:"times" help:"Conversions per thread in each trial" default:"${times}" env:"SCALEBENCH_TIMES"`
	Threads   int         `name:"threads" help:"Run a single trial with this many threads (0 sweeps 1..CPUs)" default:"${threads}" env:"SCALEBENCH_THREADS"`

	Filter      string `name:"filter" help:"Resampling filter: ${filters}" default:"${filter}" enum:"${filters}" env:"SCALEBENCH_FILTER"`
	FilterParam int    `name:"filter-param" help:"Lanczos window size" default:"${filter_param}" env:"SCALEBENCH_FILTER_PARAM"`

	Source      string `name:"source" help:"Image to convert instead of the built-in test card" type:"existingfile" env:"SCALEBENCH_SOURCE" placeholder:"FILE"`
	SaveCard    string `name:"save-card" help:"Write the source image to a PNG file before the sweep" type:"path" env:"SCALEBENCH_SAVE_CARD" placeholder:"FILE"`
	LabelColour Colour `name:"label-colour" help:"Test card label colour" default:"${label_colour}" env:"SCALEBENCH_LABEL_COLOUR" placeholder:"RRGGBB"`
}

// Vars returns the kong interpolation variables used by Bench defaults
func Vars() kong.Vars {
	names := make([]string, 0, len(scaler.Filters()))
	for _, f := range scaler.Filters() {
		names = append(names, string(f))
	}

	return kong.Vars{
		"pixfmt_in":    DefaultPixfmtIn,
		"pixfmt_out":   DefaultPixfmtOut,
		"width_in":     fmt.Sprint(DefaultWidthIn),
		"height_in":    fmt.Sprint(DefaultHeightIn),
		"width_out":    fmt.Sprint(DefaultWidthOut),
		"height_out":   fmt.Sprint(DefaultHeightOut),
		"times":        fmt.Sprint(DefaultTimes),
		"threads":      fmt.Sprint(DefaultThreads),
		"filter":       DefaultFilter,
		"filters":      strings.Join(names, ","),
		"filter_param": fmt.Sprint(DefaultFilterArg),
		"label_colour": DefaultLabelColour,
	}
}

// Validate checks flag values before any trial runs
func (b *Bench) Validate() error {
	dims := []struct {
		name string
		w, h int
	}{
		{"input", b.WidthIn, b.HeightIn},
		{"output", b.WidthOut, b.HeightOut},
	}
	for _, d := range dims {
		if err := pixfmt.CheckSize(d.w, d.h); err != nil {
			return fmt.Errorf("%s size %dx%d: %w", d.name, d.w, d.h, err)
		}
	}

	if b.Times < 0 {
		return fmt.Errorf("--times must not be negative, got %d", b.Times)
	}
	if b.Threads < 0 {
		return fmt.Errorf("--threads must not be negative, got %d", b.Threads)
	}
	if b.FilterParam < 0 {
		return fmt.Errorf("--filter-param must not be negative, got %d", b.FilterParam)
	}
	if _, err := scaler.ParseFilter(b.Filter); err != nil {
		return err
	}

	return b.Config().Validate()
}

// Warnings lists flag combinations that are accepted but have no effect
func (b *Bench) Warnings() []string {
	var warnings []string
	f, err := scaler.ParseFilter(b.Filter)
	if err == nil && f != scaler.Lanczos && b.FilterParam != DefaultFilterArg {
		warnings = append(warnings, fmt.Sprintf("--filter-param only applies to lanczos; ignored for %s", f))
	}
	return warnings
}

// Config converts the flags into a sweep configuration
func (b *Bench) Config() bench.Config {
	return bench.Config{
		Src:         scaler.Geometry{Format: b.PixfmtIn.Format, Width: b.WidthIn, Height: b.HeightIn},
		Dst:         scaler.Geometry{Format: b.PixfmtOut.Format, Width: b.WidthOut, Height: b.HeightOut},
		Iterations:  b.Times,
		Threads:     b.Threads,
		Filter:      scaler.Filter(b.Filter),
		FilterParam: b.FilterParam,
	}
}

// Label returns the source description drawn on the test card
func (b *Bench) Label() string {
	return b.Config().Src.String()
}
