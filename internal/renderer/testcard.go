package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/linuxmatters/scalebench/internal/config"
)

// 75% SMPTE colour bars, left to right
var barColours = []color.RGBA{
	{R: 191, G: 191, B: 191, A: 255}, // grey
	{R: 191, G: 191, B: 0, A: 255},   // yellow
	{R: 0, G: 191, B: 191, A: 255},   // cyan
	{R: 0, G: 191, B: 0, A: 255},     // green
	{R: 191, G: 0, B: 191, A: 255},   // magenta
	{R: 191, G: 0, B: 0, A: 255},     // red
	{R: 0, G: 0, B: 191, A: 255},     // blue
}

// CardOptions controls the look of a test card
type CardOptions struct {
	Width  int
	Height int
	Label  string     // Drawn centred over the bars; empty for none
	Colour color.RGBA // Label colour; zero value uses the brand yellow
}

// TestCard renders a colour-bar test card: bars across the top two thirds, a
// luma ramp, then a strip of full-intensity primaries. Busy content keeps
// every filter tap doing real work during the benchmark.
func TestCard(opts CardOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid test card size %dx%d", opts.Width, opts.Height)
	}
	if opts.Colour == (color.RGBA{}) {
		opts.Colour = color.RGBA{R: config.LabelColorR, G: config.LabelColorG, B: config.LabelColorB, A: 255}
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	barsBottom := opts.Height * 2 / 3
	rampBottom := barsBottom + (opts.Height-barsBottom)/2

	drawBars(img, image.Rect(0, 0, opts.Width, barsBottom))
	drawRamp(img, image.Rect(0, barsBottom, opts.Width, rampBottom))
	drawPrimaries(img, image.Rect(0, rampBottom, opts.Width, opts.Height))

	if opts.Label != "" {
		if err := drawLabel(img, opts.Label, opts.Colour, barsBottom); err != nil {
			return nil, fmt.Errorf("failed to draw label: %w", err)
		}
	}

	return img, nil
}

func drawBars(img *image.RGBA, r image.Rectangle) {
	n := len(barColours)
	for i, c := range barColours {
		x0 := r.Min.X + r.Dx()*i/n
		x1 := r.Min.X + r.Dx()*(i+1)/n
		draw.Draw(img, image.Rect(x0, r.Min.Y, x1, r.Max.Y), image.NewUniform(c), image.Point{}, draw.Src)
	}
}

// drawRamp fills r with a horizontal black to white gradient
func drawRamp(img *image.RGBA, r image.Rectangle) {
	w := r.Dx()
	for x := 0; x < w; x++ {
		v := uint8(0)
		if w > 1 {
			v = uint8(x * 255 / (w - 1))
		}
		c := color.RGBA{R: v, G: v, B: v, A: 255}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.SetRGBA(r.Min.X+x, y, c)
		}
	}
}

func drawPrimaries(img *image.RGBA, r image.Rectangle) {
	strip := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	for i, c := range strip {
		x0 := r.Min.X + r.Dx()*i/len(strip)
		x1 := r.Min.X + r.Dx()*(i+1)/len(strip)
		draw.Draw(img, image.Rect(x0, r.Min.Y, x1, r.Max.Y), image.NewUniform(c), image.Point{}, draw.Src)
	}
}

// drawLabel draws text centred horizontally and vertically within the top
// band of height bandHeight, at the largest size that fits inside the margins
func drawLabel(img *image.RGBA, text string, c color.RGBA, bandHeight int) error {
	maxWidth := img.Bounds().Dx() - 2*config.CardMargin
	maxHeight := bandHeight - 2*config.CardMargin
	if maxWidth <= 0 || maxHeight <= 0 {
		// Too small for any legible text
		return nil
	}

	size, err := findOptimalFontSize(text, maxWidth, maxHeight)
	if err != nil {
		return err
	}
	if size == 0 {
		return nil
	}

	face, err := LoadFont(size)
	if err != nil {
		return err
	}
	defer face.Close()

	width, bounds := measureText(face, text)
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := (img.Bounds().Dx() - width) / 2
	visualTop := (bandHeight - height) / 2
	baseline := visualTop - bounds.Min.Y.Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  freetype.Pt(x-bounds.Min.X.Floor(), baseline),
	}
	d.DrawString(text)
	return nil
}

// findOptimalFontSize returns the largest font size at which text fits in
// maxWidth x maxHeight, or 0 when even the smallest size does not fit
func findOptimalFontSize(text string, maxWidth, maxHeight int) (float64, error) {
	for size := config.CardMaxFontSize; size >= config.CardMinFontSize; size -= 2 {
		face, err := LoadFont(size)
		if err != nil {
			return 0, err
		}
		width, bounds := measureText(face, text)
		face.Close()

		height := (bounds.Max.Y - bounds.Min.Y).Ceil()
		if width <= maxWidth && height <= maxHeight {
			return size, nil
		}
	}
	return 0, nil
}

// measureText returns the width and the bounds of rendered text.
// bounds.Min.Y is negative (ascent) and bounds.Max.Y positive (descent).
func measureText(face font.Face, text string) (int, fixed.Rectangle26_6) {
	d := &font.Drawer{Face: face}
	bounds, _ := d.BoundString(text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	return width, bounds
}
