package renderer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
	labelFontErr  error
)

// LoadFont returns a face of the embedded Go Bold font at the given size
func LoadFont(size float64) (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(gobold.TTF)
	})
	if labelFontErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", labelFontErr)
	}

	return truetype.NewFace(labelFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// LoadImage decodes a PNG or JPEG file and scales it to width x height
func LoadImage(filename string, width, height int) (*image.RGBA, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))

	if bounds.Dx() != width || bounds.Dy() != height {
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	} else {
		// Direct copy if dimensions match
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return rgba, nil
}

// SavePNG writes img to outputPath as a PNG file
func SavePNG(img image.Image, outputPath string) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	if err := png.Encode(outFile, img); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
