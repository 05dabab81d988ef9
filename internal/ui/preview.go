package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PreviewConfig holds the size of the source preview in terminal cells
type PreviewConfig struct {
	Width  int
	Height int
}

// DefaultPreviewConfig is roughly 16:9 once the 2:1 cell aspect is accounted for
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  36,
		Height: 10,
	}
}

// DownsampleImage box-filters img down to one colour per preview cell
func DownsampleImage(img image.Image, cfg PreviewConfig) [][]color.RGBA {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	if cfg.Width <= 0 || cfg.Height <= 0 || srcWidth == 0 || srcHeight == 0 {
		return nil
	}

	preview := make([][]color.RGBA, cfg.Height)
	for row := 0; row < cfg.Height; row++ {
		preview[row] = make([]color.RGBA, cfg.Width)
		y0 := bounds.Min.Y + row*srcHeight/cfg.Height
		y1 := max(bounds.Min.Y+(row+1)*srcHeight/cfg.Height, y0+1)

		for col := 0; col < cfg.Width; col++ {
			x0 := bounds.Min.X + col*srcWidth/cfg.Width
			x1 := max(bounds.Min.X+(col+1)*srcWidth/cfg.Width, x0+1)

			var sumR, sumG, sumB, n uint32
			for y := y0; y < y1 && y < bounds.Max.Y; y++ {
				for x := x0; x < x1 && x < bounds.Max.X; x++ {
					r, g, b, _ := img.At(x, y).RGBA()
					sumR += r >> 8
					sumG += g >> 8
					sumB += b >> 8
					n++
				}
			}
			if n > 0 {
				preview[row][col] = color.RGBA{R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n), A: 255}
			}
		}
	}

	return preview
}

// RenderPreview draws a preview grid as coloured cells inside a border
func RenderPreview(preview [][]color.RGBA) string {
	if len(preview) == 0 {
		return ""
	}

	var s strings.Builder
	for i, row := range preview {
		for _, pixel := range row {
			hex := fmt.Sprintf("#%02X%02X%02X", pixel.R, pixel.G, pixel.B)
			s.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(" "))
		}
		if i < len(preview)-1 {
			s.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#3A3A3A")).
		Render(s.String())
}
