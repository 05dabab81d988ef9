package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Benchmark defaults
const (
	DefaultPixfmtIn  = "yuv420p10"
	DefaultPixfmtOut = "gbrp"
	DefaultWidthIn   = 1280
	DefaultHeightIn  = 720
	DefaultWidthOut  = 1920
	DefaultHeightOut = 1080
	DefaultTimes     = 100 // Conversions per thread in each trial
	DefaultThreads   = 0   // 0 sweeps 1..NumCPU
	DefaultFilter    = "lanczos"
	DefaultFilterArg = 4 // Lanczos window
)

// Test card appearance
const (
	// Brand yellow #F8B31D - used for the test card label
	LabelColorR = 248
	LabelColorG = 179
	LabelColorB = 29

	DefaultLabelColour = "#F8B31D"

	CardMargin      = 30    // Margin in pixels around the label
	CardMaxFontSize = 150.0 // Largest label size tried
	CardMinFontSize = 10.0  // Labels smaller than this are skipped
)

// ParseHexColor parses an RRGGBB colour, with or without a leading hash
func ParseHexColor(s string) (uint8, uint8, uint8, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: want 6 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
