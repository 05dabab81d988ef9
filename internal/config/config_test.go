package config

import (
	"testing"

	"github.com/linuxmatters/scalebench/internal/pixfmt"
)

// TestParseHexColor_ValidInputs checks case handling, the optional hash
// prefix and R, G, B byte order
func TestParseHexColor_ValidInputs(t *testing.T) {
	testCases := []struct {
		input               string
		wantR, wantG, wantB uint8
	}{
		{"FF0000", 255, 0, 0},
		{"ff0000", 255, 0, 0},
		{"#FF0000", 255, 0, 0},
		{"Ff00fF", 255, 0, 255},
		{"000000", 0, 0, 0},
		{"FFFFFF", 255, 255, 255},
		{"808080", 128, 128, 128},
		{DefaultLabelColour, LabelColorR, LabelColorG, LabelColorB},
		{"010203", 1, 2, 3},
		{"AABBCC", 0xAA, 0xBB, 0xCC},
		{"FDFEFF", 253, 254, 255},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			r, g, b, err := ParseHexColor(tc.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tc.input, err)
			}
			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("ParseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tc.input, r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		})
	}
}

// TestParseHexColor_InvalidInputs checks malformed colours are rejected
func TestParseHexColor_InvalidInputs(t *testing.T) {
	inputs := []string{
		"FFF",
		"#FFF",
		"FFFFFFF",
		"#FFFFFFF",
		"GGGGGG",
		"FF00GG",
		"",
		"#",
		"FF 000",
		"FF#000",
		"##FF0000",
		"FF0000\n",
		"+FFFFF",
		"0x0FFF",
	}

	for _, input := range inputs {
		if _, _, _, err := ParseHexColor(input); err == nil {
			t.Errorf("ParseHexColor(%q) expected error, got nil", input)
		}
	}
}

// TestDefaults keeps the defaults resolvable and in range
func TestDefaults(t *testing.T) {
	for _, name := range []string{DefaultPixfmtIn, DefaultPixfmtOut} {
		if _, err := pixfmt.Lookup(name); err != nil {
			t.Errorf("default pixel format %q: %v", name, err)
		}
	}
	if DefaultWidthIn <= 0 || DefaultHeightIn <= 0 || DefaultWidthOut <= 0 || DefaultHeightOut <= 0 {
		t.Error("default dimensions must be positive")
	}
	if DefaultTimes < 0 || DefaultThreads < 0 {
		t.Error("default counts must not be negative")
	}
	if CardMinFontSize > CardMaxFontSize {
		t.Error("font size range is inverted")
	}
}
