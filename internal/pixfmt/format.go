package pixfmt

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"
)

// ErrUnknownFormat is returned by Lookup for names that are not in the table
var ErrUnknownFormat = errors.New("bad pixel format")

// Layout describes how the components of a format are arranged in memory
type Layout int

const (
	// LayoutYUV is planar Y, Cb, Cr
	LayoutYUV Layout = iota
	// LayoutSemiPlanar is a Y plane followed by one interleaved chroma plane (NV12/NV21)
	LayoutSemiPlanar
	// LayoutGray is a single luma plane
	LayoutGray
	// LayoutPacked is interleaved RGB(A) in one plane
	LayoutPacked
	// LayoutPlanarRGB is planar G, B, R (FFmpeg's GBRP)
	LayoutPlanarRGB
)

func (l Layout) String() string {
	switch l {
	case LayoutYUV:
		return "yuv"
	case LayoutSemiPlanar:
		return "semi-planar"
	case LayoutGray:
		return "gray"
	case LayoutPacked:
		return "packed"
	case LayoutPlanarRGB:
		return "planar-rgb"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Format is a pixel format descriptor
type Format struct {
	Name   string
	Layout Layout
	Depth  int // Significant bits per component

	// Chroma subsampling for YUV and semi-planar layouts
	Ratio image.YCbCrSubsampleRatio

	// Packed layouts: bytes per pixel and byte offset of each component.
	// A is -1 when the format carries no alpha.
	Bpp        int
	R, G, B, A int

	// SwapUV is set for NV21 (Cr before Cb)
	SwapUV bool
}

// Wide reports whether components are stored in 16-bit little-endian words
func (f Format) Wide() bool { return f.Depth > 8 }

// SampleSize returns the number of bytes per stored component
func (f Format) SampleSize() int {
	if f.Wide() {
		return 2
	}
	return 1
}

// IsRGB reports whether the format stores RGB components
func (f Format) IsRGB() bool {
	return f.Layout == LayoutPacked || f.Layout == LayoutPlanarRGB
}

// HasAlpha reports whether the format carries an alpha component
func (f Format) HasAlpha() bool { return f.Layout == LayoutPacked && f.A >= 0 }

// ChromaShift returns the horizontal and vertical log2 chroma subsampling
func (f Format) ChromaShift() (uint, uint) {
	if f.Layout != LayoutYUV && f.Layout != LayoutSemiPlanar {
		return 0, 0
	}
	return RatioShift(f.Ratio)
}

// RatioShift converts a subsample ratio into horizontal and vertical shifts
func RatioShift(r image.YCbCrSubsampleRatio) (uint, uint) {
	switch r {
	case image.YCbCrSubsampleRatio422:
		return 1, 0
	case image.YCbCrSubsampleRatio420:
		return 1, 1
	case image.YCbCrSubsampleRatio440:
		return 0, 1
	case image.YCbCrSubsampleRatio411:
		return 2, 0
	case image.YCbCrSubsampleRatio410:
		return 2, 1
	}
	return 0, 0
}

// ChromaSize returns the chroma plane dimensions in samples for a w×h image
func (f Format) ChromaSize(w, h int) (int, int) {
	hs, vs := f.ChromaShift()
	return ceilShift(w, hs), ceilShift(h, vs)
}

func ceilShift(v int, s uint) int {
	return (v + (1 << s) - 1) >> s
}

// Plane is the geometry of one plane: bytes per row (before alignment) and rows
type Plane struct {
	RowBytes int
	Rows     int
}

// Planes returns the plane geometry of a w×h image in this format
func (f Format) Planes(w, h int) []Plane {
	ss := f.SampleSize()
	switch f.Layout {
	case LayoutYUV:
		cw, ch := f.ChromaSize(w, h)
		return []Plane{{w * ss, h}, {cw * ss, ch}, {cw * ss, ch}}
	case LayoutSemiPlanar:
		cw, ch := f.ChromaSize(w, h)
		return []Plane{{w * ss, h}, {2 * cw * ss, ch}}
	case LayoutGray:
		return []Plane{{w * ss, h}}
	case LayoutPacked:
		return []Plane{{w * f.Bpp, h}}
	case LayoutPlanarRGB:
		return []Plane{{w * ss, h}, {w * ss, h}, {w * ss, h}}
	}
	return nil
}

func (f Format) String() string { return f.Name }

func yuv(name string, depth int, ratio image.YCbCrSubsampleRatio) Format {
	return Format{Name: name, Layout: LayoutYUV, Depth: depth, Ratio: ratio, A: -1}
}

func packed(name string, bpp, r, g, b, a int) Format {
	return Format{Name: name, Layout: LayoutPacked, Depth: 8, Bpp: bpp, R: r, G: g, B: b, A: a}
}

var formats = []Format{
	yuv("yuv420p", 8, image.YCbCrSubsampleRatio420),
	yuv("yuv422p", 8, image.YCbCrSubsampleRatio422),
	yuv("yuv440p", 8, image.YCbCrSubsampleRatio440),
	yuv("yuv444p", 8, image.YCbCrSubsampleRatio444),
	yuv("yuv411p", 8, image.YCbCrSubsampleRatio411),
	yuv("yuv410p", 8, image.YCbCrSubsampleRatio410),
	yuv("yuv420p10le", 10, image.YCbCrSubsampleRatio420),
	yuv("yuv422p10le", 10, image.YCbCrSubsampleRatio422),
	yuv("yuv444p10le", 10, image.YCbCrSubsampleRatio444),
	{Name: "nv12", Layout: LayoutSemiPlanar, Depth: 8, Ratio: image.YCbCrSubsampleRatio420, A: -1},
	{Name: "nv21", Layout: LayoutSemiPlanar, Depth: 8, Ratio: image.YCbCrSubsampleRatio420, A: -1, SwapUV: true},
	{Name: "gray", Layout: LayoutGray, Depth: 8, A: -1},
	{Name: "gray16le", Layout: LayoutGray, Depth: 16, A: -1},
	packed("rgb24", 3, 0, 1, 2, -1),
	packed("bgr24", 3, 2, 1, 0, -1),
	packed("rgba", 4, 0, 1, 2, 3),
	packed("bgra", 4, 2, 1, 0, 3),
	packed("argb", 4, 1, 2, 3, 0),
	packed("abgr", 4, 3, 2, 1, 0),
	{Name: "gbrp", Layout: LayoutPlanarRGB, Depth: 8, A: -1},
}

// Short names resolve to the little-endian variant, like FFmpeg does on
// little-endian hosts.
var aliases = map[string]string{
	"yuvj420p":  "yuv420p",
	"yuvj422p":  "yuv422p",
	"yuvj444p":  "yuv444p",
	"i420":      "yuv420p",
	"yuv420p10": "yuv420p10le",
	"yuv422p10": "yuv422p10le",
	"yuv444p10": "yuv444p10le",
	"gray8":     "gray",
	"gray16":    "gray16le",
	"rgb":       "rgb24",
	"bgr":       "bgr24",
	"rgb32":     "bgra",
	"gbr24p":    "gbrp",
}

var byName = func() map[string]Format {
	m := make(map[string]Format, len(formats)+len(aliases))
	for _, f := range formats {
		m[f.Name] = f
	}
	for alias, target := range aliases {
		if f, ok := m[target]; ok {
			m[alias] = f
		}
	}
	return m
}()

// Lookup resolves a pixel format by name (case-insensitive)
func Lookup(name string) (Format, error) {
	f, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// MustLookup is like Lookup but panics on unknown names.
// Intended for package-level defaults and tests.
func MustLookup(name string) Format {
	f, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return f
}

// Names returns the canonical format names in sorted order
func Names() []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
