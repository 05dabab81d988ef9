package scaler

import (
	"fmt"
	"strings"

	"github.com/bamiaux/rez"
	"golang.org/x/image/draw"
)

// Filter selects the resampling kernel
type Filter string

// rez-backed filters work on planar images directly; x/image/draw kernels
// always go through an RGBA intermediate.
const (
	Lanczos        Filter = "lanczos"
	Bicubic        Filter = "bicubic"
	Bilinear       Filter = "bilinear"
	CatmullRom     Filter = "catmullrom"
	ApproxBiLinear Filter = "approxbilinear"
	Nearest        Filter = "nearest"
)

// DefaultFilter matches the original SWS_LANCZOS setup
const DefaultFilter = Lanczos

// DefaultLanczosAlpha is the Lanczos window size (sws param 4.0)
const DefaultLanczosAlpha = 4

var allFilters = []Filter{Lanczos, Bicubic, Bilinear, CatmullRom, ApproxBiLinear, Nearest}

// Filters lists every supported filter
func Filters() []Filter {
	out := make([]Filter, len(allFilters))
	copy(out, allFilters)
	return out
}

// ParseFilter resolves a filter name (case-insensitive)
func ParseFilter(name string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range allFilters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", name)
}

// planar reports whether the filter runs through rez
func (f Filter) planar() bool {
	switch f {
	case Lanczos, Bicubic, Bilinear:
		return true
	}
	return false
}

func (f Filter) rezFilter(alpha int) rez.Filter {
	switch f {
	case Bicubic:
		return rez.NewBicubicFilter()
	case Bilinear:
		return rez.NewBilinearFilter()
	}
	if alpha <= 0 {
		alpha = DefaultLanczosAlpha
	}
	return rez.NewLanczosFilter(alpha)
}

func (f Filter) interpolator() draw.Interpolator {
	switch f {
	case ApproxBiLinear:
		return draw.ApproxBiLinear
	case Nearest:
		return draw.NearestNeighbor
	}
	return draw.CatmullRom
}

func (f Filter) String() string { return string(f) }
