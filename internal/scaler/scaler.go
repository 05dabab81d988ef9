package scaler

import (
	"errors"
	"fmt"
	"image"

	"github.com/bamiaux/rez"
	"golang.org/x/image/draw"

	"github.com/linuxmatters/scalebench/internal/pixfmt"
)

// ErrFrameMismatch is returned when a frame does not match the context geometry
var ErrFrameMismatch = errors.New("frame does not match scaler geometry")

// Geometry is an image size in a given pixel format
type Geometry struct {
	Format pixfmt.Format
	Width  int
	Height int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%s @ %dx%d", g.Format.Name, g.Width, g.Height)
}

// Options tunes a Context
type Options struct {
	Filter  Filter // Resampling kernel (default Lanczos)
	Param   int    // Lanczos window; 0 uses DefaultLanczosAlpha
	Threads int    // Threads used inside one conversion; 0 means 1
}

type route int

const (
	// Luma/chroma planes are resampled directly
	routeYCbCr route = iota
	// Only the luma plane is resampled; one side is gray
	routeLuma
	// Everything goes through an 8-bit RGBA intermediate
	routeRGBA
)

// Context converts and rescales frames from one geometry to another.
// A Context owns its intermediate buffers and is not safe for concurrent
// use; each benchmark worker allocates its own.
type Context struct {
	src  Geometry
	dst  Geometry
	opts Options

	route    route
	srcYCbCr *image.YCbCr
	dstYCbCr *image.YCbCr
	srcRGBA  *image.RGBA
	dstRGBA  *image.RGBA

	converter rez.Converter     // rez filters
	srcImg    image.Image       // what converter reads
	dstImg    image.Image       // what converter writes
	kernel    draw.Interpolator // x/image/draw filters

	closed bool
}

// New builds a Context for src -> dst conversions
func New(src, dst Geometry, opts Options) (*Context, error) {
	if opts.Filter == "" {
		opts.Filter = DefaultFilter
	}
	f, err := ParseFilter(string(opts.Filter))
	if err != nil {
		return nil, newError("new context", CodeInvalid, err)
	}
	opts.Filter = f
	if opts.Threads <= 0 {
		opts.Threads = 1
	}

	for _, g := range []Geometry{src, dst} {
		if err := pixfmt.CheckSize(g.Width, g.Height); err != nil {
			return nil, newError("new context", CodeInvalid, err)
		}
		if len(g.Format.Planes(g.Width, g.Height)) == 0 {
			return nil, newError("new context", CodeInvalid,
				fmt.Errorf("%w: %q", pixfmt.ErrUnknownFormat, g.Format.Name))
		}
	}

	c := &Context{src: src, dst: dst, opts: opts}

	var srcImg, dstImg image.Image
	rt, srcRatio, dstRatio := chooseRoute(src.Format, dst.Format, opts.Filter)
	c.route = rt

	switch rt {
	case routeYCbCr, routeLuma:
		c.srcYCbCr = image.NewYCbCr(image.Rect(0, 0, src.Width, src.Height), srcRatio)
		c.dstYCbCr = image.NewYCbCr(image.Rect(0, 0, dst.Width, dst.Height), dstRatio)
		if rt == routeLuma {
			fillNeutralChroma(c.dstYCbCr)
			srcImg, dstImg = lumaPlane(c.srcYCbCr), lumaPlane(c.dstYCbCr)
		} else {
			srcImg, dstImg = c.srcYCbCr, c.dstYCbCr
		}
	default:
		c.srcRGBA = image.NewRGBA(image.Rect(0, 0, src.Width, src.Height))
		c.dstRGBA = image.NewRGBA(image.Rect(0, 0, dst.Width, dst.Height))
		srcImg, dstImg = c.srcRGBA, c.dstRGBA
	}

	if opts.Filter.planar() {
		rcfg, err := rez.PrepareConversion(dstImg, srcImg)
		if err != nil {
			return nil, newError("prepare conversion", CodeInvalid, err)
		}
		rcfg.Threads = opts.Threads
		conv, err := rez.NewConverter(rcfg, opts.Filter.rezFilter(opts.Param))
		if err != nil {
			return nil, newError("prepare filter", CodeInvalid, err)
		}
		c.converter = conv
		c.srcImg, c.dstImg = srcImg, dstImg
	} else {
		c.kernel = opts.Filter.interpolator()
	}

	return c, nil
}

// chooseRoute picks the intermediate representation and the subsample
// ratio of each side. Planar resampling needs a rez filter and luma-based
// formats on both sides with the same subsampling. When either side is
// gray only the luma plane is resampled, so chroma never limits the size.
func chooseRoute(src, dst pixfmt.Format, f Filter) (route, image.YCbCrSubsampleRatio, image.YCbCrSubsampleRatio) {
	if !f.planar() || src.IsRGB() || dst.IsRGB() {
		return routeRGBA, 0, 0
	}

	srcGray := src.Layout == pixfmt.LayoutGray
	dstGray := dst.Layout == pixfmt.LayoutGray
	if srcGray || dstGray {
		srcRatio, dstRatio := src.Ratio, dst.Ratio
		if srcGray {
			srcRatio = image.YCbCrSubsampleRatio420
		}
		if dstGray {
			dstRatio = image.YCbCrSubsampleRatio420
		}
		return routeLuma, srcRatio, dstRatio
	}

	if src.Ratio != dst.Ratio {
		return routeRGBA, 0, 0
	}
	switch src.Ratio {
	case image.YCbCrSubsampleRatio420, image.YCbCrSubsampleRatio422, image.YCbCrSubsampleRatio444:
		return routeYCbCr, src.Ratio, dst.Ratio
	}
	return routeRGBA, 0, 0
}

// lumaPlane views the Y plane of img as a gray image
func lumaPlane(img *image.YCbCr) *image.Gray {
	return &image.Gray{Pix: img.Y, Stride: img.YStride, Rect: img.Rect}
}

func fillNeutralChroma(img *image.YCbCr) {
	for i := range img.Cb {
		img.Cb[i] = 128
	}
	for i := range img.Cr {
		img.Cr[i] = 128
	}
}

// Filter returns the resampling kernel in use
func (c *Context) Filter() Filter { return c.opts.Filter }

// Planar reports whether frames are resampled plane by plane without an RGB detour
func (c *Context) Planar() bool { return c.route != routeRGBA }

func (c *Context) String() string {
	return fmt.Sprintf("%s => %s (%s)", c.src, c.dst, c.opts.Filter)
}

// Scale performs one full-frame conversion from src into dst
func (c *Context) Scale(dst, src *pixfmt.Frame) error {
	if c.closed {
		return newError("scale", CodeInvalid, ErrClosed)
	}
	if err := checkFrame(src, c.src); err != nil {
		return newError("scale source", CodeInvalid, err)
	}
	if err := checkFrame(dst, c.dst); err != nil {
		return newError("scale destination", CodeInvalid, err)
	}

	switch c.route {
	case routeYCbCr, routeLuma:
		unpackYCbCr(c.srcYCbCr, src)
		if err := c.converter.Convert(c.dstImg, c.srcImg); err != nil {
			return newError("resample", CodeInvalid, err)
		}
		packYCbCr(dst, c.dstYCbCr)

	default:
		unpackRGBA(c.srcRGBA, src)
		if c.converter != nil {
			if err := c.converter.Convert(c.dstRGBA, c.srcRGBA); err != nil {
				return newError("resample", CodeInvalid, err)
			}
		} else {
			c.kernel.Scale(c.dstRGBA, c.dstRGBA.Bounds(), c.srcRGBA, c.srcRGBA.Bounds(), draw.Src, nil)
		}
		packRGBA(dst, c.dstRGBA)
	}

	return nil
}

// Close releases the intermediate buffers. Safe to call more than once.
func (c *Context) Close() {
	if c == nil || c.closed {
		return
	}
	c.closed = true
	c.srcYCbCr, c.dstYCbCr = nil, nil
	c.srcRGBA, c.dstRGBA = nil, nil
	c.converter = nil
	c.srcImg, c.dstImg = nil, nil
	c.kernel = nil
}

func checkFrame(f *pixfmt.Frame, g Geometry) error {
	if f == nil || f.Data == nil {
		return fmt.Errorf("%w: frame not allocated", ErrFrameMismatch)
	}
	if f.Format.Name != g.Format.Name || f.Width != g.Width || f.Height != g.Height {
		return fmt.Errorf("%w: got %s @ %dx%d, want %s", ErrFrameMismatch,
			f.Format.Name, f.Width, f.Height, g)
	}
	return nil
}

// Fill loads img into frame, converting to the frame's pixel format and
// rescaling when the sizes differ. Used to seed source frames with real
// picture content.
func Fill(frame *pixfmt.Frame, img image.Image) error {
	if frame == nil || frame.Data == nil {
		return newError("fill", CodeInvalid, fmt.Errorf("%w: frame not allocated", ErrFrameMismatch))
	}

	rect := image.Rect(0, 0, frame.Width, frame.Height)
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds() != rect {
		rgba = image.NewRGBA(rect)
		if img.Bounds().Size() == rect.Size() {
			draw.Draw(rgba, rect, img, img.Bounds().Min, draw.Src)
		} else {
			draw.ApproxBiLinear.Scale(rgba, rect, img, img.Bounds(), draw.Src, nil)
		}
	}

	packRGBA(frame, rgba)
	return nil
}
