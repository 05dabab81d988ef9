package bench

import (
	"fmt"
	"image"

	"github.com/linuxmatters/scalebench/internal/pixfmt"
	"github.com/linuxmatters/scalebench/internal/scaler"
)

// Converter is one worker's exclusively owned conversion context.
// Convert performs a single full-frame conversion; Close releases
// everything the converter holds.
type Converter interface {
	Convert() error
	Close()
}

// ConverterFunc allocates a Converter for one worker
type ConverterFunc func(cfg Config) (Converter, error)

// scaleConverter runs scaler.Context over a pair of aligned frames
type scaleConverter struct {
	ctx *scaler.Context
	src *pixfmt.Frame
	dst *pixfmt.Frame
}

// ScaleConverter returns a ConverterFunc backed by the scaler package.
// When source is non-nil it is loaded into each worker's input frame;
// otherwise the input stays zeroed.
func ScaleConverter(source image.Image) ConverterFunc {
	return func(cfg Config) (Converter, error) {
		c := &scaleConverter{}

		ctx, err := scaler.New(cfg.Src, cfg.Dst, scaler.Options{
			Filter: cfg.Filter,
			Param:  cfg.FilterParam,
		})
		if err != nil {
			return nil, err
		}
		c.ctx = ctx

		if c.src, err = allocFrame("source", cfg.Src); err != nil {
			c.Close()
			return nil, err
		}
		if c.dst, err = allocFrame("destination", cfg.Dst); err != nil {
			c.Close()
			return nil, err
		}

		if source != nil {
			if err := scaler.Fill(c.src, source); err != nil {
				c.Close()
				return nil, err
			}
		}

		return c, nil
	}
}

func allocFrame(what string, g scaler.Geometry) (*pixfmt.Frame, error) {
	frame, err := pixfmt.Alloc(g.Format, g.Width, g.Height, pixfmt.DefaultAlign)
	if err != nil {
		return nil, &scaler.Error{Op: fmt.Sprintf("allocate %s frame", what), Code: scaler.CodeNoMem, Err: err}
	}
	return frame, nil
}

func (c *scaleConverter) Convert() error {
	return c.ctx.Scale(c.dst, c.src)
}

func (c *scaleConverter) Close() {
	c.src.Free()
	c.dst.Free()
	c.ctx.Close()
}
