package scaler

import (
	"image"

	"github.com/linuxmatters/scalebench/internal/pixfmt"
)

// unpackYCbCr copies a luma-based frame into a planar 8-bit image.
// Gray sources only touch the Y plane; chroma keeps whatever the
// caller initialised it to.
func unpackYCbCr(dst *image.YCbCr, src *pixfmt.Frame) {
	f := src.Format
	w, h := src.Width, src.Height

	for y := 0; y < h; y++ {
		loadRow(dst.Y[y*dst.YStride:], src.Row(0, y), w, f.Depth)
	}

	cw, ch := f.ChromaSize(w, h)
	switch f.Layout {
	case pixfmt.LayoutYUV:
		for y := 0; y < ch; y++ {
			loadRow(dst.Cb[y*dst.CStride:], src.Row(1, y), cw, f.Depth)
			loadRow(dst.Cr[y*dst.CStride:], src.Row(2, y), cw, f.Depth)
		}
	case pixfmt.LayoutSemiPlanar:
		for y := 0; y < ch; y++ {
			row := src.Row(1, y)
			cb := dst.Cb[y*dst.CStride:]
			cr := dst.Cr[y*dst.CStride:]
			for x := 0; x < cw; x++ {
				u, v := row[2*x], row[2*x+1]
				if f.SwapUV {
					u, v = v, u
				}
				cb[x] = u
				cr[x] = v
			}
		}
	}
}

// packYCbCr is the inverse of unpackYCbCr
func packYCbCr(dst *pixfmt.Frame, src *image.YCbCr) {
	f := dst.Format
	w, h := dst.Width, dst.Height

	for y := 0; y < h; y++ {
		storeRow(dst.Row(0, y), src.Y[y*src.YStride:], w, f.Depth)
	}

	cw, ch := f.ChromaSize(w, h)
	switch f.Layout {
	case pixfmt.LayoutYUV:
		for y := 0; y < ch; y++ {
			storeRow(dst.Row(1, y), src.Cb[y*src.CStride:], cw, f.Depth)
			storeRow(dst.Row(2, y), src.Cr[y*src.CStride:], cw, f.Depth)
		}
	case pixfmt.LayoutSemiPlanar:
		for y := 0; y < ch; y++ {
			row := dst.Row(1, y)
			cb := src.Cb[y*src.CStride:]
			cr := src.Cr[y*src.CStride:]
			for x := 0; x < cw; x++ {
				u, v := cb[x], cr[x]
				if f.SwapUV {
					u, v = v, u
				}
				row[2*x] = u
				row[2*x+1] = v
			}
		}
	}
}

// unpackRGBA converts a frame of any format into 8-bit RGBA
func unpackRGBA(dst *image.RGBA, src *pixfmt.Frame) {
	f := src.Format
	w, h := src.Width, src.Height

	switch f.Layout {
	case pixfmt.LayoutPacked:
		for y := 0; y < h; y++ {
			row := src.Row(0, y)
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < w; x++ {
				p := row[x*f.Bpp:]
				o := out[4*x : 4*x+4 : 4*x+4]
				o[0] = p[f.R]
				o[1] = p[f.G]
				o[2] = p[f.B]
				if f.A >= 0 {
					o[3] = p[f.A]
				} else {
					o[3] = 0xff
				}
			}
		}

	case pixfmt.LayoutPlanarRGB:
		for y := 0; y < h; y++ {
			gRow, bRow, rRow := src.Row(0, y), src.Row(1, y), src.Row(2, y)
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < w; x++ {
				o := out[4*x : 4*x+4 : 4*x+4]
				o[0] = sample(rRow, x, f.Depth)
				o[1] = sample(gRow, x, f.Depth)
				o[2] = sample(bRow, x, f.Depth)
				o[3] = 0xff
			}
		}

	default:
		hs, vs := f.ChromaShift()
		for y := 0; y < h; y++ {
			yRow := src.Row(0, y)
			var uRow, vRow []byte
			switch f.Layout {
			case pixfmt.LayoutYUV:
				uRow, vRow = src.Row(1, y>>vs), src.Row(2, y>>vs)
			case pixfmt.LayoutSemiPlanar:
				uRow = src.Row(1, y>>vs)
			}
			out := dst.Pix[y*dst.Stride:]

			for x := 0; x < w; x++ {
				yy := sample(yRow, x, f.Depth)
				cb, cr := uint8(128), uint8(128)
				cx := x >> hs
				switch f.Layout {
				case pixfmt.LayoutYUV:
					cb = sample(uRow, cx, f.Depth)
					cr = sample(vRow, cx, f.Depth)
				case pixfmt.LayoutSemiPlanar:
					cb, cr = uRow[2*cx], uRow[2*cx+1]
					if f.SwapUV {
						cb, cr = cr, cb
					}
				}

				r, g, b := yuvToRGB(yy, cb, cr)
				o := out[4*x : 4*x+4 : 4*x+4]
				o[0] = r
				o[1] = g
				o[2] = b
				o[3] = 0xff
			}
		}
	}
}

// packRGBA converts 8-bit RGBA into a frame of any format.
// Subsampled chroma takes the top-left pixel of each block.
func packRGBA(dst *pixfmt.Frame, src *image.RGBA) {
	f := dst.Format
	w, h := dst.Width, dst.Height

	switch f.Layout {
	case pixfmt.LayoutPacked:
		for y := 0; y < h; y++ {
			row := dst.Row(0, y)
			in := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				p := row[x*f.Bpp:]
				i := in[4*x : 4*x+4 : 4*x+4]
				p[f.R] = i[0]
				p[f.G] = i[1]
				p[f.B] = i[2]
				if f.A >= 0 {
					p[f.A] = i[3]
				}
			}
		}

	case pixfmt.LayoutPlanarRGB:
		for y := 0; y < h; y++ {
			gRow, bRow, rRow := dst.Row(0, y), dst.Row(1, y), dst.Row(2, y)
			in := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				putSample(rRow, x, f.Depth, in[4*x])
				putSample(gRow, x, f.Depth, in[4*x+1])
				putSample(bRow, x, f.Depth, in[4*x+2])
			}
		}

	default:
		hs, vs := f.ChromaShift()
		hMask, vMask := (1<<hs)-1, (1<<vs)-1
		for y := 0; y < h; y++ {
			yRow := dst.Row(0, y)
			in := src.Pix[y*src.Stride:]
			chromaRow := y&vMask == 0 && f.Layout != pixfmt.LayoutGray

			var uRow, vRow []byte
			if chromaRow {
				switch f.Layout {
				case pixfmt.LayoutYUV:
					uRow, vRow = dst.Row(1, y>>vs), dst.Row(2, y>>vs)
				case pixfmt.LayoutSemiPlanar:
					uRow = dst.Row(1, y>>vs)
				}
			}

			for x := 0; x < w; x++ {
				r := int32(in[4*x])
				g := int32(in[4*x+1])
				b := int32(in[4*x+2])

				putSample(yRow, x, f.Depth, rgbToY(r, g, b))

				if !chromaRow || x&hMask != 0 {
					continue
				}
				cb, cr := rgbToCb(r, g, b), rgbToCr(r, g, b)
				cx := x >> hs
				switch f.Layout {
				case pixfmt.LayoutYUV:
					putSample(uRow, cx, f.Depth, cb)
					putSample(vRow, cx, f.Depth, cr)
				case pixfmt.LayoutSemiPlanar:
					if f.SwapUV {
						cb, cr = cr, cb
					}
					uRow[2*cx] = cb
					uRow[2*cx+1] = cr
				}
			}
		}
	}
}
