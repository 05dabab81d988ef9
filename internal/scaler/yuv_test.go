package scaler

import (
	"image/color"
	"testing"
)

// TestColourConversion_MatchesStdlib verifies the fixed-point helpers agree
// with image/color across a coarse RGB lattice
func TestColourConversion_MatchesStdlib(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				wantY, wantCb, wantCr := color.RGBToYCbCr(uint8(r), uint8(g), uint8(b))
				gotY := rgbToY(int32(r), int32(g), int32(b))
				gotCb := rgbToCb(int32(r), int32(g), int32(b))
				gotCr := rgbToCr(int32(r), int32(g), int32(b))
				if gotY != wantY || gotCb != wantCb || gotCr != wantCr {
					t.Fatalf("RGB(%d,%d,%d): got YCbCr(%d,%d,%d), want (%d,%d,%d)",
						r, g, b, gotY, gotCb, gotCr, wantY, wantCb, wantCr)
				}
			}
		}
	}

	for y := 0; y < 256; y += 17 {
		for cb := 0; cb < 256; cb += 17 {
			for cr := 0; cr < 256; cr += 17 {
				wantR, wantG, wantB := color.YCbCrToRGB(uint8(y), uint8(cb), uint8(cr))
				gotR, gotG, gotB := yuvToRGB(uint8(y), uint8(cb), uint8(cr))
				if gotR != wantR || gotG != wantG || gotB != wantB {
					t.Fatalf("YCbCr(%d,%d,%d): got RGB(%d,%d,%d), want (%d,%d,%d)",
						y, cb, cr, gotR, gotG, gotB, wantR, wantG, wantB)
				}
			}
		}
	}
}

func TestWideSamples_RoundTrip(t *testing.T) {
	for _, depth := range []int{8, 10, 16} {
		row := make([]byte, 512)
		for s := 0; s < 256; s++ {
			putSample(row, s, depth, uint8(s))
		}
		for s := 0; s < 256; s++ {
			if got := sample(row, s, depth); got != uint8(s) {
				t.Errorf("depth %d: sample %d read back as %d", depth, s, got)
			}
		}
	}

	// 10-bit full scale replicates the top bits into the low bits
	row := make([]byte, 2)
	putSample(row, 0, 10, 0xff)
	if v := uint16(row[0]) | uint16(row[1])<<8; v != 0x3ff {
		t.Errorf("10-bit white = %#x, want 0x3ff", v)
	}
}

func BenchmarkScaleLanczos720pTo1080p(b *testing.B) {
	benchmarkScale(b, "yuv420p10le", "gbrp", Lanczos)
}

func BenchmarkScalePlanarBilinear(b *testing.B) {
	benchmarkScale(b, "yuv420p", "yuv420p", Bilinear)
}

func BenchmarkScaleCatmullRom(b *testing.B) {
	benchmarkScale(b, "rgba", "yuv420p", CatmullRom)
}

func benchmarkScale(b *testing.B, in, out string, filter Filter) {
	srcGeom := geometry(b, in, 1280, 720)
	dstGeom := geometry(b, out, 1920, 1080)

	c, err := New(srcGeom, dstGeom, Options{Filter: filter})
	if err != nil {
		b.Fatalf("Failed to create scaler: %v", err)
	}
	defer c.Close()

	src := allocFrame(b, srcGeom)
	dst := allocFrame(b, dstGeom)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Scale(dst, src); err != nil {
			b.Fatal(err)
		}
	}
}
