package pixfmt

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// DefaultAlign is the plane alignment used by the benchmark, matching
// av_frame_get_buffer(frame, 64)
const DefaultAlign = 64

var (
	// ErrInvalidSize is returned for non-positive or oversized dimensions
	ErrInvalidSize = errors.New("invalid frame size")
	// ErrInvalidAlign is returned when the alignment is not a power of two
	ErrInvalidAlign = errors.New("alignment must be a power of two")
)

// Frame is an image buffer with per-plane data and line sizes.
// Every plane starts at an address that is a multiple of the alignment
// and every line size is a multiple of it as well.
type Frame struct {
	Format   Format
	Width    int
	Height   int
	Data     [][]byte
	Linesize []int
}

// CheckSize validates image dimensions the same way av_image_check_size does
func CheckSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if uint64(w+128)*uint64(h+128) >= math.MaxInt32/8 {
		return fmt.Errorf("%w: %dx%d exceeds limits", ErrInvalidSize, w, h)
	}
	return nil
}

// Alloc allocates a zeroed frame for a w×h image in format f
func Alloc(f Format, w, h, align int) (*Frame, error) {
	if err := CheckSize(w, h); err != nil {
		return nil, err
	}
	if align <= 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlign, align)
	}

	planes := f.Planes(w, h)
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: no planes for format %s", ErrUnknownFormat, f.Name)
	}

	frame := &Frame{
		Format:   f,
		Width:    w,
		Height:   h,
		Data:     make([][]byte, len(planes)),
		Linesize: make([]int, len(planes)),
	}

	for i, p := range planes {
		linesize := alignUp(p.RowBytes, align)
		frame.Linesize[i] = linesize
		frame.Data[i] = alignedBytes(linesize*p.Rows, align)
	}

	return frame, nil
}

// Row returns row y of plane i, including its alignment padding
func (f *Frame) Row(i, y int) []byte {
	start := y * f.Linesize[i]
	return f.Data[i][start : start+f.Linesize[i]]
}

// Free drops the plane buffers so a stale frame cannot be reused
func (f *Frame) Free() {
	if f == nil {
		return
	}
	f.Data = nil
	f.Linesize = nil
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// alignedBytes over-allocates by one alignment unit and slices the buffer
// so its first element sits on an aligned address
func alignedBytes(size, align int) []byte {
	buf := make([]byte, size+align)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	off := int((uintptr(align) - addr&uintptr(align-1)) & uintptr(align-1))
	return buf[off : off+size : off+size]
}
