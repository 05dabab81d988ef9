package pixfmt

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlloc_AlignsPlanesAndLinesizes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f := MustLookup(name)
			frame, err := Alloc(f, 1279, 719, DefaultAlign)
			require.NoError(t, err)

			planes := f.Planes(1279, 719)
			require.Len(t, frame.Data, len(planes))

			for i, p := range planes {
				assert.Zero(t, frame.Linesize[i]%DefaultAlign, "plane %d linesize", i)
				assert.GreaterOrEqual(t, frame.Linesize[i], p.RowBytes)
				assert.Len(t, frame.Data[i], frame.Linesize[i]*p.Rows)

				addr := uintptr(unsafe.Pointer(unsafe.SliceData(frame.Data[i])))
				assert.Zero(t, addr%DefaultAlign, "plane %d address", i)
			}
		})
	}
}

func TestAlloc_RejectsBadInput(t *testing.T) {
	f := MustLookup("yuv420p")

	_, err := Alloc(f, 0, 10, DefaultAlign)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Alloc(f, 10, -1, DefaultAlign)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Alloc(f, 1<<20, 1<<20, DefaultAlign)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Alloc(f, 16, 16, 48)
	assert.ErrorIs(t, err, ErrInvalidAlign)

	_, err = Alloc(Format{Name: "bogus", Layout: Layout(99)}, 16, 16, DefaultAlign)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFrame_RowAndFree(t *testing.T) {
	frame, err := Alloc(MustLookup("gray"), 8, 4, 16)
	require.NoError(t, err)

	row := frame.Row(0, 2)
	require.Len(t, row, 16)
	row[0] = 0xAB
	assert.Equal(t, byte(0xAB), frame.Data[0][32])

	frame.Free()
	assert.Nil(t, frame.Data)

	var nilFrame *Frame
	assert.NotPanics(t, nilFrame.Free)
}
