package scaler

// YCbCr coefficients (BT.601, 16.16 fixed point).
// Results are bit-identical to image/color.RGBToYCbCr.
const (
	yR  = 19595
	yG  = 38470
	yB  = 7471
	cbR = -11056
	cbG = -21712
	cbB = 32768
	crR = 32768
	crG = -27440
	crB = -5328
)

func rgbToY(r, g, b int32) uint8 {
	return uint8((yR*r + yG*g + yB*b + 1<<15) >> 16)
}

func rgbToCb(r, g, b int32) uint8 {
	cb := cbR*r + cbG*g + cbB*b + 257<<15
	if uint32(cb)&0xff000000 == 0 {
		cb >>= 16
	} else {
		cb = ^(cb >> 31)
	}
	return uint8(cb)
}

func rgbToCr(r, g, b int32) uint8 {
	cr := crR*r + crG*g + crB*b + 257<<15
	if uint32(cr)&0xff000000 == 0 {
		cr >>= 16
	} else {
		cr = ^(cr >> 31)
	}
	return uint8(cr)
}

// yuvToRGB mirrors image/color.YCbCrToRGB
func yuvToRGB(y, cb, cr uint8) (uint8, uint8, uint8) {
	yy1 := int32(y) * 0x10101
	cb1 := int32(cb) - 128
	cr1 := int32(cr) - 128

	r := yy1 + 91881*cr1
	if uint32(r)&0xff000000 == 0 {
		r >>= 16
	} else {
		r = ^(r >> 31)
	}

	g := yy1 - 22554*cb1 - 46802*cr1
	if uint32(g)&0xff000000 == 0 {
		g >>= 16
	} else {
		g = ^(g >> 31)
	}

	b := yy1 + 116130*cb1
	if uint32(b)&0xff000000 == 0 {
		b >>= 16
	} else {
		b = ^(b >> 31)
	}

	return uint8(r), uint8(g), uint8(b)
}

// sample reads component x of a row, narrowing high bit depths to 8 bits
func sample(row []byte, x, depth int) uint8 {
	if depth <= 8 {
		return row[x]
	}
	v := uint16(row[2*x]) | uint16(row[2*x+1])<<8
	return uint8(v >> uint(depth-8))
}

// putSample writes component x of a row, widening to the format depth by bit replication
func putSample(row []byte, x, depth int, s uint8) {
	if depth <= 8 {
		row[x] = s
		return
	}
	shift := uint(depth - 8)
	v := uint16(s)<<shift | uint16(s)>>(8-shift)
	row[2*x] = byte(v)
	row[2*x+1] = byte(v >> 8)
}

func loadRow(dst, src []byte, n, depth int) {
	if depth <= 8 {
		copy(dst[:n], src[:n])
		return
	}
	for x := 0; x < n; x++ {
		dst[x] = sample(src, x, depth)
	}
}

func storeRow(dst, src []byte, n, depth int) {
	if depth <= 8 {
		copy(dst[:n], src[:n])
		return
	}
	for x := 0; x < n; x++ {
		putSample(dst, x, depth, src[x])
	}
}
