package rowconv

import (
	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/format"
)

// dither2x2_4 and dither2x2_8 are the ordered-dither matrices ported from
// original_source/libswscale/swscale.c's dither_2x2_4/dither_2x2_8, used
// when packing into the 5/6-bit channels of RGB15/16. Indexed [y&1][x&7].
// Every channel of a pixel receives the same entry; the original's
// separate green phase (its dg1/dg2 assignment, spec.md §9 open question
// (a)) is not reproduced.
var dither2x2_4 = [2][8]uint8{
	{1, 3, 1, 3, 1, 3, 1, 3},
	{2, 0, 2, 0, 2, 0, 2, 0},
}

var dither2x2_8 = [2][8]uint8{
	{6, 2, 6, 2, 6, 2, 6, 2},
	{0, 4, 0, 4, 0, 4, 0, 4},
}

func ditherAt(table *[2][8]uint8, x, y int) int32 {
	return int32(table[y&1][x&7])
}

// rgbToYUV converts one 8-bit RGB triple to Q15 Y/U/V using coeffs'
// forward fixed-point matrix (spec.md §4.4 step 4).
func rgbToYUV(r, g, b uint8, coeffs colorspace.Coeffs) (y, u, v int16) {
	ri, gi, bi := int32(r), int32(g), int32(b)
	y8 := (coeffs.RGBToY[0]*ri + coeffs.RGBToY[1]*gi + coeffs.RGBToY[2]*bi + coeffs.RGBToY[3]) >> colorspace.Shift
	u8 := (coeffs.RGBToU[0]*ri + coeffs.RGBToU[1]*gi + coeffs.RGBToU[2]*bi + coeffs.RGBToU[3]) >> colorspace.Shift
	v8 := (coeffs.RGBToV[0]*ri + coeffs.RGBToV[1]*gi + coeffs.RGBToV[2]*bi + coeffs.RGBToV[3]) >> colorspace.Shift
	return int16(clamp8(y8)) << ShiftBits, int16(clamp8(u8)) << ShiftBits, int16(clamp8(v8)) << ShiftBits
}

// yuvToRGB converts one Q15 Y/U/V sample to an 8-bit RGB triple via
// coeffs' inverse lookup tables (spec.md §4.4 step 4).
func yuvToRGB(y, u, v int16, coeffs colorspace.Coeffs) (r, g, b uint8) {
	y8 := clamp8(int32(y) >> ShiftBits)
	u8 := clamp8(int32(u) >> ShiftBits)
	v8 := clamp8(int32(v) >> ShiftBits)
	base := int32(y8) << colorspace.Shift
	r = clamp8((base + coeffs.RTab[v8]) >> colorspace.Shift)
	g = clamp8((base + coeffs.GTabU[u8] + coeffs.GTabV[v8]) >> colorspace.Shift)
	b = clamp8((base + coeffs.BTab[u8]) >> colorspace.Shift)
	return
}

// rgbLayout describes where R, G, B (and optionally A) sit within one
// packed pixel, so a single pair of closures serves every 24/32-bit
// packed variant (RGB24/BGR24, RGB32/BGR32, RGB32_1/BGR32_1).
type rgbLayout struct {
	bytesPerPixel          int
	rOff, gOff, bOff, aOff int // aOff < 0 means no alpha byte
}

var (
	layoutRGB24  = rgbLayout{3, 0, 1, 2, -1}
	layoutBGR24  = rgbLayout{3, 2, 1, 0, -1}
	layoutRGB32  = rgbLayout{4, 0, 1, 2, 3}
	layoutBGR32  = rgbLayout{4, 2, 1, 0, 3}
	layoutRGB321 = rgbLayout{4, 1, 2, 3, 0}
	layoutBGR321 = rgbLayout{4, 3, 2, 1, 0}
)

func packedRGBUnpack(l rgbLayout) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, coeffs colorspace.Coeffs, w int) {
		src := row[0]
		for i := 0; i < w; i++ {
			px := src[i*l.bytesPerPixel:]
			r, g, b := px[l.rOff], px[l.gOff], px[l.bOff]
			if y != nil || u != nil || v != nil {
				yy, uu, vv := rgbToYUV(r, g, b, coeffs)
				if y != nil {
					y[i] = yy
				}
				if u != nil {
					u[i] = uu
				}
				if v != nil {
					v[i] = vv
				}
			}
			if a != nil {
				if l.aOff >= 0 {
					a[i] = int16(uint16(px[l.aOff]) << ShiftBits)
				} else {
					a[i] = int16(uint16(255) << ShiftBits)
				}
			}
		}
	}
}

func packedRGBPack(l rgbLayout) Packer {
	return func(row Planes, y, u, v, a []int16, coeffs colorspace.Coeffs, x, w int, _ int) {
		dst := row[0]
		for i := 0; i < w; i++ {
			r, g, b := yuvToRGB(y[x+i], u[x+i], v[x+i], coeffs)
			px := dst[i*l.bytesPerPixel:]
			px[l.rOff] = r
			px[l.gOff] = g
			px[l.bOff] = b
			if l.aOff >= 0 {
				if a != nil {
					px[l.aOff] = byte(clamp8(int32(a[x+i]) >> ShiftBits))
				} else {
					px[l.aOff] = 255
				}
			}
		}
	}
}

// rgb16Layout describes a 16-bit-per-pixel 555/565 packed format: bit
// widths and positions (MSB first) for R, G, B, plus the dither table
// used to spread the rounding error when truncating from 8 bits.
type rgb16Layout struct {
	rBits, gBits, bBits     int
	rShift, gShift, bShift  int
	ditherTable             *[2][8]uint8
}

var (
	layout555 = rgb16Layout{5, 5, 5, 10, 5, 0, &dither2x2_8}
	layout565 = rgb16Layout{5, 6, 5, 11, 5, 0, &dither2x2_4}
)

func expand(v uint16, bits int) uint8 {
	v8 := uint8(v << (8 - bits))
	return v8 | (v8 >> uint(bits))
}

func packedRGB16Unpack(l rgb16Layout, bgr bool) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, coeffs colorspace.Coeffs, w int) {
		src := row[0]
		for i := 0; i < w; i++ {
			px := uint16(src[2*i]) | uint16(src[2*i+1])<<8
			c0 := expand((px>>uint(l.rShift))&((1<<uint(l.rBits))-1), l.rBits)
			c1 := expand((px>>uint(l.gShift))&((1<<uint(l.gBits))-1), l.gBits)
			c2 := expand((px>>uint(l.bShift))&((1<<uint(l.bBits))-1), l.bBits)
			r, g, b := c0, c1, c2
			if bgr {
				r, b = c2, c0
			}
			if y != nil || u != nil || v != nil {
				yy, uu, vv := rgbToYUV(r, g, b, coeffs)
				if y != nil {
					y[i] = yy
				}
				if u != nil {
					u[i] = uu
				}
				if v != nil {
					v[i] = vv
				}
			}
			if a != nil {
				a[i] = int16(uint16(255) << ShiftBits)
			}
		}
	}
}

func packedRGB16Pack(l rgb16Layout, bgr bool) Packer {
	return func(row Planes, y, u, v, a []int16, coeffs colorspace.Coeffs, x, w int, ditherY int) {
		dst := row[0]
		for i := 0; i < w; i++ {
			r, g, b := yuvToRGB(y[x+i], u[x+i], v[x+i], coeffs)
			c0, c1, c2 := r, g, b
			if bgr {
				c0, c2 = b, r
			}
			d := ditherAt(l.ditherTable, x+i, ditherY)
			q0 := quantizeChannel(c0, l.rBits, d)
			q1 := quantizeChannel(c1, l.gBits, d)
			q2 := quantizeChannel(c2, l.bBits, d)
			px := uint16(q0)<<uint(l.rShift) | uint16(q1)<<uint(l.gShift) | uint16(q2)<<uint(l.bShift)
			dst[2*i] = byte(px)
			dst[2*i+1] = byte(px >> 8)
		}
	}
}

// quantizeChannel rounds an 8-bit sample to bits-wide precision, adding
// a dither value (already in units of the discarded low bits) before
// truncating.
func quantizeChannel(v uint8, bits int, dither int32) uint16 {
	drop := 8 - bits
	biased := int32(v) + dither
	if biased > 255 {
		biased = 255
	}
	return uint16(biased) >> uint(drop)
}

// rgb48 (RGB48BE/LE): 16-bit-per-channel packed RGB, no subsampling.
func rgb48Unpack(bigEndian bool) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, coeffs colorspace.Coeffs, w int) {
		src := row[0]
		sample := func(off int) uint8 {
			if bigEndian {
				return src[off*2]
			}
			return src[off*2+1]
		}
		for i := 0; i < w; i++ {
			r := sample(3*i + 0)
			g := sample(3*i + 1)
			b := sample(3*i + 2)
			if y != nil || u != nil || v != nil {
				yy, uu, vv := rgbToYUV(r, g, b, coeffs)
				if y != nil {
					y[i] = yy
				}
				if u != nil {
					u[i] = uu
				}
				if v != nil {
					v[i] = vv
				}
			}
			if a != nil {
				a[i] = int16(uint16(255) << ShiftBits)
			}
		}
	}
}

func rgb48Pack(bigEndian bool) Packer {
	return func(row Planes, y, u, v, a []int16, coeffs colorspace.Coeffs, x, w int, _ int) {
		dst := row[0]
		put := func(off int, hi, lo byte) {
			if bigEndian {
				dst[off*2], dst[off*2+1] = hi, lo
			} else {
				dst[off*2], dst[off*2+1] = lo, hi
			}
		}
		for i := 0; i < w; i++ {
			r, g, b := yuvToRGB(y[x+i], u[x+i], v[x+i], coeffs)
			put(3*i+0, r, r)
			put(3*i+1, g, g)
			put(3*i+2, b, b)
		}
	}
}

func init() {
	register(format.RGB24, Converter{Unpack: packedRGBUnpack(layoutRGB24), Pack: packedRGBPack(layoutRGB24)})
	register(format.BGR24, Converter{Unpack: packedRGBUnpack(layoutBGR24), Pack: packedRGBPack(layoutBGR24)})
	register(format.RGB32, Converter{Unpack: packedRGBUnpack(layoutRGB32), Pack: packedRGBPack(layoutRGB32)})
	register(format.BGR32, Converter{Unpack: packedRGBUnpack(layoutBGR32), Pack: packedRGBPack(layoutBGR32)})
	register(format.RGB32_1, Converter{Unpack: packedRGBUnpack(layoutRGB321), Pack: packedRGBPack(layoutRGB321)})
	register(format.BGR32_1, Converter{Unpack: packedRGBUnpack(layoutBGR321), Pack: packedRGBPack(layoutBGR321)})

	register(format.RGB15, Converter{Unpack: packedRGB16Unpack(layout555, false), Pack: packedRGB16Pack(layout555, false)})
	register(format.BGR15, Converter{Unpack: packedRGB16Unpack(layout555, true), Pack: packedRGB16Pack(layout555, true)})
	register(format.RGB16, Converter{Unpack: packedRGB16Unpack(layout565, false), Pack: packedRGB16Pack(layout565, false)})
	register(format.BGR16, Converter{Unpack: packedRGB16Unpack(layout565, true), Pack: packedRGB16Pack(layout565, true)})

	register(format.RGB48BE, Converter{Unpack: rgb48Unpack(true), Pack: rgb48Pack(true)})
	register(format.RGB48LE, Converter{Unpack: rgb48Unpack(false), Pack: rgb48Pack(false)})
}
