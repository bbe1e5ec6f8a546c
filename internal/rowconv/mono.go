package rowconv

import (
	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/format"
)

// dither8x8_220 is the ordered-dither matrix ported from
// original_source/libswscale/swscale.c's dither_8x8_220 (the "tries to
// correct a gamma of 1.0" variant, #if 1 branch), used to threshold Y
// into one bit per pixel when packing MONOWHITE/MONOBLACK.
var dither8x8_220 = [8][8]uint8{
	{117, 62, 158, 103, 113, 58, 155, 100},
	{34, 199, 21, 186, 31, 196, 17, 182},
	{144, 89, 131, 76, 141, 86, 127, 72},
	{0, 165, 41, 206, 10, 175, 52, 217},
	{110, 55, 151, 96, 120, 65, 162, 107},
	{28, 193, 14, 179, 38, 203, 24, 189},
	{138, 83, 124, 69, 148, 93, 134, 79},
	{7, 172, 48, 213, 3, 168, 45, 210},
}

// monoUnpack decodes one MSB-first bit-per-pixel row into Y=0/255 per
// bit, per swscale.c's monowhite2Y/monoblack2Y (white inverts the bits
// before testing).
func monoUnpack(white bool) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, coeffs colorspace.Coeffs, w int) {
		if y == nil {
			return
		}
		src := row[0]
		for i := 0; i < w; i++ {
			byt := src[i/8]
			if white {
				byt = ^byt
			}
			bit := (byt >> uint(7-i%8)) & 1
			var y8 uint8
			if bit == 1 {
				y8 = 255
			}
			y[i] = int16(uint16(y8) << ShiftBits)
		}
		if u != nil {
			for i := range u {
				u[i] = int16(uint16(128) << ShiftBits)
			}
		}
		if v != nil {
			for i := range v {
				v[i] = int16(uint16(128) << ShiftBits)
			}
		}
	}
}

// monoPack thresholds each Y sample against an 8x8 ordered-dither matrix
// and packs 8 pixels MSB-first per destination byte, per swscale.c's
// YSCALE_YUV_2_MONO2_C/YSCALE_YUV_2_MONOX_C (inverted for MONOWHITE).
func monoPack(white bool) Packer {
	return func(row Planes, y, u, v, a []int16, coeffs colorspace.Coeffs, x, w int, ditherY int) {
		dst := row[0]
		for base := 0; base < w; base += 8 {
			var acc byte
			n := 8
			if base+n > w {
				n = w - base
			}
			for j := 0; j < n; j++ {
				y8 := int32(clamp8(int32(y[x+base+j]) >> ShiftBits))
				d := int32(dither8x8_220[ditherY&7][(base+j)&7])
				bit := byte(0)
				if y8+d >= 256 {
					bit = 1
				}
				acc = acc<<1 | bit
			}
			if n < 8 {
				acc <<= uint(8 - n)
			}
			if white {
				acc = ^acc
			}
			dst[base/8] = acc
		}
	}
}

func init() {
	register(format.MONOWHITE, Converter{Unpack: monoUnpack(true), Pack: monoPack(true)})
	register(format.MONOBLACK, Converter{Unpack: monoUnpack(false), Pack: monoPack(false)})
}
