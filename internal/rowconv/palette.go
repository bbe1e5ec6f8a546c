package rowconv

import (
	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/format"
)

// fixedIndex decodes/encodes the implicit fixed-layout palette carried by
// RGB8/BGR8/RGB4_BYTE/BGR4_BYTE's index byte itself (ported from
// original_source/libswscale/swscale.c's sws_scale pal_yuv build loop,
// spec.md §8 scenario 6): the index is not an arbitrary caller palette,
// it is a bit-packed RGB triple at a fixed per-format precision.
type fixedIndex struct {
	// toRGB decodes one index (0..255 for the 8-bit formats, 0..15 for
	// the nibble formats) into an 8-bit RGB triple.
	toRGB func(i int) (r, g, b uint8)
	// toIndex quantizes an 8-bit RGB triple back to an index.
	toIndex func(r, g, b uint8) int
	nibble  bool // true for RGB4/RGB4Byte/BGR4/BGR4Byte: 4-bit index
}

func clampTo(v int, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

var fixedRGB8 = fixedIndex{
	toRGB: func(i int) (uint8, uint8, uint8) {
		return uint8((i >> 5) * 36), uint8(((i >> 2) & 7) * 36), uint8((i & 3) * 85)
	},
	toIndex: func(r, g, b uint8) int {
		r3 := clampTo((int(r)+18)/36, 7)
		g3 := clampTo((int(g)+18)/36, 7)
		b2 := clampTo((int(b)+42)/85, 3)
		return r3<<5 | g3<<2 | b2
	},
}

var fixedBGR8 = fixedIndex{
	toRGB: func(i int) (uint8, uint8, uint8) {
		b := uint8((i >> 6) * 85)
		g := uint8(((i >> 3) & 7) * 36)
		r := uint8((i & 7) * 36)
		return r, g, b
	},
	toIndex: func(r, g, b uint8) int {
		b2 := clampTo((int(b)+42)/85, 3)
		g3 := clampTo((int(g)+18)/36, 7)
		r3 := clampTo((int(r)+18)/36, 7)
		return b2<<6 | g3<<3 | r3
	},
}

var fixedRGB4 = fixedIndex{
	toRGB: func(i int) (uint8, uint8, uint8) {
		return uint8((i >> 3) * 255), uint8(((i >> 1) & 3) * 85), uint8((i & 1) * 255)
	},
	toIndex: func(r, g, b uint8) int {
		r1 := clampTo((int(r)+127)/255, 1)
		g2 := clampTo((int(g)+42)/85, 3)
		b1 := clampTo((int(b)+127)/255, 1)
		return r1<<3 | g2<<1 | b1
	},
	nibble: true,
}

var fixedBGR4 = fixedIndex{
	toRGB: func(i int) (uint8, uint8, uint8) {
		b := uint8((i >> 3) * 255)
		g := uint8(((i >> 1) & 3) * 85)
		r := uint8((i & 1) * 255)
		return r, g, b
	},
	toIndex: func(r, g, b uint8) int {
		b1 := clampTo((int(b)+127)/255, 1)
		g2 := clampTo((int(g)+42)/85, 3)
		r1 := clampTo((int(r)+127)/255, 1)
		return b1<<3 | g2<<1 | r1
	},
	nibble: true,
}

// fixedIndexUnpack decodes one index-per-byte row (RGB8/BGR8, or
// RGB4Byte/BGR4Byte whose index lives in the low nibble of each byte).
func fixedIndexUnpack(fi fixedIndex) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, coeffs colorspace.Coeffs, w int) {
		src := row[0]
		for i := 0; i < w; i++ {
			idx := int(src[i])
			if fi.nibble {
				idx &= 0xF
			}
			r, g, b := fi.toRGB(idx)
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

func fixedIndexPack(fi fixedIndex) Packer {
	return func(row Planes, y, u, v, a []int16, coeffs colorspace.Coeffs, x, w int, _ int) {
		dst := row[0]
		for i := 0; i < w; i++ {
			r, g, b := yuvToRGB(y[x+i], u[x+i], v[x+i], coeffs)
			dst[i] = byte(fi.toIndex(r, g, b))
		}
	}
}

// nibblePackedUnpack decodes RGB4/BGR4: two 4-bit indices per byte,
// low nibble first.
func nibblePackedUnpack(fi fixedIndex) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, coeffs colorspace.Coeffs, w int) {
		src := row[0]
		for i := 0; i < w; i++ {
			b := src[i/2]
			var idx int
			if i%2 == 0 {
				idx = int(b) & 0xF
			} else {
				idx = int(b>>4) & 0xF
			}
			r, g, bl := fi.toRGB(idx)
			if y != nil || u != nil || v != nil {
				yy, uu, vv := rgbToYUV(r, g, bl, coeffs)
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

func nibblePackedPack(fi fixedIndex) Packer {
	return func(row Planes, y, u, v, a []int16, coeffs colorspace.Coeffs, x, w int, _ int) {
		dst := row[0]
		for i := 0; i < w; i++ {
			r, g, b := yuvToRGB(y[x+i], u[x+i], v[x+i], coeffs)
			idx := byte(fi.toIndex(r, g, b))
			if i%2 == 0 {
				dst[i/2] = (dst[i/2] &^ 0x0F) | (idx & 0xF)
			} else {
				dst[i/2] = (dst[i/2] &^ 0xF0) | (idx << 4)
			}
		}
	}
}

// pal8Unpack uses the caller's arbitrary 256-entry RGB palette (spec.md
// §4.5 step 4), rebuilt by the context on every call.
func pal8Unpack(y, u, v, a []int16, row Planes, pal *Palette, coeffs colorspace.Coeffs, w int) {
	src := row[0]
	for i := 0; i < w; i++ {
		idx := src[i]
		var r, g, b uint8
		if pal != nil {
			r, g, b = pal[idx][0], pal[idx][1], pal[idx][2]
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

// pal8Pack writes palette index 0 for every pixel: no destination palette
// is available, and nearestPaletteIndex returns 0 for a nil palette, so
// PAL8 output carries no colour information. PAL8 is not a typical
// swscale destination, but spec.md §6 lists it among the supported
// formats without direction restriction.
func pal8Pack(row Planes, y, u, v, a []int16, coeffs colorspace.Coeffs, x, w int, _ int) {
	dst := row[0]
	for i := 0; i < w; i++ {
		r, g, b := yuvToRGB(y[x+i], u[x+i], v[x+i], coeffs)
		dst[i] = byte(nearestPaletteIndex(nil, r, g, b))
	}
}

func nearestPaletteIndex(pal *Palette, r, g, b uint8) int {
	if pal == nil {
		return 0
	}
	best, bestDist := 0, 1<<30
	for i := 0; i < 256; i++ {
		dr := int(pal[i][0]) - int(r)
		dg := int(pal[i][1]) - int(g)
		db := int(pal[i][2]) - int(b)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func init() {
	register(format.RGB8, Converter{Unpack: fixedIndexUnpack(fixedRGB8), Pack: fixedIndexPack(fixedRGB8)})
	register(format.BGR8, Converter{Unpack: fixedIndexUnpack(fixedBGR8), Pack: fixedIndexPack(fixedBGR8)})
	register(format.RGB4Byte, Converter{Unpack: fixedIndexUnpack(fixedRGB4), Pack: fixedIndexPack(fixedRGB4)})
	register(format.BGR4Byte, Converter{Unpack: fixedIndexUnpack(fixedBGR4), Pack: fixedIndexPack(fixedBGR4)})
	register(format.RGB4, Converter{Unpack: nibblePackedUnpack(fixedRGB4), Pack: nibblePackedPack(fixedRGB4)})
	register(format.BGR4, Converter{Unpack: nibblePackedUnpack(fixedBGR4), Pack: nibblePackedPack(fixedBGR4)})
	register(format.PAL8, Converter{Unpack: pal8Unpack, Pack: pal8Pack})
}
