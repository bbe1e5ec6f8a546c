package rowconv

import (
	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/format"
)

func unpack8(dst []int16, src []byte, w int) {
	for i := 0; i < w; i++ {
		dst[i] = int16(uint16(src[i]) << ShiftBits)
	}
}

func pack8(dst []byte, src []int16, w int) {
	for i := 0; i < w; i++ {
		dst[i] = byte(clamp8(int32(src[i]) >> ShiftBits))
	}
}

func unpack16(dst []int16, src []byte, w int, bigEndian bool) {
	for i := 0; i < w; i++ {
		var v uint16
		if bigEndian {
			v = uint16(src[2*i])<<8 | uint16(src[2*i+1])
		} else {
			v = uint16(src[2*i]) | uint16(src[2*i+1])<<8
		}
		// 16-bit sample -> Q15: drop the low bit.
		dst[i] = int16(v >> 1)
	}
}

func pack16(dst []byte, src []int16, w int, bigEndian bool) {
	for i := 0; i < w; i++ {
		v := clamp16(int32(src[i]) << 1)
		if bigEndian {
			dst[2*i] = byte(v >> 8)
			dst[2*i+1] = byte(v)
		} else {
			dst[2*i] = byte(v)
			dst[2*i+1] = byte(v >> 8)
		}
	}
}

func planarUnpack(bigEndian, depth16 bool) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, _ colorspace.Coeffs, w int) {
		if y != nil {
			if depth16 {
				unpack16(y, row[0], w, bigEndian)
			} else {
				unpack8(y, row[0], w)
			}
		}
		if u != nil && v != nil {
			if depth16 {
				unpack16(u, row[1], w, bigEndian)
				unpack16(v, row[2], w, bigEndian)
			} else {
				unpack8(u, row[1], w)
				unpack8(v, row[2], w)
			}
		}
		if a != nil {
			unpack8(a, row[3], w)
		}
	}
}

func planarPack(bigEndian, depth16 bool) Packer {
	return func(row Planes, y, u, v, a []int16, _ colorspace.Coeffs, x, w int, _ int) {
		if y != nil {
			if depth16 {
				pack16(row[0], y[x:x+w], w, bigEndian)
			} else {
				pack8(row[0], y[x:x+w], w)
			}
		}
		if u != nil && v != nil {
			// u/v hold the (possibly subsampled) chroma width, not w.
			cw := w
			if len(u)-x < cw {
				cw = len(u) - x
			}
			if depth16 {
				pack16(row[1], u[x:x+cw], cw, bigEndian)
				pack16(row[2], v[x:x+cw], cw, bigEndian)
			} else {
				pack8(row[1], u[x:x+cw], cw)
				pack8(row[2], v[x:x+cw], cw)
			}
		}
		if a != nil {
			pack8(row[3], a[x:x+w], w)
		}
	}
}

// grayUnpack/grayPack handle GRAY8/GRAY16: single-component formats
// that never own a chroma plane. Unlike planarUnpack, a requested u/v
// is filled with the neutral mid-grey sample instead of reading a
// nonexistent plane 1/2, so a grayscale source can still feed an RGB
// destination (spec.md §4.4's packer always expects non-nil u/v).
func grayUnpack(bigEndian, depth16 bool) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, _ colorspace.Coeffs, w int) {
		if y != nil {
			if depth16 {
				unpack16(y, row[0], w, bigEndian)
			} else {
				unpack8(y, row[0], w)
			}
		}
		const neutral = int16(128 << ShiftBits)
		for i := range u {
			u[i] = neutral
		}
		for i := range v {
			v[i] = neutral
		}
	}
}

func grayPack(bigEndian, depth16 bool) Packer {
	return func(row Planes, y, u, v, a []int16, _ colorspace.Coeffs, x, w int, _ int) {
		if depth16 {
			pack16(row[0], y[x:x+w], w, bigEndian)
		} else {
			pack8(row[0], y[x:x+w], w)
		}
	}
}

func init() {
	planar8 := Converter{Unpack: planarUnpack(false, false), Pack: planarPack(false, false)}
	register(format.YUV410P, planar8)
	register(format.YUV420P, planar8)
	register(format.YUVA420P, planar8)
	register(format.YUV422P, planar8)
	register(format.YUV440P, planar8)
	register(format.YUV444P, planar8)
	register(format.GRAY8, Converter{Unpack: grayUnpack(false, false), Pack: grayPack(false, false)})

	register(format.YUV420P16BE, Converter{Unpack: planarUnpack(true, true), Pack: planarPack(true, true)})
	register(format.YUV420P16LE, Converter{Unpack: planarUnpack(false, true), Pack: planarPack(false, true)})
	register(format.YUV422P16BE, Converter{Unpack: planarUnpack(true, true), Pack: planarPack(true, true)})
	register(format.YUV422P16LE, Converter{Unpack: planarUnpack(false, true), Pack: planarPack(false, true)})
	register(format.YUV444P16BE, Converter{Unpack: planarUnpack(true, true), Pack: planarPack(true, true)})
	register(format.YUV444P16LE, Converter{Unpack: planarUnpack(false, true), Pack: planarPack(false, true)})

	register(format.GRAY16BE, Converter{Unpack: grayUnpack(true, true), Pack: grayPack(true, true)})
	register(format.GRAY16LE, Converter{Unpack: grayUnpack(false, true), Pack: grayPack(false, true)})

	register(format.NV12, Converter{Unpack: nvUnpack(false), Pack: nvPack(false)})
	register(format.NV21, Converter{Unpack: nvUnpack(true), Pack: nvPack(true)})
}

// nvUnpack decodes NV12 (U,V interleaved) or NV21 (V,U interleaved) rows;
// w is the width of the requested component: the luma width when y is
// decoded, the chroma width (half the luma width) when u/v are.
func nvUnpack(swapped bool) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, _ colorspace.Coeffs, w int) {
		if y != nil {
			unpack8(y, row[0], w)
		}
		if u != nil && v != nil {
			first, second := u, v
			if swapped {
				first, second = v, u
			}
			for i := 0; i < w; i++ {
				first[i] = int16(uint16(row[1][2*i]) << ShiftBits)
				second[i] = int16(uint16(row[1][2*i+1]) << ShiftBits)
			}
		}
	}
}

func nvPack(swapped bool) Packer {
	return func(row Planes, y, u, v, a []int16, _ colorspace.Coeffs, x, w int, _ int) {
		if y != nil {
			pack8(row[0], y[x:x+w], w)
		}
		if u != nil && v != nil {
			first, second := u, v
			if swapped {
				first, second = v, u
			}
			cw := w
			if len(u)-x < cw {
				cw = len(u) - x
			}
			for i := 0; i < cw; i++ {
				row[1][2*i] = byte(clamp8(int32(first[x+i]) >> ShiftBits))
				row[1][2*i+1] = byte(clamp8(int32(second[x+i]) >> ShiftBits))
			}
		}
	}
}
