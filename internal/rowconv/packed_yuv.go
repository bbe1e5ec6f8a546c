package rowconv

import (
	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/format"
)

// packedYUVUnpack decodes a YUYV422/UYVY422 row: w is the luma width (must
// be even) when y is decoded; chroma output, if requested, fills len(u)
// samples (the chroma width, half the luma width).
func packedYUVUnpack(yFirst bool) Unpacker {
	return func(y, u, v, a []int16, row Planes, pal *Palette, _ colorspace.Coeffs, w int) {
		src := row[0]
		yOff, cOff := 0, 1
		if !yFirst {
			yOff, cOff = 1, 0
		}
		if y != nil {
			for i := 0; i < w; i++ {
				y[i] = int16(uint16(src[2*i+yOff]) << ShiftBits)
			}
		}
		if u != nil && v != nil {
			half := len(u)
			for i := 0; i < half; i++ {
				u[i] = int16(uint16(src[4*i+cOff]) << ShiftBits)
				v[i] = int16(uint16(src[4*i+cOff+2]) << ShiftBits)
			}
		}
	}
}

func packedYUVPack(yFirst bool) Packer {
	return func(row Planes, y, u, v, a []int16, _ colorspace.Coeffs, x, w int, _ int) {
		dst := row[0]
		yOff, cOff := 0, 1
		if !yFirst {
			yOff, cOff = 1, 0
		}
		half := w / 2
		for i := 0; i < half; i++ {
			dst[4*i+yOff] = byte(clamp8(int32(y[x+2*i]) >> ShiftBits))
			dst[4*i+yOff+2] = byte(clamp8(int32(y[x+2*i+1]) >> ShiftBits))
			dst[4*i+cOff] = byte(clamp8(int32(u[x/2+i]) >> ShiftBits))
			dst[4*i+cOff+2] = byte(clamp8(int32(v[x/2+i]) >> ShiftBits))
		}
	}
}

func init() {
	register(format.YUYV422, Converter{Unpack: packedYUVUnpack(true), Pack: packedYUVPack(true)})
	register(format.UYVY422, Converter{Unpack: packedYUVUnpack(false), Pack: packedYUVPack(false)})
}
