// Package rowconv implements the row-converter contract (spec.md §1 L5):
// packing and unpacking one scanline between a source/destination pixel
// format and the 15-bit luma/chroma/alpha intermediate the scaler
// operates on internally. Spec.md treats the low-level packed-RGB/BGR
// row converters as an external contract specified only at this
// boundary; this package is that contract plus a concrete
// implementation for every format in internal/format's registry.
//
// The internal intermediate is always YUV (Q15 samples, one value per
// source column for luma/alpha, subsampled per format for chroma): RGB
// family sources are converted to YUV on unpack via internal/colorspace,
// and RGB family destinations are produced from YUV on pack via the same
// package's lookup tables. This mirrors how the original converts both
// directions through a single working colorspace rather than carrying
// two intermediate representations end to end.
//
// Grounded on imgutil/grayscale.go's per-concrete-type conversion
// functions (rgbaToGray, nrgbaToGray, ycbcrToGray, ...): this package is
// the same "one function per source layout" shape, generalized to
// packing as well as unpacking, to every format in the registry instead
// of just grayscale, and to a fixed-point Q15 intermediate instead of
// 8-bit gray.
package rowconv

import (
	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/format"
)

// intermediate precision: an 8-bit sample s unpacks to s<<ShiftBits.
const ShiftBits = 7

// Planes is the caller's four plane pointers for one row, addressed the
// way spec.md §6 describes: plane 0 luma/packed, 1/2 chroma or palette,
// 3 alpha.
type Planes [4][]byte

// Palette is a 256-entry RGB palette used by palettized formats,
// rebuilt by the caller on every call per spec.md §4.5 step 4.
type Palette [256][3]uint8

// Unpacker converts one source row into Q15 intermediate samples.
// y and a are luma/alpha width srcW; u and v are chroma width (srcW for
// RGB-family sources, per-format chroma width otherwise). Any of u, v, a
// may be nil when the format lacks that component.
type Unpacker func(y, u, v, a []int16, row Planes, pal *Palette, coeffs colorspace.Coeffs, w int)

// Packer converts Q15 intermediate samples into one destination row.
// Same width conventions as Unpacker.
type Packer func(row Planes, y, u, v, a []int16, coeffs colorspace.Coeffs, x int, w int, ditherY int)

// Converter bundles the pack/unpack pair for a format.
type Converter struct {
	Unpack Unpacker
	Pack   Packer
}

var registry = map[format.Format]Converter{}

func register(f format.Format, c Converter) {
	registry[f] = c
}

// For returns the registered Converter for f, and whether one exists.
func For(f format.Format) (Converter, bool) {
	c, ok := registry[f]
	return c, ok
}

func clampQ15(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

func clamp8(v int32) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

func clamp16(v int32) uint16 {
	if v > 65535 {
		return 65535
	}
	if v < 0 {
		return 0
	}
	return uint16(v)
}
