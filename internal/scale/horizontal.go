// Package scale implements the scanline engines and row-cache scheduler
// (spec.md §1 M1-M3): the horizontal scaler, the vertical combiner and
// format packer, and the ring-buffer scheduler that keeps just enough
// horizontally-scaled source rows resident to serve each output row.
//
// Grounded on imgutil/scale.go's kernelScaler (_examples/naisuuuu-mangaconv):
// the same two-pass separable resampling shape (scaleX then scaleY), here
// operating on a FilterBank's fixed-point int16 taps instead of a
// Kernel.At closure, and on int16 Q15 intermediates instead of float64.
package scale

import (
	"math/bits"

	"github.com/vireo-video/swscale/internal/filter"
)

// Horizontal applies bank to one unpacked intermediate row, producing a
// dstLen-wide row of Q15 samples, per spec.md §4.2. Coefficients sum to
// bank.One (a power of two), so the weighted sum is renormalized back to
// Q15 by a shift derived from bank.One rather than a hard-coded one
// (bank.One differs between the horizontal and vertical passes: 1<<14
// vs 1<<12, per context.go's oneH/oneV).
func Horizontal(dst []int16, src []int16, bank *filter.Bank) {
	taps := bank.Taps
	shift := bits.TrailingZeros(uint(bank.One))
	switch taps {
	case 1:
		for i := range dst {
			o := int(bank.Offset[i])
			dst[i] = clipQ15(int32(src[o]))
		}
	case 2:
		for i := range dst {
			o := int(bank.Offset[i])
			row := bank.Row(i)
			acc := int32(src[o])*int32(row[0]) + int32(src[o+1])*int32(row[1])
			dst[i] = clipQ15(acc >> uint(shift))
		}
	default:
		for i := range dst {
			o := int(bank.Offset[i])
			row := bank.Row(i)
			window := src[o : o+taps]
			var acc int32
			for j, c := range row {
				acc += int32(window[j]) * int32(c)
			}
			dst[i] = clipQ15(acc >> uint(shift))
		}
	}
}

func clipQ15(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
