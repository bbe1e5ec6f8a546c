// Package filter implements the filter-coefficient builder (spec.md §1
// L3, §4.1): turns a chosen resampling kernel plus a source-to-
// destination ratio into a per-output-sample list of integer tap weights
// and source-column offsets.
//
// Grounded on imgutil/scale.go's newDistrib/contrib/source machinery
// (_examples/naisuuuu-mangaconv), generalized from a single Kernel.At
// function to the nine named kernels of spec.md §4.1 and to the
// monotone-offset / reduction / border-repair / int16-quantization
// invariants that resampler doesn't need.
package filter

import (
	"math"

	"github.com/vireo-video/swscale/internal/kernel"
	"github.com/vireo-video/swscale/internal/swserr"
)

// maxSrcLen is the compile-time geometry limit spec.md §7 refers to
// ("dimensions ... exceeds the compile-time limit").
const maxSrcLen = 1 << 16

// reduceCutoff is the implementation-defined relative cutoff used by
// step 5 (reduction), ported from libswscale's SWS_MAX_REDUCE_CUTOFF.
const reduceCutoff = 0.002

// maxTaps is the implementation-defined maximum reduced tap count;
// exceeding it is ErrFilterTooLarge.
const maxTaps = 256

// Bank is the result of the filter builder (spec.md §3's FilterBank).
// Row i of Coeff (Coeff[i*Taps : i*Taps+Taps]) sums to approximately One.
// A trailing sentinel row equal to the last real row absorbs a one-past-
// end SIMD-style read; Offset has dstLen+1 entries with
// Offset[dstLen] == Offset[dstLen-1].
type Bank struct {
	Taps   int
	Offset []int32
	Coeff  []int16
	One    int
}

// Row returns the taps coefficients for destination sample i.
func (b *Bank) Row(i int) []int16 {
	return b.Coeff[i*b.Taps : (i+1)*b.Taps]
}

// DstLen returns the number of destination samples the bank maps to
// (Offset carries one trailing sentinel entry beyond this length).
func (b *Bank) DstLen() int {
	return len(b.Offset) - 1
}

// Params bundles the caller-supplied inputs to Build beyond
// (srcLen, dstLen): the chosen kernel and its parameters, optional
// pre/post convolution filters, the output tap alignment, and the
// target fixed-point "one" (spec.md §3: e.g. 1<<14 horizontal, 1<<12
// vertical).
type Params struct {
	Kind          Kind
	Param         [2]float64
	PreFilter     *kernel.Vector
	PostFilter    *kernel.Vector
	TapAlignment  int
	One           int
}

// Build constructs a Bank mapping srcLen source samples to dstLen
// destination samples, per spec.md §4.1.
func Build(srcLen, dstLen int, p Params) (*Bank, error) {
	if srcLen <= 0 || dstLen <= 0 || srcLen > maxSrcLen || dstLen > maxSrcLen {
		return nil, swserr.ErrInvalidGeometry
	}
	one := p.One
	if one <= 0 {
		one = 1 << 14
	}
	align := p.TapAlignment
	if align <= 0 {
		align = 1
	}

	xInc := ((int64(srcLen) << 16) + int64(dstLen)/2) / int64(dstLen)
	downscale := xInc > 0x10000

	var raw [][]float64
	var offset []int32
	var taps int

	switch {
	case absInt64(xInc-0x10000) < 10:
		taps = 1
		offset = make([]int32, dstLen)
		raw = make([][]float64, dstLen)
		for i := range raw {
			o := i
			if o > srcLen-1 {
				o = srcLen - 1
			}
			offset[i] = int32(o)
			raw[i] = []float64{1}
		}
	case p.Kind == Point:
		taps = 1
		offset = make([]int32, dstLen)
		raw = make([][]float64, dstLen)
		for i := range raw {
			srcX := int((int64(i)*xInc + xInc/2) >> 16)
			if srcX > srcLen-1 {
				srcX = srcLen - 1
			}
			offset[i] = int32(srcX)
			raw[i] = []float64{1}
		}
	case !downscale && (p.Kind == Area || p.Kind == FastBilinear):
		taps = 2
		offset, raw = buildGeneral(srcLen, dstLen, taps, Bilinear, p.Param, downscale)
	default:
		base := baseWidth(p.Kind, p.Param, downscale)
		if downscale {
			taps = 1 + int(math.Ceil(float64(base)*float64(srcLen)/float64(dstLen)))
		} else {
			taps = 1 + base
		}
		if taps > srcLen-2 {
			taps = srcLen - 2
		}
		if taps < 1 {
			taps = 1
		}
		offset, raw = buildGeneral(srcLen, dstLen, taps, p.Kind, p.Param, downscale)
	}

	if p.PreFilter != nil {
		raw, offset, taps = convolveRows(raw, offset, taps, *p.PreFilter)
	}
	if p.PostFilter != nil {
		raw, offset, taps = convolveRows(raw, offset, taps, *p.PostFilter)
	}

	offset, raw, taps = reduce(raw, offset, taps, align)
	offset, taps = repairBorders(raw, offset, taps, srcLen)

	if taps > maxTaps {
		return nil, swserr.ErrFilterTooLarge
	}

	coeff, err := quantizeRows(raw, taps, one)
	if err != nil {
		return nil, err
	}

	// Sentinel row + trailing offset, per spec.md §3.
	coeff = append(coeff, coeff[len(coeff)-taps:]...)
	offset = append(offset, offset[len(offset)-1])

	return &Bank{Taps: taps, Offset: offset, Coeff: coeff, One: one}, nil
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// buildGeneral evaluates the chosen kernel across a taps-wide window for
// every destination sample, per spec.md §4.1 steps 2-3.
func buildGeneral(srcLen, dstLen, taps int, k Kind, param [2]float64, downscale bool) ([]int32, [][]float64) {
	scale := float64(srcLen) / float64(dstLen)
	offset := make([]int32, dstLen)
	raw := make([][]float64, dstLen)
	for i := 0; i < dstLen; i++ {
		center := (float64(i)+0.5)*scale - 0.5
		base := int(math.Floor(center)) - (taps/2 - 1)
		if base < 0 {
			base = 0
		}
		if base > srcLen-taps {
			base = srcLen - taps
		}
		if base < 0 {
			base = 0
		}
		offset[i] = int32(base)
		row := make([]float64, taps)
		for j := 0; j < taps; j++ {
			srcX := base + j
			d := center - float64(srcX)
			if downscale && scale != 0 {
				d /= scale
			}
			row[j] = evalKernel(k, d, param)
		}
		raw[i] = row
	}
	return offset, raw
}

// convolveRows applies a caller-supplied pre/post filter to every row by
// convolution, shifting offsets by (tapsNew-tapsOld)/2 per spec.md §4.1
// step 4.
func convolveRows(raw [][]float64, offset []int32, taps int, v kernel.Vector) ([][]float64, []int32, int) {
	if len(v.Coeff) == 0 {
		return raw, offset, taps
	}
	tapsNew := taps + len(v.Coeff) - 1
	shift := int32((tapsNew - taps) / 2)
	newRaw := make([][]float64, len(raw))
	newOffset := make([]int32, len(offset))
	for i, row := range raw {
		conv := kernel.Convolve(kernel.Vector{Coeff: row}, v)
		newRaw[i] = conv.Coeff
		newOffset[i] = offset[i] - shift
	}
	return newRaw, newOffset, tapsNew
}

// repairBorders folds left/right overflow coefficients into the nearest
// in-bounds column, per spec.md §4.1 step 6.
func repairBorders(raw [][]float64, offset []int32, taps, srcLen int) ([]int32, int) {
	out := make([]int32, len(offset))
	for i, row := range raw {
		off := offset[i]
		if off < 0 {
			fold := -off
			if int(fold) > taps {
				fold = int32(taps)
			}
			for j := 0; j < int(fold); j++ {
				row[0] += row[j]
			}
			// leave row[1:fold] as-is; they contribute to column 0's
			// neighborhood via the accumulation above, matching the
			// fold-into-column-0 contract without resizing every row
			// independently (taps stays uniform across rows).
			for j := 1; j < int(fold); j++ {
				row[j] = 0
			}
			off = 0
		}
		if int(off)+taps > srcLen {
			overflow := int(off) + taps - srcLen
			if overflow > taps {
				overflow = taps
			}
			last := taps - 1
			for j := 0; j < overflow; j++ {
				row[last] += row[last-j]
			}
			for j := 1; j < overflow; j++ {
				row[last-j] = 0
			}
			off = int32(srcLen - taps)
			if off < 0 {
				off = 0
			}
		}
		out[i] = off
	}
	return out, taps
}

// reduce left-shifts rows while the leftmost coefficient stays below the
// cutoff (incrementing offset, stopping short of breaking monotonicity),
// then trims a common width from the right, rounded up to align, per
// spec.md §4.1 step 5.
func reduce(raw [][]float64, offset []int32, taps, align int) ([]int32, [][]float64, int) {
	n := len(raw)
	newOffset := make([]int32, n)
	copy(newOffset, offset)
	shifted := make([][]float64, n)
	for i, row := range raw {
		sum := rowAbsSum(row)
		cutoff := reduceCutoff * sum
		start := 0
		for start < taps-1 {
			if math.Abs(row[start]) >= cutoff {
				break
			}
			if i > 0 && newOffset[i-1] > newOffset[i]+int32(start)+1 {
				break
			}
			start++
		}
		shifted[i] = append([]float64(nil), row[start:]...)
		newOffset[i] += int32(start)
	}
	// enforce monotonicity left to right as a final safety net.
	for i := 1; i < n; i++ {
		if newOffset[i] < newOffset[i-1] {
			newOffset[i] = newOffset[i-1]
		}
	}

	minWidth := 0
	for _, row := range shifted {
		w := trimmedWidth(row)
		if minWidth == 0 || w < minWidth {
			minWidth = w
		}
	}
	if minWidth < 1 {
		minWidth = 1
	}
	if align > 1 {
		minWidth = ((minWidth + align - 1) / align) * align
	}

	out := make([][]float64, n)
	for i, row := range shifted {
		if minWidth <= len(row) {
			out[i] = append([]float64(nil), row[:minWidth]...)
		} else {
			padded := make([]float64, minWidth)
			copy(padded, row)
			out[i] = padded
		}
	}
	return newOffset, out, minWidth
}

func rowAbsSum(row []float64) float64 {
	s := 0.0
	for _, v := range row {
		if v < 0 {
			s -= v
		} else {
			s += v
		}
	}
	return s
}

func trimmedWidth(row []float64) int {
	sum := rowAbsSum(row)
	cutoff := reduceCutoff * sum
	w := len(row)
	for w > 1 && math.Abs(row[w-1]) < cutoff {
		w--
	}
	return w
}

// quantizeRows emits int16 coefficients via error-diffused rounding,
// preserving each row's sum == one exactly, per spec.md §4.1 step 7.
func quantizeRows(raw [][]float64, taps, one int) ([]int16, error) {
	out := make([]int16, 0, len(raw)*taps)
	for _, row := range raw {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			sum = 1
		}
		qsum := int64(0)
		quantRow := make([]int64, taps)
		errAcc := 0.0
		for j := 0; j < taps; j++ {
			v := row[j] + errAcc
			q := math.Round(v * float64(one) / sum)
			errAcc = v - q*sum/float64(one)
			quantRow[j] = int64(q)
			qsum += int64(q)
		}
		// Correct any residual rounding drift in the final tap so the row
		// sums to exactly `one`.
		quantRow[taps-1] += int64(one) - qsum
		for _, q := range quantRow {
			if q > math.MaxInt16 {
				q = math.MaxInt16
			}
			if q < math.MinInt16 {
				q = math.MinInt16
			}
			out = append(out, int16(q))
		}
	}
	return out, nil
}
