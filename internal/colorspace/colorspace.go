// Package colorspace implements the colorspace configurator (spec.md §1
// L4, §4.4 step 4, §6 "Colorspace constants"): integer RGB<->YUV
// coefficient derivation from colorspace matrices, range, and
// brightness/contrast/saturation, plus the YUV->RGB packer lookup
// tables the vertical combiner indexes into.
//
// The literal rgb2yuv_table and the RGB2YUV_SHIFT=15 fixed-point scale
// are ported from original_source/libswscale/swscale.c (see SPEC_FULL.md
// §4.1); the [4]int32 fixed-point coefficient-row shape is modeled on
// deepteams-webp/sharpyuv's ConversionMatrix.
package colorspace

import "math"

// Shift is the Q-format fixed-point shift used by every coefficient
// below (libswscale's RGB2YUV_SHIFT).
const Shift = 15

// Range selects the legal sample range.
type Range int

const (
	// RangeLimited is MPEG/broadcast range: Y in [16,235], UV in [16,240].
	RangeLimited Range = iota
	// RangeFull is JPEG/full range: [0,255] for all components.
	RangeFull
)

// Matrix mirrors one row of libswscale's rgb2yuv_table: three groups
// of (G,B,R) coefficients for Y, U and V. Row 7 (SMPTE240M) preserves
// the literal "0.5, -0.116" parsed per spec.md §9 open question (b).
type Matrix [9]float64

// Named colorspace matrices, ported verbatim from
// original_source/libswscale/swscale.c's rgb2yuv_table.
var (
	BT709     = Matrix{0.7152, 0.0722, 0.2126, -0.386, 0.5, -0.115, -0.454, -0.046, 0.5}
	BT601     = Matrix{0.587, 0.114, 0.299, -0.331, 0.5, -0.169, -0.419, -0.081, 0.5}
	FCC       = Matrix{0.59, 0.11, 0.30, -0.331, 0.5, -0.169, -0.421, -0.079, 0.5}
	SMPTE240M = Matrix{0.701, 0.087, 0.212, -0.384, 0.5, -0.116, -0.445, -0.055, 0.5}
)

// Kr, Kg, Kb returns the luma coefficients implied by the matrix row
// (stored in G,B,R order).
func (m Matrix) kg() float64 { return m[0] }
func (m Matrix) kb() float64 { return m[1] }
func (m Matrix) kr() float64 { return m[2] }

// Coeffs holds the integer RGB<->YUV conversion constants for one
// configured colorspace, in the fixed-point layout
// {coeffR, coeffG, coeffB, offset} used by internal/scale's packer.
type Coeffs struct {
	RGBToY [4]int32
	RGBToU [4]int32
	RGBToV [4]int32

	// YUVToRGB lookup tables (spec.md §4.4 step 4): RTab/BTab indexed by
	// a clipped 8-bit V/U sample, GTabU/GTabV likewise, each holding a
	// pre-shifted Q(Shift) contribution to the destination RGB triple.
	RTab  [256]int32
	GTabU [256]int32
	GTabV [256]int32
	BTab  [256]int32
}

// Params are the user-adjustable knobs spec.md §6 lists alongside the
// chosen matrix and range: brightness/contrast/saturation, matching
// sws_setColorspaceDetails's signature.
type Params struct {
	Brightness float64 // additive, in 8-bit sample units
	Contrast   float64 // multiplicative luma gain, 1.0 = unchanged
	Saturation float64 // multiplicative chroma gain, 1.0 = unchanged
}

func defaultParams(p Params) Params {
	if p.Contrast == 0 {
		p.Contrast = 1
	}
	if p.Saturation == 0 {
		p.Saturation = 1
	}
	return p
}

// Build derives the integer coefficients and lookup tables for the
// named matrix, range and adjustment params.
func Build(m Matrix, rng Range, p Params) Coeffs {
	p = defaultParams(p)

	yScale := p.Contrast
	uvScale := p.Saturation
	if rng == RangeLimited {
		yScale *= 219.0 / 255.0
		uvScale *= 224.0 / 255.0
	}

	one := float64(int64(1) << Shift)
	round := func(v float64) int32 { return int32(math.Round(v)) }

	kr, kg, kb := m.kr(), m.kg(), m.kb()

	c := Coeffs{}
	c.RGBToY = [4]int32{
		round(kr * yScale * one),
		round(kg * yScale * one),
		round(kb * yScale * one),
		int32(1<<(Shift-1)) + round(p.Brightness*one),
	}
	if rng == RangeLimited {
		c.RGBToY[3] += int32(16 << Shift)
	}

	c.RGBToU = [4]int32{
		round(m[5] * uvScale * one), // R
		round(m[3] * uvScale * one), // G
		round(m[4] * uvScale * one), // B
		int32(257 << (Shift - 1)),
	}
	c.RGBToV = [4]int32{
		round(m[8] * uvScale * one), // R
		round(m[6] * uvScale * one), // G
		round(m[7] * uvScale * one), // B
		int32(257 << (Shift - 1)),
	}

	// Inverse direction: standard Kr/Kb-derived YUV->RGB relations (see
	// DESIGN.md for the derivation), scaled by the same saturation gain.
	vCoef := 2 * (1 - kr)
	uCoef := 2 * (1 - kb)
	gu := kb * uCoef / kg
	gv := kr * vCoef / kg

	for i := 0; i < 256; i++ {
		d := float64(i - 128)
		c.RTab[i] = round(vCoef * uvScale * d * one)
		c.BTab[i] = round(uCoef * uvScale * d * one)
		c.GTabU[i] = round(-gu * uvScale * d * one)
		c.GTabV[i] = round(-gv * uvScale * d * one)
	}

	return c
}
