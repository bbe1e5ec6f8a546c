// Package kernel implements the finite-double-sequence "vector" helper
// API spec.md §1 calls out as an external collaborator to the filter
// builder: alloc/identity/constant/Gaussian construction, convolution,
// shifting, scaling, normalization. The filter builder (internal/filter)
// consumes this to apply caller-supplied pre/post filters (spec.md §4.1
// step 4). No getDefaultFilter-style blur/sharpen builder is provided.
package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vector is a finite sequence of doubles used as a convolution kernel.
// Length remains >= 1 through every operation below.
type Vector struct {
	Coeff []float64
}

// Identity returns the length-1 vector {1.0}.
func Identity() Vector {
	return Vector{Coeff: []float64{1.0}}
}

// Const returns a length-n vector with every entry set to value.
func Const(n int, value float64) Vector {
	if n < 1 {
		n = 1
	}
	c := make([]float64, n)
	for i := range c {
		c[i] = value
	}
	return Vector{Coeff: c}
}

// Gaussian returns a Gaussian kernel vector. variance controls the
// spread; quality controls how many standard deviations the support
// extends to either side (matching sws_getGaussianVec's (variance,
// quality) signature).
func Gaussian(variance, quality float64) Vector {
	if variance <= 0 {
		variance = 1
	}
	if quality <= 0 {
		quality = 3
	}
	sd := math.Sqrt(variance)
	length := int(sd*quality+0.5)*2 + 1
	if length < 1 {
		length = 1
	}
	c := make([]float64, length)
	center := float64(length-1) / 2
	for i := range c {
		d := float64(i) - center
		c[i] = math.Exp(-d * d / (2 * variance))
	}
	return Normalize(Vector{Coeff: c}, 1.0)
}

// Clone returns a deep copy of v.
func Clone(v Vector) Vector {
	c := make([]float64, len(v.Coeff))
	copy(c, v.Coeff)
	return Vector{Coeff: c}
}

// Scale returns a copy of v with every coefficient multiplied by factor.
func Scale(v Vector, factor float64) Vector {
	c := Clone(v)
	floats.Scale(factor, c.Coeff)
	return c
}

// Normalize returns a copy of v scaled so its coefficients sum to height.
// A zero-sum vector is returned unchanged (normalizing it would divide by
// zero).
func Normalize(v Vector, height float64) Vector {
	sum := floats.Sum(v.Coeff)
	if sum == 0 {
		return Clone(v)
	}
	return Scale(v, height/sum)
}

// centerAligned returns the length-max(len(a),len(b)) elementwise
// combination of a and b via op, center-aligning the shorter vector
// inside the longer one's span.
func centerAligned(a, b Vector, op func(x, y float64) float64) Vector {
	la, lb := len(a.Coeff), len(b.Coeff)
	n := la
	if lb > n {
		n = lb
	}
	out := make([]float64, n)
	longer, shorter := a.Coeff, b.Coeff
	longerIsA := true
	if lb > la {
		longer, shorter = b.Coeff, a.Coeff
		longerIsA = false
	}
	copy(out, longer)
	off := (n - len(shorter)) / 2
	for i, s := range shorter {
		if longerIsA {
			out[off+i] = op(out[off+i], s)
		} else {
			out[off+i] = op(s, out[off+i])
		}
	}
	return Vector{Coeff: out}
}

// Sum returns a+b, center-aligning the shorter vector, length max(len(a),
// len(b)).
func Sum(a, b Vector) Vector {
	return centerAligned(a, b, func(x, y float64) float64 { return x + y })
}

// Diff returns a-b, center-aligning the shorter vector, length
// max(len(a), len(b)).
func Diff(a, b Vector) Vector {
	return centerAligned(a, b, func(x, y float64) float64 { return x - y })
}

// Convolve returns the discrete convolution of a and b, length
// len(a)+len(b)-1. There is no gonum primitive for convolution (floats
// is elementwise-only); this loop is hand-written.
func Convolve(a, b Vector) Vector {
	la, lb := len(a.Coeff), len(b.Coeff)
	out := make([]float64, la+lb-1)
	for i, av := range a.Coeff {
		if av == 0 {
			continue
		}
		for j, bv := range b.Coeff {
			out[i+j] += av * bv
		}
	}
	return Vector{Coeff: out}
}

// Shift returns a copy of v shifted by k source positions, extending the
// vector by 2*|k| zero-padded entries (matching libswscale's
// sws_getShiftedVec: new length len(v)+2*|k|, coeff[i] moved to
// i+|k|+k).
func Shift(v Vector, k int) Vector {
	ak := k
	if ak < 0 {
		ak = -ak
	}
	n := len(v.Coeff) + 2*ak
	out := make([]float64, n)
	off := ak + k
	copy(out[off:], v.Coeff)
	return Vector{Coeff: out}
}
