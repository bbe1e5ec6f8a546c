package filter

import "math"

// Kind selects the resampling kernel used by Build, mirroring spec.md
// §6's getContext flags (exactly one of these is selected per context).
type Kind int

const (
	Point Kind = iota
	Area
	Bilinear
	FastBilinear
	Bicubic
	X
	Gauss
	Lanczos
	Sinc
	Spline
)

// baseWidth returns the base kernel support window used by step 2 of the
// filter-builder algorithm (spec.md §4.1). downscale is xInc > 0x10000.
func baseWidth(k Kind, param [2]float64, downscale bool) int {
	switch k {
	case Bicubic:
		return 4
	case X:
		return 8
	case Area:
		if downscale {
			return 1
		}
		return 2
	case Gauss:
		return 8
	case Lanczos:
		p := param[0]
		if p <= 0 {
			return 6
		}
		return int(math.Ceil(2 * p))
	case Sinc:
		return 20
	case Spline:
		return 20
	case Bilinear, FastBilinear:
		return 2
	default:
		return 4
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// splineP is the literal B-spline parameter from
// original_source/libswscale/swscale.c; preserved verbatim per spec.md
// §9 open question (c), no derivation attempted.
const splineP = -2.196152422706632

func splineBasis(x, p float64) float64 {
	x = math.Abs(x)
	if x < 1 {
		return ((p+2)*x-(p+3))*x*x + 1
	}
	if x < 2 {
		return (((x-5)*x+8)*x - 4) * p
	}
	return 0
}

// evalKernel evaluates the selected kernel at fractional distance d, per
// spec.md §4.1 step 3. param holds the caller-supplied kernel parameters
// (e.g. Lanczos window, Gauss spread, Bicubic B/C).
func evalKernel(k Kind, d float64, param [2]float64) float64 {
	switch k {
	case Bicubic:
		b, c := param[0], param[1]
		if b == 0 && c == 0 {
			c = 0.6
		}
		ad := math.Abs(d)
		if ad < 1 {
			return ((12-9*b-6*c)*ad*ad*ad + (-18+12*b+6*c)*ad*ad + (6 - 2*b)) / 6
		}
		if ad < 2 {
			return ((-b-6*c)*ad*ad*ad + (6*b+30*c)*ad*ad + (-12*b-48*c)*ad + (8*b + 24*c)) / 6
		}
		return 0
	case X:
		a := param[0]
		if a == 0 {
			a = 1
		}
		c := math.Cos(d * math.Pi)
		v := math.Pow(math.Abs(c), a)
		if c < 0 {
			v = -v
		}
		return v*0.5 + 0.5
	case Area:
		// Trapezoid of half-width 1/xInc, clipped to [0,1]; xInc is folded
		// into the caller-supplied d scaling (see Build), so here d is
		// already expressed in units of the trapezoid half-width.
		ad := math.Abs(d)
		if ad < 0.5 {
			return 1
		}
		if ad < 1.5 {
			return 1.5 - ad
		}
		return 0
	case Gauss:
		p := param[0]
		if p <= 0 {
			p = 3
		}
		return math.Pow(2, -p*d*d)
	case Sinc:
		return sinc(d)
	case Lanczos:
		p := param[0]
		if p <= 0 {
			p = 3
		}
		if math.Abs(d) < p {
			return sinc(d) * sinc(d/p)
		}
		return 0
	case Bilinear, FastBilinear:
		ad := math.Abs(d)
		if ad < 1 {
			return 1 - ad
		}
		return 0
	case Spline:
		return splineBasis(d, splineP)
	default:
		// Point is handled directly in Build and never reaches evalKernel.
		return 0
	}
}
