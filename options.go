package swscale

import (
	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/diag"
	"github.com/vireo-video/swscale/internal/filter"
	"github.com/vireo-video/swscale/internal/kernel"
)

// Kernel re-exports internal/filter's resampling kernel choice, mirroring
// spec.md §6's getContext flags (exactly one of these is selected per
// context).
type Kernel = filter.Kind

const (
	KernelPoint        = filter.Point
	KernelArea          = filter.Area
	KernelBilinear      = filter.Bilinear
	KernelFastBilinear  = filter.FastBilinear
	KernelBicubic       = filter.Bicubic
	KernelX             = filter.X
	KernelGauss         = filter.Gauss
	KernelLanczos       = filter.Lanczos
	KernelSinc          = filter.Sinc
	KernelSpline        = filter.Spline
)

// Options bundles the parameters spec.md §6's getContext accepts:
// kernel choice and parameters, optional pre/post filter vectors,
// colorspace selection, and per-call diagnostics.
type Options struct {
	Kernel Kernel
	Param  [2]float64

	// SrcFilter/DstFilter are optional user-supplied vectors convolved
	// into every filter bank, horizontal and vertical, luma and chroma
	// alike (spec.md §4.1 step 4).
	SrcFilter *kernel.Vector
	DstFilter *kernel.Vector

	// TapAlignment rounds the reduced tap count of every filter bank up
	// to a multiple of this (spec.md §4.1 step 5); 0 means unaligned.
	TapAlignment int

	Matrix     colorspace.Matrix
	SrcRange   colorspace.Range
	DstRange   colorspace.Range
	Brightness float64
	Contrast   float64
	Saturation float64

	// Log receives construction/dispatch diagnostics; nil is a valid
	// no-op logger.
	Log *diag.Logger
}

// DefaultOptions returns the bilinear/BT.601/limited-range defaults used
// when a caller doesn't need to tune resampling quality or colorspace.
func DefaultOptions() Options {
	return Options{
		Kernel:     KernelBilinear,
		Matrix:     colorspace.BT601,
		SrcRange:   colorspace.RangeLimited,
		DstRange:   colorspace.RangeLimited,
		Contrast:   1,
		Saturation: 1,
		Log:        diag.Noop(),
	}
}

func (o Options) colorspaceParams() colorspace.Params {
	return colorspace.Params{Brightness: o.Brightness, Contrast: o.Contrast, Saturation: o.Saturation}
}

func (o Options) filterParams(one int) filter.Params {
	return filter.Params{
		Kind:         o.Kernel,
		Param:        o.Param,
		PreFilter:    o.SrcFilter,
		PostFilter:   o.DstFilter,
		TapAlignment: o.TapAlignment,
		One:          one,
	}
}
