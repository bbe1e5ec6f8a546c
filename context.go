// Package swscale implements a software image scaler and pixel-format
// converter for planar and packed YUV/RGB video frames, modeled on
// ffmpeg's libswscale (see SPEC_FULL.md for the full design).
//
// Grounded on mangaconv.New/Converter (_examples/naisuuuu-mangaconv):
// the same "construct once, reuse across many Scale calls" object
// shape, generalized from a fixed grayscale Catmull-Rom scaler to the
// full format/kernel/colorspace matrix this package supports.
package swscale

import (
	"fmt"

	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/diag"
	"github.com/vireo-video/swscale/internal/filter"
	"github.com/vireo-video/swscale/internal/format"
	"github.com/vireo-video/swscale/internal/rowconv"
	"github.com/vireo-video/swscale/internal/scale"
	"github.com/vireo-video/swscale/internal/swserr"
	"go.uber.org/zap"
)

// horizontal/vertical fixed-point "one" constants (spec.md §3).
const (
	oneH = 1 << 14
	oneV = 1 << 12
)

// Context is the long-lived object returned by GetContext (spec.md §3's
// ScalerContext): it owns geometry, filter banks, and format conversion
// state across many Scale calls on the same source and destination
// configuration. The row cache is not kept here: each Scale call on the
// general path builds a fresh scheduler and rings (see newScheduler).
type Context struct {
	srcW, srcH int
	dstW, dstH int
	srcFmt     format.Format
	dstFmt     format.Format
	srcDesc    format.Descriptor
	dstDesc    format.Descriptor

	opts   Options
	coeffs colorspace.Coeffs

	lumBankH, chrBankH *filter.Bank
	lumBankV, chrBankV *filter.Bank

	srcConv, dstConv rowconv.Converter
	pal              *rowconv.Palette

	hasChroma bool
	hasAlpha  bool

	// unscaled is the fast-path flag (spec.md §2 L1's "format-dispatch
	// and colorspace initialization table ... picks unscaled fast paths
	// ... when geometry is unchanged"): identical dimensions and pixel
	// format reduce Scale to a row-for-row copy.
	unscaled bool

	// sliceDir tracks direction across the calls making up one frame
	// (spec.md §3: -1 bottom-up in progress, 0 frame boundary, +1
	// top-down in progress).
	sliceDir int

	log *diag.Logger
}

// GetContext validates the requested geometry/format/kernel combination
// and builds a Context, per spec.md §6's getContext. It returns
// ErrInvalidGeometry, ErrUnsupportedInputFormat, ErrUnsupportedOutputFormat,
// or an internal/filter error (e.g. ErrFilterTooLarge) on failure.
func GetContext(srcW, srcH int, srcFmt format.Format, dstW, dstH int, dstFmt format.Format, opts Options) (*Context, error) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return nil, swserr.ErrInvalidGeometry
	}
	srcDesc, ok := format.Desc(srcFmt)
	if !ok {
		return nil, fmt.Errorf("%w: %v", swserr.ErrUnsupportedInputFormat, srcFmt)
	}
	dstDesc, ok := format.Desc(dstFmt)
	if !ok {
		return nil, fmt.Errorf("%w: %v", swserr.ErrUnsupportedOutputFormat, dstFmt)
	}
	srcConv, ok := rowconv.For(srcFmt)
	if !ok {
		return nil, fmt.Errorf("%w: no row converter for %v", swserr.ErrUnsupportedInputFormat, srcFmt)
	}
	dstConv, ok := rowconv.For(dstFmt)
	if !ok {
		return nil, fmt.Errorf("%w: no row converter for %v", swserr.ErrUnsupportedOutputFormat, dstFmt)
	}

	log := opts.Log
	if log == nil {
		log = diag.Noop()
	}

	srcChromaW := format.ChromaWidth(srcDesc, srcW)
	srcChromaH := format.ChromaHeight(srcDesc, srcH)
	dstChromaW := format.ChromaWidth(dstDesc, dstW)
	dstChromaH := format.ChromaHeight(dstDesc, dstH)

	lumBankH, err := filter.Build(srcW, dstW, opts.filterParams(oneH))
	if err != nil {
		return nil, err
	}
	chrBankH, err := filter.Build(srcChromaW, dstChromaW, opts.filterParams(oneH))
	if err != nil {
		return nil, err
	}
	lumBankV, err := filter.Build(srcH, dstH, opts.filterParams(oneV))
	if err != nil {
		return nil, err
	}
	chrBankV, err := filter.Build(srcChromaH, dstChromaH, opts.filterParams(oneV))
	if err != nil {
		return nil, err
	}

	matrix := opts.Matrix
	if matrix == (colorspace.Matrix{}) {
		matrix = colorspace.BT601
	}
	coeffs := colorspace.Build(matrix, opts.SrcRange, opts.colorspaceParams())

	c := &Context{
		srcW: srcW, srcH: srcH, dstW: dstW, dstH: dstH,
		srcFmt: srcFmt, dstFmt: dstFmt,
		srcDesc: srcDesc, dstDesc: dstDesc,
		opts:     opts,
		coeffs:   coeffs,
		lumBankH: lumBankH, chrBankH: chrBankH,
		lumBankV: lumBankV, chrBankV: chrBankV,
		srcConv: srcConv, dstConv: dstConv,
		hasChroma: !(isMonochrome(srcDesc) && isMonochrome(dstDesc)),
		hasAlpha:  srcDesc.HasAlpha && dstDesc.HasAlpha,
		unscaled:  srcW == dstW && srcH == dstH && srcFmt == dstFmt,
		log:       log,
	}
	if srcDesc.Palette {
		c.pal = &rowconv.Palette{}
	}

	log.Info("swscale: context built",
		zap.String("src_format", srcFmt.String()), zap.Int("src_w", srcW), zap.Int("src_h", srcH),
		zap.String("dst_format", dstFmt.String()), zap.Int("dst_w", dstW), zap.Int("dst_h", dstH),
		zap.Bool("unscaled", c.unscaled))

	return c, nil
}

// GetCachedContext returns ctx unchanged if it already matches the
// requested parameters, otherwise builds and returns a fresh Context,
// per spec.md §6's getCachedContext.
func GetCachedContext(ctx *Context, srcW, srcH int, srcFmt format.Format, dstW, dstH int, dstFmt format.Format, opts Options) (*Context, error) {
	if ctx != nil &&
		ctx.srcW == srcW && ctx.srcH == srcH && ctx.srcFmt == srcFmt &&
		ctx.dstW == dstW && ctx.dstH == dstH && ctx.dstFmt == dstFmt &&
		ctx.opts == opts {
		return ctx, nil
	}
	return GetContext(srcW, srcH, srcFmt, dstW, dstH, dstFmt, opts)
}

// SetColorspaceDetails reconfigures the RGB<->YUV coefficients in
// place, per spec.md §6; it fails if the destination is YUV or gray,
// since those formats carry no colorspace conversion to configure.
func (c *Context) SetColorspaceDetails(m colorspace.Matrix, srcRange, dstRange colorspace.Range, brightness, contrast, saturation float64) error {
	if c.dstDesc.IsYUVFamily() || c.dstDesc.Family == format.FamilyGray {
		return fmt.Errorf("%w: destination format %v carries no colorspace", swserr.ErrInvalidFlags, c.dstFmt)
	}
	c.opts.Matrix = m
	c.opts.SrcRange = srcRange
	c.opts.DstRange = dstRange
	c.opts.Brightness = brightness
	c.opts.Contrast = contrast
	c.opts.Saturation = saturation
	c.coeffs = colorspace.Build(m, srcRange, c.opts.colorspaceParams())
	return nil
}

// GetColorspaceDetails returns the matrix, ranges and adjustment
// parameters currently configured on c.
func (c *Context) GetColorspaceDetails() (m colorspace.Matrix, srcRange, dstRange colorspace.Range, brightness, contrast, saturation float64) {
	return c.opts.Matrix, c.opts.SrcRange, c.opts.DstRange, c.opts.Brightness, c.opts.Contrast, c.opts.Saturation
}

// isMonochrome reports whether d's format never carries a chroma plane
// (GRAY8/16 and MONOWHITE/MONOBLACK): grayUnpack/monoUnpack fill a
// neutral chroma sample on request instead, but when both ends of a
// conversion are monochrome there's no need to schedule chroma rows
// at all (spec.md §4.3's "chroma rows are produced at a different
// cadence" assumes a chroma axis exists in the first place).
func isMonochrome(d format.Descriptor) bool {
	return d.Family == format.FamilyGray || d.Family == format.FamilyMono
}

func newScheduler(c *Context, fetch scale.RowFetcher) *scale.Scheduler {
	srcChromaW := format.ChromaWidth(c.srcDesc, c.srcW)
	return scale.NewScheduler(c.srcConv, c.coeffs, c.pal, fetch,
		c.srcW, srcChromaW, c.lumBankH, c.chrBankH, c.lumBankV, c.chrBankV,
		c.hasChroma, c.hasAlpha)
}
