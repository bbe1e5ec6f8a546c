package swscale

import (
	"github.com/vireo-video/swscale/internal/format"
	"github.com/vireo-video/swscale/internal/rowconv"
	"github.com/vireo-video/swscale/internal/scale"
	"github.com/vireo-video/swscale/internal/swserr"
	"go.uber.org/zap"
)

// Planes is the caller's four plane byte slices for one whole image
// (source or destination), addressed the way spec.md §6 describes:
// plane 0 is luma/the single packed plane, 1/2 are chroma (U then V;
// plane 1 alone for NV12/NV21/PAL8), 3 is optional alpha.
//
// Unlike spec.md §4.5's C heritage, these are slices over the entire
// frame rather than raw pointers the caller re-bases and strides may
// go negative for bottom-up delivery: Go has no pointer arithmetic, so
// each plane here always spans the whole image top-to-bottom and rows
// are addressed by a non-negative `row * Stride[n]` offset regardless
// of slice direction. sliceDir is preserved purely as the ordering/
// validation contract (first-slice-must-touch-a-frame-boundary,
// trailing zero-height tolerance).
type Planes [4][]byte

// Strides gives the byte distance between consecutive rows of each
// plane; entries for unused planes are ignored.
type Strides [4]int

// Scale feeds one slice of source rows through ctx and emits as many
// destination rows as the row cache can produce, per spec.md §4.5 and
// §1 T2. srcSliceY/srcSliceH describe which source rows this call
// supplies, in top-down row numbering regardless of sliceDir. Returns
// the number of destination rows written.
func Scale(ctx *Context, src Planes, srcStride Strides, srcSliceY, srcSliceH int, dst Planes, dstStride Strides) (int, error) {
	if srcSliceH == 0 {
		// A trailing zero-size slice must not disturb sliceDir.
		return 0, nil
	}
	if ctx.sliceDir == 0 {
		if srcSliceY != 0 && srcSliceY+srcSliceH != ctx.srcH {
			return 0, swserr.ErrSliceMisordered
		}
		if srcSliceY == 0 {
			ctx.sliceDir = 1
		} else {
			ctx.sliceDir = -1
		}
	}

	resetPtr(&src, ctx.srcDesc)
	resetPtr(&dst, ctx.dstDesc)

	if ctx.srcDesc.Palette && ctx.srcFmt == format.PAL8 {
		rebuildPalette(ctx.pal, src[1])
	}

	rows := 0
	if ctx.unscaled {
		rows = copyUnscaled(ctx, src, srcStride, srcSliceY, srcSliceH, dst, dstStride)
	} else {
		rows = scaleGeneral(ctx, src, srcStride, srcSliceY, srcSliceH, dst, dstStride)
	}

	if srcSliceY+srcSliceH >= ctx.srcH {
		ctx.sliceDir = 0
	}

	ctx.log.Info("swscale: slice scaled",
		zap.Int("src_slice_y", srcSliceY), zap.Int("src_slice_h", srcSliceH), zap.Int("rows_emitted", rows))

	return rows, nil
}

// resetPtr normalizes plane pointers spec.md §4.5 step 3 describes:
// planes a format doesn't carry are nulled, except palette data (and
// the fixed-palette formats whose index byte doubles as plane 1's
// role) which stays in plane 1.
func resetPtr(p *Planes, d format.Descriptor) {
	if !d.HasAlpha {
		p[3] = nil
	}
	if !d.Planar {
		p[3] = nil
		p[2] = nil
		switch {
		case d.Palette:
			// index-carrying formats keep plane 1 (PAL8's literal
			// palette, or packed formats that don't use it at all).
		default:
			p[1] = nil
		}
	}
}

func rebuildPalette(pal *rowconv.Palette, raw []byte) {
	if pal == nil || len(raw) < 256*4 {
		return
	}
	for i := 0; i < 256; i++ {
		b := raw[4*i+0]
		g := raw[4*i+1]
		r := raw[4*i+2]
		pal[i] = [3]uint8{r, g, b}
	}
}

func planeRow(plane []byte, stride, y int) []byte {
	if plane == nil || stride == 0 {
		return nil
	}
	start := y * stride
	return plane[start : start+stride]
}

// frameFetcher adapts one Scale call's Planes/Strides into
// internal/scale.RowFetcher, addressing whole-frame rows directly
// (see Planes's doc comment on why no pointer rebasing is needed).
type frameFetcher struct {
	src        Planes
	stride     Strides
	desc       format.Descriptor
	chromaLog2H int
}

func (f frameFetcher) LumaRow(y int) rowconv.Planes {
	return rowconv.Planes{
		planeRow(f.src[0], f.stride[0], y),
		nil,
		nil,
		planeRow(f.src[3], f.stride[3], y),
	}
}

func (f frameFetcher) ChromaRow(c int) rowconv.Planes {
	if f.desc.Planar && f.desc.Family == format.FamilyYUV && f.desc.Components >= 3 {
		return rowconv.Planes{nil, planeRow(f.src[1], f.stride[1], c), planeRow(f.src[2], f.stride[2], c), nil}
	}
	// Packed/palettized formats decode chroma from the same row as
	// luma (chromaLog2H is always 0 for them in internal/format's
	// registry).
	luma := c << uint(f.chromaLog2H)
	return rowconv.Planes{planeRow(f.src[0], f.stride[0], luma), nil, nil, nil}
}

func scaleGeneral(ctx *Context, src Planes, srcStride Strides, srcSliceY, srcSliceH int, dst Planes, dstStride Strides) int {
	fetch := frameFetcher{src: src, stride: srcStride, desc: ctx.srcDesc, chromaLog2H: ctx.srcDesc.ChromaLog2H}
	sched := newScheduler(ctx, fetch)

	emitted := 0
	for k := 0; k < ctx.dstH; k++ {
		lumOff := int(ctx.lumBankV.Offset[k])
		needLastY := lumOff + ctx.lumBankV.Taps - 1
		if needLastY >= srcSliceY+srcSliceH {
			break
		}
		// kc is the destination chroma row this luma row belongs to:
		// chrBankV has only dstChromaH entries (ceil(dstH/2^ChromaLog2H)),
		// so it (and the destination chroma plane, which has the same
		// row count) must be indexed by kc, never by the luma row k.
		kc := k >> uint(ctx.dstDesc.ChromaLog2H)
		if ctx.hasChroma {
			chrOff := int(ctx.chrBankV.Offset[kc])
			needLastC := chrOff + ctx.chrBankV.Taps - 1
			// needLastC is in chroma source-row space; convert to the
			// luma row space srcSliceY/srcSliceH are given in so both
			// axes gate on the same slice boundary.
			needLastCAsLuma := ((needLastC + 1) << uint(ctx.srcDesc.ChromaLog2H)) - 1
			if needLastCAsLuma >= srcSliceY+srcSliceH {
				break
			}
		}
		row := rowconv.Planes{
			planeRow(dst[0], dstStride[0], k),
			planeRow(dst[1], dstStride[1], kc),
			planeRow(dst[2], dstStride[2], kc),
			planeRow(dst[3], dstStride[3], k),
		}
		sched.EmitRow(k, kc, row, k)
		emitted++
	}
	return emitted
}

// copyUnscaled is the fast path spec.md §2 L1 calls out: identical
// geometry and pixel format reduce Scale to a row-for-row byte copy.
// Planes 1/2 of a subsampled planar format (e.g. YUV420P) carry
// ceil(srcH/2^ChromaLog2H) rows, not srcH rows, so they're bounded in
// chroma-row space rather than luma-row space (spec.md §8 invariant 2's
// identity round-trip).
func copyUnscaled(ctx *Context, src Planes, srcStride Strides, srcSliceY, srcSliceH int, dst Planes, dstStride Strides) int {
	for plane := 0; plane < 4; plane++ {
		if src[plane] == nil || dst[plane] == nil {
			continue
		}
		if (plane == 1 || plane == 2) && ctx.srcDesc.Planar {
			cStart := format.ChromaHeight(ctx.srcDesc, srcSliceY)
			cEnd := format.ChromaHeight(ctx.srcDesc, srcSliceY+srcSliceH)
			cMax := format.ChromaHeight(ctx.srcDesc, ctx.srcH)
			if cEnd > cMax {
				cEnd = cMax
			}
			for y := cStart; y < cEnd; y++ {
				s := planeRow(src[plane], srcStride[plane], y)
				d := planeRow(dst[plane], dstStride[plane], y)
				n := len(s)
				if len(d) < n {
					n = len(d)
				}
				copy(d[:n], s[:n])
			}
			continue
		}
		for y := srcSliceY; y < srcSliceY+srcSliceH && y < ctx.srcH; y++ {
			s := planeRow(src[plane], srcStride[plane], y)
			d := planeRow(dst[plane], dstStride[plane], y)
			n := len(s)
			if len(d) < n {
				n = len(d)
			}
			copy(d[:n], s[:n])
		}
	}
	return srcSliceH
}
