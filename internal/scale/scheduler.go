package scale

import (
	"github.com/vireo-video/swscale/internal/colorspace"
	"github.com/vireo-video/swscale/internal/filter"
	"github.com/vireo-video/swscale/internal/rowconv"
)

// RowFetcher supplies the raw, unconverted source row for a given row
// index: y is in luma (source) row space for LumaRow, and in chroma
// (source) row space for ChromaRow (spec.md §4.3 step 3: chroma runs at
// its own cadence set by chrSrcVSubSample). The context (T1) implements
// this by slicing the caller's plane pointers/strides for one slice.
type RowFetcher interface {
	LumaRow(y int) rowconv.Planes
	ChromaRow(y int) rowconv.Planes
}

// axis bundles the per-component horizontal/vertical FilterBanks and
// ring the scheduler needs for one axis (luma/alpha, or chroma).
type axis struct {
	bank   *filter.Bank // horizontal bank for this axis
	vbank  *filter.Bank // vertical bank for this axis
	ring   *Ring        // Y or (via two axes) U/V ring
	lastIn int          // highest resident source row, -1 if none
}

// Scheduler is the row-cache scheduler (spec.md §1 M3): it keeps just
// enough horizontally-scaled rows resident in Ring buffers to satisfy
// each output row's vertical filter window, converting and
// horizontally scaling new source rows lazily as the vertical cursor
// advances. Grounded on imgutil/scale.go's scaleX (the horizontal pass
// this drives) and imgutil/pool.go's pooled-buffer-reuse idea, adapted
// from a one-shot whole-image pass to an incremental per-row cache.
type Scheduler struct {
	conv   rowconv.Converter
	coeffs colorspace.Coeffs
	pal    *rowconv.Palette
	fetch  RowFetcher

	hasAlpha  bool
	hasChroma bool

	Y axis
	U axis
	V axis
	A axis

	// scratch holds one unpacked (pre-horizontal-scale) source row per
	// component, reused across calls.
	yScratch, uScratch, vScratch, aScratch []int16
}

// NewScheduler builds a Scheduler. srcW/srcChromaW are the unpacked
// source row widths; lumBank/chrBank are the horizontal FilterBanks;
// lumVBank/chrVBank are the vertical FilterBanks whose Taps/Offset
// drive ring sizing and the advance cadence.
func NewScheduler(conv rowconv.Converter, coeffs colorspace.Coeffs, pal *rowconv.Palette, fetch RowFetcher,
	srcW, srcChromaW int, lumBank, chrBank, lumVBank, chrVBank *filter.Bank, hasChroma, hasAlpha bool) *Scheduler {

	lumRingSize := lumVBank.Taps + 1

	s := &Scheduler{
		conv: conv, coeffs: coeffs, pal: pal, fetch: fetch,
		hasAlpha: hasAlpha, hasChroma: hasChroma,
	}
	s.Y = axis{bank: lumBank, vbank: lumVBank, ring: NewRing(lumRingSize, lumBank.DstLen()), lastIn: -1}
	if hasChroma {
		chrRingSize := chrVBank.Taps + 1
		s.U = axis{bank: chrBank, vbank: chrVBank, ring: NewRing(chrRingSize, chrBank.DstLen()), lastIn: -1}
		s.V = axis{bank: chrBank, vbank: chrVBank, ring: NewRing(chrRingSize, chrBank.DstLen()), lastIn: -1}
	}
	if hasAlpha {
		s.A = axis{bank: lumBank, vbank: lumVBank, ring: NewRing(lumRingSize, lumBank.DstLen()), lastIn: -1}
	}

	s.yScratch = make([]int16, srcW)
	if hasChroma {
		s.uScratch = make([]int16, srcChromaW)
		s.vScratch = make([]int16, srcChromaW)
	}
	if hasAlpha {
		s.aScratch = make([]int16, srcW)
	}
	return s
}

// AdvanceLuma advances the luma (and alpha) ring up to and including
// source row targetY, decoding and horizontally scaling any newly
// needed rows, per spec.md §4.3 step 2.
func (s *Scheduler) AdvanceLuma(targetY int) {
	for s.Y.lastIn < targetY {
		y := s.Y.lastIn + 1
		planes := s.fetch.LumaRow(y)
		var a []int16
		if s.hasAlpha {
			a = s.aScratch
		}
		s.conv.Unpack(s.yScratch, nil, nil, a, planes, s.pal, s.coeffs, len(s.yScratch))
		Horizontal(s.Y.ring.RowFor(y), s.yScratch, s.Y.bank)
		if s.hasAlpha {
			Horizontal(s.A.ring.RowFor(y), s.aScratch, s.A.bank)
		}
		s.Y.lastIn = y
		if s.hasAlpha {
			s.A.lastIn = y
		}
	}
}

// AdvanceChroma advances the chroma rings up to and including chroma
// source row targetC.
func (s *Scheduler) AdvanceChroma(targetC int) {
	if !s.hasChroma {
		return
	}
	for s.U.lastIn < targetC {
		c := s.U.lastIn + 1
		planes := s.fetch.ChromaRow(c)
		s.conv.Unpack(nil, s.uScratch, s.vScratch, nil, planes, s.pal, s.coeffs, len(s.uScratch))
		Horizontal(s.U.ring.RowFor(c), s.uScratch, s.U.bank)
		Horizontal(s.V.ring.RowFor(c), s.vScratch, s.V.bank)
		s.U.lastIn = c
		s.V.lastIn = c
	}
}

// EmitRow produces output row k into dst, per spec.md §4.4: advances
// both rings to cover row k's vertical windows, combines them, and
// packs into the destination format. k is the luma (and alpha) output
// row; kc is the corresponding chroma output row (k right-shifted by
// the destination's vertical chroma subsampling log2, computed by the
// caller, which owns the format descriptor) and indexes chrBankV/the
// chroma ring independently of k, since a vertically-subsampled
// destination has fewer chroma rows than luma rows. ditherY is the
// output row index used for ordered-dither phase.
func (s *Scheduler) EmitRow(k, kc int, dst rowconv.Planes, ditherY int) {
	lumOff := int(s.Y.vbank.Offset[k])
	lumTaps := s.Y.vbank.Taps
	s.AdvanceLuma(lumOff + lumTaps - 1)

	yRow := make([]int16, s.Y.bank.DstLen())
	Combine(yRow, s.Y.ring.Window(lumOff, lumTaps), s.Y.vbank.Row(k), s.Y.vbank.One)

	var aRow []int16
	if s.hasAlpha {
		aRow = make([]int16, s.A.bank.DstLen())
		Combine(aRow, s.A.ring.Window(lumOff, lumTaps), s.Y.vbank.Row(k), s.Y.vbank.One)
	}

	var uRow, vRow []int16
	if s.hasChroma {
		chrOff := int(s.U.vbank.Offset[kc])
		chrTaps := s.U.vbank.Taps
		s.AdvanceChroma(chrOff + chrTaps - 1)
		uRow = make([]int16, s.U.bank.DstLen())
		vRow = make([]int16, s.V.bank.DstLen())
		Combine(uRow, s.U.ring.Window(chrOff, chrTaps), s.U.vbank.Row(kc), s.U.vbank.One)
		Combine(vRow, s.V.ring.Window(chrOff, chrTaps), s.V.vbank.Row(kc), s.V.vbank.One)
	}

	s.conv.Pack(dst, yRow, uRow, vRow, aRow, s.coeffs, 0, s.Y.bank.DstLen(), ditherY)
}
