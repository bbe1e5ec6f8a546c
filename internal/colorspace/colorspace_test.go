package colorspace

import "testing"

func TestBuildNeutralChromaIsZero(t *testing.T) {
	c := Build(BT601, RangeFull, Params{})
	for i, tab := range map[string][256]int32{"RTab": c.RTab, "BTab": c.BTab, "GTabU": c.GTabU, "GTabV": c.GTabV} {
		if tab[128] != 0 {
			t.Errorf("%s[128] = %d, want 0 (neutral chroma contributes nothing)", i, tab[128])
		}
	}
}

func TestBuildFullRangeGrayLumaIsIdentity(t *testing.T) {
	c := Build(BT601, RangeFull, Params{})
	const v = 128
	y := int64(c.RGBToY[0])*v + int64(c.RGBToY[1])*v + int64(c.RGBToY[2])*v + int64(c.RGBToY[3])
	got := y >> Shift
	if diff := got - v; diff < -1 || diff > 1 {
		t.Errorf("gray sample %d round-trips to %d through RGBToY, want within 1 of %d", v, got, v)
	}
}

func TestBuildLimitedRangeAddsBlackLevelOffset(t *testing.T) {
	full := Build(BT601, RangeFull, Params{})
	limited := Build(BT601, RangeLimited, Params{})
	if limited.RGBToY[3]-full.RGBToY[3] < int32(15<<Shift) {
		t.Errorf("limited-range Y offset %d should exceed full-range %d by about 16<<%d",
			limited.RGBToY[3], full.RGBToY[3], Shift)
	}
}

func TestBuildContrastScalesLuma(t *testing.T) {
	base := Build(BT601, RangeFull, Params{Contrast: 1})
	doubled := Build(BT601, RangeFull, Params{Contrast: 2})
	if doubled.RGBToY[0] < base.RGBToY[0]*2-2 || doubled.RGBToY[0] > base.RGBToY[0]*2+2 {
		t.Errorf("doubling contrast: RGBToY[0] went from %d to %d, want ~%d", base.RGBToY[0], doubled.RGBToY[0], base.RGBToY[0]*2)
	}
}

func TestBuildSaturationZeroesChromaTables(t *testing.T) {
	c := Build(BT601, RangeFull, Params{Saturation: 0.0001})
	if c.RTab[255] >= 1<<Shift || c.RTab[255] <= -(1<<Shift) {
		t.Errorf("near-zero saturation: RTab[255] = %d, want under one 8-bit step (1<<%d)", c.RTab[255], Shift)
	}
}

func TestMatrixRowOrderMatchesSMPTE240MOpenQuestion(t *testing.T) {
	// spec.md §9 (b): rgb2yuv_table[7] (SMPTE240M)'s ambiguous entry is
	// resolved as two coefficients, 0.5 and -0.116 (U row's B/R pair).
	if SMPTE240M[4] != 0.5 || SMPTE240M[5] != -0.116 {
		t.Errorf("SMPTE240M = %v, want [4]=0.5 [5]=-0.116 per the resolved open question", SMPTE240M)
	}
}
