package scale

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vireo-video/swscale/internal/filter"
)

func TestRingWindowContiguity(t *testing.T) {
	r := NewRing(3, 4)
	for y := 0; y < 7; y++ {
		row := r.RowFor(y)
		for i := range row {
			row[i] = int16(y*10 + i)
		}
	}
	// Rows 4,5,6 should still read back correctly even though they
	// wrapped past the ring's physical size of 3.
	got := r.Window(4, 3)
	want := [][]int16{{40, 41, 42, 43}, {50, 51, 52, 53}, {60, 61, 62, 63}}
	for i, row := range got {
		if diff := cmp.Diff(want[i], row); diff != "" {
			t.Errorf("Window(4,3)[%d] mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestRingAliasesPhysicalStorage(t *testing.T) {
	r := NewRing(4, 2)
	row := r.RowFor(1)
	row[0] = 99
	// srcY=1 and srcY=5 (1+size) must alias the same physical buffer.
	if got := r.RowFor(5); got[0] != 99 {
		t.Errorf("RowFor(5)[0] = %d, want 99 (aliases RowFor(1))", got[0])
	}
}

func TestHorizontalIdentityPointBank(t *testing.T) {
	bank, err := filter.Build(8, 8, filter.Params{Kind: filter.Point, One: 1 << 14})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	src := []int16{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]int16, 8)
	Horizontal(dst, src, bank)
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Errorf("identity Horizontal mismatch (-src +dst):\n%s", diff)
	}
}

func TestHorizontalUpscalePreservesRange(t *testing.T) {
	bank, err := filter.Build(4, 16, filter.Params{Kind: filter.Bilinear, One: 1 << 14})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	src := []int16{100, 200, 300, 400}
	dst := make([]int16, 16)
	Horizontal(dst, src, bank)
	for i, v := range dst {
		if v < 100 || v > 400 {
			t.Errorf("dst[%d] = %d, want within source range [100,400]", i, v)
		}
	}
}

func TestCombineWeightedAverage(t *testing.T) {
	window := [][]int16{{1000, 2000}, {3000, 4000}}
	coeffRow := []int16{2048, 2048} // 0.5 + 0.5 of one=4096
	dst := make([]int16, 2)
	Combine(dst, window, coeffRow, 1<<12)
	want := []int16{2000, 3000}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Errorf("Combine mismatch (-want +got):\n%s", diff)
	}
}

func TestCombineSingleTapIsIdentity(t *testing.T) {
	window := [][]int16{{42, -42}}
	dst := make([]int16, 2)
	Combine(dst, window, []int16{1 << 12}, 1<<12)
	if diff := cmp.Diff([]int16{42, -42}, dst); diff != "" {
		t.Errorf("single-tap Combine mismatch (-want +got):\n%s", diff)
	}
}
