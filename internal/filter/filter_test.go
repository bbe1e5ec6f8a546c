package filter

import (
	"testing"

	"github.com/vireo-video/swscale/internal/swserr"
)

func checkMonotoneOffsets(t *testing.T, b *Bank) {
	t.Helper()
	for i := 1; i < b.DstLen(); i++ {
		if b.Offset[i] < b.Offset[i-1] {
			t.Fatalf("offset[%d]=%d < offset[%d]=%d: not monotone", i, b.Offset[i], i-1, b.Offset[i-1])
		}
	}
}

func checkSentinel(t *testing.T, b *Bank) {
	t.Helper()
	n := b.DstLen()
	if b.Offset[n] != b.Offset[n-1] {
		t.Fatalf("sentinel offset %d != last real offset %d", b.Offset[n], b.Offset[n-1])
	}
	last := b.Row(n - 1)
	sentinel := b.Coeff[n*b.Taps : (n+1)*b.Taps]
	for j := range last {
		if last[j] != sentinel[j] {
			t.Fatalf("sentinel row %v != last real row %v", sentinel, last)
		}
	}
}

func checkRowSums(t *testing.T, b *Bank) {
	t.Helper()
	for i := 0; i < b.DstLen(); i++ {
		var sum int32
		for _, c := range b.Row(i) {
			sum += int32(c)
		}
		if int(sum) != b.One {
			t.Fatalf("row %d sums to %d, want %d", i, sum, b.One)
		}
	}
}

func TestBuildInvariants(t *testing.T) {
	cases := []struct {
		name             string
		srcLen, dstLen   int
		kind             Kind
	}{
		{"upscale-bilinear", 16, 64, Bilinear},
		{"downscale-bilinear", 64, 16, Bilinear},
		{"identity-point", 32, 32, Point},
		{"upscale-lanczos", 10, 37, Lanczos},
		{"downscale-bicubic", 200, 50, Bicubic},
		{"tiny-src", 3, 9, Bilinear},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Build(tc.srcLen, tc.dstLen, Params{Kind: tc.kind, One: 1 << 14})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if b.DstLen() != tc.dstLen {
				t.Fatalf("DstLen() = %d, want %d", b.DstLen(), tc.dstLen)
			}
			if len(b.Offset) != tc.dstLen+1 {
				t.Fatalf("len(Offset) = %d, want %d", len(b.Offset), tc.dstLen+1)
			}
			for i, o := range b.Offset[:tc.dstLen] {
				if int(o) < 0 || int(o)+b.Taps > tc.srcLen {
					t.Fatalf("row %d window [%d,%d) escapes source [0,%d)", i, o, int(o)+b.Taps, tc.srcLen)
				}
			}
			checkMonotoneOffsets(t, b)
			checkSentinel(t, b)
			checkRowSums(t, b)
		})
	}
}

func TestBuildInvalidGeometry(t *testing.T) {
	for _, tc := range []struct{ srcLen, dstLen int }{{0, 10}, {10, 0}, {-1, 10}} {
		if _, err := Build(tc.srcLen, tc.dstLen, Params{Kind: Bilinear, One: 1 << 14}); err != swserr.ErrInvalidGeometry {
			t.Errorf("Build(%d, %d): got %v, want ErrInvalidGeometry", tc.srcLen, tc.dstLen, err)
		}
	}
}

func TestBuildDefaultsOneWhenUnset(t *testing.T) {
	b, err := Build(8, 8, Params{Kind: Point})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.One != 1<<14 {
		t.Fatalf("One = %d, want default 1<<14", b.One)
	}
}

func TestBuildTapAlignment(t *testing.T) {
	b, err := Build(100, 40, Params{Kind: Bicubic, One: 1 << 14, TapAlignment: 4})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.Taps%4 != 0 {
		t.Fatalf("Taps = %d, want a multiple of 4", b.Taps)
	}
}
