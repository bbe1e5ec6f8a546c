package swscale

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vireo-video/swscale/internal/format"
	"github.com/vireo-video/swscale/internal/swserr"
)

func TestScaleUnscaledFastPathCopiesBytes(t *testing.T) {
	ctx, err := GetContext(4, 4, format.GRAY8, 4, 4, format.GRAY8, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}

	src := []byte{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
		12, 13, 14, 15,
	}
	dst := make([]byte, len(src))

	n, err := Scale(ctx,
		Planes{src, nil, nil, nil}, Strides{4, 0, 0, 0}, 0, 4,
		Planes{dst, nil, nil, nil}, Strides{4, 0, 0, 0})
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if n != 4 {
		t.Errorf("rows emitted = %d, want 4", n)
	}
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Errorf("unscaled copy mismatch (-src +dst):\n%s", diff)
	}
}

func TestScaleUnscaledSlicedDeliveryMatchesSingleCall(t *testing.T) {
	src := []byte{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
		12, 13, 14, 15,
	}

	whole, err := GetContext(4, 4, format.GRAY8, 4, 4, format.GRAY8, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	dstWhole := make([]byte, len(src))
	if _, err := Scale(whole,
		Planes{src, nil, nil, nil}, Strides{4, 0, 0, 0}, 0, 4,
		Planes{dstWhole, nil, nil, nil}, Strides{4, 0, 0, 0}); err != nil {
		t.Fatalf("Scale (whole): %v", err)
	}

	sliced, err := GetContext(4, 4, format.GRAY8, 4, 4, format.GRAY8, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	dstSliced := make([]byte, len(src))
	if _, err := Scale(sliced,
		Planes{src, nil, nil, nil}, Strides{4, 0, 0, 0}, 0, 2,
		Planes{dstSliced, nil, nil, nil}, Strides{4, 0, 0, 0}); err != nil {
		t.Fatalf("Scale (slice 1): %v", err)
	}
	if sliced.sliceDir != 1 {
		t.Fatalf("sliceDir after first top-down slice = %d, want 1", sliced.sliceDir)
	}
	if _, err := Scale(sliced,
		Planes{src, nil, nil, nil}, Strides{4, 0, 0, 0}, 2, 2,
		Planes{dstSliced, nil, nil, nil}, Strides{4, 0, 0, 0}); err != nil {
		t.Fatalf("Scale (slice 2): %v", err)
	}
	if sliced.sliceDir != 0 {
		t.Fatalf("sliceDir after final slice = %d, want 0 (frame boundary)", sliced.sliceDir)
	}

	if diff := cmp.Diff(dstWhole, dstSliced); diff != "" {
		t.Errorf("sliced delivery diverged from single-call delivery (-whole +sliced):\n%s", diff)
	}
}

func TestScaleRejectsMisorderedSlice(t *testing.T) {
	ctx, err := GetContext(4, 4, format.GRAY8, 4, 4, format.GRAY8, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	src := make([]byte, 16)
	dst := make([]byte, 16)

	// The first slice of a frame must touch a frame boundary: starting
	// at row 1 for a 4-row source with only 2 rows supplied touches
	// neither row 0 nor the last row.
	_, err = Scale(ctx,
		Planes{src, nil, nil, nil}, Strides{4, 0, 0, 0}, 1, 2,
		Planes{dst, nil, nil, nil}, Strides{4, 0, 0, 0})
	if !errors.Is(err, swserr.ErrSliceMisordered) {
		t.Errorf("got %v, want ErrSliceMisordered", err)
	}
}

func TestScaleYUV420PIdentityCopyRoundTrip(t *testing.T) {
	// srcH=5 is deliberately odd: the chroma planes are ceil(5/2)=3 rows
	// tall, not 5, so a copyUnscaled that bounds chroma planes by the
	// luma row count would slice past the chroma buffers and panic.
	const w, h = 4, 5
	desc, ok := format.Desc(format.YUV420P)
	if !ok {
		t.Fatal("format.Desc(YUV420P): not found")
	}
	chromaW := format.ChromaWidth(desc, w)
	chromaH := format.ChromaHeight(desc, h)

	srcY := make([]byte, w*h)
	srcU := make([]byte, chromaW*chromaH)
	srcV := make([]byte, chromaW*chromaH)
	for i := range srcY {
		srcY[i] = byte(i)
	}
	for i := range srcU {
		srcU[i] = byte(100 + i)
		srcV[i] = byte(200 + i)
	}

	ctx, err := GetContext(w, h, format.YUV420P, w, h, format.YUV420P, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}

	dstY := make([]byte, len(srcY))
	dstU := make([]byte, len(srcU))
	dstV := make([]byte, len(srcV))

	n, err := Scale(ctx,
		Planes{srcY, srcU, srcV, nil}, Strides{w, chromaW, chromaW, 0}, 0, h,
		Planes{dstY, dstU, dstV, nil}, Strides{w, chromaW, chromaW, 0})
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if n != h {
		t.Errorf("rows emitted = %d, want %d", n, h)
	}
	if diff := cmp.Diff(srcY, dstY); diff != "" {
		t.Errorf("Y plane copy mismatch (-src +dst):\n%s", diff)
	}
	if diff := cmp.Diff(srcU, dstU); diff != "" {
		t.Errorf("U plane copy mismatch (-src +dst):\n%s", diff)
	}
	if diff := cmp.Diff(srcV, dstV); diff != "" {
		t.Errorf("V plane copy mismatch (-src +dst):\n%s", diff)
	}
}

func TestScaleYUV420PDownscaleWritesChromaRowsByChromaCadence(t *testing.T) {
	// 8x8 -> 4x4: the destination has dstChromaH=2 chroma rows for 4
	// luma rows, two luma rows per chroma row. Indexing the chroma
	// vertical bank or the destination chroma plane by the luma row
	// instead of the chroma row panics (out-of-range bank offset) or
	// silently targets the wrong physical row.
	const srcW, srcH = 8, 8
	const dstW, dstH = 4, 4
	desc, _ := format.Desc(format.YUV420P)
	srcChromaW := format.ChromaWidth(desc, srcW)
	srcChromaH := format.ChromaHeight(desc, srcH)
	dstChromaW := format.ChromaWidth(desc, dstW)
	dstChromaH := format.ChromaHeight(desc, dstH)

	srcY := make([]byte, srcW*srcH)
	srcU := make([]byte, srcChromaW*srcChromaH)
	srcV := make([]byte, srcChromaW*srcChromaH)
	for i := range srcY {
		srcY[i] = byte(i * 3 % 256)
	}
	// Make the top and bottom halves of the chroma plane distinguishable
	// so a correctly-cadenced downscale produces two different chroma
	// output rows rather than duplicating one.
	for row := 0; row < srcChromaH; row++ {
		v := byte(40)
		if row >= srcChromaH/2 {
			v = byte(220)
		}
		for col := 0; col < srcChromaW; col++ {
			srcU[row*srcChromaW+col] = v
			srcV[row*srcChromaW+col] = v
		}
	}

	ctx, err := GetContext(srcW, srcH, format.YUV420P, dstW, dstH, format.YUV420P, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}

	dstY := make([]byte, dstW*dstH)
	dstU := make([]byte, dstChromaW*dstChromaH)
	dstV := make([]byte, dstChromaW*dstChromaH)

	n, err := Scale(ctx,
		Planes{srcY, srcU, srcV, nil}, Strides{srcW, srcChromaW, srcChromaW, 0}, 0, srcH,
		Planes{dstY, dstU, dstV, nil}, Strides{dstW, dstChromaW, dstChromaW, 0})
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if n != dstH {
		t.Errorf("rows emitted = %d, want %d", n, dstH)
	}
	if dstChromaH != 2 {
		t.Fatalf("test assumption broken: dstChromaH = %d, want 2", dstChromaH)
	}
	firstRow := dstU[0:dstChromaW]
	lastRow := dstU[(dstChromaH-1)*dstChromaW : dstChromaH*dstChromaW]
	if cmp.Diff(firstRow, lastRow) == "" {
		t.Error("top and bottom chroma output rows are identical; want distinct rows matching the distinct source halves")
	}
}

func TestScaleDownscalePreservesSourceRange(t *testing.T) {
	ctx, err := GetContext(4, 4, format.GRAY8, 2, 2, format.GRAY8, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}

	src := []byte{
		10, 20, 30, 40,
		50, 60, 70, 80,
		90, 100, 110, 120,
		130, 140, 150, 160,
	}
	dst := make([]byte, 4)

	n, err := Scale(ctx,
		Planes{src, nil, nil, nil}, Strides{4, 0, 0, 0}, 0, 4,
		Planes{dst, nil, nil, nil}, Strides{2, 0, 0, 0})
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if n != 2 {
		t.Errorf("rows emitted = %d, want 2", n)
	}
	for i, v := range dst {
		if v < 10 || v > 160 {
			t.Errorf("dst[%d] = %d, want within source range [10,160]", i, v)
		}
	}
}
