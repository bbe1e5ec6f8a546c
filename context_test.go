package swscale

import (
	"errors"
	"testing"

	"github.com/vireo-video/swscale/internal/format"
	"github.com/vireo-video/swscale/internal/swserr"
)

func TestGetContextRejectsInvalidGeometry(t *testing.T) {
	for _, tc := range []struct {
		name                   string
		sw, sh, dw, dh         int
	}{
		{"zero src width", 0, 10, 10, 10},
		{"zero src height", 10, 0, 10, 10},
		{"zero dst width", 10, 10, 0, 10},
		{"negative dst height", 10, 10, 10, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GetContext(tc.sw, tc.sh, format.YUV420P, tc.dw, tc.dh, format.YUV420P, DefaultOptions())
			if !errors.Is(err, swserr.ErrInvalidGeometry) {
				t.Errorf("got %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestGetContextRejectsUnsupportedFormats(t *testing.T) {
	_, err := GetContext(10, 10, format.Invalid, 10, 10, format.YUV420P, DefaultOptions())
	if !errors.Is(err, swserr.ErrUnsupportedInputFormat) {
		t.Errorf("src: got %v, want ErrUnsupportedInputFormat", err)
	}

	_, err = GetContext(10, 10, format.YUV420P, 10, 10, format.Invalid, DefaultOptions())
	if !errors.Is(err, swserr.ErrUnsupportedOutputFormat) {
		t.Errorf("dst: got %v, want ErrUnsupportedOutputFormat", err)
	}
}

func TestGetContextMarksUnscaledFastPath(t *testing.T) {
	ctx, err := GetContext(16, 16, format.YUV420P, 16, 16, format.YUV420P, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if !ctx.unscaled {
		t.Error("identical geometry/format should set unscaled=true")
	}

	ctx, err = GetContext(16, 16, format.YUV420P, 8, 8, format.YUV420P, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if ctx.unscaled {
		t.Error("differing geometry should set unscaled=false")
	}
}

func TestGetCachedContextReusesMatchingContext(t *testing.T) {
	// Reuse one Options value across every call: DefaultOptions's Log
	// field is a *diag.Logger from diag.Noop(), a fresh pointer on each
	// call, so comparing two independently-constructed Options would
	// spuriously differ on that field alone.
	opts := DefaultOptions()

	ctx, err := GetContext(16, 16, format.YUV420P, 8, 8, format.RGB24, opts)
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}

	same, err := GetCachedContext(ctx, 16, 16, format.YUV420P, 8, 8, format.RGB24, opts)
	if err != nil {
		t.Fatalf("GetCachedContext: %v", err)
	}
	if same != ctx {
		t.Error("GetCachedContext should return the identical *Context when parameters match")
	}

	diff, err := GetCachedContext(ctx, 16, 16, format.YUV420P, 4, 4, format.RGB24, opts)
	if err != nil {
		t.Fatalf("GetCachedContext: %v", err)
	}
	if diff == ctx {
		t.Error("GetCachedContext should rebuild when destination geometry changes")
	}
}

func TestSetColorspaceDetailsRejectsYUVDestination(t *testing.T) {
	ctx, err := GetContext(16, 16, format.RGB24, 16, 16, format.YUV420P, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	err = ctx.SetColorspaceDetails(ctx.opts.Matrix, ctx.opts.SrcRange, ctx.opts.DstRange, 0, 1, 1)
	if !errors.Is(err, swserr.ErrInvalidFlags) {
		t.Errorf("got %v, want ErrInvalidFlags for a YUV destination", err)
	}
}

func TestSetGetColorspaceDetailsRoundTrip(t *testing.T) {
	ctx, err := GetContext(16, 16, format.YUV420P, 16, 16, format.RGB24, DefaultOptions())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if err := ctx.SetColorspaceDetails(ctx.opts.Matrix, ctx.opts.SrcRange, ctx.opts.DstRange, 2, 1.5, 0.5); err != nil {
		t.Fatalf("SetColorspaceDetails: %v", err)
	}
	_, _, _, brightness, contrast, saturation := ctx.GetColorspaceDetails()
	if brightness != 2 || contrast != 1.5 || saturation != 0.5 {
		t.Errorf("got (%v,%v,%v), want (2,1.5,0.5)", brightness, contrast, saturation)
	}
}
