package main

import (
	"fmt"
	"image"
	"image/png"
	"io"

	// Side-effect imports register image.Decode's format dispatch, the
	// same pattern as mangaconv's decoder.go (it registered webp; this
	// adds jpeg/bmp so swscale can read whatever a page converter hands
	// it).
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/vireo-video/swscale"
	"github.com/vireo-video/swscale/internal/format"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}

// toNRGBA normalizes any decoded image.Image to *image.NRGBA, the byte
// layout format.RGB32 expects (R,G,B,A, one byte each, per
// internal/rowconv/rgb.go's layoutRGB32).
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// fitBounds scales (srcW, srcH) to fit within a (maxW, maxH) bounding box
// without changing the aspect ratio, per imgutil.Fit's scale formula; 0
// disables the corresponding bound. Returns srcW, srcH unchanged if they
// already fit.
func fitBounds(srcW, srcH, maxW, maxH int) (int, int) {
	if maxW <= 0 {
		maxW = srcW
	}
	if maxH <= 0 {
		maxH = srcH
	}
	scale := minFloat(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH))
	if scale >= 1 {
		return srcW, srcH
	}
	w := int(scale*float64(srcW) + 0.5)
	h := int(scale*float64(srcH) + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// convertImage normalizes the decoded img to NRGBA, fits it within
// maxW/maxH, and runs it through
// a single-slice swscale.Scale call, returning the result as *image.NRGBA.
func convertImage(img image.Image, maxW, maxH int, opts swscale.Options) (*image.NRGBA, error) {
	src := toNRGBA(img)
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	dstW, dstH := fitBounds(srcW, srcH, maxW, maxH)

	ctx, err := swscale.GetContext(srcW, srcH, format.RGB32, dstW, dstH, format.RGB32, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot build scaling context: %w", err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))

	srcPlanes := swscale.Planes{src.Pix, nil, nil, nil}
	srcStride := swscale.Strides{src.Stride, 0, 0, 0}
	dstPlanes := swscale.Planes{dst.Pix, nil, nil, nil}
	dstStride := swscale.Strides{dst.Stride, 0, 0, 0}

	if _, err := swscale.Scale(ctx, srcPlanes, srcStride, 0, srcH, dstPlanes, dstStride); err != nil {
		return nil, fmt.Errorf("cannot scale image: %w", err)
	}
	return dst, nil
}

func encodePNG(w io.Writer, img *image.NRGBA) error {
	return png.Encode(w, img)
}
