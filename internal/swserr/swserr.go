// Package swserr defines the sentinel error kinds surfaced by context
// construction and scaling.
package swserr

import "errors"

var (
	// ErrUnsupportedInputFormat is returned when srcFmt is not in the
	// supported-format list.
	ErrUnsupportedInputFormat = errors.New("swscale: unsupported input pixel format")
	// ErrUnsupportedOutputFormat is returned when dstFmt is not in the
	// supported-format list.
	ErrUnsupportedOutputFormat = errors.New("swscale: unsupported output pixel format")
	// ErrInvalidGeometry is returned when a dimension is non-positive or
	// exceeds the compile-time width limit.
	ErrInvalidGeometry = errors.New("swscale: invalid geometry")
	// ErrInvalidFlags is returned by SetColorspaceDetails when the
	// destination is YUV or gray, which carry no colorspace to configure.
	// The kernel is a single Kernel value, so no kernel-flag combination
	// produces it.
	ErrInvalidFlags = errors.New("swscale: invalid flags")
	// ErrSliceMisordered is returned by Scale when the first slice of a
	// frame neither starts at row 0 nor ends at srcH.
	ErrSliceMisordered = errors.New("swscale: slice misordered")
	// ErrFilterTooLarge is returned when the reduced tap count exceeds
	// the implementation-defined maximum.
	ErrFilterTooLarge = errors.New("swscale: filter too large")
)
