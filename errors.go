package swscale

import "github.com/vireo-video/swscale/internal/swserr"

// Sentinel errors returned by GetContext and Scale, re-exported from
// internal/swserr so callers can compare with errors.Is without
// reaching into an internal package.
var (
	ErrUnsupportedInputFormat  = swserr.ErrUnsupportedInputFormat
	ErrUnsupportedOutputFormat = swserr.ErrUnsupportedOutputFormat
	ErrInvalidGeometry         = swserr.ErrInvalidGeometry
	ErrInvalidFlags            = swserr.ErrInvalidFlags
	ErrSliceMisordered         = swserr.ErrSliceMisordered
	ErrFilterTooLarge          = swserr.ErrFilterTooLarge
)
