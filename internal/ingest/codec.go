package ingest

import (
	"context"
	"errors"
	"fmt"
)

// Dimensions is the probed pixel size of a stored image.
type Dimensions struct {
	Width  int
	Height int
}

// Profile governs one derivative: output width and compression quality for a
// viewport class. The set below is fixed for compatibility with the paths the
// public site already serves.
type Profile struct {
	Label   string
	Width   int
	Quality int
}

var DerivativeProfiles = []Profile{
	{Label: "mobile", Width: 640, Quality: 80},
	{Label: "tablet", Width: 1024, Quality: 85},
	{Label: "desktop", Width: 1920, Quality: 90},
}

// ErrProbeUnavailable means dimensions could not be read. The caller treats
// dimensions as optional metadata and must not fail the upload over this.
var ErrProbeUnavailable = errors.New("probe unavailable")

// DerivativeError reports a single failed derivative. One failed profile
// never aborts the ingestion of the remaining profiles.
type DerivativeError struct {
	Label string
	Err   error
}

func (e *DerivativeError) Error() string {
	return fmt.Sprintf("derivative %s: %v", e.Label, e.Err)
}

func (e *DerivativeError) Unwrap() error { return e.Err }

// Output describes one generated derivative file.
type Output struct {
	Size  int64
	Width int
}

// Codec turns stored originals into metadata and derivatives. Implementations
// must be safe for concurrent use; every call is bounded by ctx.
type Codec interface {
	// Probe returns the pixel dimensions of the image at path, or
	// ErrProbeUnavailable when the file cannot be decoded.
	Probe(ctx context.Context, path string) (Dimensions, error)

	// Transcode reads the original at inPath and writes a resized WebP
	// derivative to outPath per the profile.
	Transcode(ctx context.Context, inPath, outPath string, p Profile) (Output, error)
}
