package ingest

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// WebPCodec is the in-process production codec. Decoding and resizing go
// through disintegration/imaging, encoding through chai2010/webp, so no
// external binary is spawned per upload.
type WebPCodec struct{}

func NewWebPCodec() WebPCodec { return WebPCodec{} }

func (WebPCodec) Probe(ctx context.Context, path string) (Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return Dimensions{}, ErrProbeUnavailable
	}
	f, err := os.Open(path)
	if err != nil {
		return Dimensions{}, ErrProbeUnavailable
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return Dimensions{}, ErrProbeUnavailable
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

func (WebPCodec) Transcode(ctx context.Context, inPath, outPath string, p Profile) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	src, err := imaging.Open(inPath, imaging.AutoOrientation(true))
	if err != nil {
		return Output{}, fmt.Errorf("decode: %w", err)
	}

	// Never upscale: originals narrower than the target keep their width.
	width := p.Width
	if w := src.Bounds().Dx(); w < width {
		width = w
	}
	resized := imaging.Resize(src, width, 0, imaging.Lanczos)

	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return Output{}, fmt.Errorf("create: %w", err)
	}
	defer out.Close()

	if err := webp.Encode(out, resized, &webp.Options{Quality: float32(p.Quality)}); err != nil {
		os.Remove(outPath)
		return Output{}, fmt.Errorf("encode: %w", err)
	}

	info, err := out.Stat()
	if err != nil {
		return Output{}, err
	}
	return Output{Size: info.Size(), Width: resized.Bounds().Dx()}, nil
}
