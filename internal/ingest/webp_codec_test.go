package ingest_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzere/discover-kackar-sub000/internal/ingest"
)

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestWebPCodec_Probe(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, 120, 80)

	dims, err := ingest.NewWebPCodec().Probe(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 120, dims.Width)
	assert.Equal(t, 80, dims.Height)
}

func TestWebPCodec_ProbeUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-an-image.jpg")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := ingest.NewWebPCodec().Probe(context.Background(), path)
	assert.ErrorIs(t, err, ingest.ErrProbeUnavailable)

	_, err = ingest.NewWebPCodec().Probe(context.Background(), filepath.Join(dir, "missing.jpg"))
	assert.ErrorIs(t, err, ingest.ErrProbeUnavailable)
}

func TestWebPCodec_Transcode(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, 1600, 900)
	out := filepath.Join(dir, "out_mobile.webp")

	res, err := ingest.NewWebPCodec().Transcode(context.Background(), in, out,
		ingest.Profile{Label: "mobile", Width: 640, Quality: 80})
	require.NoError(t, err)
	assert.Equal(t, 640, res.Width)
	assert.NotZero(t, res.Size)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, res.Size, info.Size())
}

func TestWebPCodec_TranscodeNeverUpscales(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, 300, 200)
	out := filepath.Join(dir, "out_desktop.webp")

	res, err := ingest.NewWebPCodec().Transcode(context.Background(), in, out,
		ingest.Profile{Label: "desktop", Width: 1920, Quality: 90})
	require.NoError(t, err)
	assert.Equal(t, 300, res.Width)
}

func TestWebPCodec_TranscodeBadInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(in, []byte("nope"), 0o644))

	_, err := ingest.NewWebPCodec().Transcode(context.Background(), in, filepath.Join(dir, "out.webp"),
		ingest.Profile{Label: "mobile", Width: 640, Quality: 80})
	assert.Error(t, err)
}
