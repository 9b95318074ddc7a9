package ingest_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
	"github.com/rzere/discover-kackar-sub000/internal/ingest"
	"github.com/rzere/discover-kackar-sub000/internal/metrics"
	"github.com/rzere/discover-kackar-sub000/internal/storage"
)

// stubCodec writes fake derivative bytes and can be told to fail per label.
type stubCodec struct {
	probeDims  ingest.Dimensions
	probeErr   error
	failLabels map[string]bool
}

func (s *stubCodec) Probe(ctx context.Context, path string) (ingest.Dimensions, error) {
	if s.probeErr != nil {
		return ingest.Dimensions{}, s.probeErr
	}
	return s.probeDims, nil
}

func (s *stubCodec) Transcode(ctx context.Context, inPath, outPath string, p ingest.Profile) (ingest.Output, error) {
	if s.failLabels[p.Label] {
		return ingest.Output{}, errors.New("conversion tool missing")
	}
	data := []byte("derivative:" + p.Label)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return ingest.Output{}, err
	}
	return ingest.Output{Size: int64(len(data)), Width: p.Width}, nil
}

func okCodec() *stubCodec {
	return &stubCodec{probeDims: ingest.Dimensions{Width: 4000, Height: 3000}}
}

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one in-memory sqlite database, shared across goroutines
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupIngestor(t *testing.T, codec ingest.Codec) (*ingest.Ingestor, *storage.DiskStore, *gorm.DB) {
	db := setupDB(t)
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(os.Stderr)
	return ingest.NewIngestor(db, store, codec, log), store, db
}

func validInput() ingest.Input {
	return ingest.Input{
		Data:     []byte("jpeg bytes of a mountain"),
		Filename: "kackar-view.jpg",
		MimeType: "image/jpeg",
		Category: "gallery",
		AltText:  "Kaçkar view",
	}
}

func countImages(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&media.Image{}).Count(&n).Error)
	return n
}

func TestIngest_ValidUpload(t *testing.T) {
	ing, store, _ := setupIngestor(t, okCodec())

	in := validInput()
	img, err := ing.Ingest(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(len(in.Data)), img.FileSize)
	assert.Equal(t, "image/jpeg", img.MimeType)
	assert.Equal(t, "gallery", img.Category)
	require.NotNil(t, img.AltText)
	assert.Equal(t, "Kaçkar view", *img.AltText)
	require.NotNil(t, img.Width)
	assert.Equal(t, 4000, *img.Width)

	// original is readable and byte-identical to the input
	stored, err := store.Read(img.Path)
	require.NoError(t, err)
	assert.Equal(t, in.Data, stored)

	assert.True(t, img.IsOptimized)
	var derivatives map[string]media.Derivative
	require.NoError(t, json.Unmarshal(img.OptimizationData, &derivatives))
	require.Len(t, derivatives, 3)
	for _, label := range []string{"mobile", "tablet", "desktop"} {
		d, ok := derivatives[label]
		require.True(t, ok, label)
		assert.NotZero(t, d.Size)
		assert.NotEmpty(t, d.Path)
		_, err := store.Read(d.Path)
		assert.NoError(t, err, label)
	}
}

func TestIngest_FileTooLarge(t *testing.T) {
	ing, store, db := setupIngestor(t, okCodec())

	in := validInput()
	in.Data = make([]byte, ingest.MaxUploadBytes+1)

	_, err := ing.Ingest(context.Background(), in)
	require.ErrorIs(t, err, ingest.ErrFileTooLarge)

	assert.EqualValues(t, 0, countImages(t, db))
	assertStorageEmpty(t, store)
}

func TestIngest_UnsupportedType(t *testing.T) {
	ing, store, db := setupIngestor(t, okCodec())

	in := validInput()
	in.MimeType = "application/pdf"

	_, err := ing.Ingest(context.Background(), in)
	require.ErrorIs(t, err, ingest.ErrUnsupportedType)

	assert.EqualValues(t, 0, countImages(t, db))
	assertStorageEmpty(t, store)
}

func TestIngest_MissingCategory(t *testing.T) {
	ing, _, db := setupIngestor(t, okCodec())

	in := validInput()
	in.Category = "  "

	_, err := ing.Ingest(context.Background(), in)
	require.ErrorIs(t, err, ingest.ErrMissingCategory)
	assert.EqualValues(t, 0, countImages(t, db))
}

func TestIngest_ClientExtensionNotTrusted(t *testing.T) {
	ing, _, _ := setupIngestor(t, okCodec())

	// a filename extension outside the image set must never reach the
	// statically served storage path
	in := validInput()
	in.Filename = "evil.html"
	in.Data = []byte("<script>alert(1)</script>")

	img, err := ing.Ingest(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(img.Path, ".jpg"), "got %s", img.Path)
	assert.False(t, strings.HasSuffix(img.Path, ".html"), "got %s", img.Path)

	// a matching alternate spelling is kept
	in = validInput()
	in.Filename = "view.jpeg"
	img, err = ing.Ingest(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(img.Path, ".jpeg"), "got %s", img.Path)
}

func TestIngest_DerivativeMetricsPerProfile(t *testing.T) {
	codec := okCodec()
	codec.failLabels = map[string]bool{"tablet": true}
	ing, _, _ := setupIngestor(t, codec)

	before := map[string]float64{}
	for _, label := range []string{"mobile", "tablet", "desktop"} {
		before[label] = testutil.ToFloat64(metrics.DerivativesGenerated.WithLabelValues(label))
	}

	_, err := ing.Ingest(context.Background(), validInput())
	require.NoError(t, err)

	mobile := testutil.ToFloat64(metrics.DerivativesGenerated.WithLabelValues("mobile"))
	tablet := testutil.ToFloat64(metrics.DerivativesGenerated.WithLabelValues("tablet"))
	desktop := testutil.ToFloat64(metrics.DerivativesGenerated.WithLabelValues("desktop"))

	assert.Equal(t, before["mobile"]+1, mobile)
	assert.Equal(t, before["tablet"], tablet)
	assert.Equal(t, before["desktop"]+1, desktop)
}

func TestIngest_PartialDerivativeFailure(t *testing.T) {
	codec := okCodec()
	codec.failLabels = map[string]bool{"tablet": true}
	ing, _, _ := setupIngestor(t, codec)

	img, err := ing.Ingest(context.Background(), validInput())
	require.NoError(t, err)

	assert.True(t, img.IsOptimized)
	var derivatives map[string]media.Derivative
	require.NoError(t, json.Unmarshal(img.OptimizationData, &derivatives))
	assert.Len(t, derivatives, 2)
	assert.Contains(t, derivatives, "mobile")
	assert.Contains(t, derivatives, "desktop")
	assert.NotContains(t, derivatives, "tablet")
}

func TestIngest_AllDerivativesFail(t *testing.T) {
	codec := okCodec()
	codec.failLabels = map[string]bool{"mobile": true, "tablet": true, "desktop": true}
	ing, store, _ := setupIngestor(t, codec)

	in := validInput()
	img, err := ing.Ingest(context.Background(), in)
	require.NoError(t, err)

	assert.False(t, img.IsOptimized)
	assert.Empty(t, img.OptimizationData)

	// the original is still durably stored
	stored, err := store.Read(img.Path)
	require.NoError(t, err)
	assert.Equal(t, in.Data, stored)
}

func TestIngest_ProbeUnavailable(t *testing.T) {
	codec := okCodec()
	codec.probeErr = ingest.ErrProbeUnavailable
	ing, _, _ := setupIngestor(t, codec)

	img, err := ing.Ingest(context.Background(), validInput())
	require.NoError(t, err)
	assert.Nil(t, img.Width)
	assert.Nil(t, img.Height)
	assert.True(t, img.IsOptimized)
}

// failingStore rejects every write.
type failingStore struct{}

func (failingStore) Write(key string, data []byte) error { return errors.New("disk full") }
func (failingStore) Read(key string) ([]byte, error)     { return nil, os.ErrNotExist }
func (failingStore) Remove(key string) error             { return nil }
func (failingStore) Abs(key string) string               { return "" }

func TestIngest_StorageWriteFailed(t *testing.T) {
	db := setupDB(t)
	ing := ingest.NewIngestor(db, failingStore{}, okCodec(), logrus.New())

	_, err := ing.Ingest(context.Background(), validInput())
	require.ErrorIs(t, err, ingest.ErrStorageWrite)
	assert.EqualValues(t, 0, countImages(t, db))
}

func TestIngest_ConcurrentUploadsUniquePaths(t *testing.T) {
	ing, _, db := setupIngestor(t, okCodec())

	const n = 20
	paths := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := ing.Ingest(context.Background(), validInput())
			assert.NoError(t, err)
			if img != nil {
				paths[i] = img.Path
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, p := range paths {
		require.NotEmpty(t, p)
		assert.False(t, seen[p], "colliding storage path %s", p)
		seen[p] = true
	}
	assert.EqualValues(t, n, countImages(t, db))
}

func TestIngest_RoundTrip(t *testing.T) {
	ing, _, db := setupIngestor(t, okCodec())

	created, err := ing.Ingest(context.Background(), validInput())
	require.NoError(t, err)

	var loaded media.Image
	require.NoError(t, db.First(&loaded, "id = ?", created.ID).Error)

	assert.Equal(t, created.StoredFilename, loaded.StoredFilename)
	assert.Equal(t, created.Path, loaded.Path)
	assert.Equal(t, created.FileSize, loaded.FileSize)
	assert.Equal(t, created.IsOptimized, loaded.IsOptimized)
	assert.JSONEq(t, string(created.OptimizationData), string(loaded.OptimizationData))
}

func assertStorageEmpty(t *testing.T, store *storage.DiskStore) {
	t.Helper()
	for _, prefix := range []string{storage.OriginalsPrefix, storage.OptimizedPrefix} {
		entries, err := os.ReadDir(filepath.Join(store.Root(), prefix))
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}
