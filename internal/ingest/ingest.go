package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
	"github.com/rzere/discover-kackar-sub000/internal/metrics"
	"github.com/rzere/discover-kackar-sub000/internal/storage"
)

// MaxUploadBytes is the hard ceiling for a single uploaded file.
const MaxUploadBytes = 50 << 20

const defaultCodecTimeout = 30 * time.Second

// Rejection errors: invalid caller input, no side effects performed.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrMissingCategory = errors.New("category is required")
)

// ErrStorageWrite is fatal to the whole operation: the original could not be
// persisted, so no metadata record is written.
var ErrStorageWrite = errors.New("storage write failed")

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Extensions a client filename may keep. Anything else falls back to the
// MIME-derived extension so a stored name never carries a foreign type that
// the static mount would serve as-is.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Input is one upload: raw bytes plus the metadata the admin form sends.
type Input struct {
	Data     []byte
	Filename string
	MimeType string
	Category string
	AltText  string
	Caption  string
	Tags     string
}

// Ingestor validates an upload, persists the original, probes dimensions and
// generates the fixed derivative set, then writes exactly one metadata record.
// Probe and derivative failures degrade the result instead of failing it.
type Ingestor struct {
	db    *gorm.DB
	store storage.Store
	codec Codec
	log   *logrus.Logger

	codecTimeout time.Duration
}

func NewIngestor(db *gorm.DB, store storage.Store, codec Codec, log *logrus.Logger) *Ingestor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Ingestor{
		db:           db,
		store:        store,
		codec:        codec,
		log:          log,
		codecTimeout: defaultCodecTimeout,
	}
}

func (ing *Ingestor) Ingest(ctx context.Context, in Input) (*media.Image, error) {
	ext, ok := allowedMimeTypes[in.MimeType]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if len(in.Data) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, ErrMissingCategory
	}

	if e := strings.ToLower(filepath.Ext(in.Filename)); allowedExtensions[e] {
		ext = e
	}

	// Unix timestamp plus a UUID: concurrent uploads never contend for a key.
	baseID := fmt.Sprintf("%d_%s", time.Now().Unix(), uuid.NewString())
	storedName := baseID + ext
	originalKey := storage.OriginalsPrefix + "/" + storedName

	if err := ing.store.Write(originalKey, in.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	originalPath := ing.store.Abs(originalKey)

	var width, height *int
	if dims, err := ing.probe(ctx, originalPath); err != nil {
		ing.log.WithFields(logrus.Fields{
			"base_id": baseID,
			"error":   err,
		}).Warn("dimension probe unavailable, continuing without dimensions")
	} else {
		width, height = &dims.Width, &dims.Height
	}

	derivatives := ing.generateDerivatives(ctx, baseID, originalPath)

	img := &media.Image{
		OriginalFilename: in.Filename,
		StoredFilename:   storedName,
		Path:             originalKey,
		FileSize:         int64(len(in.Data)),
		MimeType:         in.MimeType,
		Width:            width,
		Height:           height,
		Category:         strings.TrimSpace(in.Category),
		AltText:          optional(in.AltText),
		Caption:          optional(in.Caption),
		Tags:             optional(in.Tags),
		IsOptimized:      len(derivatives) > 0,
	}
	if len(derivatives) > 0 {
		raw, err := json.Marshal(derivatives)
		if err != nil {
			return nil, err
		}
		img.OptimizationData = datatypes.JSON(raw)
	}

	if err := ing.db.WithContext(ctx).Create(img).Error; err != nil {
		return nil, fmt.Errorf("create image record: %w", err)
	}
	return img, nil
}

func (ing *Ingestor) probe(ctx context.Context, path string) (Dimensions, error) {
	cctx, cancel := context.WithTimeout(ctx, ing.codecTimeout)
	defer cancel()
	return ing.codec.Probe(cctx, path)
}

// generateDerivatives runs every profile and folds the per-label results into
// the optimization map. Failures are logged and skipped; the profiles are
// independent, so they run concurrently within the one ingestion.
func (ing *Ingestor) generateDerivatives(ctx context.Context, baseID, originalPath string) map[string]media.Derivative {
	type result struct {
		profile Profile
		key     string
		out     Output
		err     error
	}

	results := make([]result, len(DerivativeProfiles))

	var wg sync.WaitGroup
	for i, p := range DerivativeProfiles {
		wg.Add(1)
		go func(i int, p Profile) {
			defer wg.Done()

			key := fmt.Sprintf("%s/%s_%s.webp", storage.OptimizedPrefix, baseID, p.Label)
			cctx, cancel := context.WithTimeout(ctx, ing.codecTimeout)
			defer cancel()

			out, err := ing.codec.Transcode(cctx, originalPath, ing.store.Abs(key), p)
			if err != nil {
				err = &DerivativeError{Label: p.Label, Err: err}
			}
			results[i] = result{profile: p, key: key, out: out, err: err}
		}(i, p)
	}
	wg.Wait()

	derivatives := make(map[string]media.Derivative)
	for _, r := range results {
		if r.err != nil {
			ing.log.WithFields(logrus.Fields{
				"base_id": baseID,
				"label":   r.profile.Label,
				"error":   r.err,
			}).Warn("derivative generation failed, skipping profile")
			continue
		}
		derivatives[r.profile.Label] = media.Derivative{
			Size:    r.out.Size,
			Path:    r.key,
			Width:   r.out.Width,
			Quality: r.profile.Quality,
		}
		metrics.DerivativesGenerated.WithLabelValues(r.profile.Label).Inc()
	}
	return derivatives
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
