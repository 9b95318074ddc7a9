package jobs_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
	"github.com/rzere/discover-kackar-sub000/internal/jobs"
	"github.com/rzere/discover-kackar-sub000/internal/storage"
)

func setup(t *testing.T) (*gorm.DB, *storage.DiskStore, *jobs.Cleaner) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	return db, store, jobs.NewCleaner(db, store, logrus.New())
}

func seedImage(t *testing.T, db *gorm.DB, store *storage.DiskStore, name string) media.Image {
	t.Helper()
	originalKey := storage.OriginalsPrefix + "/" + name + ".jpg"
	derivativeKey := storage.OptimizedPrefix + "/" + name + "_mobile.webp"
	require.NoError(t, store.Write(originalKey, []byte("original")))
	require.NoError(t, store.Write(derivativeKey, []byte("derivative")))

	raw, err := json.Marshal(map[string]media.Derivative{
		"mobile": {Size: 10, Path: derivativeKey, Width: 640, Quality: 80},
	})
	require.NoError(t, err)

	img := media.Image{
		OriginalFilename: name + ".jpg",
		StoredFilename:   name + ".jpg",
		Path:             originalKey,
		FileSize:         8,
		MimeType:         "image/jpeg",
		Category:         "gallery",
		IsOptimized:      true,
		OptimizationData: datatypes.JSON(raw),
	}
	require.NoError(t, db.Create(&img).Error)
	return img
}

func TestPurgeDeletedImages(t *testing.T) {
	db, store, cleaner := setup(t)

	old := seedImage(t, db, store, "old")
	kept := seedImage(t, db, store, "kept")

	// soft-delete "old" and backdate the deletion past the retention window
	require.NoError(t, db.Delete(&media.Image{}, "id = ?", old.ID).Error)
	require.NoError(t, db.Unscoped().Model(&media.Image{}).
		Where("id = ?", old.ID).
		Update("deleted_at", time.Now().Add(-8*24*time.Hour)).Error)

	n, err := cleaner.PurgeDeletedImages(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// row and files for "old" are gone
	var count int64
	require.NoError(t, db.Unscoped().Model(&media.Image{}).Where("id = ?", old.ID).Count(&count).Error)
	assert.Zero(t, count)
	_, err = store.Read(old.Path)
	assert.Error(t, err)

	// "kept" untouched
	_, err = store.Read(kept.Path)
	assert.NoError(t, err)
}

func TestPurgeDeletedImages_RecentDeletionKept(t *testing.T) {
	db, store, cleaner := setup(t)

	img := seedImage(t, db, store, "fresh")
	require.NoError(t, db.Delete(&media.Image{}, "id = ?", img.ID).Error)

	n, err := cleaner.PurgeDeletedImages(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = store.Read(img.Path)
	assert.NoError(t, err)
}
