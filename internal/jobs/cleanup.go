package jobs

import (
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
	"github.com/rzere/discover-kackar-sub000/internal/storage"
)

// retention window for soft-deleted images before their files are reclaimed
const purgeAfter = 7 * 24 * time.Hour

type Cleaner struct {
	db    *gorm.DB
	store storage.Store
	log   *logrus.Logger
}

func NewCleaner(db *gorm.DB, store storage.Store, log *logrus.Logger) *Cleaner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Cleaner{db: db, store: store, log: log}
}

// Start schedules the nightly purge and returns the running scheduler.
func (c *Cleaner) Start() *cron.Cron {
	cr := cron.New()
	cr.AddFunc("0 3 * * *", func() {
		n, err := c.PurgeDeletedImages(purgeAfter)
		if err != nil {
			c.log.WithError(err).Error("image purge failed")
			return
		}
		if n > 0 {
			c.log.WithField("purged", n).Info("purged soft-deleted images")
		}
	})
	cr.Start()
	return cr
}

// PurgeDeletedImages hard-deletes image records soft-deleted longer ago than
// olderThan and removes their stored files. File removal is best-effort; a
// missing file never blocks the purge.
func (c *Cleaner) PurgeDeletedImages(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	var images []media.Image
	err := c.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Find(&images).Error
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, img := range images {
		if err := c.store.Remove(img.Path); err != nil {
			c.log.WithError(err).WithField("path", img.Path).Warn("could not remove original")
		}
		if len(img.OptimizationData) > 0 {
			var derivatives map[string]media.Derivative
			if err := json.Unmarshal(img.OptimizationData, &derivatives); err == nil {
				for _, d := range derivatives {
					if err := c.store.Remove(d.Path); err != nil {
						c.log.WithError(err).WithField("path", d.Path).Warn("could not remove derivative")
					}
				}
			}
		}
		if err := c.db.Unscoped().Delete(&media.Image{}, "id = ?", img.ID).Error; err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}
