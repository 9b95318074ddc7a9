package mediaapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
	"github.com/rzere/discover-kackar-sub000/internal/ingest"
	"github.com/rzere/discover-kackar-sub000/internal/metrics"
)

var ingestor *ingest.Ingestor

// Setup wires the ingestion pipeline into this package's handlers.
// Called once from main before routes are registered.
func Setup(ing *ingest.Ingestor) {
	ingestor = ing
}

// ------------------------------
// POST /admin/images  (multipart: file, category, alt_text?, caption?, tags?)
// ------------------------------
func UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	defer file.Close()

	// read one byte past the ceiling so the ingestor can reject oversize input
	data, err := io.ReadAll(io.LimitReader(file, ingest.MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	in := ingest.Input{
		Data:     data,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Category: c.PostForm("category"),
		AltText:  c.PostForm("alt_text"),
		Caption:  c.PostForm("caption"),
		Tags:     c.PostForm("tags"),
	}

	img, err := ingestor.Ingest(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnsupportedType),
			errors.Is(err, ingest.ErrFileTooLarge),
			errors.Is(err, ingest.ErrMissingCategory):
			metrics.ImageUploads.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			metrics.ImageUploads.WithLabelValues("failed").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		}
		return
	}

	metrics.ImageUploads.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusCreated, img)
}

// ------------------------------
// GET /admin/images?category=...
// ------------------------------
func ListImages(c *gin.Context) {
	q := database.DB.Model(&media.Image{}).Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var images []media.Image
	if err := q.Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load images"})
		return
	}
	c.JSON(http.StatusOK, images)
}

func GetImage(c *gin.Context) {
	var img media.Image
	err := database.DB.First(&img, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load image"})
		return
	}
	c.JSON(http.StatusOK, img)
}

type UpdateImageRequest struct {
	Category *string `json:"category"`
	AltText  *string `json:"alt_text"`
	Caption  *string `json:"caption"`
	Tags     *string `json:"tags"`
}

// ------------------------------
// PUT /admin/images/:id  (metadata only; files are immutable after upload)
// ------------------------------
func UpdateImage(c *gin.Context) {
	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Category != nil {
		if *req.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category cannot be empty"})
			return
		}
		updates["category"] = *req.Category
	}
	if req.AltText != nil {
		updates["alt_text"] = *req.AltText
	}
	if req.Caption != nil {
		updates["caption"] = *req.Caption
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	res := database.DB.Model(&media.Image{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update image"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /admin/images/:id  (soft delete; nightly job reclaims the files)
// ------------------------------
func DeleteImage(c *gin.Context) {
	res := database.DB.Delete(&media.Image{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
