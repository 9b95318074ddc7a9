package content

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/config"
	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/contact"
	"github.com/rzere/discover-kackar-sub000/internal/domain/content"
	"github.com/rzere/discover-kackar-sub000/internal/domain/site"
	"github.com/rzere/discover-kackar-sub000/internal/metrics"
)

// localeParam resolves the :locale path segment, falling back to the default
// locale for anything the site does not serve.
func localeParam(c *gin.Context) string {
	locale := c.Param("locale")
	if config.IsSupportedLocale(locale) {
		return locale
	}
	return config.DEFAULT_LOCALE
}

// ------------------------------
// GET /api/pages/:locale
// ------------------------------
func ListPages(c *gin.Context) {
	var pages []content.Page
	err := database.DB.
		Where("locale = ? AND published = ?", localeParam(c), true).
		Preload("HeroImage").
		Order("slug ASC").
		Find(&pages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}
	c.JSON(http.StatusOK, pages)
}

// ------------------------------
// GET /api/pages/:locale/:slug
// ------------------------------
func GetPage(c *gin.Context) {
	var page content.Page
	err := database.DB.
		Preload("HeroImage").
		First(&page, "slug = ? AND locale = ? AND published = ?", c.Param("slug"), localeParam(c), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// ------------------------------
// GET /api/categories/:locale
// ------------------------------
func ListCategories(c *gin.Context) {
	var categories []content.Category
	err := database.DB.
		Where("locale = ?", localeParam(c)).
		Preload("Image").
		Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		Preload("SubCategories.Image").
		Order("sort_index ASC").
		Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ------------------------------
// GET /api/categories/:locale/:slug
// ------------------------------
func GetCategory(c *gin.Context) {
	var category content.Category
	err := database.DB.
		Preload("Image").
		Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		Preload("SubCategories.Image").
		First(&category, "slug = ? AND locale = ?", c.Param("slug"), localeParam(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// ------------------------------
// GET /api/footer/:locale
// ------------------------------
func GetFooter(c *gin.Context) {
	var sections []site.FooterSection
	err := database.DB.
		Where("locale = ?", localeParam(c)).
		Preload("Links", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		Order("sort_index ASC").
		Find(&sections).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load footer"})
		return
	}
	c.JSON(http.StatusOK, sections)
}

// ------------------------------
// GET /api/cta/:locale
// ------------------------------
func GetCTACards(c *gin.Context) {
	var cards []site.CTACard
	err := database.DB.
		Where("locale = ? AND active = ?", localeParam(c), true).
		Preload("Image").
		Order("sort_index ASC").
		Find(&cards).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load CTA cards"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
	Locale  string `json:"locale"`
}

// ------------------------------
// POST /api/contact
// ------------------------------
func SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	locale := req.Locale
	if !config.IsSupportedLocale(locale) {
		locale = config.DEFAULT_LOCALE
	}

	sub := contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Locale:  locale,
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}

	metrics.ContactSubmissions.Inc()

	// notification is best-effort; the submission is already saved
	go func(s contact.Submission) {
		_ = SendContactNotification(s)
	}(sub)

	c.JSON(http.StatusCreated, gin.H{"id": sub.ID, "status": "received"})
}
