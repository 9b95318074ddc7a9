package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/content"
)

type PageRequest struct {
	Slug        string  `json:"slug"`
	Locale      string  `json:"locale" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Subtitle    string  `json:"subtitle"`
	Body        string  `json:"body"`
	HeroImageID *string `json:"hero_image_id"`
	Published   *bool   `json:"published"`
}

// ------------------------------
// GET /admin/pages?locale=...
// ------------------------------
func ListPages(c *gin.Context) {
	q := database.DB.Model(&content.Page{}).Preload("HeroImage").Order("locale ASC, slug ASC")
	if locale := c.Query("locale"); locale != "" {
		q = q.Where("locale = ?", locale)
	}

	var pages []content.Page
	if err := q.Find(&pages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}
	c.JSON(http.StatusOK, pages)
}

// ------------------------------
// POST /admin/pages
// ------------------------------
func CreatePage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := req.Slug
	if strings.TrimSpace(slug) == "" {
		slug = content.MakeSlug(req.Title)
	}

	page := content.Page{
		Slug:        slug,
		Locale:      req.Locale,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Body:        req.Body,
		HeroImageID: req.HeroImageID,
	}
	if req.Published != nil {
		page.Published = *req.Published
	}

	if err := database.DB.Create(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Page with this slug and locale already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, page)
}

// ------------------------------
// PUT /admin/pages/:id
// ------------------------------
func UpdatePage(c *gin.Context) {
	var req struct {
		Slug        *string `json:"slug"`
		Title       *string `json:"title"`
		Subtitle    *string `json:"subtitle"`
		Body        *string `json:"body"`
		HeroImageID *string `json:"hero_image_id"`
		Published   *bool   `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Slug != nil {
		updates["slug"] = content.MakeSlug(*req.Slug)
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.HeroImageID != nil {
		if *req.HeroImageID == "" {
			updates["hero_image_id"] = nil
		} else {
			updates["hero_image_id"] = *req.HeroImageID
		}
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	res := database.DB.Model(&content.Page{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /admin/pages/:id
// ------------------------------
func DeletePage(c *gin.Context) {
	res := database.DB.Delete(&content.Page{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete page"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
