package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/site"
)

type FooterSectionRequest struct {
	Locale    string `json:"locale" binding:"required"`
	Title     string `json:"title" binding:"required"`
	SortIndex *int   `json:"sort_index"`
}

type FooterLinkRequest struct {
	Label     string `json:"label" binding:"required"`
	URL       string `json:"url" binding:"required"`
	SortIndex *int   `json:"sort_index"`
}

// ------------------------------
// GET /admin/footer?locale=...
// ------------------------------
func ListFooterSections(c *gin.Context) {
	q := database.DB.Model(&site.FooterSection{}).
		Preload("Links", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		Order("locale ASC, sort_index ASC")
	if locale := c.Query("locale"); locale != "" {
		q = q.Where("locale = ?", locale)
	}

	var sections []site.FooterSection
	if err := q.Find(&sections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load footer sections"})
		return
	}
	c.JSON(http.StatusOK, sections)
}

// ------------------------------
// POST /admin/footer
// ------------------------------
func CreateFooterSection(c *gin.Context) {
	var req FooterSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section := site.FooterSection{Locale: req.Locale, Title: req.Title}
	if req.SortIndex != nil {
		section.SortIndex = *req.SortIndex
	}

	if err := database.DB.Create(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Footer section already exists for this locale"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create footer section"})
		return
	}
	c.JSON(http.StatusCreated, section)
}

// ------------------------------
// POST /admin/footer/:id/links
// ------------------------------
func CreateFooterLink(c *gin.Context) {
	var req FooterLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var section site.FooterSection
	if err := database.DB.First(&section, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Footer section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load footer section"})
		return
	}

	link := site.FooterLink{SectionID: section.ID, Label: req.Label, URL: req.URL}
	if req.SortIndex != nil {
		link.SortIndex = *req.SortIndex
	}

	if err := database.DB.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create footer link"})
		return
	}
	c.JSON(http.StatusCreated, link)
}

// ------------------------------
// PUT /admin/footer/:id
// ------------------------------
func UpdateFooterSection(c *gin.Context) {
	var req struct {
		Title     *string `json:"title"`
		SortIndex *int    `json:"sort_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		updates["title"] = *req.Title
	}
	if req.SortIndex != nil {
		updates["sort_index"] = *req.SortIndex
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	res := database.DB.Model(&site.FooterSection{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Footer section already exists for this locale"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update footer section"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Footer section not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// PUT /admin/footer-links/:id
// ------------------------------
func UpdateFooterLink(c *gin.Context) {
	var req struct {
		Label     *string `json:"label"`
		URL       *string `json:"url"`
		SortIndex *int    `json:"sort_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.SortIndex != nil {
		updates["sort_index"] = *req.SortIndex
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	res := database.DB.Model(&site.FooterLink{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update footer link"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Footer link not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /admin/footer/:id  (links cascade)
// ------------------------------
func DeleteFooterSection(c *gin.Context) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", c.Param("id")).Delete(&site.FooterLink{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&site.FooterSection{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Footer section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete footer section"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// DELETE /admin/footer-links/:id
// ------------------------------
func DeleteFooterLink(c *gin.Context) {
	res := database.DB.Delete(&site.FooterLink{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete footer link"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Footer link not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type CTACardRequest struct {
	Locale      string  `json:"locale" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Body        string  `json:"body"`
	ButtonLabel string  `json:"button_label"`
	ButtonURL   string  `json:"button_url"`
	SortIndex   *int    `json:"sort_index"`
	ImageID     *string `json:"image_id"`
	Active      *bool   `json:"active"`
}

// ------------------------------
// GET /admin/cta?locale=...
// ------------------------------
func ListCTACards(c *gin.Context) {
	q := database.DB.Model(&site.CTACard{}).Preload("Image").Order("locale ASC, sort_index ASC")
	if locale := c.Query("locale"); locale != "" {
		q = q.Where("locale = ?", locale)
	}

	var cards []site.CTACard
	if err := q.Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load CTA cards"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// ------------------------------
// POST /admin/cta
// ------------------------------
func CreateCTACard(c *gin.Context) {
	var req CTACardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := site.CTACard{
		Locale:      req.Locale,
		Title:       req.Title,
		Body:        req.Body,
		ButtonLabel: req.ButtonLabel,
		ButtonURL:   req.ButtonURL,
		ImageID:     req.ImageID,
		Active:      true,
	}
	if req.SortIndex != nil {
		card.SortIndex = *req.SortIndex
	}
	if req.Active != nil {
		card.Active = *req.Active
	}

	if err := database.DB.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create CTA card"})
		return
	}
	c.JSON(http.StatusCreated, card)
}

// ------------------------------
// PUT /admin/cta/:id
// ------------------------------
func UpdateCTACard(c *gin.Context) {
	var req struct {
		Title       *string `json:"title"`
		Body        *string `json:"body"`
		ButtonLabel *string `json:"button_label"`
		ButtonURL   *string `json:"button_url"`
		SortIndex   *int    `json:"sort_index"`
		ImageID     *string `json:"image_id"`
		Active      *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.ButtonLabel != nil {
		updates["button_label"] = *req.ButtonLabel
	}
	if req.ButtonURL != nil {
		updates["button_url"] = *req.ButtonURL
	}
	if req.SortIndex != nil {
		updates["sort_index"] = *req.SortIndex
	}
	if req.ImageID != nil {
		if *req.ImageID == "" {
			updates["image_id"] = nil
		} else {
			updates["image_id"] = *req.ImageID
		}
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	res := database.DB.Model(&site.CTACard{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update CTA card"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "CTA card not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /admin/cta/:id
// ------------------------------
func DeleteCTACard(c *gin.Context) {
	res := database.DB.Delete(&site.CTACard{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete CTA card"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "CTA card not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
