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

type CategoryRequest struct {
	Slug        string  `json:"slug"`
	Locale      string  `json:"locale" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	SortIndex   *int    `json:"sort_index"`
	ImageID     *string `json:"image_id"`
}

// ------------------------------
// GET /admin/categories?locale=...
// ------------------------------
func ListCategories(c *gin.Context) {
	q := database.DB.Model(&content.Category{}).
		Preload("Image").
		Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		Order("locale ASC, sort_index ASC")
	if locale := c.Query("locale"); locale != "" {
		q = q.Where("locale = ?", locale)
	}

	var categories []content.Category
	if err := q.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ------------------------------
// POST /admin/categories
// ------------------------------
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := req.Slug
	if strings.TrimSpace(slug) == "" {
		slug = content.MakeSlug(req.Name)
	}

	category := content.Category{
		Slug:        slug,
		Locale:      req.Locale,
		Name:        req.Name,
		Description: req.Description,
		ImageID:     req.ImageID,
	}
	if req.SortIndex != nil {
		category.SortIndex = *req.SortIndex
	}

	if err := database.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category with this slug and locale already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// ------------------------------
// PUT /admin/categories/:id
// ------------------------------
func UpdateCategory(c *gin.Context) {
	var req struct {
		Slug        *string `json:"slug"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		SortIndex   *int    `json:"sort_index"`
		ImageID     *string `json:"image_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Slug != nil {
		updates["slug"] = content.MakeSlug(*req.Slug)
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
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
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	res := database.DB.Model(&content.Category{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /admin/categories/:id  (subcategories cascade)
// ------------------------------
func DeleteCategory(c *gin.Context) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", c.Param("id")).Delete(&content.SubCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&content.Category{}, "id = ?", c.Param("id"))
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
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type SubCategoryRequest struct {
	Slug        string  `json:"slug"`
	Locale      string  `json:"locale" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	SortIndex   *int    `json:"sort_index"`
	ImageID     *string `json:"image_id"`
}

// ------------------------------
// POST /admin/categories/:id/subcategories
// ------------------------------
func CreateSubCategory(c *gin.Context) {
	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parent content.Category
	if err := database.DB.First(&parent, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category"})
		return
	}

	slug := req.Slug
	if strings.TrimSpace(slug) == "" {
		slug = content.MakeSlug(req.Name)
	}

	sub := content.SubCategory{
		CategoryID:  parent.ID,
		Slug:        slug,
		Locale:      req.Locale,
		Name:        req.Name,
		Description: req.Description,
		ImageID:     req.ImageID,
	}
	if req.SortIndex != nil {
		sub.SortIndex = *req.SortIndex
	}

	if err := database.DB.Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Subcategory with this slug and locale already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ------------------------------
// PUT /admin/subcategories/:id
// ------------------------------
func UpdateSubCategory(c *gin.Context) {
	var req struct {
		Slug        *string `json:"slug"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		SortIndex   *int    `json:"sort_index"`
		ImageID     *string `json:"image_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Slug != nil {
		updates["slug"] = content.MakeSlug(*req.Slug)
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
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
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	res := database.DB.Model(&content.SubCategory{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subcategory"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /admin/subcategories/:id
// ------------------------------
func DeleteSubCategory(c *gin.Context) {
	res := database.DB.Delete(&content.SubCategory{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subcategory"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
