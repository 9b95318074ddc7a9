package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/contact"
	"github.com/rzere/discover-kackar-sub000/internal/domain/content"
	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
)

type DashboardStats struct {
	TotalPages         int64 `json:"total_pages"`
	TotalCategories    int64 `json:"total_categories"`
	TotalImages        int64 `json:"total_images"`
	OptimizedImages    int64 `json:"optimized_images"`
	PendingSubmissions int64 `json:"pending_submissions"`
	RecentSubmissions  int64 `json:"recent_submissions"`
}

// ------------------------------
// GET /admin/dashboard
// ------------------------------
func Dashboard(c *gin.Context) {
	var stats DashboardStats

	database.DB.Model(&content.Page{}).Count(&stats.TotalPages)
	database.DB.Model(&content.Category{}).Count(&stats.TotalCategories)
	database.DB.Model(&media.Image{}).Count(&stats.TotalImages)
	database.DB.Model(&media.Image{}).Where("is_optimized = ?", true).Count(&stats.OptimizedImages)
	database.DB.Model(&contact.Submission{}).Where("handled = ?", false).Count(&stats.PendingSubmissions)
	database.DB.Model(&contact.Submission{}).
		Where("created_at > ?", time.Now().AddDate(0, 0, -7)).
		Count(&stats.RecentSubmissions)

	c.JSON(http.StatusOK, stats)
}
