package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/contact"
)

// ------------------------------
// GET /admin/contact?handled=true|false
// ------------------------------
func ListSubmissions(c *gin.Context) {
	q := database.DB.Model(&contact.Submission{}).Order("created_at DESC")
	switch c.Query("handled") {
	case "true":
		q = q.Where("handled = ?", true)
	case "false":
		q = q.Where("handled = ?", false)
	}

	var submissions []contact.Submission
	if err := q.Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// ------------------------------
// POST /admin/contact/:id/handled
// ------------------------------
func MarkSubmissionHandled(c *gin.Context) {
	res := database.DB.Model(&contact.Submission{}).
		Where("id = ?", c.Param("id")).
		Update("handled", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /admin/contact/:id
// ------------------------------
func DeleteSubmission(c *gin.Context) {
	res := database.DB.Delete(&contact.Submission{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete submission"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
