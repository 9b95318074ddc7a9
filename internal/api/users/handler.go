package users

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/domain/users"
)

type MeResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Provider    string     `json:"auth_provider"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ------------------------------
// GET /auth/me
// ------------------------------
func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Provider:    user.AuthProvider,
		LastLoginAt: user.LastLoginAt,
	})
}
