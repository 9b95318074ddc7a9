package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminapi "github.com/rzere/discover-kackar-sub000/internal/api/admin"
	authapi "github.com/rzere/discover-kackar-sub000/internal/api/auth"
	contentapi "github.com/rzere/discover-kackar-sub000/internal/api/content"
	"github.com/rzere/discover-kackar-sub000/internal/api/mediaapi"
	usersapi "github.com/rzere/discover-kackar-sub000/internal/api/users"
	"github.com/rzere/discover-kackar-sub000/internal/app/http/middleware"
	"github.com/rzere/discover-kackar-sub000/internal/domain/users"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public content API (read-only except the contact form)
	api := r.Group("/api")
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	api.GET("/pages/:locale", contentapi.ListPages)
	api.GET("/pages/:locale/:slug", contentapi.GetPage)
	api.GET("/categories/:locale", contentapi.ListCategories)
	api.GET("/categories/:locale/:slug", contentapi.GetCategory)
	api.GET("/footer/:locale", contentapi.GetFooter)
	api.GET("/cta/:locale", contentapi.GetCTACards)
	api.POST("/contact", contentapi.SubmitContact)

	// Auth
	r.POST("/auth/login", authapi.Login)
	r.GET("/auth/google", authapi.GoogleStart)
	r.GET("/auth/google/callback", authapi.GoogleCallback)

	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/auth/me", usersapi.GetCurrentUser)
	auth.POST("/auth/change-password", authapi.ChangePassword)

	// Admin panel: editors manage content, admins additionally manage users
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAnyRole(users.RoleAdmin, users.RoleEditor))

	admin.GET("/dashboard", adminapi.Dashboard)

	admin.POST("/images", mediaapi.UploadImage)
	admin.GET("/images", mediaapi.ListImages)
	admin.GET("/images/:id", mediaapi.GetImage)
	admin.PUT("/images/:id", mediaapi.UpdateImage)
	admin.DELETE("/images/:id", mediaapi.DeleteImage)

	admin.GET("/pages", adminapi.ListPages)
	admin.POST("/pages", adminapi.CreatePage)
	admin.PUT("/pages/:id", adminapi.UpdatePage)
	admin.DELETE("/pages/:id", adminapi.DeletePage)

	admin.GET("/categories", adminapi.ListCategories)
	admin.POST("/categories", adminapi.CreateCategory)
	admin.PUT("/categories/:id", adminapi.UpdateCategory)
	admin.DELETE("/categories/:id", adminapi.DeleteCategory)
	admin.POST("/categories/:id/subcategories", adminapi.CreateSubCategory)
	admin.PUT("/subcategories/:id", adminapi.UpdateSubCategory)
	admin.DELETE("/subcategories/:id", adminapi.DeleteSubCategory)

	admin.GET("/footer", adminapi.ListFooterSections)
	admin.POST("/footer", adminapi.CreateFooterSection)
	admin.PUT("/footer/:id", adminapi.UpdateFooterSection)
	admin.DELETE("/footer/:id", adminapi.DeleteFooterSection)
	admin.POST("/footer/:id/links", adminapi.CreateFooterLink)
	admin.PUT("/footer-links/:id", adminapi.UpdateFooterLink)
	admin.DELETE("/footer-links/:id", adminapi.DeleteFooterLink)

	admin.GET("/cta", adminapi.ListCTACards)
	admin.POST("/cta", adminapi.CreateCTACard)
	admin.PUT("/cta/:id", adminapi.UpdateCTACard)
	admin.DELETE("/cta/:id", adminapi.DeleteCTACard)

	admin.GET("/contact", adminapi.ListSubmissions)
	admin.POST("/contact/:id/handled", adminapi.MarkSubmissionHandled)
	admin.DELETE("/contact/:id", adminapi.DeleteSubmission)

	// Admin-only
	owner := admin.Group("/")
	owner.Use(middleware.RequireRole(users.RoleAdmin))
	owner.POST("/users", authapi.CreateUser)
	owner.GET("/users", authapi.ListUsers)
}
