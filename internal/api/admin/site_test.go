package admin_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/database"
	adminapi "github.com/rzere/discover-kackar-sub000/internal/api/admin"
	"github.com/rzere/discover-kackar-sub000/internal/domain/site"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	r.GET("/admin/footer", adminapi.ListFooterSections)
	r.PUT("/admin/footer/:id", adminapi.UpdateFooterSection)
	r.PUT("/admin/footer-links/:id", adminapi.UpdateFooterLink)
	return r
}

func putJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateFooterSection_KeepsLinks(t *testing.T) {
	r := setupRouter(t)

	section := site.FooterSection{Locale: "en", Title: "Explore", SortIndex: 2}
	require.NoError(t, database.DB.Create(&section).Error)
	require.NoError(t, database.DB.Create(&site.FooterLink{
		SectionID: section.ID, Label: "Routes", URL: "/en/routes",
	}).Error)

	w := putJSON(t, r, "/admin/footer/"+section.ID, map[string]interface{}{
		"title": "Discover", "sort_index": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got site.FooterSection
	require.NoError(t, database.DB.Preload("Links").First(&got, "id = ?", section.ID).Error)
	assert.Equal(t, "Discover", got.Title)
	assert.Equal(t, 0, got.SortIndex)
	assert.Len(t, got.Links, 1)
}

func TestUpdateFooterSection_EmptyTitleRejected(t *testing.T) {
	r := setupRouter(t)

	section := site.FooterSection{Locale: "en", Title: "Explore"}
	require.NoError(t, database.DB.Create(&section).Error)

	w := putJSON(t, r, "/admin/footer/"+section.ID, map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateFooterLink(t *testing.T) {
	r := setupRouter(t)

	section := site.FooterSection{Locale: "en", Title: "Explore"}
	require.NoError(t, database.DB.Create(&section).Error)
	link := site.FooterLink{SectionID: section.ID, Label: "Routes", URL: "/en/routes"}
	require.NoError(t, database.DB.Create(&link).Error)

	w := putJSON(t, r, "/admin/footer-links/"+link.ID, map[string]interface{}{
		"label": "Treks", "url": "/en/treks", "sort_index": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got site.FooterLink
	require.NoError(t, database.DB.First(&got, "id = ?", link.ID).Error)
	assert.Equal(t, "Treks", got.Label)
	assert.Equal(t, "/en/treks", got.URL)
	assert.Equal(t, 3, got.SortIndex)
}

func TestUpdateFooterLink_NotFound(t *testing.T) {
	r := setupRouter(t)

	w := putJSON(t, r, "/admin/footer-links/00000000-0000-0000-0000-000000000000",
		map[string]string{"label": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
