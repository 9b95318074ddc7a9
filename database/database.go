package database

import (
	"log"
	"os"

	"github.com/rzere/discover-kackar-sub000/internal/domain/contact"
	"github.com/rzere/discover-kackar-sub000/internal/domain/content"
	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
	"github.com/rzere/discover-kackar-sub000/internal/domain/site"
	"github.com/rzere/discover-kackar-sub000/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("Connected and migrated successfully")
}

// Migrate runs the schema migration for every domain model. Split out from
// InitDB so tests can run it against their own handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},

		// media
		&media.Image{},

		// content
		&content.Page{},
		&content.Category{},
		&content.SubCategory{},

		// site furniture
		&site.FooterSection{},
		&site.FooterLink{},
		&site.CTACard{},

		// contact
		&contact.Submission{},
	)
}
