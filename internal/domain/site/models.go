package site

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
)

// FooterSection is one column of the site footer ("Explore", "Contact", ...),
// locale-scoped like every other piece of content.
type FooterSection struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Locale    string `gorm:"not null;index:idx_footer_sections_title_locale,unique" json:"locale"`
	Title     string `gorm:"not null;index:idx_footer_sections_title_locale,unique" json:"title"`
	SortIndex int    `gorm:"not null;default:0;index" json:"sort_index"`

	Links []FooterLink `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"links,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *FooterSection) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

type FooterLink struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	SectionID string `gorm:"type:uuid;not null;index" json:"section_id"`
	Label     string `gorm:"not null" json:"label"`
	URL       string `gorm:"not null" json:"url"`
	SortIndex int    `gorm:"not null;default:0;index" json:"sort_index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *FooterLink) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// CTACard is a call-to-action block rendered on the home and category pages.
type CTACard struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Locale    string `gorm:"not null;index" json:"locale"`
	Title     string `gorm:"not null" json:"title"`
	Body      string `gorm:"type:text" json:"body"`
	SortIndex int    `gorm:"not null;default:0;index" json:"sort_index"`

	ButtonLabel string `json:"button_label"`
	ButtonURL   string `json:"button_url"`

	ImageID *string      `gorm:"type:uuid" json:"image_id,omitempty"`
	Image   *media.Image `gorm:"foreignKey:ImageID;constraint:OnDelete:SET NULL" json:"image,omitempty"`

	// no column default: gorm would drop an explicit false on insert
	Active bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CTACard) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
