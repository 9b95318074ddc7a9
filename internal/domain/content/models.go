package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rzere/discover-kackar-sub000/internal/domain/media"
)

// One row per (slug, locale) pair. Pages are flat marketing content:
// home, about, contact, routes and friends.
type Page struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Slug   string `gorm:"not null;index:idx_pages_slug_locale,unique" json:"slug"`
	Locale string `gorm:"not null;index:idx_pages_slug_locale,unique" json:"locale"`

	Title    string `gorm:"not null" json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `gorm:"type:text" json:"body"`

	HeroImageID *string      `gorm:"type:uuid" json:"hero_image_id,omitempty"`
	HeroImage   *media.Image `gorm:"foreignKey:HeroImageID;constraint:OnDelete:SET NULL" json:"hero_image,omitempty"`

	Published bool `gorm:"not null;default:false" json:"published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Category struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Slug   string `gorm:"not null;index:idx_categories_slug_locale,unique" json:"slug"`
	Locale string `gorm:"not null;index:idx_categories_slug_locale,unique" json:"locale"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SortIndex   int    `gorm:"not null;default:0;index" json:"sort_index"`

	ImageID *string      `gorm:"type:uuid" json:"image_id,omitempty"`
	Image   *media.Image `gorm:"foreignKey:ImageID;constraint:OnDelete:SET NULL" json:"image,omitempty"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"subcategories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type SubCategory struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	CategoryID string `gorm:"type:uuid;not null;index" json:"category_id"`

	Slug   string `gorm:"not null;index:idx_subcategories_slug_locale,unique" json:"slug"`
	Locale string `gorm:"not null;index:idx_subcategories_slug_locale,unique" json:"locale"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SortIndex   int    `gorm:"not null;default:0;index" json:"sort_index"`

	ImageID *string      `gorm:"type:uuid" json:"image_id,omitempty"`
	Image   *media.Image `gorm:"foreignKey:ImageID;constraint:OnDelete:SET NULL" json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SubCategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
