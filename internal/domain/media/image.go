package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Derivative describes one generated output of an uploaded image
// (one viewport class: mobile / tablet / desktop).
type Derivative struct {
	Size    int64  `json:"size"`
	Path    string `json:"path"`
	Width   int    `json:"width"`
	Quality int    `json:"quality"`
}

type Image struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OriginalFilename string `gorm:"not null" json:"original_filename"`
	StoredFilename   string `gorm:"not null;uniqueIndex" json:"stored_filename"`
	Path             string `gorm:"not null" json:"path"`
	FileSize         int64  `gorm:"not null" json:"file_size"`
	MimeType         string `gorm:"not null" json:"mime_type"`

	// Probed lazily at upload time; nil when the probe was unavailable.
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`

	Category string  `gorm:"not null;index" json:"category"`
	AltText  *string `json:"alt_text,omitempty"`
	Caption  *string `json:"caption,omitempty"`
	Tags     *string `json:"tags,omitempty"`

	// IsOptimized is true iff at least one derivative succeeded.
	// OptimizationData maps profile label -> Derivative.
	IsOptimized      bool           `gorm:"not null;default:false" json:"is_optimized"`
	OptimizationData datatypes.JSON `json:"optimization_data,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
