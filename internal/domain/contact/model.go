package contact

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Submission struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Subject string `json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Locale  string `gorm:"not null;default:'en'" json:"locale"`

	Handled bool `gorm:"not null;default:false;index" json:"handled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
