package models

import (
	"time"

	"gorm.io/gorm"
)

// Artwork is the design a task pipeline produces and reviews.
type Artwork struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Priority    Priority       `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	CustomerID  uint64         `gorm:"not null;index" json:"customer_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Tasks    []ArtworkTask `gorm:"foreignKey:ArtworkID" json:"tasks,omitempty"`
}
