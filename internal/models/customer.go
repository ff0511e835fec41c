package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is the client a set of artworks belongs to.
type Customer struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Artworks []Artwork `gorm:"foreignKey:CustomerID" json:"artworks,omitempty"`
}
