package models

import (
	"time"

	"gorm.io/gorm"
)

// Role determines which workflow operations a user may perform.
type Role string

const (
	RoleSales       Role = "sales"
	RoleProcurement Role = "procurement"
	RoleQuality     Role = "quality"
	RoleAdmin       Role = "admin"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName     string         `gorm:"type:varchar(255)" json:"full_name"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'sales'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedTasks []ArtworkTask `gorm:"foreignKey:CreatorID" json:"-"`
}
