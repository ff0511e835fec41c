package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a per-user inbox entry produced by the event subscriber.
type Notification struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	ToUserID   uint64         `gorm:"not null;index" json:"to_user_id"`
	FromUserID uint64         `gorm:"not null" json:"from_user_id"`
	EventType  string         `gorm:"type:varchar(50);not null" json:"event_type"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	TaskID     uint64         `gorm:"index" json:"task_id"`
	Read       bool           `gorm:"not null;default:false;index" json:"read"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
