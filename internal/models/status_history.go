package models

import (
	"time"

	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// StatusHistory records a single status movement of an artwork task. Rows are
// append-only; notification payloads are built from them.
type StatusHistory struct {
	ID         uint64          `gorm:"primarykey" json:"id"`
	TaskID     uint64          `gorm:"not null;index" json:"task_id"`
	FromStatus workflow.Status `gorm:"type:varchar(30)" json:"from_status"`
	ToStatus   workflow.Status `gorm:"type:varchar(30);not null" json:"to_status"`
	ChangedBy  uint64          `gorm:"not null" json:"changed_by"`
	ChangedAt  time.Time       `gorm:"not null" json:"changed_at"`
	Reason     string          `gorm:"type:varchar(255)" json:"reason"`
	Comments   string          `gorm:"type:text" json:"comments"`
}
