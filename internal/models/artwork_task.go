package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// Priority of an artwork task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// ArtworkTask is a unit of work inside exactly one pipeline. Its status is
// only ever mutated through the movement service so the workflow policy
// invariant (status always valid for the task's workflow type) holds.
type ArtworkTask struct {
	ID           uint64          `gorm:"primarykey" json:"id"`
	Title        string          `gorm:"type:varchar(255);not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	WorkflowType workflow.Type   `gorm:"type:varchar(30);not null;index" json:"workflow_type"`
	Status       workflow.Status `gorm:"type:varchar(30);not null;index" json:"status"`
	Priority     Priority        `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`

	ArtworkID  uint64  `gorm:"not null;index" json:"artwork_id"`
	CustomerID uint64  `gorm:"not null;index" json:"customer_id"`
	CreatorID  uint64  `gorm:"not null" json:"creator_id"`
	AssigneeID *uint64 `json:"assignee_id"`

	// Procurement tasks created from a completed sales task keep a reference
	// back to it; CycleCount numbers repeated procurement rounds.
	SalesTaskReference *uint64 `gorm:"index" json:"sales_task_reference"`
	CycleCount         int     `gorm:"not null;default:0" json:"cycle_count"`

	LastStatusChange    time.Time `json:"last_status_change"`
	LastStatusChangedBy uint64    `json:"last_status_changed_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Artwork       Artwork         `gorm:"foreignKey:ArtworkID" json:"artwork,omitempty"`
	Customer      Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Creator       User            `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignee      *User           `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	StatusHistory []StatusHistory `gorm:"foreignKey:TaskID" json:"status_history,omitempty"`
}
