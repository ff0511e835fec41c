package repository

import (
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/utils"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// TaskRepository defines the interface for artwork task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.ArtworkTask) error

	// CreateWithHistory creates a task and its initial status history row in
	// one transaction
	CreateWithHistory(task *models.ArtworkTask, history *models.StatusHistory) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.ArtworkTask, error)

	// List retrieves tasks with filtering, sorting and pagination
	List(filter TaskFilter) ([]models.ArtworkTask, int64, error)

	// Update updates a task
	Update(task *models.ArtworkTask) error

	// UpdateStatusWithHistory persists a status change and appends the
	// matching history row in one transaction
	UpdateStatusWithHistory(task *models.ArtworkTask, history *models.StatusHistory) error

	// CountBySalesReference counts procurement tasks created from a sales task
	CountBySalesReference(salesTaskID uint64) (int64, error)

	// LatestBySalesReference returns the most recently updated procurement
	// task created from a sales task
	LatestBySalesReference(salesTaskID uint64) (*models.ArtworkTask, error)

	// GroupBucketByCustomer aggregates bucket tasks per customer
	GroupBucketByCustomer() ([]BucketCustomerCount, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	WorkflowType       *workflow.Type
	Statuses           []workflow.Status
	CustomerID         *uint64
	ArtworkID          *uint64
	AssigneeID         *uint64
	SalesTaskReference *uint64
	TitleQuery         string

	SortBy   string
	SortDesc bool

	Page utils.PaginationParams
}

// BucketCustomerCount is one row of the per-customer bucket aggregation.
type BucketCustomerCount struct {
	CustomerID    uint64 `json:"customer_id"`
	CustomerTitle string `json:"customer_title"`
	Count         int64  `json:"count"`
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification
	Create(notification *models.Notification) error

	// ListByUser lists a user's notifications, newest first
	ListByUser(userID uint64, page utils.PaginationParams) ([]models.Notification, int64, error)

	// CountUnread counts a user's unread notifications
	CountUnread(userID uint64) (int64, error)

	// MarkAllRead marks all of a user's notifications as read
	MarkAllRead(userID uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListByRoles lists all users holding any of the given roles
	ListByRoles(roles []models.Role) ([]models.User, error)
}
