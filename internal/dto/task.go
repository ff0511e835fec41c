package dto

import (
	"time"

	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64      `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
}

// CustomerDTO represents a customer in API responses
type CustomerDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// ArtworkDTO represents an artwork in API responses
type ArtworkDTO struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	CustomerID uint64 `json:"customer_id"`
}

// StatusHistoryDTO represents one recorded status movement
type StatusHistoryDTO struct {
	FromStatus workflow.Status `json:"from_status"`
	ToStatus   workflow.Status `json:"to_status"`
	ChangedBy  uint64          `json:"changed_by"`
	ChangedAt  time.Time       `json:"changed_at"`
	Reason     string          `json:"reason,omitempty"`
	Comments   string          `json:"comments,omitempty"`
}

// TaskDTO represents an artwork task in API responses
type TaskDTO struct {
	ID                 uint64             `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	WorkflowType       workflow.Type      `json:"workflow_type"`
	Status             workflow.Status    `json:"status"`
	Priority           models.Priority    `json:"priority"`
	ArtworkID          uint64             `json:"artwork_id"`
	CustomerID         uint64             `json:"customer_id"`
	CreatorID          uint64             `json:"creator_id"`
	AssigneeID         *uint64            `json:"assignee_id"`
	SalesTaskReference *uint64            `json:"sales_task_reference"`
	CycleCount         int                `json:"cycle_count"`
	LastStatusChange   time.Time          `json:"last_status_change"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	Creator            *UserDTO           `json:"creator,omitempty"`
	Customer           *CustomerDTO       `json:"customer,omitempty"`
	Artwork            *ArtworkDTO        `json:"artwork,omitempty"`
	StatusHistory      []StatusHistoryDTO `json:"status_history,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID               uint64          `json:"id"`
	Title            string          `json:"title"`
	WorkflowType     workflow.Type   `json:"workflow_type"`
	Status           workflow.Status `json:"status"`
	Priority         models.Priority `json:"priority"`
	CustomerID       uint64          `json:"customer_id"`
	Customer         *CustomerDTO    `json:"customer,omitempty"`
	CycleCount       int             `json:"cycle_count"`
	LastStatusChange time.Time       `json:"last_status_change"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

// ToCustomerDTO converts a customer to DTO
func ToCustomerDTO(customer models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:    customer.ID,
		Title: customer.Title,
	}
}

// ToArtworkDTO converts an artwork to DTO
func ToArtworkDTO(artwork models.Artwork) ArtworkDTO {
	return ArtworkDTO{
		ID:         artwork.ID,
		Title:      artwork.Title,
		CustomerID: artwork.CustomerID,
	}
}

// ToTaskDTO converts a task with relations to a detailed DTO
func ToTaskDTO(task models.ArtworkTask) TaskDTO {
	result := TaskDTO{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		WorkflowType:       task.WorkflowType,
		Status:             task.Status,
		Priority:           task.Priority,
		ArtworkID:          task.ArtworkID,
		CustomerID:         task.CustomerID,
		CreatorID:          task.CreatorID,
		AssigneeID:         task.AssigneeID,
		SalesTaskReference: task.SalesTaskReference,
		CycleCount:         task.CycleCount,
		LastStatusChange:   task.LastStatusChange,
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
	}

	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		result.Creator = &creator
	}
	if task.Customer.ID != 0 {
		customer := ToCustomerDTO(task.Customer)
		result.Customer = &customer
	}
	if task.Artwork.ID != 0 {
		artwork := ToArtworkDTO(task.Artwork)
		result.Artwork = &artwork
	}
	for _, entry := range task.StatusHistory {
		result.StatusHistory = append(result.StatusHistory, StatusHistoryDTO{
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			ChangedBy:  entry.ChangedBy,
			ChangedAt:  entry.ChangedAt,
			Reason:     entry.Reason,
			Comments:   entry.Comments,
		})
	}

	return result
}

// ToTaskListItemDTO converts a task to a list item DTO
func ToTaskListItemDTO(task models.ArtworkTask) TaskListItemDTO {
	result := TaskListItemDTO{
		ID:               task.ID,
		Title:            task.Title,
		WorkflowType:     task.WorkflowType,
		Status:           task.Status,
		Priority:         task.Priority,
		CustomerID:       task.CustomerID,
		CycleCount:       task.CycleCount,
		LastStatusChange: task.LastStatusChange,
		CreatedAt:        task.CreatedAt,
	}

	if task.Customer.ID != 0 {
		customer := ToCustomerDTO(task.Customer)
		result.Customer = &customer
	}

	return result
}

// ToTaskListResponse builds a paginated task list response
func ToTaskListResponse(tasks []models.ArtworkTask, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
