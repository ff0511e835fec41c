package repository

import (
	"gorm.io/gorm"

	"github.com/gameplanhq/artwork-workflow-api/internal/database"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// Sortable columns for task listing. Anything else falls back to updated_at
// so user-supplied sort fields can never reach the SQL string.
var taskSortColumns = map[string]string{
	"modified":           "artwork_tasks.updated_at",
	"created":            "artwork_tasks.created_at",
	"title":              "artwork_tasks.title",
	"priority":           "artwork_tasks.priority",
	"cycle_count":        "artwork_tasks.cycle_count",
	"last_status_change": "artwork_tasks.last_status_change",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.ArtworkTask) error {
	return r.db.Create(task).Error
}

// CreateWithHistory creates a task and writes its initial history row
// transactionally, so every task has a "Task Created" movement on record.
func (r *GormTaskRepository) CreateWithHistory(task *models.ArtworkTask, history *models.StatusHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		history.TaskID = task.ID
		return tx.Create(history).Error
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.ArtworkTask, error) {
	var task models.ArtworkTask
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering, sorting and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.ArtworkTask, int64, error) {
	var tasks []models.ArtworkTask

	query := r.db.Model(&models.ArtworkTask{})

	if filter.WorkflowType != nil {
		query = query.Where("artwork_tasks.workflow_type = ?", *filter.WorkflowType)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("artwork_tasks.status IN ?", filter.Statuses)
	}
	if filter.CustomerID != nil {
		query = query.Where("artwork_tasks.customer_id = ?", *filter.CustomerID)
	}
	if filter.ArtworkID != nil {
		query = query.Where("artwork_tasks.artwork_id = ?", *filter.ArtworkID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("artwork_tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.SalesTaskReference != nil {
		query = query.Where("artwork_tasks.sales_task_reference = ?", *filter.SalesTaskReference)
	}
	if filter.TitleQuery != "" {
		query = query.Where("artwork_tasks.title LIKE ?", "%"+filter.TitleQuery+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := taskSortColumns[filter.SortBy]
	if !ok {
		column = taskSortColumns["modified"]
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	listQuery := query.Order(column + " " + direction)

	if filter.Page.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Page))
	}

	if err := listQuery.Preload("Creator").Preload("Customer").Preload("Artwork").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.ArtworkTask) error {
	return r.db.Save(task).Error
}

// UpdateStatusWithHistory saves the task and appends the history row in one
// transaction. The status change and its record either both land or neither
// does.
func (r *GormTaskRepository) UpdateStatusWithHistory(task *models.ArtworkTask, history *models.StatusHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		history.TaskID = task.ID
		return tx.Create(history).Error
	})
}

// CountBySalesReference counts procurement tasks created from a sales task
func (r *GormTaskRepository) CountBySalesReference(salesTaskID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.ArtworkTask{}).
		Where("sales_task_reference = ? AND workflow_type = ?", salesTaskID, workflow.TypeProcurement).
		Count(&count).Error
	return count, err
}

// LatestBySalesReference returns the most recently updated procurement task
// created from a sales task
func (r *GormTaskRepository) LatestBySalesReference(salesTaskID uint64) (*models.ArtworkTask, error) {
	var task models.ArtworkTask
	err := r.db.
		Where("sales_task_reference = ? AND workflow_type = ?", salesTaskID, workflow.TypeProcurement).
		Order("updated_at DESC").
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GroupBucketByCustomer aggregates bucket tasks per customer
func (r *GormTaskRepository) GroupBucketByCustomer() ([]BucketCustomerCount, error) {
	var counts []BucketCustomerCount
	err := r.db.Model(&models.ArtworkTask{}).
		Select("artwork_tasks.customer_id AS customer_id, customers.title AS customer_title, COUNT(*) AS count").
		Joins("LEFT JOIN customers ON customers.id = artwork_tasks.customer_id").
		Where("artwork_tasks.status = ?", workflow.StatusBucket).
		Group("artwork_tasks.customer_id, customers.title").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}
