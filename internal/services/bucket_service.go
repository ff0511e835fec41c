package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/gameplanhq/artwork-workflow-api/internal/events"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/repository"
	"github.com/gameplanhq/artwork-workflow-api/internal/utils"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

var ErrInvalidBucketTransition = errors.New("task is not eligible for this bucket movement")

// BucketService moves completed sales tasks into the shared procurement
// bucket and back out. Bucket exit goes through the MovementService so the
// engine's validation and notification contract applies; only the eligibility
// check is bucket-specific.
type BucketService struct {
	taskRepo   repository.TaskRepository
	movement   *MovementService
	dispatcher events.Dispatcher
	logger     *slog.Logger
}

// NewBucketService creates a new BucketService
func NewBucketService(taskRepo repository.TaskRepository, movement *MovementService, dispatcher events.Dispatcher, logger *slog.Logger) *BucketService {
	return &BucketService{
		taskRepo:   taskRepo,
		movement:   movement,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// BucketStats aggregates the current bucket contents.
type BucketStats struct {
	TotalTasks            int64                            `json:"total_tasks"`
	CustomerCounts        []repository.BucketCustomerCount `json:"customer_counts"`
	AverageAgeSeconds     int64                            `json:"average_age_seconds"`
	OldestEntryAgeSeconds int64                            `json:"oldest_entry_age_seconds"`
}

// ListCompletedSalesInput filters and pages the completed-sales listing.
type ListCompletedSalesInput struct {
	CustomerID *uint64
	ArtworkID  *uint64
	TitleQuery string
	SortBy     string
	SortDesc   bool
	Page       utils.PaginationParams
}

// CompletedSalesTask is a completed sales task annotated with its procurement
// handoff state.
type CompletedSalesTask struct {
	models.ArtworkTask
	InProcurement     bool    `json:"in_procurement"`
	ProcurementTaskID *uint64 `json:"procurement_task_id,omitempty"`
	CycleNumber       int64   `json:"cycle_number"`
}

// CompletedSalesList is one page of completed sales tasks.
type CompletedSalesList struct {
	Tasks      []CompletedSalesTask
	TotalCount int64
	HasMore    bool
}

// MoveCompletedSalesToBucket creates a procurement-side counterpart of a
// completed sales task in Bucket status. The sales task itself is left
// untouched; the two records stay linked through SalesTaskReference.
func (s *BucketService) MoveCompletedSalesToBucket(ctx context.Context, taskID, actorID uint64) (*models.ArtworkTask, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.WorkflowType != workflow.TypeSales || task.Status != workflow.StatusCompleted {
		return nil, fmt.Errorf("%w: only completed sales tasks can enter the bucket (got %s %q)",
			ErrInvalidBucketTransition, task.WorkflowType, task.Status)
	}

	cycles, err := s.taskRepo.CountBySalesReference(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count procurement cycles: %w", err)
	}

	now := time.Now()
	salesRef := task.ID
	procurementTask := &models.ArtworkTask{
		Title:               task.Title + " - Procurement",
		Description:         task.Description,
		WorkflowType:        workflow.TypeProcurement,
		Status:              workflow.StatusBucket,
		Priority:            task.Priority,
		ArtworkID:           task.ArtworkID,
		CustomerID:          task.CustomerID,
		CreatorID:           actorID,
		SalesTaskReference:  &salesRef,
		CycleCount:          int(cycles) + 1,
		LastStatusChange:    now,
		LastStatusChangedBy: actorID,
	}

	history := &models.StatusHistory{
		FromStatus: workflow.StatusCompleted,
		ToStatus:   workflow.StatusBucket,
		ChangedBy:  actorID,
		ChangedAt:  now,
		Reason:     "Moved to Procurement Bucket",
	}

	if err := s.taskRepo.CreateWithHistory(procurementTask, history); err != nil {
		return nil, fmt.Errorf("failed to create bucket task: %w", err)
	}

	s.dispatch(ctx, events.TaskEvent{
		Type:         events.EventMovedToSalesBucket,
		TaskID:       procurementTask.ID,
		TaskTitle:    procurementTask.Title,
		FromStatus:   workflow.StatusCompleted,
		ToStatus:     workflow.StatusBucket,
		MovedBy:      actorID,
		CustomerID:   procurementTask.CustomerID,
		ArtworkID:    procurementTask.ArtworkID,
		WorkflowType: workflow.TypeProcurement,
		CycleCount:   procurementTask.CycleCount,
	})

	return s.taskRepo.FindByID(procurementTask.ID, taskPreloads...)
}

// MoveFromBucket releases a bucket task into the active procurement workflow.
// Eligibility is checked here; the status write delegates to the movement
// engine, then a richer bucket-exit event is dispatched on top of the
// engine's status_change.
func (s *BucketService) MoveFromBucket(ctx context.Context, taskID uint64, newStatus workflow.Status, actorID uint64) (*models.ArtworkTask, error) {
	if newStatus == "" {
		newStatus = workflow.StatusProcurementReview
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.Status != workflow.StatusBucket {
		return nil, fmt.Errorf("%w: task is not in the bucket (status %q)",
			ErrInvalidBucketTransition, task.Status)
	}

	residency := time.Since(task.LastStatusChange)

	updated, err := s.movement.MoveTask(ctx, MoveTaskInput{
		TaskID:    taskID,
		NewStatus: newStatus,
		ActorID:   actorID,
		Reason:    "Picked up from Bucket",
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, events.TaskEvent{
		Type:                   events.EventMovedFromProcurementBucket,
		TaskID:                 updated.ID,
		TaskTitle:              updated.Title,
		FromStatus:             workflow.StatusBucket,
		ToStatus:               updated.Status,
		MovedBy:                actorID,
		CustomerID:             updated.CustomerID,
		ArtworkID:              updated.ArtworkID,
		WorkflowType:           updated.WorkflowType,
		CycleCount:             updated.CycleCount,
		BucketResidencySeconds: int64(residency.Seconds()),
	})

	return updated, nil
}

// Stats aggregates the current bucket contents. An empty bucket yields zeroed
// stats, never an error.
func (s *BucketService) Stats(ctx context.Context) (*BucketStats, error) {
	counts, err := s.taskRepo.GroupBucketByCustomer()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bucket tasks: %w", err)
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		Statuses: []workflow.Status{workflow.StatusBucket},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket tasks: %w", err)
	}

	stats := &BucketStats{
		TotalTasks:     total,
		CustomerCounts: counts,
	}
	if len(tasks) == 0 {
		stats.CustomerCounts = []repository.BucketCustomerCount{}
		return stats, nil
	}

	now := time.Now()
	var totalAge time.Duration
	var oldest time.Duration
	for _, task := range tasks {
		age := now.Sub(task.LastStatusChange)
		totalAge += age
		if age > oldest {
			oldest = age
		}
	}

	stats.AverageAgeSeconds = int64((totalAge / time.Duration(len(tasks))).Seconds())
	stats.OldestEntryAgeSeconds = int64(oldest.Seconds())
	return stats, nil
}

// ListBucketTasks lists the current bucket contents, optionally filtered by
// customer.
func (s *BucketService) ListBucketTasks(ctx context.Context, customerID *uint64, sortBy string, sortDesc bool) ([]models.ArtworkTask, error) {
	tasks, _, err := s.taskRepo.List(repository.TaskFilter{
		Statuses:   []workflow.Status{workflow.StatusBucket},
		CustomerID: customerID,
		SortBy:     sortBy,
		SortDesc:   sortDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket tasks: %w", err)
	}
	return tasks, nil
}

// ListCompletedSales pages through completed sales tasks ready for
// procurement pickup, annotating each with its handoff state.
func (s *BucketService) ListCompletedSales(ctx context.Context, input ListCompletedSalesInput) (*CompletedSalesList, error) {
	salesType := workflow.TypeSales
	filter := repository.TaskFilter{
		WorkflowType: &salesType,
		Statuses:     []workflow.Status{workflow.StatusCompleted},
		CustomerID:   input.CustomerID,
		ArtworkID:    input.ArtworkID,
		TitleQuery:   input.TitleQuery,
		SortBy:       input.SortBy,
		SortDesc:     input.SortDesc,
		Page:         input.Page,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed sales tasks: %w", err)
	}

	result := &CompletedSalesList{
		Tasks:      make([]CompletedSalesTask, 0, len(tasks)),
		TotalCount: total,
		HasMore:    input.Page.HasMore(total),
	}

	for _, task := range tasks {
		annotated := CompletedSalesTask{ArtworkTask: task}

		cycles, err := s.taskRepo.CountBySalesReference(task.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count procurement cycles: %w", err)
		}
		annotated.CycleNumber = cycles
		annotated.InProcurement = cycles > 0

		if cycles > 0 {
			latest, err := s.taskRepo.LatestBySalesReference(task.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to find latest procurement cycle: %w", err)
			}
			if latest != nil {
				annotated.ProcurementTaskID = &latest.ID
			}
		}

		result.Tasks = append(result.Tasks, annotated)
	}

	return result, nil
}

func (s *BucketService) dispatch(ctx context.Context, event events.TaskEvent) {
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		s.logger.Warn("failed to dispatch task event",
			"event_type", event.Type,
			"task_id", event.TaskID,
			"error", err,
		)
	}
}
