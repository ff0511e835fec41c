package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gameplanhq/artwork-workflow-api/internal/events"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/repository"
	"github.com/gameplanhq/artwork-workflow-api/internal/utils"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrArtworkRequired     = errors.New("artwork is required")
	ErrInvalidStatusFilter = errors.New("status is not valid for the given workflow type")
	ErrAssigneeNotFound    = errors.New("assignee does not exist")
)

// TaskService handles task creation and queries. Status mutation is the
// MovementService's job.
type TaskService struct {
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	dispatcher events.Dispatcher
	logger     *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, dispatcher events.Dispatcher, logger *slog.Logger) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	WorkflowType workflow.Type
	Priority     models.Priority
	ArtworkID    uint64
	CustomerID   uint64
	CreatorID    uint64
	AssigneeID   *uint64
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	WorkflowType *workflow.Type
	Status       *workflow.Status
	CustomerID   *uint64
	ArtworkID    *uint64
	AssigneeID   *uint64
	SortBy       string
	SortDesc     bool
	Page         utils.PaginationParams
}

// CreateTask creates a task at its pipeline's initial status and records the
// creation movement.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.ArtworkTask, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.ArtworkID == 0 {
		return nil, ErrArtworkRequired
	}

	initialStatus, err := workflow.InitialStatusFor(input.WorkflowType)
	if err != nil {
		return nil, err
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
	}

	now := time.Now()
	task := &models.ArtworkTask{
		Title:               strings.TrimSpace(input.Title),
		Description:         input.Description,
		WorkflowType:        input.WorkflowType,
		Status:              initialStatus,
		Priority:            input.Priority,
		ArtworkID:           input.ArtworkID,
		CustomerID:          input.CustomerID,
		CreatorID:           input.CreatorID,
		AssigneeID:          input.AssigneeID,
		LastStatusChange:    now,
		LastStatusChangedBy: input.CreatorID,
	}

	history := &models.StatusHistory{
		ToStatus:  initialStatus,
		ChangedBy: input.CreatorID,
		ChangedAt: now,
		Reason:    "Task Created",
	}

	if err := s.taskRepo.CreateWithHistory(task, history); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.dispatch(ctx, events.TaskEvent{
		Type:         events.EventCreated,
		TaskID:       task.ID,
		TaskTitle:    task.Title,
		ToStatus:     task.Status,
		MovedBy:      input.CreatorID,
		CustomerID:   task.CustomerID,
		ArtworkID:    task.ArtworkID,
		WorkflowType: task.WorkflowType,
	})

	if input.AssigneeID != nil {
		s.dispatch(ctx, events.TaskEvent{
			Type:         events.EventAssignment,
			TaskID:       task.ID,
			TaskTitle:    task.Title,
			MovedBy:      input.CreatorID,
			AssigneeID:   *input.AssigneeID,
			WorkflowType: task.WorkflowType,
		})
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.ArtworkTask, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListTasks returns tasks matching the given filters. A status filter is
// checked for membership in the filtered workflow type before the query runs.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.ArtworkTask, int64, error) {
	if input.Status != nil && input.WorkflowType != nil {
		if !workflow.IsValidStatusForWorkflow(*input.Status, *input.WorkflowType) {
			return nil, 0, fmt.Errorf("%w: %q for %s", ErrInvalidStatusFilter, *input.Status, *input.WorkflowType)
		}
	}

	filter := repository.TaskFilter{
		WorkflowType: input.WorkflowType,
		CustomerID:   input.CustomerID,
		ArtworkID:    input.ArtworkID,
		AssigneeID:   input.AssigneeID,
		SortBy:       input.SortBy,
		SortDesc:     input.SortDesc,
		Page:         input.Page,
	}
	if input.Status != nil {
		filter.Statuses = []workflow.Status{*input.Status}
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

func (s *TaskService) dispatch(ctx context.Context, event events.TaskEvent) {
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		s.logger.Warn("failed to dispatch task event",
			"event_type", event.Type,
			"task_id", event.TaskID,
			"error", err,
		)
	}
}
