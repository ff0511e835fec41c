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
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTransition = errors.New("status transition not allowed by workflow")
)

// taskPreloads are the relations handlers render for a single task.
var taskPreloads = []string{"Creator", "Customer", "Artwork", "StatusHistory"}

// MovementService performs single-task status changes: validate against the
// workflow policy, persist, then notify. It is the only mutation path for
// task statuses.
type MovementService struct {
	taskRepo   repository.TaskRepository
	dispatcher events.Dispatcher
	logger     *slog.Logger
}

// NewMovementService creates a new MovementService
func NewMovementService(taskRepo repository.TaskRepository, dispatcher events.Dispatcher, logger *slog.Logger) *MovementService {
	return &MovementService{
		taskRepo:   taskRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// MoveTaskInput represents input for a status change
type MoveTaskInput struct {
	TaskID    uint64
	NewStatus workflow.Status
	ActorID   uint64
	Reason    string
	Comments  string
}

// MoveTask changes a task's status. The transition is validated before
// anything is written; an invalid move leaves the task untouched. The status
// update and its history row are persisted in one transaction, then a
// status_change event is dispatched best-effort. Callers re-fetch any cached
// views themselves; the engine performs no implicit refresh.
func (s *MovementService) MoveTask(ctx context.Context, input MoveTaskInput) (*models.ArtworkTask, error) {
	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !workflow.IsValidTransition(task.WorkflowType, task.Status, input.NewStatus) {
		return nil, fmt.Errorf("%w: %s cannot move from %q to %q",
			ErrInvalidTransition, task.WorkflowType, task.Status, input.NewStatus)
	}

	// A same-status save is a valid no-op: no write, no history row, no event.
	if task.Status == input.NewStatus {
		return s.taskRepo.FindByID(task.ID, taskPreloads...)
	}

	fromStatus := task.Status
	now := time.Now()

	task.Status = input.NewStatus
	task.LastStatusChange = now
	task.LastStatusChangedBy = input.ActorID

	history := &models.StatusHistory{
		FromStatus: fromStatus,
		ToStatus:   input.NewStatus,
		ChangedBy:  input.ActorID,
		ChangedAt:  now,
		Reason:     input.Reason,
		Comments:   input.Comments,
	}

	if err := s.taskRepo.UpdateStatusWithHistory(task, history); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}

	s.dispatch(ctx, events.TaskEvent{
		Type:         events.EventStatusChange,
		TaskID:       task.ID,
		TaskTitle:    task.Title,
		FromStatus:   fromStatus,
		ToStatus:     task.Status,
		MovedBy:      input.ActorID,
		CustomerID:   task.CustomerID,
		ArtworkID:    task.ArtworkID,
		WorkflowType: task.WorkflowType,
		Reason:       input.Reason,
	})

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Transitions returns the statuses the task may move to next.
func (s *MovementService) Transitions(taskID uint64) ([]workflow.Status, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return workflow.TransitionsFrom(task.WorkflowType, task.Status), nil
}

// dispatch publishes an event best-effort. The authoritative state change has
// already been committed, so a dispatch failure is logged and swallowed.
func (s *MovementService) dispatch(ctx context.Context, event events.TaskEvent) {
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		s.logger.Warn("failed to dispatch task event",
			"event_type", event.Type,
			"task_id", event.TaskID,
			"error", err,
		)
	}
}
