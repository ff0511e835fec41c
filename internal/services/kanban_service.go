package services

import (
	"context"
	"fmt"

	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/repository"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// KanbanService builds board-shaped views of the task set.
type KanbanService struct {
	taskRepo repository.TaskRepository
}

// NewKanbanService creates a new KanbanService
func NewKanbanService(taskRepo repository.TaskRepository) *KanbanService {
	return &KanbanService{taskRepo: taskRepo}
}

// KanbanColumn is one ordered column of the board.
type KanbanColumn struct {
	Status workflow.Status      `json:"status"`
	Tasks  []models.ArtworkTask `json:"tasks"`
	Count  int                  `json:"count"`
}

// KanbanBoard groups tasks by status across both pipelines. Column order
// follows each pipeline's progression, with Bucket sitting between the sales
// and procurement columns.
type KanbanBoard struct {
	Columns    []KanbanColumn `json:"columns"`
	TotalTasks int64          `json:"total_tasks"`
}

// KanbanFilter narrows the board to a customer, artwork or assignee.
type KanbanFilter struct {
	CustomerID *uint64
	ArtworkID  *uint64
	AssigneeID *uint64
}

// Board loads every non-deleted task and distributes them into status
// columns. Every column appears even when empty so clients render a stable
// board shape.
func (s *KanbanService) Board(ctx context.Context, filter KanbanFilter) (*KanbanBoard, error) {
	statuses := boardStatuses()

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		CustomerID: filter.CustomerID,
		ArtworkID:  filter.ArtworkID,
		AssigneeID: filter.AssigneeID,
		SortBy:     "last_status_change",
		SortDesc:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load kanban tasks: %w", err)
	}

	grouped := make(map[workflow.Status][]models.ArtworkTask, len(statuses))
	for _, status := range statuses {
		grouped[status] = []models.ArtworkTask{}
	}
	for _, task := range tasks {
		grouped[task.Status] = append(grouped[task.Status], task)
	}

	board := &KanbanBoard{
		Columns:    make([]KanbanColumn, 0, len(statuses)),
		TotalTasks: total,
	}
	for _, status := range statuses {
		board.Columns = append(board.Columns, KanbanColumn{
			Status: status,
			Tasks:  grouped[status],
			Count:  len(grouped[status]),
		})
	}

	return board, nil
}

func boardStatuses() []workflow.Status {
	sales, _ := workflow.StatusesFor(workflow.TypeSales)
	procurement, _ := workflow.StatusesFor(workflow.TypeProcurement)

	statuses := make([]workflow.Status, 0, len(sales)+len(procurement)+1)
	statuses = append(statuses, sales...)
	statuses = append(statuses, workflow.StatusBucket)
	statuses = append(statuses, procurement...)
	return statuses
}
