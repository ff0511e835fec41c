package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gameplanhq/artwork-workflow-api/internal/dto"
	apierrors "github.com/gameplanhq/artwork-workflow-api/internal/errors"
	"github.com/gameplanhq/artwork-workflow-api/internal/middleware"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/services"
	"github.com/gameplanhq/artwork-workflow-api/internal/utils"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// TaskHandler coordinates task CRUD and movement HTTP handlers.
type TaskHandler struct {
	taskService     *services.TaskService
	movementService *services.MovementService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, movementService *services.MovementService) *TaskHandler {
	return &TaskHandler{
		taskService:     taskService,
		movementService: movementService,
	}
}

// ListTasks returns tasks matching the query filters
func (h *TaskHandler) ListTasks(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		SortBy:   c.DefaultQuery("sort_by", "modified"),
		SortDesc: c.DefaultQuery("sort_order", "desc") == "desc",
		Page:     params,
	}

	if v := c.Query("workflow_type"); v != "" {
		workflowType := workflow.Type(v)
		input.WorkflowType = &workflowType
	}
	if v := c.Query("status"); v != "" {
		status := workflow.Status(v)
		input.Status = &status
	}

	var parseErr error
	input.CustomerID, parseErr = optionalIDQuery(c, "customer_id", parseErr)
	input.ArtworkID, parseErr = optionalIDQuery(c, "artwork_id", parseErr)
	input.AssigneeID, parseErr = optionalIDQuery(c, "assignee_id", parseErr)
	if parseErr != nil {
		apierrors.BadRequest(c, parseErr.Error())
		return
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatusFilter) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// CreateTask creates a new task in its pipeline's initial status
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title        string  `json:"title" binding:"required,max=255"`
		Description  string  `json:"description"`
		WorkflowType string  `json:"workflow_type" binding:"required,workflowtype"`
		Priority     string  `json:"priority" binding:"omitempty,taskpriority"`
		ArtworkID    uint64  `json:"artwork_id" binding:"required"`
		CustomerID   uint64  `json:"customer_id" binding:"required"`
		AssigneeID   *uint64 `json:"assignee_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		WorkflowType: workflow.Type(req.WorkflowType),
		Priority:     models.Priority(req.Priority),
		ArtworkID:    req.ArtworkID,
		CustomerID:   req.CustomerID,
		CreatorID:    userID,
		AssigneeID:   req.AssigneeID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a single task with its relations and movement history
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// MoveTask changes a task's status through the movement engine
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type MoveTaskRequest struct {
		Status   string `json:"status" binding:"required"`
		Reason   string `json:"reason" binding:"max=255"`
		Comments string `json:"comments"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.movementService.MoveTask(c.Request.Context(), services.MoveTaskInput{
		TaskID:    taskID,
		NewStatus: workflow.Status(req.Status),
		ActorID:   userID,
		Reason:    req.Reason,
		Comments:  req.Comments,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GetTransitions returns the statuses a task may move to next
func (h *TaskHandler) GetTransitions(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	transitions, err := h.movementService.Transitions(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task_id":     taskID,
		"transitions": transitions,
	})
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func optionalIDQuery(c *gin.Context, name string, prev error) (*uint64, error) {
	if prev != nil {
		return nil, prev
	}
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.New("Invalid " + name)
	}
	return &id, nil
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.UnprocessableEntity(c, apierrors.ErrCodeInvalidTransition, err.Error())
	case errors.Is(err, services.ErrInvalidBucketTransition):
		apierrors.UnprocessableEntity(c, apierrors.ErrCodeInvalidBucketTransition, err.Error())
	case errors.Is(err, workflow.ErrUnknownWorkflowType):
		apierrors.RespondWithError(c, http.StatusBadRequest,
			apierrors.NewAPIError(apierrors.ErrCodeUnknownWorkflowType, err.Error()))
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrArtworkRequired),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
