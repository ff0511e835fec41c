package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gameplanhq/artwork-workflow-api/internal/dto"
	apierrors "github.com/gameplanhq/artwork-workflow-api/internal/errors"
	"github.com/gameplanhq/artwork-workflow-api/internal/middleware"
	"github.com/gameplanhq/artwork-workflow-api/internal/services"
	"github.com/gameplanhq/artwork-workflow-api/internal/utils"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// BucketHandler coordinates the procurement bucket HTTP handlers.
type BucketHandler struct {
	bucketService *services.BucketService
}

// NewBucketHandler creates a new BucketHandler.
func NewBucketHandler(bucketService *services.BucketService) *BucketHandler {
	return &BucketHandler{
		bucketService: bucketService,
	}
}

// ListBucketTasks returns the tasks currently waiting in the bucket
func (h *BucketHandler) ListBucketTasks(c *gin.Context) {
	var parseErr error
	customerID, parseErr := optionalIDQuery(c, "customer_id", parseErr)
	if parseErr != nil {
		apierrors.BadRequest(c, parseErr.Error())
		return
	}

	tasks, err := h.bucketService.ListBucketTasks(
		c.Request.Context(),
		customerID,
		c.DefaultQuery("sort_by", "last_status_change"),
		c.DefaultQuery("sort_order", "asc") == "desc",
	)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch bucket tasks")
		return
	}

	items := make([]dto.TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToTaskListItemDTO(task)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": items,
		"total": len(items),
	})
}

// ListCompletedSales returns completed sales tasks ready for procurement
// pickup, annotated with their handoff state
func (h *BucketHandler) ListCompletedSales(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListCompletedSalesInput{
		TitleQuery: c.Query("q"),
		SortBy:     c.DefaultQuery("sort_by", "modified"),
		SortDesc:   c.DefaultQuery("sort_order", "desc") == "desc",
		Page:       params,
	}

	var parseErr error
	input.CustomerID, parseErr = optionalIDQuery(c, "customer_id", parseErr)
	input.ArtworkID, parseErr = optionalIDQuery(c, "artwork_id", parseErr)
	if parseErr != nil {
		apierrors.BadRequest(c, parseErr.Error())
		return
	}

	result, err := h.bucketService.ListCompletedSales(c.Request.Context(), input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch completed sales tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":       result.Tasks,
		"total_count": result.TotalCount,
		"has_more":    result.HasMore,
		"page":        params.Page,
		"page_size":   params.Limit,
	})
}

// MoveToBucket hands a completed sales task off into the procurement bucket
func (h *BucketHandler) MoveToBucket(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.bucketService.MoveCompletedSalesToBucket(c.Request.Context(), taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// MoveFromBucket releases a bucket task into the active procurement workflow
func (h *BucketHandler) MoveFromBucket(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type MoveFromBucketRequest struct {
		Status string `json:"status"`
	}

	var req MoveFromBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.bucketService.MoveFromBucket(c.Request.Context(), taskID, workflow.Status(req.Status), userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GetStats returns the bucket aggregates
func (h *BucketHandler) GetStats(c *gin.Context) {
	stats, err := h.bucketService.Stats(c.Request.Context())
	if err != nil {
		apierrors.InternalError(c, "Failed to compute bucket stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
