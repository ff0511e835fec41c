package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/gameplanhq/artwork-workflow-api/internal/errors"
	"github.com/gameplanhq/artwork-workflow-api/internal/services"
)

// KanbanHandler serves the board view.
type KanbanHandler struct {
	kanbanService *services.KanbanService
}

// NewKanbanHandler creates a new KanbanHandler.
func NewKanbanHandler(kanbanService *services.KanbanService) *KanbanHandler {
	return &KanbanHandler{
		kanbanService: kanbanService,
	}
}

// GetBoard returns tasks grouped into status columns across both pipelines
func (h *KanbanHandler) GetBoard(c *gin.Context) {
	var filter services.KanbanFilter
	var parseErr error
	filter.CustomerID, parseErr = optionalIDQuery(c, "customer_id", parseErr)
	filter.ArtworkID, parseErr = optionalIDQuery(c, "artwork_id", parseErr)
	filter.AssigneeID, parseErr = optionalIDQuery(c, "assignee_id", parseErr)
	if parseErr != nil {
		apierrors.BadRequest(c, parseErr.Error())
		return
	}

	board, err := h.kanbanService.Board(c.Request.Context(), filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to build kanban board")
		return
	}

	c.JSON(http.StatusOK, board)
}
