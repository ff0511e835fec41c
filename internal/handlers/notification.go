package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gameplanhq/artwork-workflow-api/internal/dto"
	apierrors "github.com/gameplanhq/artwork-workflow-api/internal/errors"
	"github.com/gameplanhq/artwork-workflow-api/internal/middleware"
	"github.com/gameplanhq/artwork-workflow-api/internal/services"
	"github.com/gameplanhq/artwork-workflow-api/internal/utils"
)

// NotificationHandler serves the per-user notification inbox.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the current user's notifications, newest first
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationService.ListNotifications(c.Request.Context(), userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	unread, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to count unread notifications")
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationListResponse(notifications, params.Page, params.Limit, total, unread))
}

// GetUnreadCount returns the current user's unread notification count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to count unread notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkAllRead marks every notification of the current user as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		apierrors.InternalError(c, "Failed to mark notifications read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
