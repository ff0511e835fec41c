package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gameplanhq/artwork-workflow-api/internal/cache"
	"github.com/gameplanhq/artwork-workflow-api/internal/events"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/repository"
	"github.com/gameplanhq/artwork-workflow-api/internal/utils"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// Statuses that notify a role when a task lands on them. Completed and Final
// Approved fan out to every role because they mark pipeline handoffs.
var statusRecipients = map[workflow.Status][]models.Role{
	workflow.StatusQualityReview:     {models.RoleQuality},
	workflow.StatusRework:            {models.RoleSales},
	workflow.StatusCompleted:         {models.RoleSales, models.RoleQuality, models.RoleProcurement},
	workflow.StatusProcurementReview: {models.RoleProcurement},
	workflow.StatusProcurementRework: {models.RoleProcurement},
	workflow.StatusFinalApproved:     {models.RoleSales, models.RoleQuality, models.RoleProcurement},
}

// NotificationService turns task events into per-user inbox entries. It
// subscribes to the bus and keeps the unread counter cache coherent.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	unreadCache      cache.UnreadCache
	logger           *slog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository, unreadCache cache.UnreadCache, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		unreadCache:      unreadCache,
		logger:           logger,
	}
}

// Start subscribes the service to every task event type. Subscriptions live
// until ctx is cancelled or the bus closes.
func (s *NotificationService) Start(ctx context.Context, bus *events.Bus) error {
	eventTypes := []events.EventType{
		events.EventStatusChange,
		events.EventCreated,
		events.EventAssignment,
		events.EventMovedToSalesBucket,
		events.EventMovedFromProcurementBucket,
	}

	for _, eventType := range eventTypes {
		if _, err := bus.Subscribe(ctx, eventType, s.HandleEvent); err != nil {
			return fmt.Errorf("failed to subscribe to %s events: %w", eventType, err)
		}
	}

	return nil
}

// HandleEvent fans a task event out to its recipients. The event producer has
// already committed its write, so failures here are logged and absorbed.
func (s *NotificationService) HandleEvent(ctx context.Context, event events.TaskEvent) {
	recipients, message := s.resolveRecipients(event)
	if len(recipients) == 0 {
		return
	}

	for _, recipient := range recipients {
		// The actor already knows what they did.
		if recipient == event.MovedBy {
			continue
		}

		notification := &models.Notification{
			ToUserID:   recipient,
			FromUserID: event.MovedBy,
			EventType:  string(event.Type),
			Message:    message,
			TaskID:     event.TaskID,
		}

		if err := s.notificationRepo.Create(notification); err != nil {
			s.logger.Warn("failed to create notification",
				"event_type", event.Type,
				"task_id", event.TaskID,
				"to_user_id", recipient,
				"error", err,
			)
			continue
		}

		if err := s.unreadCache.Invalidate(ctx, recipient); err != nil {
			s.logger.Warn("failed to invalidate unread cache",
				"user_id", recipient, "error", err)
		}
	}
}

func (s *NotificationService) resolveRecipients(event events.TaskEvent) ([]uint64, string) {
	switch event.Type {
	case events.EventStatusChange:
		roles, ok := statusRecipients[event.ToStatus]
		if !ok {
			return nil, ""
		}
		message := fmt.Sprintf("Task %q moved from %s to %s", event.TaskTitle, event.FromStatus, event.ToStatus)
		return s.usersForRoles(roles), message

	case events.EventCreated:
		message := fmt.Sprintf("Task %q was created", event.TaskTitle)
		return s.usersForRoles([]models.Role{models.RoleQuality}), message

	case events.EventAssignment:
		if event.AssigneeID == 0 {
			return nil, ""
		}
		message := fmt.Sprintf("You were assigned to task %q", event.TaskTitle)
		return []uint64{event.AssigneeID}, message

	case events.EventMovedToSalesBucket:
		message := fmt.Sprintf("Task %q entered the procurement bucket (cycle %d)", event.TaskTitle, event.CycleCount)
		return s.usersForRoles([]models.Role{models.RoleProcurement}), message

	case events.EventMovedFromProcurementBucket:
		message := fmt.Sprintf("Task %q left the bucket for %s", event.TaskTitle, event.ToStatus)
		return s.usersForRoles([]models.Role{models.RoleProcurement}), message
	}

	return nil, ""
}

func (s *NotificationService) usersForRoles(roles []models.Role) []uint64 {
	users, err := s.userRepo.ListByRoles(roles)
	if err != nil {
		s.logger.Warn("failed to resolve notification recipients",
			"roles", roles, "error", err)
		return nil
	}

	ids := make([]uint64, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	return ids
}

// UnreadCount returns a user's unread notification count, served from cache
// when possible.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	if count, ok, err := s.unreadCache.Get(ctx, userID); err == nil && ok {
		return count, nil
	} else if err != nil {
		s.logger.Warn("unread cache read failed", "user_id", userID, "error", err)
	}

	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if err := s.unreadCache.Set(ctx, userID, count); err != nil {
		s.logger.Warn("unread cache write failed", "user_id", userID, "error", err)
	}

	return count, nil
}

// ListNotifications lists a user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uint64, page utils.PaginationParams) ([]models.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.ListByUser(userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkAllRead marks every notification of a user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) error {
	if err := s.notificationRepo.MarkAllRead(userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	if err := s.unreadCache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate unread cache", "user_id", userID, "error", err)
	}

	return nil
}
