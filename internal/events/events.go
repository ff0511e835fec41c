// Package events carries task lifecycle events between the workflow services
// and their subscribers (notification fan-out, cache invalidation). Dispatch
// is fire-and-forget: a failed dispatch never fails the operation that
// produced the event.
package events

import (
	"context"

	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

type EventType string

const (
	EventStatusChange               EventType = "status_change"
	EventBucketMovement             EventType = "bucket_movement"
	EventAssignment                 EventType = "assignment"
	EventCreated                    EventType = "created"
	EventMovedToSalesBucket         EventType = "moved_to_sales_bucket"
	EventMovedFromProcurementBucket EventType = "moved_from_procurement_bucket"
)

// TaskEvent is the payload published for every task movement. TaskID,
// TaskTitle and MovedBy are always set; the rest depends on the event type.
type TaskEvent struct {
	Type         EventType       `json:"type"`
	TaskID       uint64          `json:"task_id"`
	TaskTitle    string          `json:"task_title"`
	FromStatus   workflow.Status `json:"from_status,omitempty"`
	ToStatus     workflow.Status `json:"to_status,omitempty"`
	MovedBy      uint64          `json:"moved_by"`
	CustomerID   uint64          `json:"customer_id,omitempty"`
	ArtworkID    uint64          `json:"artwork_id,omitempty"`
	WorkflowType workflow.Type   `json:"workflow_type,omitempty"`
	AssigneeID   uint64          `json:"assignee_id,omitempty"`
	CycleCount   int             `json:"cycle_count,omitempty"`
	Reason       string          `json:"reason,omitempty"`

	// How long the task sat in the bucket, for moved_from_procurement_bucket.
	BucketResidencySeconds int64 `json:"bucket_residency_seconds,omitempty"`
}

// Dispatcher publishes task events. Services depend on this interface so
// tests can record dispatches without a running bus.
type Dispatcher interface {
	Dispatch(ctx context.Context, event TaskEvent) error
}

// Handler consumes a task event. Handlers run on the bus goroutine and must
// not block indefinitely.
type Handler func(ctx context.Context, event TaskEvent)
