// Package workflow defines the status sets and transition rules for the two
// artwork task pipelines. It holds no state; every other component queries it
// before touching a task's status.
package workflow

import "errors"

var ErrUnknownWorkflowType = errors.New("unknown workflow type")

// Type identifies which pipeline a task belongs to.
type Type string

const (
	TypeSales       Type = "Sales Cycle"
	TypeProcurement Type = "Procurement Cycle"
)

// Status is a pipeline-scoped status token.
type Status string

// Sales Cycle statuses.
const (
	StatusDraft         Status = "Draft"
	StatusQualityReview Status = "Quality Review"
	StatusRework        Status = "Rework"
	StatusCompleted     Status = "Completed"
)

// Procurement Cycle statuses.
const (
	StatusProcurementDraft  Status = "Procurement Draft"
	StatusProcurementReview Status = "Procurement Review"
	StatusProcurementRework Status = "Procurement Rework"
	StatusFinalApproved     Status = "Final Approved"
)

// StatusBucket is the holding state for completed Sales tasks awaiting
// Procurement pickup. It sits outside both pipelines' normal order and is
// only ever carried by Procurement Cycle tasks.
const StatusBucket Status = "Bucket"

var salesStatuses = []Status{
	StatusDraft,
	StatusQualityReview,
	StatusRework,
	StatusCompleted,
}

var procurementStatuses = []Status{
	StatusProcurementDraft,
	StatusProcurementReview,
	StatusProcurementRework,
	StatusFinalApproved,
}

// Transition tables per pipeline. Terminal statuses have no entry.
var salesTransitions = map[Status][]Status{
	StatusDraft:         {StatusQualityReview},
	StatusQualityReview: {StatusCompleted, StatusRework},
	StatusRework:        {StatusQualityReview, StatusDraft, StatusCompleted},
}

var procurementTransitions = map[Status][]Status{
	StatusBucket:            {StatusProcurementDraft, StatusProcurementReview},
	StatusProcurementDraft:  {StatusProcurementReview},
	StatusProcurementReview: {StatusFinalApproved, StatusProcurementRework},
	StatusProcurementRework: {StatusProcurementReview, StatusFinalApproved},
}

// StatusesFor returns the ordered status set of a pipeline. Bucket is not part
// of either pipeline's progression and is never included.
func StatusesFor(workflowType Type) ([]Status, error) {
	switch workflowType {
	case TypeSales:
		return salesStatuses, nil
	case TypeProcurement:
		return procurementStatuses, nil
	default:
		return nil, ErrUnknownWorkflowType
	}
}

// InitialStatusFor returns the status new tasks start in.
func InitialStatusFor(workflowType Type) (Status, error) {
	statuses, err := StatusesFor(workflowType)
	if err != nil {
		return "", err
	}
	return statuses[0], nil
}

// IsValidStatusForWorkflow reports whether a status may be held by a task of
// the given workflow type. This is a pure membership test, looser than
// IsValidTransition; use it to validate inputs such as filter values. Bucket
// counts as a valid Procurement-side status.
func IsValidStatusForWorkflow(status Status, workflowType Type) bool {
	statuses, err := StatusesFor(workflowType)
	if err != nil {
		return false
	}
	if workflowType == TypeProcurement && status == StatusBucket {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidTransition reports whether a task of the given workflow type may move
// from one status to another. Moving to the current status is always allowed
// so that re-saves stay idempotent.
func IsValidTransition(workflowType Type, from, to Status) bool {
	if !IsValidStatusForWorkflow(to, workflowType) {
		return false
	}
	if from == to {
		return true
	}

	var transitions map[Status][]Status
	switch workflowType {
	case TypeSales:
		transitions = salesTransitions
	case TypeProcurement:
		transitions = procurementTransitions
	default:
		return false
	}

	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionsFrom returns the statuses reachable from the given status,
// excluding the no-op self transition. The result is empty for terminal
// statuses and unknown workflow types.
func TransitionsFrom(workflowType Type, from Status) []Status {
	switch workflowType {
	case TypeSales:
		return append([]Status(nil), salesTransitions[from]...)
	case TypeProcurement:
		return append([]Status(nil), procurementTransitions[from]...)
	default:
		return nil
	}
}

// IsTerminal reports whether a status ends its pipeline's progression.
func IsTerminal(workflowType Type, status Status) bool {
	return IsValidStatusForWorkflow(status, workflowType) &&
		len(TransitionsFrom(workflowType, status)) == 0
}
