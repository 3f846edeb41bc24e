package events

import "time"

const LeaveLifecycleTopic = "leave.lifecycle.v1"

const (
	LeaveApplied       = "leave_applied"
	LeaveStatusChanged = "leave_status_changed"
	LeaveDeleted       = "leave_deleted"
	LeavesCleared      = "leaves_cleared"
)

type LeaveEvent struct {
	EventType    string    `json:"event_type"`
	LeaveID      string    `json:"leave_id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Status       string    `json:"status,omitempty"`
	Dates        []string  `json:"dates,omitempty"`
	DeletedCount int64     `json:"deleted_count,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Key partitions events by leave so consumers see one leave's history in order.
func (e LeaveEvent) Key() string {
	if e.LeaveID != "" {
		return e.LeaveID
	}
	return e.EventType
}
