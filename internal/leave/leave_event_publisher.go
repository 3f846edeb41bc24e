package leave

import (
	"context"

	"leave-tracker/internal/events"
)

// EventPublisher receives lifecycle events after a write succeeds. Publish
// failures are logged by the service and never fail the request.
//
//go:generate mockgen -source=leave_event_publisher.go -destination=mock/leave_event_publisher_mock.go -package=mock
type EventPublisher interface {
	PublishLeaveEvent(ctx context.Context, event events.LeaveEvent) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher { return noopEventPublisher{} }

func (noopEventPublisher) PublishLeaveEvent(context.Context, events.LeaveEvent) error {
	return nil
}
