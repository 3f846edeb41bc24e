package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"leave-tracker/internal/bootstrap"
	"leave-tracker/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveLifecycle turns leave lifecycle events into audit entries
// until ctx is cancelled. Undecodable messages are committed and skipped.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventType == "" {
			log.Error("decode leave lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		audit.Log(ctx, toAuditLog(event))

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("leave lifecycle event audited",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
		)
	}
}

func toAuditLog(e events.LeaveEvent) bootstrap.AuditLog {
	meta := map[string]any{
		"occurred_at": e.OccurredAt,
	}
	if e.LeaveID != "" {
		meta["leave_id"] = e.LeaveID
	}
	if e.UserID != "" {
		meta["user_id"] = e.UserID
	}
	if e.Status != "" {
		meta["status"] = e.Status
	}
	if len(e.Dates) > 0 {
		meta["dates"] = e.Dates
	}

	var message string
	switch e.EventType {
	case events.LeaveApplied:
		message = "leave " + e.LeaveID + " applied for " + strings.Join(e.Dates, ", ")
	case events.LeaveStatusChanged:
		message = "leave " + e.LeaveID + " set to " + e.Status
	case events.LeaveDeleted:
		message = "leave " + e.LeaveID + " deleted"
	case events.LeavesCleared:
		meta["deleted_count"] = e.DeletedCount
		message = "all leaves cleared"
	default:
		message = "unknown leave event"
	}

	return bootstrap.AuditLog{
		Action:  strings.ToUpper(e.EventType),
		Message: message,
		Meta:    meta,
	}
}
