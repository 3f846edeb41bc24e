package producer

import (
	"context"
	"encoding/json"

	"leave-tracker/internal/events"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is satisfied by *kafkago.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// LeaveEventPublisher implements leave.EventPublisher on top of a writer
// created without a default topic.
type LeaveEventPublisher struct {
	writer MessageWriter
}

func NewLeaveEventPublisher(writer MessageWriter) *LeaveEventPublisher {
	return &LeaveEventPublisher{writer: writer}
}

func (p *LeaveEventPublisher) PublishLeaveEvent(ctx context.Context, event events.LeaveEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return publishEvent(ctx, p.writer, events.LeaveLifecycleTopic, event, payload)
}

func publishEvent(ctx context.Context, writer MessageWriter, topic string, event events.LeaveEvent, payload []byte) error {
	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(event.Key()),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
