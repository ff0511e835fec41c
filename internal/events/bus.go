package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	topicPrefix          = "artwork.tasks."
	metadataKeyEventType = "event_type"
)

// Bus is an in-process realtime bus built on watermill's gochannel pub/sub.
// One topic per event type, so subscribers only see what they asked for.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 256,
		},
		watermill.NewSlogLogger(logger),
	)

	return &Bus{
		pubSub: pubSub,
		logger: logger,
	}
}

// Dispatch publishes a task event to its type's topic.
func (b *Bus) Dispatch(ctx context.Context, event TaskEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set(metadataKeyEventType, string(event.Type))
	msg.SetContext(ctx)

	return b.pubSub.Publish(topic(event.Type), msg)
}

// Subscribe registers a handler for one event type and returns an unsubscribe
// function. The handler runs on a dedicated goroutine until unsubscribed or
// the parent context is cancelled.
func (b *Bus) Subscribe(ctx context.Context, eventType EventType, handler Handler) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	messages, err := b.pubSub.Subscribe(subCtx, topic(eventType))
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		for msg := range messages {
			var event TaskEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.logger.Warn("dropping malformed task event",
					"topic", topic(eventType), "error", err)
				msg.Ack()
				continue
			}

			handler(subCtx, event)
			msg.Ack()
		}
	}()

	return cancel, nil
}

// Close shuts the bus down and terminates all subscriptions.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}

func topic(eventType EventType) string {
	return topicPrefix + string(eventType)
}
