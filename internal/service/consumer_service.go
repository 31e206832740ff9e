package service

import (
	"context"
	"encoding/json"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder relays events to an external bus (NATS).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	statsService IStatsService
	forwarder    EventForwarder
	logger       logger.ILogger
}

// NewConsumerService builds the activity consumer. forwarder may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	statsService IStatsService,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		statsService: statsService,
		forwarder:    forwarder,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Activity is best effort, every message is acked
	defer msg.Ack()

	var event events.ActivityEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal activity", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.statsService.Record(event)

	if cs.forwarder == nil {
		return
	}
	if err := cs.forwarder.Publish(ctx, event); err != nil {
		cs.logger.Warn("CONSUMER", "Failed to forward activity to NATS", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}
