package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"creative-editor/internal/broker"
	"creative-editor/internal/domain"

	"github.com/wb-go/wbf/retry"
)

// EventPublisher sends EditAppliedEvents keyed by asset id, so all versions
// of one asset land on the same partition in order.
type EventPublisher struct {
	producer broker.Producer
	retries  retry.Strategy
}

func NewEventPublisher(producer broker.Producer, retries retry.Strategy) *EventPublisher {
	return &EventPublisher{producer: producer, retries: retries}
}

func (p *EventPublisher) PublishEditApplied(ctx context.Context, event domain.EditAppliedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.producer.Send(ctx, p.retries, []byte(event.AssetID), value); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	return nil
}

// DecodeEditApplied parses a consumed EditAppliedEvent.
func DecodeEditApplied(msg *broker.Message) (domain.EditAppliedEvent, error) {
	var event domain.EditAppliedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return domain.EditAppliedEvent{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.AssetID == "" || event.AssetURL == "" {
		return domain.EditAppliedEvent{}, fmt.Errorf("event %s is missing asset fields", event.ID)
	}
	return event, nil
}
