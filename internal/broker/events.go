package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"pos-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishSaleCompleted publishes a SaleCompleted event
func (ep *EventPublisher) PublishSaleCompleted(ctx context.Context, event *models.SaleCompletedEvent) error {
	key := fmt.Sprintf("sale-%d", event.SaleID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishSaleCancelled publishes a SaleCancelled event
func (ep *EventPublisher) PublishSaleCancelled(ctx context.Context, event *models.SaleCancelledEvent) error {
	key := fmt.Sprintf("sale-%d", event.SaleID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishStockLow publishes a StockLow event
func (ep *EventPublisher) PublishStockLow(ctx context.Context, event *models.StockLowEvent) error {
	key := fmt.Sprintf("product-%d", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming sale events to registered handlers
type EventHandler struct {
	onSaleCompleted func(context.Context, *models.SaleCompletedEvent) error
	onSaleCancelled func(context.Context, *models.SaleCancelledEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnSaleCompleted registers a handler for SaleCompleted events
func (eh *EventHandler) OnSaleCompleted(handler func(context.Context, *models.SaleCompletedEvent) error) {
	eh.onSaleCompleted = handler
}

// OnSaleCancelled registers a handler for SaleCancelled events
func (eh *EventHandler) OnSaleCancelled(handler func(context.Context, *models.SaleCancelledEvent) error) {
	eh.onSaleCancelled = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeSaleCompleted:
		if eh.onSaleCompleted != nil {
			var event models.SaleCompletedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal SaleCompleted event: %w", err)
			}
			return eh.onSaleCompleted(ctx, &event)
		}

	case models.EventTypeSaleCancelled:
		if eh.onSaleCancelled != nil {
			var event models.SaleCancelledEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal SaleCancelled event: %w", err)
			}
			return eh.onSaleCancelled(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
