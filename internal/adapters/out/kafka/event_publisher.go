// Package kafka publishes shipment events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	skafka "github.com/segmentio/kafka-go"

	"shipping/internal/core/domain/model/shipment"
)

const (
	EventShipmentCreated       = "shipment.created"
	EventShipmentStatusChanged = "shipment.status_changed"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Event is the message value. Messages are keyed by tracking code so one shipment's events
// stay on one partition, in order.
type Event struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	OccurredAt   time.Time     `json:"occurredAt"`
	ShipmentID   int64         `json:"shipmentId"`
	TrackingCode string        `json:"trackingCode"`
	Customer     EventCustomer `json:"customer"`
	Source       string        `json:"source"`
	Destination  string        `json:"destination"`
	DistanceKm   string        `json:"distanceKm"`
	WeightKg     string        `json:"weightKg"`
	Price        string        `json:"price"`
	Status       EventStatus   `json:"status"`
}

type EventCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type EventStatus struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	Source      string    `json:"source,omitempty"`
	Destination string    `json:"destination,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// EventPublisher implements ports.NotificationPort by writing JSON events.
type EventPublisher struct {
	writer Writer
	newID  func() string
}

func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return NewEventPublisherWithWriter(&skafka.Writer{
		Addr:                   skafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		RequiredAcks:           skafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

// NewEventPublisherWithWriter allows injecting a test writer.
func NewEventPublisherWithWriter(w Writer) *EventPublisher {
	return &EventPublisher{writer: w, newID: uuid.NewString}
}

func (p *EventPublisher) NotifyCreated(ctx context.Context, s *shipment.Shipment) error {
	return p.publish(ctx, newEvent(EventShipmentCreated, s, s.LatestStatus()))
}

func (p *EventPublisher) NotifyStatusChanged(ctx context.Context, s *shipment.Shipment, entry shipment.StatusEntry) error {
	return p.publish(ctx, newEvent(EventShipmentStatusChanged, s, entry))
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func (p *EventPublisher) publish(ctx context.Context, event Event) error {
	event.ID = p.newID()

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := skafka.Message{
		Key:   []byte(event.TrackingCode),
		Value: value,
		Headers: []skafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", event.Type, err)
	}
	return nil
}

func newEvent(eventType string, s *shipment.Shipment, entry shipment.StatusEntry) Event {
	return Event{
		Type:         eventType,
		OccurredAt:   entry.OccurredAt(),
		ShipmentID:   s.ID(),
		TrackingCode: s.TrackingCode().String(),
		Customer: EventCustomer{
			Email: s.CustomerEmail(),
			Name:  s.CustomerName(),
		},
		Source:      s.Source(),
		Destination: s.Destination(),
		DistanceKm:  s.DistanceKm().String(),
		WeightKg:    s.WeightKg().String(),
		Price:       s.Price().String(),
		Status: EventStatus{
			ID:          entry.ID(),
			Status:      entry.Status(),
			Source:      entry.Source(),
			Destination: entry.Destination(),
			OccurredAt:  entry.OccurredAt(),
		},
	}
}
