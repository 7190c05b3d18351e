package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	skafka "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping/internal/adapters/out/kafka"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// fakeWriter records the messages written.
type fakeWriter struct {
	msgs   []skafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var createdAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	code, err := kernel.NewTrackingCode("MIKUA4B9C2D8BR")
	require.NoError(t, err)
	price, err := kernel.NewMoney(decimal.RequireFromString("236"))
	require.NoError(t, err)
	initial, err := shipment.RestoreStatusEntry(10, shipment.StatusCreated, "São Paulo, SP, BR", "Rio de Janeiro, RJ, BR", createdAt)
	require.NoError(t, err)

	s, err := shipment.RestoreShipment(7, shipment.Params{
		TrackingCode:  code,
		Source:        "Avenida Paulista,  - Bela Vista, São Paulo - SP",
		Destination:   "Rua da Assembleia,  - Centro, Rio de Janeiro - RJ",
		DistanceKm:    decimal.RequireFromString("430.125"),
		WeightKg:      decimal.NewFromInt(2),
		Price:         price,
		CustomerEmail: "ana@example.com",
		CustomerName:  "Ana",
		CreatedAt:     createdAt,
	}, []shipment.StatusEntry{initial})
	require.NoError(t, err)
	return s
}

func TestEventPublisher_NotifyCreated(t *testing.T) {
	fw := &fakeWriter{}
	p := kafka.NewEventPublisherWithWriter(fw)

	require.NoError(t, p.NotifyCreated(t.Context(), testShipment(t)))
	require.Len(t, fw.msgs, 1)

	msg := fw.msgs[0]
	assert.Equal(t, "MIKUA4B9C2D8BR", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, kafka.EventShipmentCreated, string(msg.Headers[0].Value))

	var event kafka.Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.EventShipmentCreated, event.Type)
	assert.Equal(t, int64(7), event.ShipmentID)
	assert.Equal(t, "ana@example.com", event.Customer.Email)
	assert.Equal(t, "236.00", event.Price)
	assert.Equal(t, "430.125", event.DistanceKm)
	assert.Equal(t, shipment.StatusCreated, event.Status.Status)
	assert.True(t, createdAt.Equal(event.OccurredAt))
}

func TestEventPublisher_NotifyStatusChanged(t *testing.T) {
	fw := &fakeWriter{}
	p := kafka.NewEventPublisherWithWriter(fw)
	s := testShipment(t)

	entry, err := s.AppendStatus("In transit", "Resende, RJ, BR", "", createdAt.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, p.NotifyStatusChanged(t.Context(), s, entry))
	require.Len(t, fw.msgs, 1)

	var event kafka.Event
	require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &event))
	assert.Equal(t, kafka.EventShipmentStatusChanged, event.Type)
	assert.Equal(t, "In transit", event.Status.Status)
	assert.Equal(t, "Resende, RJ, BR", event.Status.Source)
	assert.Empty(t, event.Status.Destination)
}

func TestEventPublisher_WriteError(t *testing.T) {
	errBroker := errors.New("broker unavailable")
	fw := &fakeWriter{err: errBroker}
	p := kafka.NewEventPublisherWithWriter(fw)

	err := p.NotifyCreated(t.Context(), testShipment(t))
	require.ErrorIs(t, err, errBroker)

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}
