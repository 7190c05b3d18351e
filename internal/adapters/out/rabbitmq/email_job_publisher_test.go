package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipping/internal/adapters/out/rabbitmq"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
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
		DistanceKm:    decimal.NewFromInt(430),
		WeightKg:      decimal.NewFromInt(2),
		Price:         price,
		CustomerEmail: "ana@example.com",
		CustomerName:  "Ana <Souza>",
		CreatedAt:     createdAt,
	}, []shipment.StatusEntry{initial})
	require.NoError(t, err)
	return s
}

func decodeJob(t *testing.T, msg amqp.Publishing) rabbitmq.EmailJob {
	t.Helper()
	var job rabbitmq.EmailJob
	require.NoError(t, json.Unmarshal(msg.Body, &job))
	return job
}

func TestEmailJobPublisher_NotifyCreated(t *testing.T) {
	pub := new(MockPublisher)
	var sent amqp.Publishing
	pub.On("PublishWithContext", mock.Anything, "", "emails", false, false, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil).Once()

	p, err := rabbitmq.NewEmailJobPublisher(pub, "emails")
	require.NoError(t, err)

	require.NoError(t, p.NotifyCreated(t.Context(), testShipment(t)))
	pub.AssertExpectations(t)

	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, rabbitmq.JobTypeShipmentCreated, sent.Type)

	job := decodeJob(t, sent)
	assert.Equal(t, sent.MessageId, job.ID)
	assert.Equal(t, "ana@example.com", job.To)
	assert.Equal(t, "Miku Express: Pedido Criado!", job.Subject)
	assert.Contains(t, job.HTMLBody, "MIKUA4B9C2D8BR")
	assert.Contains(t, job.HTMLBody, "R$ 236.00")
	assert.Contains(t, job.HTMLBody, "Ana &lt;Souza&gt;", "customer data is escaped")
}

func TestEmailJobPublisher_NotifyStatusChanged(t *testing.T) {
	pub := new(MockPublisher)
	var sent amqp.Publishing
	pub.On("PublishWithContext", mock.Anything, "", "emails", false, false, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil).Once()

	p, err := rabbitmq.NewEmailJobPublisher(pub, "emails")
	require.NoError(t, err)

	s := testShipment(t)
	entry, err := s.AppendStatus("Saiu para entrega", "Rio de Janeiro, RJ, BR", "", createdAt.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, p.NotifyStatusChanged(t.Context(), s, entry))

	job := decodeJob(t, sent)
	assert.Equal(t, rabbitmq.JobTypeStatusChanged, job.Type)
	assert.Equal(t, "Miku Express: Atualização do Pedido MIKUA4B9C2D8BR", job.Subject)
	assert.Contains(t, job.HTMLBody, "Saiu para entrega")
	assert.Contains(t, job.HTMLBody, "Localização atual: Rio de Janeiro, RJ, BR")
	assert.NotContains(t, job.HTMLBody, "Próximo destino")
	assert.Contains(t, job.HTMLBody, "10/03/2025 13:00 UTC")
}

func TestEmailJobPublisher_PublishError(t *testing.T) {
	errChannel := errors.New("channel closed")
	pub := new(MockPublisher)
	pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errChannel)

	p, err := rabbitmq.NewEmailJobPublisher(pub, "emails")
	require.NoError(t, err)

	assert.ErrorIs(t, p.NotifyCreated(t.Context(), testShipment(t)), errChannel)
}
