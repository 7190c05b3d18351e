package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/identity"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id int64) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id int64) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingCode(
	ctx context.Context,
	code kernel.TrackingCode,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, code)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) ListByCustomerEmail(ctx context.Context, email string) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, email)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) List(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockAddressResolver struct{ mock.Mock }

func (m *MockAddressResolver) Resolve(ctx context.Context, postalCode string) (kernel.Address, error) {
	args := m.Called(ctx, postalCode)
	return args.Get(0).(kernel.Address), args.Error(1)
}

type MockDistanceResolver struct{ mock.Mock }

func (m *MockDistanceResolver) Distance(ctx context.Context, origin, destination string) (float64, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(float64), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyCreated(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockNotifier) NotifyStatusChanged(ctx context.Context, s *shipment.Shipment, entry shipment.StatusEntry) error {
	args := m.Called(ctx, s, entry)
	return args.Error(0)
}

type MockTrackingCodeGenerator struct{ mock.Mock }

func (m *MockTrackingCodeGenerator) Generate() (kernel.TrackingCode, error) {
	args := m.Called()
	return args.Get(0).(kernel.TrackingCode), args.Error(1)
}

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() ports.Clock {
	return ports.ClockFunc(func() time.Time { return fixedNow })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminCaller(t *testing.T) identity.Caller {
	t.Helper()
	c, err := identity.NewCaller("1", "ops@mikuexpress.com", identity.RoleAdmin)
	require.NoError(t, err)
	return c
}

func customerCaller(t *testing.T) identity.Caller {
	t.Helper()
	c, err := identity.NewCaller("2", "ana@example.com", identity.RoleCustomer)
	require.NoError(t, err)
	return c
}

func mustTrackingCode(t *testing.T, value string) kernel.TrackingCode {
	t.Helper()
	code, err := kernel.NewTrackingCode(value)
	require.NoError(t, err)
	return code
}

func mustAddress(t *testing.T, postalCode, street, locality, region string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(kernel.AddressParams{
		PostalCode: postalCode,
		Street:     street,
		District:   "Centro",
		Locality:   locality,
		Region:     region,
	})
	require.NoError(t, err)
	return addr
}

func persistedShipment(t *testing.T, id int64) *shipment.Shipment {
	t.Helper()
	price, err := kernel.NewMoney(decimalFromString(t, "236.00"))
	require.NoError(t, err)
	initial, err := shipment.RestoreStatusEntry(10, shipment.StatusCreated,
		"São Paulo, SP, BR", "Rio de Janeiro, RJ, BR", fixedNow.Add(-time.Hour))
	require.NoError(t, err)

	s, err := shipment.RestoreShipment(id, shipment.Params{
		TrackingCode:  mustTrackingCode(t, "MIKUA4B9C2D8BR"),
		Source:        "Avenida Paulista, - Centro, São Paulo - SP",
		Destination:   "Rua da Assembleia, - Centro, Rio de Janeiro - RJ",
		DistanceKm:    decimalFromString(t, "430"),
		WeightKg:      decimalFromString(t, "2"),
		Price:         price,
		CustomerEmail: "ana@example.com",
		CustomerName:  "Ana",
		CreatedAt:     fixedNow.Add(-time.Hour),
	}, []shipment.StatusEntry{initial})
	require.NoError(t, err)
	return s
}

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}
