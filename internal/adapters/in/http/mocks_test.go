package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/shipment"
)

type MockCreateShipment struct{ mock.Mock }

func (m *MockCreateShipment) Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (*shipment.Shipment, error) {
	args := m.Called(ctx, cmd)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockAppendStatus struct{ mock.Mock }

func (m *MockAppendStatus) Handle(
	ctx context.Context,
	cmd commands.AppendStatusUpdateCommand,
) (shipment.StatusEntry, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(shipment.StatusEntry), args.Error(1)
}

type MockDeleteShipment struct{ mock.Mock }

func (m *MockDeleteShipment) Handle(ctx context.Context, cmd commands.DeleteShipmentCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockGetByID struct{ mock.Mock }

func (m *MockGetByID) Handle(
	ctx context.Context,
	query queries.GetShipmentByIDQuery,
) (queries.ShipmentResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ShipmentResponse), args.Error(1)
}

type MockGetByTrackingCode struct{ mock.Mock }

func (m *MockGetByTrackingCode) Handle(
	ctx context.Context,
	query queries.GetShipmentByTrackingCodeQuery,
) (queries.ShipmentResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ShipmentResponse), args.Error(1)
}

type MockListByCustomer struct{ mock.Mock }

func (m *MockListByCustomer) Handle(
	ctx context.Context,
	query queries.ListShipmentsByCustomerEmailQuery,
) ([]queries.ShipmentResponse, error) {
	args := m.Called(ctx, query)
	list, _ := args.Get(0).([]queries.ShipmentResponse)
	return list, args.Error(1)
}

type MockListAll struct{ mock.Mock }

func (m *MockListAll) Handle(
	ctx context.Context,
	query queries.ListAllShipmentsQuery,
) ([]queries.ShipmentResponse, error) {
	args := m.Called(ctx, query)
	list, _ := args.Get(0).([]queries.ShipmentResponse)
	return list, args.Error(1)
}
