package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/identity"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

type MockShipmentReader struct{ mock.Mock }

func (m *MockShipmentReader) Get(ctx context.Context, id int64) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentReader) GetByTrackingCode(
	ctx context.Context,
	code kernel.TrackingCode,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, code)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentReader) ListByCustomerEmail(ctx context.Context, email string) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, email)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentReader) List(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

var createdAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newCaller(t *testing.T, email string, role identity.Role) identity.Caller {
	t.Helper()
	c, err := identity.NewCaller("acc-"+email, email, role)
	require.NoError(t, err)
	return c
}

func storedShipment(t *testing.T, id int64, code, email string) *shipment.Shipment {
	t.Helper()
	trackingCode, err := kernel.NewTrackingCode(code)
	require.NoError(t, err)
	price, err := kernel.NewMoney(decimal.RequireFromString("236.00"))
	require.NoError(t, err)
	first, err := shipment.RestoreStatusEntry(id*10, shipment.StatusCreated,
		"São Paulo, SP, BR", "Rio de Janeiro, RJ, BR", createdAt)
	require.NoError(t, err)
	second, err := shipment.RestoreStatusEntry(id*10+1, "In transit", "Resende, RJ, BR", "", createdAt.Add(time.Hour))
	require.NoError(t, err)

	s, err := shipment.RestoreShipment(id, shipment.Params{
		TrackingCode:  trackingCode,
		Source:        "Avenida Paulista,  - Bela Vista, São Paulo - SP",
		Destination:   "Rua da Assembleia,  - Centro, Rio de Janeiro - RJ",
		DistanceKm:    decimal.NewFromInt(430),
		WeightKg:      decimal.NewFromInt(2),
		Price:         price,
		CustomerEmail: email,
		CustomerName:  "Ana",
		CreatedAt:     createdAt,
	}, []shipment.StatusEntry{first, second})
	require.NoError(t, err)
	return s
}

func TestGetShipmentByTrackingCodeQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	stored := storedShipment(t, 1, "MIKUA4B9C2D8BR", "ana@example.com")

	t.Run("should return shipment with history", func(t *testing.T) {
		reader := new(MockShipmentReader)
		reader.On("GetByTrackingCode", ctx, stored.TrackingCode()).Return(stored, nil).Once()

		query, err := queries.NewGetShipmentByTrackingCodeQuery("mikua4b9c2d8br")
		require.NoError(t, err)

		got, err := queries.NewGetShipmentByTrackingCodeQueryHandler(reader).Handle(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "MIKUA4B9C2D8BR", got.TrackingCode)
		assert.Equal(t, "236", got.Price.String())
		require.Len(t, got.StatusHistory, 2)
		assert.Equal(t, shipment.StatusCreated, got.StatusHistory[0].Status)
		assert.Equal(t, "In transit", got.StatusHistory[1].Status)
		reader.AssertExpectations(t)
	})

	t.Run("should reject malformed code without lookup", func(t *testing.T) {
		_, err := queries.NewGetShipmentByTrackingCodeQuery("MIKU123BR")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should pass not found through", func(t *testing.T) {
		reader := new(MockShipmentReader)
		reader.On("GetByTrackingCode", ctx, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("trackingCode", "MIKU00000000BR")).Once()

		query, err := queries.NewGetShipmentByTrackingCodeQuery("MIKU00000000BR")
		require.NoError(t, err)

		_, err = queries.NewGetShipmentByTrackingCodeQueryHandler(reader).Handle(ctx, query)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGetShipmentByIDQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	stored := storedShipment(t, 1, "MIKUA4B9C2D8BR", "ana@example.com")

	tests := []struct {
		name    string
		caller  identity.Caller
		wantErr error
	}{
		{name: "admin reads any shipment", caller: newCaller(t, "ops@mikuexpress.com", identity.RoleAdmin)},
		{name: "owner reads own shipment", caller: newCaller(t, "ana@example.com", identity.RoleCustomer)},
		{name: "owner e-mail ignores case", caller: newCaller(t, "Ana@Example.COM", identity.RoleCustomer)},
		{
			name:    "other customer is forbidden",
			caller:  newCaller(t, "bruno@example.com", identity.RoleCustomer),
			wantErr: errs.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(MockShipmentReader)
			reader.On("Get", ctx, int64(1)).Return(stored, nil).Once()

			query, err := queries.NewGetShipmentByIDQuery(tt.caller, 1)
			require.NoError(t, err)

			got, err := queries.NewGetShipmentByIDQueryHandler(reader).Handle(ctx, query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), got.ID)
		})
	}

	t.Run("anonymous caller is forbidden", func(t *testing.T) {
		reader := new(MockShipmentReader)
		query, err := queries.NewGetShipmentByIDQuery(identity.Caller{}, 1)
		require.NoError(t, err)

		_, err = queries.NewGetShipmentByIDQueryHandler(reader).Handle(ctx, query)
		assert.ErrorIs(t, err, errs.ErrAccessDenied)
		reader.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("missing shipment is not found", func(t *testing.T) {
		reader := new(MockShipmentReader)
		reader.On("Get", ctx, int64(9)).Return(nil, errs.NewObjectNotFoundError("shipment", int64(9))).Once()
		query, err := queries.NewGetShipmentByIDQuery(newCaller(t, "ana@example.com", identity.RoleCustomer), 9)
		require.NoError(t, err)

		_, err = queries.NewGetShipmentByIDQueryHandler(reader).Handle(ctx, query)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestListShipmentsByCustomerEmailQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	customer := newCaller(t, "ana@example.com", identity.RoleCustomer)

	t.Run("should list own shipments", func(t *testing.T) {
		reader := new(MockShipmentReader)
		reader.On("ListByCustomerEmail", ctx, "ana@example.com").Return([]*shipment.Shipment{
			storedShipment(t, 2, "MIKU00000002BR", "ana@example.com"),
			storedShipment(t, 1, "MIKU00000001BR", "ana@example.com"),
		}, nil).Once()

		query, err := queries.NewMyShipmentsQuery(customer)
		require.NoError(t, err)

		got, err := queries.NewListShipmentsByCustomerEmailQueryHandler(reader).Handle(ctx, query)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "MIKU00000002BR", got[0].TrackingCode)
	})

	t.Run("should return empty slice when nothing matches", func(t *testing.T) {
		reader := new(MockShipmentReader)
		reader.On("ListByCustomerEmail", ctx, "ana@example.com").Return([]*shipment.Shipment{}, nil).Once()

		query, err := queries.NewMyShipmentsQuery(customer)
		require.NoError(t, err)

		got, err := queries.NewListShipmentsByCustomerEmailQueryHandler(reader).Handle(ctx, query)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("customer may not list another customer", func(t *testing.T) {
		reader := new(MockShipmentReader)
		query, err := queries.NewListShipmentsByCustomerEmailQuery(customer, "bruno@example.com")
		require.NoError(t, err)

		_, err = queries.NewListShipmentsByCustomerEmailQueryHandler(reader).Handle(ctx, query)
		assert.ErrorIs(t, err, errs.ErrAccessDenied)
		reader.AssertNotCalled(t, "ListByCustomerEmail", mock.Anything, mock.Anything)
	})

	t.Run("admin may list any customer", func(t *testing.T) {
		reader := new(MockShipmentReader)
		reader.On("ListByCustomerEmail", ctx, "bruno@example.com").Return([]*shipment.Shipment{}, nil).Once()
		query, err := queries.NewListShipmentsByCustomerEmailQuery(
			newCaller(t, "ops@mikuexpress.com", identity.RoleAdmin), "bruno@example.com")
		require.NoError(t, err)

		_, err = queries.NewListShipmentsByCustomerEmailQueryHandler(reader).Handle(ctx, query)
		assert.NoError(t, err)
		reader.AssertExpectations(t)
	})
}

func TestListAllShipmentsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("admin lists everything", func(t *testing.T) {
		reader := new(MockShipmentReader)
		reader.On("List", ctx).Return([]*shipment.Shipment{
			storedShipment(t, 1, "MIKU00000001BR", "ana@example.com"),
		}, nil).Once()

		query := queries.NewListAllShipmentsQuery(newCaller(t, "ops@mikuexpress.com", identity.RoleAdmin))
		got, err := queries.NewListAllShipmentsQueryHandler(reader).Handle(ctx, query)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		reader := new(MockShipmentReader)
		query := queries.NewListAllShipmentsQuery(newCaller(t, "ana@example.com", identity.RoleCustomer))

		_, err := queries.NewListAllShipmentsQueryHandler(reader).Handle(ctx, query)
		assert.ErrorIs(t, err, errs.ErrAccessDenied)
		reader.AssertNotCalled(t, "List", mock.Anything)
	})
}
