package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate *shipment.Shipment) {
	m.Called(aggregate)
}

// ShipmentRepositoryIntegrationTestSuite verifies shipment persistence against PostgreSQL.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	dsn        string
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
	now        time.Time
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	suite.dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(suite.dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE status_entries, shipments RESTART IDENTITY CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(postgres_adapter.Close(suite.db))
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_AssignsIdentifiers() {
	ctx := context.Background()
	s := suite.createTestShipment("MIKUAAAA0001BR", "ana@example.com", suite.now)
	suite.tracker.On("TrackAggregate", s).Once()

	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Positive(s.ID())
	suite.True(s.LatestStatus().IsPersisted())
	suite.assertCount(&shipmentrepo.ShipmentDTO{}, 1)
	suite.assertCount(&shipmentrepo.StatusEntryDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_RoundTripsAllFields() {
	ctx := context.Background()
	s := suite.createTestShipment("MIKUAAAA0002BR", "ana@example.com", suite.now)
	suite.tracker.On("TrackAggregate", mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(s.TrackingCode(), got.TrackingCode())
	suite.Equal(s.Source(), got.Source())
	suite.Equal(s.Destination(), got.Destination())
	suite.True(s.DistanceKm().Equal(got.DistanceKm()), "distance %s", got.DistanceKm())
	suite.True(s.WeightKg().Equal(got.WeightKg()))
	suite.True(s.Price().IsEqual(got.Price()))
	suite.Equal("236.00", got.Price().String())
	suite.Equal("Ana", got.CustomerName())
	suite.True(s.CreatedAt().Equal(got.CreatedAt()))
	suite.Require().Len(got.StatusHistory(), 1)
	suite.Equal(s.LatestStatus().ID(), got.LatestStatus().ID())
	suite.Equal("São Paulo, SP, BR", got.LatestStatus().Source())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingCode() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx,
		suite.createTestShipment("MIKUAAAA0003BR", "ana@example.com", suite.now)))

	duplicate := suite.createTestShipment("MIKUAAAA0003BR", "bruno@example.com", suite.now)
	err := suite.repository.Add(ctx, duplicate)
	suite.Require().ErrorIs(err, ports.ErrTrackingCodeConflict)
	suite.False(duplicate.IsPersisted())
	suite.assertCount(&shipmentrepo.ShipmentDTO{}, 1)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingCodeThroughPgx() {
	ctx := context.Background()

	db, err := gorm.Open(postgresdriver.Open(suite.dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	defer func() { _ = postgres_adapter.Close(db) }()

	repo := shipmentrepo.NewGormShipmentRepository(db, nil)
	suite.Require().NoError(repo.Add(ctx, suite.createTestShipment("MIKUAAAA0004BR", "ana@example.com", suite.now)))

	err = repo.Add(ctx, suite.createTestShipment("MIKUAAAA0004BR", "ana@example.com", suite.now))
	suite.Require().ErrorIs(err, ports.ErrTrackingCodeConflict)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_AlreadyPersisted() {
	ctx := context.Background()
	s := suite.createTestShipment("MIKUAAAA0005BR", "ana@example.com", suite.now)
	suite.tracker.On("TrackAggregate", s).Once()
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().ErrorIs(suite.repository.Add(ctx, s), shipment.ErrIDAlreadyAssigned)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewEntries() {
	ctx := context.Background()
	s := suite.createTestShipment("MIKUAAAA0006BR", "ana@example.com", suite.now)
	suite.tracker.On("TrackAggregate", s)
	suite.Require().NoError(suite.repository.Add(ctx, s))

	loaded, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", loaded)

	_, err = loaded.AppendStatus("In transit", "Resende, RJ, BR", "Rio de Janeiro, RJ, BR", suite.now.Add(time.Hour))
	suite.Require().NoError(err)
	_, err = loaded.AppendStatus("Delivered", "", "", suite.now.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	for _, entry := range loaded.StatusHistory() {
		suite.True(entry.IsPersisted())
	}

	// Nothing new to write.
	suite.Require().NoError(suite.repository.Update(ctx, loaded))
	suite.assertCount(&shipmentrepo.StatusEntryDTO{}, 3)

	got, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	history := got.StatusHistory()
	suite.Require().Len(history, 3)
	suite.Equal([]string{shipment.StatusCreated, "In transit", "Delivered"},
		[]string{history[0].Status(), history[1].Status(), history[2].Status()})
	suite.Less(history[0].ID(), history[1].ID())
	suite.Equal("Resende, RJ, BR", history[1].Source())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_UnpersistedShipment() {
	s := suite.createTestShipment("MIKUAAAA0007BR", "ana@example.com", suite.now)

	err := suite.repository.Update(context.Background(), s)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), 999)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetForUpdate(context.Background(), 999)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByTrackingCode() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything)
	s := suite.createTestShipment("MIKUAAAA0008BR", "ana@example.com", suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.GetByTrackingCode(ctx, s.TrackingCode())
	suite.Require().NoError(err)
	suite.Equal(s.ID(), got.ID())

	missing, err := kernel.NewTrackingCode("MIKUZZZZ9999BR")
	suite.Require().NoError(err)
	_, err = suite.repository.GetByTrackingCode(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestListByCustomerEmail() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything)

	older := suite.createTestShipment("MIKUAAAA0009BR", "ana@example.com", suite.now)
	newer := suite.createTestShipment("MIKUAAAA0010BR", "Ana@Example.com", suite.now.Add(time.Hour))
	other := suite.createTestShipment("MIKUAAAA0011BR", "bruno@example.com", suite.now)
	for _, s := range []*shipment.Shipment{older, newer, other} {
		suite.Require().NoError(suite.repository.Add(ctx, s))
	}

	got, err := suite.repository.ListByCustomerEmail(ctx, "ANA@example.com")
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(newer.ID(), got[0].ID(), "newest first")
	suite.Equal(older.ID(), got[1].ID())

	none, err := suite.repository.ListByCustomerEmail(ctx, "carla@example.com")
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)

	all, err := suite.repository.List(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 3)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestDelete_CascadesHistory() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything)
	s := suite.createTestShipment("MIKUAAAA0012BR", "ana@example.com", suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, s))
	_, err := s.AppendStatus("In transit", "", "", suite.now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, s))

	suite.Require().NoError(suite.repository.Delete(ctx, s.ID()))

	suite.assertCount(&shipmentrepo.ShipmentDTO{}, 0)
	suite.assertCount(&shipmentrepo.StatusEntryDTO{}, 0)

	suite.Require().ErrorIs(suite.repository.Delete(ctx, s.ID()), errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) createTestShipment(
	code, email string,
	createdAt time.Time,
) *shipment.Shipment {
	trackingCode, err := kernel.NewTrackingCode(code)
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(decimal.RequireFromString("236.00"))
	suite.Require().NoError(err)
	initial, err := shipment.NewStatusEntry(shipment.StatusCreated,
		"São Paulo, SP, BR", "Rio de Janeiro, RJ, BR", createdAt)
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(shipment.Params{
		TrackingCode:  trackingCode,
		Source:        "Avenida Paulista,  - Bela Vista, São Paulo - SP",
		Destination:   "Rua da Assembleia,  - Centro, Rio de Janeiro - RJ",
		DistanceKm:    decimal.RequireFromString("430.125"),
		WeightKg:      decimal.RequireFromString("2.5"),
		Price:         price,
		CustomerEmail: email,
		CustomerName:  "Ana",
		CreatedAt:     createdAt,
	}, initial)
	suite.Require().NoError(err)
	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) assertCount(model any, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
