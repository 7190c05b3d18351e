package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	apphttp "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/googlemaps"
	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/notification"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/rabbitmq"
	"shipping/internal/adapters/out/viacep"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"
	"shipping/internal/pkg/metrics"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	addresses  ports.AddressResolver
	distances  ports.DistanceResolver
	pricing    services.PricingPolicy
	notifier   ports.NotificationPort
	dispatcher *notification.Dispatcher

	closers []func() error
}

// NewCompositionRoot wires the adapters and starts the notification dispatcher. Kafka and
// RabbitMQ sinks are only wired when configured; notifications are always logged.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	pricing, err := services.NewLinearPricingPolicy(cfg.RatePerKm, cfg.RatePerKg)
	if err != nil {
		return nil, fmt.Errorf("pricing policy: %w", err)
	}
	c.pricing = pricing

	viacepOpts := []viacep.Option{viacep.WithTimeout(cfg.ResolverTimeout)}
	if cfg.ViaCEPBaseURL != "" {
		viacepOpts = append(viacepOpts, viacep.WithBaseURL(cfg.ViaCEPBaseURL))
	}
	c.addresses = metrics.NewInstrumentedAddressResolver("viacep", viacep.NewClient(viacepOpts...))

	distances, err := googlemaps.NewDistanceResolver(googlemaps.Config{
		APIKey:  cfg.GoogleMapsAPIKey,
		BaseURL: cfg.GoogleMapsBaseURL,
		Timeout: cfg.ResolverTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("distance resolver: %w", err)
	}
	c.distances = metrics.NewInstrumentedDistanceResolver("googlemaps", distances)

	sinks, err := c.notificationSinks()
	if err != nil {
		_ = c.closeSinks()
		return nil, err
	}

	c.dispatcher = notification.NewDispatcher(notification.NewFanout(sinks...), notification.DispatcherConfig{
		Workers:     cfg.NotificationWorkers,
		QueueSize:   cfg.NotificationQueueSize,
		MaxAttempts: cfg.NotificationMaxAttempts,
	}, logger)
	c.dispatcher.Start()
	c.notifier = metrics.NewInstrumentedNotifier(c.dispatcher)

	return c, nil
}

func (c *CompositionRoot) notificationSinks() ([]ports.NotificationPort, error) {
	sinks := []ports.NotificationPort{notification.NewLogSink(c.logger)}

	if len(c.cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewEventPublisher(c.cfg.KafkaBrokers, c.cfg.KafkaTopic)
		c.closers = append(c.closers, publisher.Close)
		sinks = append(sinks, publisher)
	}

	if c.cfg.RabbitMQURL != "" {
		client, err := rabbitmq.Dial(c.cfg.RabbitMQURL)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		c.closers = append(c.closers, client.Close)

		if err = client.DeclareQueue(c.cfg.RabbitMQQueue); err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		publisher, err := rabbitmq.NewEmailJobPublisher(client.Channel(), c.cfg.RabbitMQQueue)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		sinks = append(sinks, publisher)
	}

	return sinks, nil
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(commands.CreateShipmentDeps{
		UoWFactory:              c.shipmentUoWFactory(),
		Addresses:               c.addresses,
		Distances:               c.distances,
		Pricing:                 c.pricing,
		TrackingCodes:           services.NewUUIDTrackingCodeGenerator(),
		Notifier:                c.notifier,
		Clock:                   ports.SystemClock,
		Logger:                  c.logger,
		MaxTrackingCodeAttempts: c.cfg.TrackingCodeMaxAttempts,
	})
}

func (c *CompositionRoot) CreateAppendStatusUpdateCommandHandler() commands.AppendStatusUpdateCommandHandler {
	return commands.NewAppendStatusUpdateCommandHandler(c.shipmentUoWFactory(), c.notifier, ports.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateGetShipmentByIDQueryHandler() queries.GetShipmentByIDQueryHandler {
	return queries.NewGetShipmentByIDQueryHandler(c.shipmentReader())
}

func (c *CompositionRoot) CreateGetShipmentByTrackingCodeQueryHandler() queries.GetShipmentByTrackingCodeQueryHandler {
	return queries.NewGetShipmentByTrackingCodeQueryHandler(c.shipmentReader())
}

func (c *CompositionRoot) CreateListShipmentsByCustomerEmailQueryHandler() queries.ListShipmentsByCustomerEmailQueryHandler {
	return queries.NewListShipmentsByCustomerEmailQueryHandler(c.shipmentReader())
}

func (c *CompositionRoot) CreateListAllShipmentsQueryHandler() queries.ListAllShipmentsQueryHandler {
	return queries.NewListAllShipmentsQueryHandler(c.shipmentReader())
}

func (c *CompositionRoot) CreateHTTPServer() *apphttp.Server {
	return apphttp.NewServer(apphttp.Handlers{
		CreateShipment:    c.CreateCreateShipmentCommandHandler(),
		AppendStatus:      c.CreateAppendStatusUpdateCommandHandler(),
		DeleteShipment:    c.CreateDeleteShipmentCommandHandler(),
		GetByID:           c.CreateGetShipmentByIDQueryHandler(),
		GetByTrackingCode: c.CreateGetShipmentByTrackingCodeQueryHandler(),
		ListByCustomer:    c.CreateListShipmentsByCustomerEmailQueryHandler(),
		ListAll:           c.CreateListAllShipmentsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateTokenVerifier() (*apphttp.TokenVerifier, error) {
	return apphttp.NewTokenVerifier(c.cfg.JWTSecret)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.dispatcher, c.cfg.NotificationRetrySchedule, c.logger)
}

// Close drains the notification queue and then releases the broker connections.
func (c *CompositionRoot) Close(ctx context.Context) error {
	return errors.Join(c.dispatcher.Close(ctx), c.closeSinks())
}

func (c *CompositionRoot) closeSinks() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

// Reads run outside of any transaction.
func (c *CompositionRoot) shipmentReader() ports.ShipmentReader {
	return shipmentrepo.NewGormShipmentRepository(c.gormDB, nil)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
