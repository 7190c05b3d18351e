package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// DefaultMaxTrackingCodeAttempts bounds how many tracking codes are tried before giving up.
const DefaultMaxTrackingCodeAttempts = 5

// CreateShipmentDeps lists the collaborators of CreateShipmentCommandHandler.
// Clock, Logger and MaxTrackingCodeAttempts fall back to defaults when left empty.
type CreateShipmentDeps struct {
	UoWFactory              ShipmentUoWFactory
	Addresses               ports.AddressResolver
	Distances               ports.DistanceResolver
	Pricing                 services.PricingPolicy
	TrackingCodes           services.TrackingCodeGenerator
	Notifier                ports.NotificationPort
	Clock                   ports.Clock
	Logger                  *slog.Logger
	MaxTrackingCodeAttempts int
}

// CreateShipmentCommandHandler registers a new shipment.
//
// The steps run strictly in order: both postal codes are resolved (concurrently), the
// road distance between them is looked up, the price is derived, and the shipment is
// stored with a fresh tracking code and a "Created" history entry. Nothing is stored
// unless every step before the insert succeeds. The customer is notified only after the
// insert is committed, and a failed notification does not fail the command.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(deps)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrInvalidAddress) {
//	    // one of the postal codes does not exist
//	}
type CreateShipmentCommandHandler struct {
	uowFactory    ShipmentUoWFactory
	addresses     ports.AddressResolver
	distances     ports.DistanceResolver
	pricing       services.PricingPolicy
	trackingCodes services.TrackingCodeGenerator
	notifier      ports.NotificationPort
	clock         ports.Clock
	logger        *slog.Logger
	maxAttempts   int
}

func NewCreateShipmentCommandHandler(deps CreateShipmentDeps) CreateShipmentCommandHandler {
	h := CreateShipmentCommandHandler{
		uowFactory:    deps.UoWFactory,
		addresses:     deps.Addresses,
		distances:     deps.Distances,
		pricing:       deps.Pricing,
		trackingCodes: deps.TrackingCodes,
		notifier:      deps.Notifier,
		clock:         deps.Clock,
		logger:        deps.Logger,
		maxAttempts:   deps.MaxTrackingCodeAttempts,
	}
	if h.clock == nil {
		h.clock = ports.SystemClock
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.maxAttempts <= 0 {
		h.maxAttempts = DefaultMaxTrackingCodeAttempts
	}
	h.logger = h.logger.With("component", "create_shipment_handler")
	return h
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Caller().RequireAdmin("create shipments"); err != nil {
		return nil, err
	}

	source, destination, err := h.resolveAddresses(ctx, cmd.SourcePostalCode(), cmd.DestinationPostalCode())
	if err != nil {
		return nil, err
	}

	distanceKm, err := h.distance(ctx, source, destination)
	if err != nil {
		return nil, err
	}

	price, err := h.pricing.Price(distanceKm, cmd.WeightKg())
	if err != nil {
		return nil, err
	}

	created, err := h.store(ctx, cmd, source, destination, distanceKm, price)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "shipment created",
		"tracking_code", created.TrackingCode().String(),
		"price", created.Price().String(),
		"distance_km", created.DistanceKm().String())

	if err = h.notifier.NotifyCreated(ctx, created); err != nil {
		h.logger.ErrorContext(ctx, "notify shipment created",
			"tracking_code", created.TrackingCode().String(),
			"error", err)
	}

	return created, nil
}

func (h CreateShipmentCommandHandler) resolveAddresses(
	ctx context.Context,
	sourcePostalCode, destinationPostalCode string,
) (kernel.Address, kernel.Address, error) {
	var source, destination kernel.Address

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr, err := h.resolve(gctx, "source", sourcePostalCode)
		source = addr
		return err
	})
	g.Go(func() error {
		addr, err := h.resolve(gctx, "destination", destinationPostalCode)
		destination = addr
		return err
	})
	if err := g.Wait(); err != nil {
		return kernel.Address{}, kernel.Address{}, err
	}

	return source, destination, nil
}

func (h CreateShipmentCommandHandler) resolve(ctx context.Context, leg, postalCode string) (kernel.Address, error) {
	addr, err := h.addresses.Resolve(ctx, postalCode)
	if err != nil {
		return kernel.Address{}, fmt.Errorf("%w: %s postal code %s: %w", ErrInvalidAddress, leg, postalCode, err)
	}
	if !addr.IsValid() {
		return kernel.Address{}, fmt.Errorf("%w: %s postal code %s did not resolve", ErrInvalidAddress, leg, postalCode)
	}
	return addr, nil
}

func (h CreateShipmentCommandHandler) distance(
	ctx context.Context,
	source, destination kernel.Address,
) (decimal.Decimal, error) {
	km, err := h.distances.Distance(ctx, source.DistanceQuery(), destination.DistanceQuery())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s -> %s: %w",
			ErrDistanceUnavailable, source.DistanceQuery(), destination.DistanceQuery(), err)
	}

	distanceKm := decimal.Zero
	if km > 0 {
		distanceKm = decimal.NewFromFloat(km).Round(shipment.QuantityScale)
	}
	if !distanceKm.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s -> %s is %v km",
			ErrDistanceUnavailable, source.DistanceQuery(), destination.DistanceQuery(), km)
	}

	return distanceKm, nil
}

// store inserts the shipment, replacing the tracking code whenever storage reports it
// as taken. Every attempt runs in its own transaction.
func (h CreateShipmentCommandHandler) store(
	ctx context.Context,
	cmd CreateShipmentCommand,
	source, destination kernel.Address,
	distanceKm decimal.Decimal,
	price kernel.Money,
) (*shipment.Shipment, error) {
	now := h.clock.Now()

	initial, err := shipment.NewStatusEntry(shipment.StatusCreated,
		source.DistanceQuery(), destination.DistanceQuery(), now)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		code, err := h.trackingCodes.Generate()
		if err != nil {
			return nil, err
		}

		aggregate, err := shipment.NewShipment(shipment.Params{
			TrackingCode:  code,
			Source:        source.Complete(),
			Destination:   destination.Complete(),
			DistanceKm:    distanceKm,
			WeightKg:      cmd.WeightKg(),
			Price:         price,
			CustomerEmail: cmd.CustomerEmail(),
			CustomerName:  cmd.CustomerName(),
			CreatedAt:     now,
		}, initial)
		if err != nil {
			return nil, err
		}

		err = h.add(ctx, aggregate)
		if err == nil {
			return aggregate, nil
		}
		if !errors.Is(err, ports.ErrTrackingCodeConflict) {
			return nil, err
		}

		h.logger.WarnContext(ctx, "tracking code already in use",
			"tracking_code", code.String(),
			"attempt", attempt)
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrTrackingCodeExhausted, h.maxAttempts)
}

func (h CreateShipmentCommandHandler) add(ctx context.Context, aggregate *shipment.Shipment) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
