package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// AppendStatusUpdateCommandHandler appends a status entry to a shipment's history.
//
// The shipment row stays locked from the read until commit, so two updates to the same
// shipment are applied one after the other and neither is lost. The customer is notified
// after commit; notification errors are logged and otherwise ignored.
type AppendStatusUpdateCommandHandler struct {
	uowFactory ShipmentUoWFactory
	notifier   ports.NotificationPort
	clock      ports.Clock
	logger     *slog.Logger
}

func NewAppendStatusUpdateCommandHandler(
	uowFactory ShipmentUoWFactory,
	notifier ports.NotificationPort,
	clock ports.Clock,
	logger *slog.Logger,
) AppendStatusUpdateCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return AppendStatusUpdateCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		logger:     logger.With("component", "append_status_update_handler"),
	}
}

// Handle returns the appended entry with its storage identifier.
func (h AppendStatusUpdateCommandHandler) Handle(
	ctx context.Context,
	cmd AppendStatusUpdateCommand,
) (shipment.StatusEntry, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.StatusEntry{}, err
	}
	if err := cmd.Caller().RequireAdmin("update shipment status"); err != nil {
		return shipment.StatusEntry{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.StatusEntry{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return shipment.StatusEntry{}, err
	}

	if _, err = aggregate.AppendStatus(cmd.Status(), cmd.Source(), cmd.Destination(), h.clock.Now()); err != nil {
		return shipment.StatusEntry{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return shipment.StatusEntry{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.StatusEntry{}, err
	}

	entry := aggregate.LatestStatus()
	if err = h.notifier.NotifyStatusChanged(ctx, aggregate, entry); err != nil {
		h.logger.ErrorContext(ctx, "notify status changed",
			"tracking_code", aggregate.TrackingCode().String(),
			"status", entry.Status(),
			"error", err)
	}

	return entry, nil
}
