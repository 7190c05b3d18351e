package commands

import (
	"context"
)

// DeleteShipmentCommandHandler removes a shipment together with its whole history in one
// transaction. Deleting a shipment that does not exist is an errs.ObjectNotFoundError.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewDeleteShipmentCommandHandler(uowFactory ShipmentUoWFactory) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{uowFactory: uowFactory}
}

func (h DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Caller().RequireAdmin("delete shipments"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Delete(ctx, cmd.ShipmentID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
