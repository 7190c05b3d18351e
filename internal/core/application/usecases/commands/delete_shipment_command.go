package commands

import (
	"errors"

	"shipping/internal/core/domain/model/identity"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand permanently removes a shipment and its history.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	caller     identity.Caller
	shipmentID int64

	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(caller identity.Caller, shipmentID int64) (DeleteShipmentCommand, error) {
	if shipmentID <= 0 {
		return DeleteShipmentCommand{}, errs.NewValueIsOutOfRangeError("shipmentID", shipmentID, 1, "∞")
	}

	return DeleteShipmentCommand{
		caller:     caller,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

func (c DeleteShipmentCommand) Caller() identity.Caller { return c.caller }
func (c DeleteShipmentCommand) ShipmentID() int64       { return c.shipmentID }
