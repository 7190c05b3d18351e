package queries

import (
	"errors"

	"shipping/internal/core/domain/model/identity"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentByIDQueryIsNotConstructed = errors.New(
	"GetShipmentByIDQuery must be created via NewGetShipmentByIDQuery constructor",
)

// GetShipmentByIDQuery loads one shipment on behalf of an authenticated caller.
type GetShipmentByIDQuery struct {
	caller     identity.Caller
	shipmentID int64

	guard guard.ConstructorGuard
}

func NewGetShipmentByIDQuery(caller identity.Caller, shipmentID int64) (GetShipmentByIDQuery, error) {
	if shipmentID <= 0 {
		return GetShipmentByIDQuery{}, errs.NewValueIsOutOfRangeError("shipmentID", shipmentID, 1, "∞")
	}

	return GetShipmentByIDQuery{
		caller:     caller,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentByIDQueryIsNotConstructed)
}

func (q GetShipmentByIDQuery) Caller() identity.Caller { return q.caller }
func (q GetShipmentByIDQuery) ShipmentID() int64       { return q.shipmentID }
