package queries

import (
	"context"
	"fmt"

	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// GetShipmentByIDQueryHandler lets administrators read any shipment and customers read
// their own. A customer asking for someone else's shipment gets an access denied error,
// not a not found one.
type GetShipmentByIDQueryHandler struct {
	reader ports.ShipmentReader
}

func NewGetShipmentByIDQueryHandler(reader ports.ShipmentReader) GetShipmentByIDQueryHandler {
	return GetShipmentByIDQueryHandler{reader: reader}
}

func (h GetShipmentByIDQueryHandler) Handle(ctx context.Context, query GetShipmentByIDQuery) (ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentResponse{}, err
	}

	caller := query.Caller()
	if err := caller.Validate(); err != nil {
		return ShipmentResponse{}, errs.NewAccessDeniedErrorWithCause("anonymous caller", "read shipments", err)
	}

	found, err := h.reader.Get(ctx, query.ShipmentID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	if !caller.IsAdmin() && !found.BelongsTo(caller.Email()) {
		return ShipmentResponse{}, errs.NewAccessDeniedError(caller.String(),
			fmt.Sprintf("read shipment %d", query.ShipmentID()))
	}

	return NewShipmentResponse(found), nil
}
