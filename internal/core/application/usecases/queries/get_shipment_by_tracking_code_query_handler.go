package queries

import (
	"context"

	"shipping/internal/core/ports"
)

type GetShipmentByTrackingCodeQueryHandler struct {
	reader ports.ShipmentReader
}

func NewGetShipmentByTrackingCodeQueryHandler(reader ports.ShipmentReader) GetShipmentByTrackingCodeQueryHandler {
	return GetShipmentByTrackingCodeQueryHandler{reader: reader}
}

// Handle returns an errs.ObjectNotFoundError when no shipment has the code.
func (h GetShipmentByTrackingCodeQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentByTrackingCodeQuery,
) (ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentResponse{}, err
	}

	found, err := h.reader.GetByTrackingCode(ctx, query.TrackingCode())
	if err != nil {
		return ShipmentResponse{}, err
	}

	return NewShipmentResponse(found), nil
}
