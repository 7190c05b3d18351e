package queries

import (
	"context"

	"shipping/internal/core/ports"
)

type ListAllShipmentsQueryHandler struct {
	reader ports.ShipmentReader
}

func NewListAllShipmentsQueryHandler(reader ports.ShipmentReader) ListAllShipmentsQueryHandler {
	return ListAllShipmentsQueryHandler{reader: reader}
}

func (h ListAllShipmentsQueryHandler) Handle(ctx context.Context, query ListAllShipmentsQuery) ([]ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Caller().RequireAdmin("list all shipments"); err != nil {
		return nil, err
	}

	found, err := h.reader.List(ctx)
	if err != nil {
		return nil, err
	}

	return newShipmentResponses(found), nil
}
