package queries

import (
	"context"
	"strings"

	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

type ListShipmentsByCustomerEmailQueryHandler struct {
	reader ports.ShipmentReader
}

func NewListShipmentsByCustomerEmailQueryHandler(reader ports.ShipmentReader) ListShipmentsByCustomerEmailQueryHandler {
	return ListShipmentsByCustomerEmailQueryHandler{reader: reader}
}

// Handle returns an empty slice when the customer has no shipments.
func (h ListShipmentsByCustomerEmailQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsByCustomerEmailQuery,
) ([]ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller := query.Caller()
	if err := caller.Validate(); err != nil {
		return nil, errs.NewAccessDeniedErrorWithCause("anonymous caller", "list shipments", err)
	}
	if !caller.IsAdmin() && !strings.EqualFold(caller.Email(), query.Email()) {
		return nil, errs.NewAccessDeniedError(caller.String(), "list shipments of another customer")
	}

	found, err := h.reader.ListByCustomerEmail(ctx, query.Email())
	if err != nil {
		return nil, err
	}

	return newShipmentResponses(found), nil
}
