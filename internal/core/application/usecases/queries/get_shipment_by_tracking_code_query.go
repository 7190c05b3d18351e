package queries

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentByTrackingCodeQueryIsNotConstructed = errors.New(
	"GetShipmentByTrackingCodeQuery must be created via NewGetShipmentByTrackingCodeQuery constructor",
)

// GetShipmentByTrackingCodeQuery is the public tracking lookup. It needs no caller:
// anyone holding the code may follow the parcel.
//
// Example:
//
//	query, err := NewGetShipmentByTrackingCodeQuery("MIKUA4B9C2D8BR")
//	if err != nil {
//	    return err // malformed code
//	}
//	found, err := handler.Handle(ctx, query)
type GetShipmentByTrackingCodeQuery struct {
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewGetShipmentByTrackingCodeQuery accepts codes in any letter case.
func NewGetShipmentByTrackingCodeQuery(trackingCode string) (GetShipmentByTrackingCodeQuery, error) {
	code, err := kernel.NewTrackingCode(strings.ToUpper(strings.TrimSpace(trackingCode)))
	if err != nil {
		return GetShipmentByTrackingCodeQuery{}, err
	}

	return GetShipmentByTrackingCodeQuery{
		trackingCode: code,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentByTrackingCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentByTrackingCodeQueryIsNotConstructed)
}

func (q GetShipmentByTrackingCodeQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}
