package queries

import (
	"errors"

	"shipping/internal/core/domain/model/identity"
	"shipping/internal/pkg/guard"
)

var ErrListAllShipmentsQueryIsNotConstructed = errors.New(
	"ListAllShipmentsQuery must be created via NewListAllShipmentsQuery constructor",
)

// ListAllShipmentsQuery lists every shipment. Administrators only.
type ListAllShipmentsQuery struct {
	caller identity.Caller

	guard guard.ConstructorGuard
}

func NewListAllShipmentsQuery(caller identity.Caller) ListAllShipmentsQuery {
	return ListAllShipmentsQuery{caller: caller, guard: guard.NewConstructorGuard()}
}

func (q ListAllShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListAllShipmentsQueryIsNotConstructed)
}

func (q ListAllShipmentsQuery) Caller() identity.Caller {
	return q.caller
}
