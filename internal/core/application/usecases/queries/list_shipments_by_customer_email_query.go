package queries

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/identity"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrListShipmentsByCustomerEmailQueryIsNotConstructed = errors.New(
	"ListShipmentsByCustomerEmailQuery must be created via NewListShipmentsByCustomerEmailQuery constructor",
)

// ListShipmentsByCustomerEmailQuery lists the shipments registered for an e-mail address.
// Shipments are matched by the address they were created with, so changing the e-mail of
// an account does not bring older shipments along.
type ListShipmentsByCustomerEmailQuery struct {
	caller identity.Caller
	email  string

	guard guard.ConstructorGuard
}

// NewMyShipmentsQuery lists the caller's own shipments.
func NewMyShipmentsQuery(caller identity.Caller) (ListShipmentsByCustomerEmailQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListShipmentsByCustomerEmailQuery{}, errs.NewAccessDeniedErrorWithCause(
			"anonymous caller", "list shipments", err)
	}
	return NewListShipmentsByCustomerEmailQuery(caller, caller.Email())
}

// NewListShipmentsByCustomerEmailQuery lists the shipments of email. Only administrators
// may ask for an address other than their own; that is checked by the handler.
func NewListShipmentsByCustomerEmailQuery(
	caller identity.Caller,
	email string,
) (ListShipmentsByCustomerEmailQuery, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return ListShipmentsByCustomerEmailQuery{}, errs.NewValueIsRequiredError("email")
	}

	return ListShipmentsByCustomerEmailQuery{
		caller: caller,
		email:  email,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListShipmentsByCustomerEmailQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsByCustomerEmailQueryIsNotConstructed)
}

func (q ListShipmentsByCustomerEmailQuery) Caller() identity.Caller { return q.caller }
func (q ListShipmentsByCustomerEmailQuery) Email() string           { return q.email }
