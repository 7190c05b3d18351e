package commands

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"shipping/internal/core/domain/model/identity"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrSourcePostalCodeIsRequired      = errs.NewValueIsRequiredError("sourcePostalCode")
	ErrDestinationPostalCodeIsRequired = errs.NewValueIsRequiredError("destinationPostalCode")
	ErrCustomerNameIsRequired          = errs.NewValueIsRequiredError("customerName")
	ErrCustomerEmailIsRequired         = errs.NewValueIsRequiredError("customerEmail")
)

// CreateShipmentCommand represents an administrator registering a parcel for a customer.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(caller, "01310-100", "20010-000",
//	    decimal.NewFromInt(2), "ana@example.com", "Ana")
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	caller                identity.Caller
	sourcePostalCode      string
	destinationPostalCode string
	weightKg              decimal.Decimal
	customerEmail         string
	customerName          string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates the request. Postal codes are only checked for
// presence here; whether they exist is up to the address resolver.
func NewCreateShipmentCommand(
	caller identity.Caller,
	sourcePostalCode string,
	destinationPostalCode string,
	weightKg decimal.Decimal,
	customerEmail string,
	customerName string,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPostalCodes(sourcePostalCode, destinationPostalCode),
		cmd.setWeightKg(weightKg),
		cmd.setCustomerEmail(customerEmail),
		cmd.setCustomerName(customerName),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Caller() identity.Caller       { return c.caller }
func (c CreateShipmentCommand) SourcePostalCode() string      { return c.sourcePostalCode }
func (c CreateShipmentCommand) DestinationPostalCode() string { return c.destinationPostalCode }
func (c CreateShipmentCommand) WeightKg() decimal.Decimal     { return c.weightKg }
func (c CreateShipmentCommand) CustomerEmail() string         { return c.customerEmail }
func (c CreateShipmentCommand) CustomerName() string          { return c.customerName }

func (c *CreateShipmentCommand) setPostalCodes(source, destination string) error {
	source, destination = strings.TrimSpace(source), strings.TrimSpace(destination)

	var err error
	if source == "" {
		err = errors.Join(err, ErrSourcePostalCodeIsRequired)
	}
	if destination == "" {
		err = errors.Join(err, ErrDestinationPostalCodeIsRequired)
	}
	if err != nil {
		return err
	}

	c.sourcePostalCode, c.destinationPostalCode = source, destination
	return nil
}

func (c *CreateShipmentCommand) setWeightKg(weightKg decimal.Decimal) error {
	if !weightKg.IsPositive() {
		return errs.NewValueIsOutOfRangeError("weightKg", weightKg.String(), "0", "∞")
	}
	c.weightKg = weightKg
	return nil
}

func (c *CreateShipmentCommand) setCustomerEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrCustomerEmailIsRequired
	}

	parsed, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerEmail", err)
	}
	if parsed.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("customerEmail",
			fmt.Errorf("%q is not a bare address", email))
	}

	c.customerEmail = email
	return nil
}

func (c *CreateShipmentCommand) setCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	c.customerName = name
	return nil
}
