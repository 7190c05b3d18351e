package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/identity"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrAppendStatusUpdateCommandIsNotConstructed = errors.New(
	"AppendStatusUpdateCommand must be created via NewAppendStatusUpdateCommand constructor",
)

// AppendStatusUpdateCommand records a new checkpoint for an existing shipment.
// Source and destination describe the leg of the checkpoint and may be blank.
type AppendStatusUpdateCommand struct { //nolint:recvcheck //using for validation
	caller      identity.Caller
	shipmentID  int64
	status      string
	source      string
	destination string

	guard guard.ConstructorGuard
}

func NewAppendStatusUpdateCommand(
	caller identity.Caller,
	shipmentID int64,
	status string,
	source string,
	destination string,
) (AppendStatusUpdateCommand, error) {
	cmd := AppendStatusUpdateCommand{
		caller:      caller,
		source:      strings.TrimSpace(source),
		destination: strings.TrimSpace(destination),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setStatus(status),
	); err != nil {
		return AppendStatusUpdateCommand{}, err
	}

	return cmd, nil
}

func (c AppendStatusUpdateCommand) Validate() error {
	return c.guard.Validate(ErrAppendStatusUpdateCommandIsNotConstructed)
}

func (c AppendStatusUpdateCommand) Caller() identity.Caller { return c.caller }
func (c AppendStatusUpdateCommand) ShipmentID() int64       { return c.shipmentID }
func (c AppendStatusUpdateCommand) Status() string          { return c.status }
func (c AppendStatusUpdateCommand) Source() string          { return c.source }
func (c AppendStatusUpdateCommand) Destination() string     { return c.destination }

func (c *AppendStatusUpdateCommand) setShipmentID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("shipmentID", id, 1, "∞")
	}
	c.shipmentID = id
	return nil
}

func (c *AppendStatusUpdateCommand) setStatus(status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return shipment.ErrStatusIsRequired
	}
	c.status = status
	return nil
}
