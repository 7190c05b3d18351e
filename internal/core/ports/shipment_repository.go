// Package ports defines the contracts between the shipment use cases and the
// infrastructure they depend on: persistence, postal-code and distance lookups,
// customer notifications and time.
package ports

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ErrTrackingCodeConflict is returned by Add when another shipment already uses the
// tracking code. Callers are expected to retry with a freshly generated code.
var ErrTrackingCodeConflict = errors.New("tracking code is already in use")

// ShipmentReader is the read-only side of shipment storage used by queries.
// Lookups of a missing shipment return an errs.ObjectNotFoundError.
type ShipmentReader interface {
	// Get returns the shipment with its complete history.
	Get(ctx context.Context, id int64) (*shipment.Shipment, error)

	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*shipment.Shipment, error)

	// ListByCustomerEmail returns the customer's shipments, newest first. No match is an
	// empty slice, not an error. Matching ignores case.
	ListByCustomerEmail(ctx context.Context, email string) ([]*shipment.Shipment, error)

	// List returns every shipment, newest first.
	List(ctx context.Context) ([]*shipment.Shipment, error)
}

// ShipmentRepository persists the Shipment aggregate together with its history.
type ShipmentRepository interface {
	ShipmentReader

	// Add inserts a new shipment and its history, then assigns the storage identifiers
	// to the aggregate. Returns ErrTrackingCodeConflict if the code is taken.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update inserts the history entries that have not been persisted yet. Existing
	// entries and the write-once shipment fields are never rewritten.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// GetForUpdate is Get that also locks the shipment row until the surrounding
	// transaction ends, so concurrent appends to one shipment are serialised.
	GetForUpdate(ctx context.Context, id int64) (*shipment.Shipment, error)

	// Delete removes the shipment and its history.
	Delete(ctx context.Context, id int64) error
}
