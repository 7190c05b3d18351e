package ports

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
)

// ErrNoRoute is returned by a DistanceResolver that found no drivable route.
var ErrNoRoute = errors.New("no route between addresses")

// AddressResolver turns a postal code into an address. A postal code that does not exist
// is an error, never a zero Address.
type AddressResolver interface {
	Resolve(ctx context.Context, postalCode string) (kernel.Address, error)
}

// DistanceResolver returns the road distance in kilometres between two free-text
// locations, travelling by car. A missing route is ErrNoRoute.
type DistanceResolver interface {
	Distance(ctx context.Context, origin, destination string) (float64, error)
}
