package metrics

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// InstrumentedAddressResolver times every postal code lookup.
type InstrumentedAddressResolver struct {
	next ports.AddressResolver
	name string
}

func NewInstrumentedAddressResolver(name string, next ports.AddressResolver) *InstrumentedAddressResolver {
	return &InstrumentedAddressResolver{next: next, name: name}
}

func (r *InstrumentedAddressResolver) Resolve(ctx context.Context, postalCode string) (kernel.Address, error) {
	start := time.Now()
	addr, err := r.next.Resolve(ctx, postalCode)
	ExternalLookupDuration.WithLabelValues(r.name, outcome(err)).Observe(time.Since(start).Seconds())
	return addr, err
}

// InstrumentedDistanceResolver times every distance lookup.
type InstrumentedDistanceResolver struct {
	next ports.DistanceResolver
	name string
}

func NewInstrumentedDistanceResolver(name string, next ports.DistanceResolver) *InstrumentedDistanceResolver {
	return &InstrumentedDistanceResolver{next: next, name: name}
}

func (r *InstrumentedDistanceResolver) Distance(ctx context.Context, origin, destination string) (float64, error) {
	start := time.Now()
	km, err := r.next.Distance(ctx, origin, destination)
	ExternalLookupDuration.WithLabelValues(r.name, outcome(err)).Observe(time.Since(start).Seconds())
	return km, err
}
