package metrics

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// InstrumentedNotifier counts workflow outcomes. The workflow notifies exactly once per
// committed creation or status append, so the calls double as business counters.
type InstrumentedNotifier struct {
	next ports.NotificationPort
}

func NewInstrumentedNotifier(next ports.NotificationPort) *InstrumentedNotifier {
	return &InstrumentedNotifier{next: next}
}

func (n *InstrumentedNotifier) NotifyCreated(ctx context.Context, s *shipment.Shipment) error {
	ShipmentsCreatedTotal.Inc()
	return n.next.NotifyCreated(ctx, s)
}

func (n *InstrumentedNotifier) NotifyStatusChanged(
	ctx context.Context,
	s *shipment.Shipment,
	entry shipment.StatusEntry,
) error {
	StatusUpdatesTotal.Inc()
	return n.next.NotifyStatusChanged(ctx, s, entry)
}
