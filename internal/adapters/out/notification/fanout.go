package notification

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// Fanout delivers every notification to all sinks. A failing sink does not stop the
// others; the errors are joined.
type Fanout struct {
	sinks []ports.NotificationPort
}

func NewFanout(sinks ...ports.NotificationPort) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) NotifyCreated(ctx context.Context, s *shipment.Shipment) error {
	var err error
	for _, sink := range f.sinks {
		err = errors.Join(err, sink.NotifyCreated(ctx, s))
	}
	return err
}

func (f *Fanout) NotifyStatusChanged(ctx context.Context, s *shipment.Shipment, entry shipment.StatusEntry) error {
	var err error
	for _, sink := range f.sinks {
		err = errors.Join(err, sink.NotifyStatusChanged(ctx, s, entry))
	}
	return err
}
