package ports

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
)

// NotificationPort tells the customer about their shipment. The workflow treats every
// call as best effort: errors are logged and never undo the persisted change.
type NotificationPort interface {
	NotifyCreated(ctx context.Context, s *shipment.Shipment) error
	NotifyStatusChanged(ctx context.Context, s *shipment.Shipment, entry shipment.StatusEntry) error
}
