package notification

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/shipment"
)

// LogSink writes notifications to the log. Used when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "notification_log_sink")}
}

func (l *LogSink) NotifyCreated(ctx context.Context, s *shipment.Shipment) error {
	l.logger.InfoContext(ctx, "shipment created notification",
		"tracking_code", s.TrackingCode().String(),
		"customer_email", s.CustomerEmail(),
		"status", s.LatestStatus().Status())
	return nil
}

func (l *LogSink) NotifyStatusChanged(ctx context.Context, s *shipment.Shipment, entry shipment.StatusEntry) error {
	l.logger.InfoContext(ctx, "shipment status changed notification",
		"tracking_code", s.TrackingCode().String(),
		"customer_email", s.CustomerEmail(),
		"status", entry.Status(),
		"source", entry.Source(),
		"destination", entry.Destination())
	return nil
}
