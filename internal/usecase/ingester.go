package usecase

import (
	"context"

	"logisticshub-service/internal/domain/entity"
	"logisticshub-service/pkg/logger"
	"logisticshub-service/pkg/metrics"
)

// LiveUpdateIngester translates raw envelopes from a live-update transport
// into tracker operations. Malformed or unrecognized envelopes are dropped
// with a warning; nothing that arrives over the channel can crash it or
// leave a partial write.
type LiveUpdateIngester struct {
	tracker *ShipmentTracker
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewLiveUpdateIngester creates a new ingester dispatching into tracker
func NewLiveUpdateIngester(tracker *ShipmentTracker, logger logger.Logger, metrics *metrics.Metrics) *LiveUpdateIngester {
	return &LiveUpdateIngester{
		tracker: tracker,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle processes one raw envelope from either transport. It always
// returns nil: a bad envelope is dropped here, not redelivered.
func (i *LiveUpdateIngester) Handle(ctx context.Context, raw []byte) error {
	update, err := entity.DecodeLiveUpdate(raw)
	if err != nil {
		i.logger.Warn("dropping malformed live-update envelope", "error", err)
		i.metrics.LiveUpdatesDropped.Inc()
		return nil
	}

	switch update.Kind {
	case entity.UpdateNewShipment:
		if err := i.tracker.ApplyIncomingShipment(ctx, update.Shipment); err != nil {
			i.logger.Warn("dropping invalid incoming shipment", "error", err)
			i.metrics.LiveUpdatesDropped.Inc()
			return nil
		}
	case entity.UpdateStatus:
		if err := i.tracker.ApplyStatusUpdate(ctx, update.TrackingNumber, update.Status); err != nil {
			i.logger.Warn("dropping invalid status update", "error", err, "trackingNumber", update.TrackingNumber)
			i.metrics.LiveUpdatesDropped.Inc()
			return nil
		}
	default:
		i.logger.Warn("dropping unrecognized live-update envelope", "type", update.RawType)
		i.metrics.LiveUpdatesDropped.Inc()
		return nil
	}

	i.metrics.LiveUpdatesApplied.Inc()
	return nil
}
