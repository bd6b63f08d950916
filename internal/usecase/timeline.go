package usecase

import "logisticshub-service/internal/domain/entity"

// RegionalHub is the fixed intermediate stop label used in derived timelines
const RegionalHub = "Regional Hub"

// TrackingEvents derives the tracking timeline for a shipment from its
// status, route and estimated delivery. The derivation is pure: the same
// shipment always yields the same events, and nothing is stored.
func TrackingEvents(s entity.Shipment) []entity.TimelineEvent {
	events := []entity.TimelineEvent{
		{
			Timestamp:   "2025-11-01 09:00 AM",
			Location:    s.Origin,
			Status:      "Order Placed",
			Description: "Package received at origin facility",
			Completed:   true,
		},
		{
			Timestamp:   "2025-11-01 02:30 PM",
			Location:    s.Origin,
			Status:      "Processing",
			Description: "Package sorted and prepared for shipment",
			Completed:   true,
		},
	}

	if s.Status == entity.StatusInTransit || s.Status == entity.StatusDelivered || s.Status == entity.StatusDelayed {
		events = append(events, entity.TimelineEvent{
			Timestamp:   "2025-11-02 08:15 AM",
			Location:    RegionalHub,
			Status:      "In Transit",
			Description: "Package in transit to destination",
			Completed:   true,
		})
	}

	switch s.Status {
	case entity.StatusDelivered:
		events = append(events,
			entity.TimelineEvent{
				Timestamp:   "2025-11-03 11:45 AM",
				Location:    s.Destination,
				Status:      "Out for Delivery",
				Description: "Package out for delivery",
				Completed:   true,
			},
			entity.TimelineEvent{
				Timestamp:   "2025-11-03 02:20 PM",
				Location:    s.Destination,
				Status:      "Delivered",
				Description: "Package delivered successfully",
				Completed:   true,
			})
	case entity.StatusDelayed:
		events = append(events,
			entity.TimelineEvent{
				Timestamp:   "2025-11-03 09:00 AM",
				Location:    RegionalHub,
				Status:      "Delayed",
				Description: "Package delayed due to weather conditions",
				Completed:   true,
			},
			pendingEvent(s))
	default:
		// pending and in-transit both end on the expected-delivery step
		events = append(events, pendingEvent(s))
	}

	return events
}

func pendingEvent(s entity.Shipment) entity.TimelineEvent {
	return entity.TimelineEvent{
		Timestamp:   "Expected: " + s.EstimatedDelivery,
		Location:    s.Destination,
		Status:      "Pending",
		Description: "Estimated delivery",
		Completed:   false,
	}
}
