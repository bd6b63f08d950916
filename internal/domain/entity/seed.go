// internal/domain/entity/seed.go
package entity

// DefaultShipments returns the built-in shipment set used to seed the
// collection on first run or when the stored copy is unusable. Callers get a
// fresh copy each time.
func DefaultShipments() []Shipment {
	return []Shipment{
		{
			ID:                "1",
			TrackingNumber:    "TRK001234567",
			Origin:            "New York, NY",
			Destination:       "Los Angeles, CA",
			Status:            StatusInTransit,
			Carrier:           "FedEx",
			EstimatedDelivery: "Nov 5, 2025",
			Weight:            "5.2 kg",
			Priority:          PriorityExpress,
		},
		{
			ID:                "2",
			TrackingNumber:    "TRK001234568",
			Origin:            "Chicago, IL",
			Destination:       "Houston, TX",
			Status:            StatusDelivered,
			Carrier:           "UPS",
			EstimatedDelivery: "Nov 3, 2025",
			Weight:            "3.8 kg",
			Priority:          PriorityStandard,
		},
		{
			ID:                "3",
			TrackingNumber:    "TRK001234569",
			Origin:            "Seattle, WA",
			Destination:       "Miami, FL",
			Status:            StatusPending,
			Carrier:           "DHL",
			EstimatedDelivery: "Nov 7, 2025",
			Weight:            "12.5 kg",
			Priority:          PriorityOvernight,
		},
		{
			ID:                "4",
			TrackingNumber:    "TRK001234570",
			Origin:            "Boston, MA",
			Destination:       "Denver, CO",
			Status:            StatusInTransit,
			Carrier:           "FedEx",
			EstimatedDelivery: "Nov 6, 2025",
			Weight:            "7.1 kg",
			Priority:          PriorityExpress,
		},
		{
			ID:                "5",
			TrackingNumber:    "TRK001234571",
			Origin:            "Phoenix, AZ",
			Destination:       "Atlanta, GA",
			Status:            StatusDelayed,
			Carrier:           "UPS",
			EstimatedDelivery: "Nov 8, 2025",
			Weight:            "4.3 kg",
			Priority:          PriorityStandard,
		},
		{
			ID:                "6",
			TrackingNumber:    "TRK001234572",
			Origin:            "San Francisco, CA",
			Destination:       "Portland, OR",
			Status:            StatusDelivered,
			Carrier:           "DHL",
			EstimatedDelivery: "Nov 2, 2025",
			Weight:            "2.9 kg",
			Priority:          PriorityOvernight,
		},
		{
			ID:                "7",
			TrackingNumber:    "TRK001234573",
			Origin:            "Dallas, TX",
			Destination:       "Philadelphia, PA",
			Status:            StatusInTransit,
			Carrier:           "FedEx",
			EstimatedDelivery: "Nov 5, 2025",
			Weight:            "8.7 kg",
			Priority:          PriorityExpress,
		},
		{
			ID:                "8",
			TrackingNumber:    "TRK001234574",
			Origin:            "Las Vegas, NV",
			Destination:       "Charlotte, NC",
			Status:            StatusPending,
			Carrier:           "UPS",
			EstimatedDelivery: "Nov 9, 2025",
			Weight:            "6.4 kg",
			Priority:          PriorityStandard,
		},
	}
}

// DefaultActivities returns the built-in activity log used on first run,
// most recent first.
func DefaultActivities() []Activity {
	return []Activity{
		{
			ID:      "1",
			Type:    ActivityDelivery,
			Message: "Shipment TRK001234568 delivered to Houston, TX",
			Time:    "2 hours ago",
		},
		{
			ID:      "2",
			Type:    ActivityAlert,
			Message: "Shipment TRK001234571 delayed due to weather conditions",
			Time:    "4 hours ago",
		},
		{
			ID:      "3",
			Type:    ActivityShipment,
			Message: "New shipment TRK001234574 created from Las Vegas, NV",
			Time:    "5 hours ago",
		},
		{
			ID:      "4",
			Type:    ActivityDelivery,
			Message: "Shipment TRK001234572 delivered to Portland, OR",
			Time:    "1 day ago",
		},
		{
			ID:      "5",
			Type:    ActivityShipment,
			Message: "Shipment TRK001234573 in transit from Dallas, TX",
			Time:    "1 day ago",
		},
	}
}
