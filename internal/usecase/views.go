package usecase

import (
	"strings"

	"logisticshub-service/internal/domain/entity"
)

// FilterAll is the tab/status value that applies no restriction
const FilterAll = "all"

// Stats are the aggregate counters shown on the dashboard cards
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	InTransit int `json:"inTransit"`
	Delivered int `json:"delivered"`
	Delayed   int `json:"delayed"`
}

// ComputeStats derives the aggregate counters from a shipment snapshot
func ComputeStats(shipments []entity.Shipment) Stats {
	stats := Stats{Total: len(shipments)}
	for _, s := range shipments {
		switch s.Status {
		case entity.StatusPending:
			stats.Pending++
		case entity.StatusInTransit:
			stats.InTransit++
		case entity.StatusDelivered:
			stats.Delivered++
		case entity.StatusDelayed:
			stats.Delayed++
		}
	}
	return stats
}

// FilterShipments applies the tab filter, the status filter and the text
// search in order, composed by logical AND. Input order is preserved;
// filtering never re-sorts. An empty value or FilterAll applies no
// restriction for that stage.
func FilterShipments(shipments []entity.Shipment, tab, statusFilter, search string) []entity.Shipment {
	filtered := make([]entity.Shipment, 0, len(shipments))
	term := strings.ToLower(strings.TrimSpace(search))

	for _, s := range shipments {
		if !matchesStatus(s, tab) {
			continue
		}
		if !matchesStatus(s, statusFilter) {
			continue
		}
		if term != "" && !matchesSearch(s, term) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

func matchesStatus(s entity.Shipment, filter string) bool {
	if filter == "" || filter == FilterAll {
		return true
	}
	return string(s.Status) == filter
}

// matchesSearch reports whether any of tracking number, origin or
// destination contains the lowercased term
func matchesSearch(s entity.Shipment, term string) bool {
	return strings.Contains(strings.ToLower(s.TrackingNumber), term) ||
		strings.Contains(strings.ToLower(s.Origin), term) ||
		strings.Contains(strings.ToLower(s.Destination), term)
}
