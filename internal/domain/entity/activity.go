// internal/domain/entity/activity.go
package entity

// ActivityType classifies an activity-log entry
type ActivityType string

const (
	ActivityShipment ActivityType = "shipment"
	ActivityDelivery ActivityType = "delivery"
	ActivityAlert    ActivityType = "alert"
)

// TimeJustNow is the display label given to freshly created entries instead
// of a computed relative time
const TimeJustNow = "Just now"

// Activity is an append-only audit entry describing a state change. Entries
// reference shipments only through the tracking number embedded in the
// message text; there is no structural foreign key.
type Activity struct {
	ID      string       `json:"id"`
	Type    ActivityType `json:"type"`
	Message string       `json:"message"`
	Time    string       `json:"time"`
}
