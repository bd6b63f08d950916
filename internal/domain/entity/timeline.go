// internal/domain/entity/timeline.go
package entity

// TimelineEvent is one derived step in a shipment's tracking history. Events
// are never stored; they are recomputed from the shipment on every view.
type TimelineEvent struct {
	Timestamp   string `json:"timestamp"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
