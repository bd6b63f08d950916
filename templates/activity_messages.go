package templates

import (
	"fmt"

	"logisticshub-service/internal/domain/entity"
)

// Activity messages are rendered deterministically from the triggering
// shipment so the same event always produces the same text. The tracking
// number embedded here is the only link between an activity entry and its
// shipment.

// ShipmentCreated renders the message for a newly created or newly received
// shipment
func ShipmentCreated(s entity.Shipment) string {
	return fmt.Sprintf("New shipment %s created from %s", s.TrackingNumber, s.Origin)
}

// ShipmentRemoved renders the message for a deleted shipment, naming its
// route
func ShipmentRemoved(s entity.Shipment) string {
	return fmt.Sprintf("Shipment %s from %s to %s removed", s.TrackingNumber, s.Origin, s.Destination)
}

// ShipmentDelivered renders the message for a shipment that reached its
// destination
func ShipmentDelivered(s entity.Shipment) string {
	return fmt.Sprintf("Shipment %s delivered to %s", s.TrackingNumber, s.Destination)
}

// StatusChanged renders the message for any other status transition. The
// shipment already carries the new status.
func StatusChanged(s entity.Shipment) string {
	return fmt.Sprintf("Shipment %s status changed to %s", s.TrackingNumber, s.Status)
}
