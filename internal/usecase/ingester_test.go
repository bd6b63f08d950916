package usecase

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"logisticshub-service/internal/domain/entity"
	kvrepo "logisticshub-service/internal/interface/repository"
	"logisticshub-service/pkg/logger"
)

func newTestIngester(t *testing.T) (*LiveUpdateIngester, *ShipmentTracker) {
	t.Helper()
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	tracker.Load(context.Background())
	m := newTestMetrics()
	return NewLiveUpdateIngester(tracker, logger.NewNop(), m), tracker
}

func TestIngesterAppliesStatusUpdate(t *testing.T) {
	ingester, tracker := newTestIngester(t)
	ctx := context.Background()

	raw := []byte(`{"type":"status-update","trackingNumber":"TRK001234567","status":"delayed"}`)
	if err := ingester.Handle(ctx, raw); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	for _, s := range tracker.Shipments() {
		if s.TrackingNumber == "TRK001234567" && s.Status != entity.StatusDelayed {
			t.Fatalf("status not applied: %s", s.Status)
		}
	}

	activity := tracker.Activities(1)[0]
	if activity.Type != entity.ActivityAlert {
		t.Errorf("expected alert activity, got %s", activity.Type)
	}
	if !strings.Contains(activity.Message, "TRK001234567") || !strings.Contains(activity.Message, "delayed") {
		t.Errorf("activity does not mention the transition: %s", activity.Message)
	}
}

func TestIngesterAppliesNewShipment(t *testing.T) {
	ingester, tracker := newTestIngester(t)
	before := len(tracker.Shipments())

	raw := []byte(`{
		"type": "new-shipment",
		"shipment": {
			"id": "ext-7",
			"trackingNumber": "TRK444000555",
			"origin": "Madison, WI",
			"destination": "Salem, OR",
			"status": "in-transit",
			"carrier": "DHL",
			"estimatedDelivery": "Nov 14, 2025",
			"weight": "3.3 kg",
			"priority": "express"
		}
	}`)
	if err := ingester.Handle(context.Background(), raw); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	shipments := tracker.Shipments()
	if len(shipments) != before+1 {
		t.Fatalf("expected %d shipments, got %d", before+1, len(shipments))
	}
	if shipments[0].ID != "ext-7" {
		t.Error("incoming shipment is not first")
	}
}

func TestIngesterDropsUnrecognizedEnvelope(t *testing.T) {
	ingester, tracker := newTestIngester(t)
	shipmentsBefore := tracker.Shipments()
	activitiesBefore := tracker.Activities(0)

	if err := ingester.Handle(context.Background(), []byte(`{"type":"unknown"}`)); err != nil {
		t.Fatalf("drop must not return an error, got %v", err)
	}

	if !reflect.DeepEqual(shipmentsBefore, tracker.Shipments()) {
		t.Error("unrecognized envelope changed the shipment collection")
	}
	if !reflect.DeepEqual(activitiesBefore, tracker.Activities(0)) {
		t.Error("unrecognized envelope logged an activity")
	}
}

func TestIngesterDropsMalformedPayload(t *testing.T) {
	ingester, tracker := newTestIngester(t)
	before := tracker.Shipments()

	if err := ingester.Handle(context.Background(), []byte(`%%%`)); err != nil {
		t.Fatalf("drop must not return an error, got %v", err)
	}
	if !reflect.DeepEqual(before, tracker.Shipments()) {
		t.Error("malformed payload changed the collection")
	}
}

func TestIngesterDropsInvalidIncomingShipment(t *testing.T) {
	ingester, tracker := newTestIngester(t)
	before := len(tracker.Shipments())

	// missing origin fails validation before any mutation
	raw := []byte(`{
		"type": "new-shipment",
		"shipment": {
			"id": "ext-8",
			"trackingNumber": "TRK444000556",
			"destination": "Salem, OR",
			"status": "pending",
			"carrier": "DHL",
			"priority": "standard"
		}
	}`)
	if err := ingester.Handle(context.Background(), raw); err != nil {
		t.Fatalf("drop must not return an error, got %v", err)
	}
	if len(tracker.Shipments()) != before {
		t.Error("invalid incoming shipment mutated the collection")
	}
}
