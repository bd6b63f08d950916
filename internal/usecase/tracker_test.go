package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"logisticshub-service/internal/domain/entity"
	"logisticshub-service/internal/domain/repository"
	kvrepo "logisticshub-service/internal/interface/repository"
	"logisticshub-service/pkg/logger"
	"logisticshub-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetricsWith(prometheus.NewRegistry(), "test")
}

func newTestTracker(store repository.KVStore) *ShipmentTracker {
	return NewShipmentTracker(store, logger.NewNop(), newTestMetrics())
}

// failingStore simulates a completely unreachable backend
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (repository.ReadResult, error) {
	return repository.ReadResult{}, errors.New("store unreachable")
}

func (failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("store unreachable")
}

func TestLoadSeedsOnFirstRun(t *testing.T) {
	store := kvrepo.NewMemoryKVStore()
	tracker := newTestTracker(store)
	ctx := context.Background()

	tracker.Load(ctx)

	shipments := tracker.Shipments()
	if len(shipments) != len(entity.DefaultShipments()) {
		t.Fatalf("expected seed set, got %d shipments", len(shipments))
	}

	// first-run initialization persists the defaults immediately
	result, err := store.Get(ctx, shipmentsKey)
	if err != nil || result.State != repository.ReadOk {
		t.Fatalf("seed not persisted: state=%v err=%v", result.State, err)
	}
}

func TestLoadToleratesUnavailableStore(t *testing.T) {
	tracker := newTestTracker(failingStore{})

	tracker.Load(context.Background())

	if len(tracker.Shipments()) != len(entity.DefaultShipments()) {
		t.Fatal("expected defaults when store is unreachable")
	}
	if len(tracker.Activities(0)) != len(entity.DefaultActivities()) {
		t.Fatal("expected default activities when store is unreachable")
	}
}

func TestCreateShipmentPrependsAndLogsActivity(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)
	seedLen := len(tracker.Shipments())

	created, err := tracker.CreateShipment(ctx, ShipmentInput{
		Origin:            "Denver, CO",
		Destination:       "Miami, FL",
		Carrier:           "FedEx",
		Priority:          entity.PriorityExpress,
		EstimatedDelivery: "Nov 10, 2025",
		Weight:            "2.0 kg",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	shipments := tracker.Shipments()
	if len(shipments) != seedLen+1 {
		t.Fatalf("expected %d shipments, got %d", seedLen+1, len(shipments))
	}
	if shipments[0].ID != created.ID {
		t.Error("new shipment is not first")
	}
	if created.Status != entity.StatusPending {
		t.Errorf("empty status should default to pending, got %s", created.Status)
	}
	if !strings.HasPrefix(created.TrackingNumber, "TRK") || len(created.TrackingNumber) != 12 {
		t.Errorf("unexpected tracking number format: %s", created.TrackingNumber)
	}

	activity := tracker.Activities(1)[0]
	if activity.Type != entity.ActivityShipment {
		t.Errorf("expected shipment activity, got %s", activity.Type)
	}
	if !strings.Contains(activity.Message, "Denver, CO") {
		t.Errorf("activity does not mention origin: %s", activity.Message)
	}
	if activity.Time != entity.TimeJustNow {
		t.Errorf("fresh activity should use the sentinel time, got %s", activity.Time)
	}
}

func TestCreateShipmentValidation(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)
	before := len(tracker.Shipments())

	_, err := tracker.CreateShipment(ctx, ShipmentInput{Destination: "Miami, FL", Carrier: "UPS"})
	if !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if len(tracker.Shipments()) != before {
		t.Error("failed create must not mutate the collection")
	}
	if len(tracker.Activities(0)) != len(entity.DefaultActivities()) {
		t.Error("failed create must not log an activity")
	}
}

func TestCreateOrderingOverSequence(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)
	seedLen := len(tracker.Shipments())

	var ids []string
	for i := 0; i < 5; i++ {
		created, err := tracker.CreateShipment(ctx, ShipmentInput{
			Origin:      "Austin, TX",
			Destination: "Boise, ID",
			Carrier:     "UPS",
		})
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		ids = append(ids, created.ID)
	}

	shipments := tracker.Shipments()
	if len(shipments) != seedLen+5 {
		t.Fatalf("expected %d shipments, got %d", seedLen+5, len(shipments))
	}
	// most recent first: the last created id leads
	for i := 0; i < 5; i++ {
		if shipments[i].ID != ids[4-i] {
			t.Fatalf("position %d holds %s, want %s", i, shipments[i].ID, ids[4-i])
		}
	}
}

func TestDeleteShipmentIsIdempotent(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)
	seedLen := len(tracker.Shipments())
	activityLen := len(tracker.Activities(0))

	var removedID string
	tracker.OnShipmentRemoved(func(id string) { removedID = id })

	tracker.DeleteShipment(ctx, "1")
	if len(tracker.Shipments()) != seedLen-1 {
		t.Fatal("shipment not removed")
	}
	if removedID != "1" {
		t.Errorf("removal hook got %q, want %q", removedID, "1")
	}

	activities := tracker.Activities(0)
	if len(activities) != activityLen+1 {
		t.Fatalf("expected one alert activity, got %d new", len(activities)-activityLen)
	}
	if activities[0].Type != entity.ActivityAlert {
		t.Errorf("expected alert activity, got %s", activities[0].Type)
	}
	if !strings.Contains(activities[0].Message, "New York, NY") || !strings.Contains(activities[0].Message, "Los Angeles, CA") {
		t.Errorf("alert does not name the route: %s", activities[0].Message)
	}

	// second delete of the same id: no-op, no error, no extra activity
	tracker.DeleteShipment(ctx, "1")
	if len(tracker.Shipments()) != seedLen-1 {
		t.Error("second delete changed the collection")
	}
	if len(tracker.Activities(0)) != activityLen+1 {
		t.Error("second delete logged an activity")
	}
}

func TestApplyStatusUpdateChangesOnlyStatus(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)

	var before entity.Shipment
	for _, s := range tracker.Shipments() {
		if s.TrackingNumber == "TRK001234567" {
			before = s
		}
	}

	if err := tracker.ApplyStatusUpdate(ctx, "TRK001234567", entity.StatusDelayed); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	var after entity.Shipment
	for _, s := range tracker.Shipments() {
		if s.TrackingNumber == "TRK001234567" {
			after = s
		}
	}

	if after.Status != entity.StatusDelayed {
		t.Fatalf("status not updated: %s", after.Status)
	}
	before.Status = entity.StatusDelayed
	if !reflect.DeepEqual(before, after) {
		t.Errorf("fields other than status changed: %+v vs %+v", before, after)
	}

	activity := tracker.Activities(1)[0]
	if activity.Type != entity.ActivityAlert {
		t.Errorf("expected alert activity, got %s", activity.Type)
	}
	if !strings.Contains(activity.Message, "TRK001234567") || !strings.Contains(activity.Message, "delayed") {
		t.Errorf("activity does not mention shipment and new status: %s", activity.Message)
	}
}

func TestApplyStatusUpdateDelivered(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)

	if err := tracker.ApplyStatusUpdate(ctx, "TRK001234567", entity.StatusDelivered); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	activity := tracker.Activities(1)[0]
	if activity.Type != entity.ActivityDelivery {
		t.Errorf("delivered transition should log a delivery activity, got %s", activity.Type)
	}
	if !strings.Contains(activity.Message, "Los Angeles, CA") {
		t.Errorf("delivery activity does not name the destination: %s", activity.Message)
	}
}

func TestApplyStatusUpdateUnknownTrackingNumber(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)
	activityLen := len(tracker.Activities(0))

	if err := tracker.ApplyStatusUpdate(ctx, "TRK999999999", entity.StatusDelayed); err != nil {
		t.Fatalf("unknown tracking number must be a no-op, got %v", err)
	}
	if len(tracker.Activities(0)) != activityLen {
		t.Error("no-op update logged an activity")
	}
}

func TestApplyStatusUpdateInvalidStatus(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)

	err := tracker.ApplyStatusUpdate(ctx, "TRK001234567", "lost")
	if !errors.Is(err, entity.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestApplyStatusUpdateMatchesAllDuplicates(t *testing.T) {
	store := kvrepo.NewMemoryKVStore()
	tracker := newTestTracker(store)
	ctx := context.Background()
	tracker.Load(ctx)

	// two externally sourced shipments sharing a tracking number
	for _, id := range []string{"dup-1", "dup-2"} {
		shipment := entity.Shipment{
			ID:             id,
			TrackingNumber: "TRK777000111",
			Origin:         "Reno, NV",
			Destination:    "Omaha, NE",
			Status:         entity.StatusPending,
			Carrier:        "DHL",
			Priority:       entity.PriorityStandard,
		}
		if err := tracker.ApplyIncomingShipment(ctx, shipment); err != nil {
			t.Fatalf("incoming shipment failed: %v", err)
		}
	}

	if err := tracker.ApplyStatusUpdate(ctx, "TRK777000111", entity.StatusInTransit); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	for _, s := range tracker.Shipments() {
		if s.TrackingNumber == "TRK777000111" && s.Status != entity.StatusInTransit {
			t.Errorf("duplicate %s not updated", s.ID)
		}
	}
}

func TestApplyIncomingShipmentIsIdempotentByID(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)
	seedLen := len(tracker.Shipments())

	shipment := entity.Shipment{
		ID:             "ext-42",
		TrackingNumber: "TRK555000222",
		Origin:         "Tulsa, OK",
		Destination:    "Fargo, ND",
		Status:         entity.StatusInTransit,
		Carrier:        "FedEx",
		Priority:       entity.PriorityOvernight,
	}

	if err := tracker.ApplyIncomingShipment(ctx, shipment); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if err := tracker.ApplyIncomingShipment(ctx, shipment); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	if len(tracker.Shipments()) != seedLen+1 {
		t.Fatalf("replayed push duplicated the shipment: %d", len(tracker.Shipments()))
	}
	if tracker.Shipments()[0].ID != "ext-42" {
		t.Error("incoming shipment is not first")
	}
}

func TestApplyIncomingShipmentValidation(t *testing.T) {
	tracker := newTestTracker(kvrepo.NewMemoryKVStore())
	ctx := context.Background()
	tracker.Load(ctx)
	before := len(tracker.Shipments())

	err := tracker.ApplyIncomingShipment(ctx, entity.Shipment{
		TrackingNumber: "TRK555000333",
		Origin:         "Tulsa, OK",
		Destination:    "Fargo, ND",
		Status:         entity.StatusPending,
		Carrier:        "UPS",
		Priority:       entity.PriorityStandard,
	})
	if !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for missing id, got %v", err)
	}
	if len(tracker.Shipments()) != before {
		t.Error("rejected shipment mutated the collection")
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	store := kvrepo.NewMemoryKVStore()
	ctx := context.Background()

	first := newTestTracker(store)
	first.Load(ctx)
	if _, err := first.CreateShipment(ctx, ShipmentInput{
		Origin:      "Denver, CO",
		Destination: "Miami, FL",
		Carrier:     "FedEx",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	first.DeleteShipment(ctx, "3")

	second := newTestTracker(store)
	second.Load(ctx)

	if !reflect.DeepEqual(first.Shipments(), second.Shipments()) {
		t.Error("shipments did not round trip through the store")
	}
	if !reflect.DeepEqual(first.Activities(0), second.Activities(0)) {
		t.Error("activities did not round trip through the store")
	}
}

func TestLoadReseedsOnMalformedStoredValue(t *testing.T) {
	store := kvrepo.NewMemoryKVStore()
	ctx := context.Background()
	if err := store.Set(ctx, shipmentsKey, `{definitely not a list`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	tracker := newTestTracker(store)
	tracker.Load(ctx)

	if len(tracker.Shipments()) != len(entity.DefaultShipments()) {
		t.Fatal("malformed stored value should reseed defaults")
	}

	result, err := store.Get(ctx, shipmentsKey)
	if err != nil || result.State != repository.ReadOk {
		t.Fatalf("reseeded defaults not persisted: state=%v err=%v", result.State, err)
	}
}
