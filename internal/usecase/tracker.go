package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"logisticshub-service/internal/domain/entity"
	"logisticshub-service/internal/domain/repository"
	"logisticshub-service/pkg/logger"
	"logisticshub-service/pkg/metrics"
	"logisticshub-service/pkg/utils"
	"logisticshub-service/templates"
)

// Persisted keys for the two collections
const (
	shipmentsKey  = "logisticshub:shipments"
	activitiesKey = "logisticshub:activities"
)

// ShipmentTracker is the single source of truth for the shipment and
// activity collections. Every mutation derives the next state from the
// current in-memory state under one writer lock and persists both
// collections immediately afterwards. Persistence failures never roll back
// the in-memory mutation; they are logged and counted.
type ShipmentTracker struct {
	mu         sync.Mutex
	shipments  []entity.Shipment
	activities []entity.Activity

	store   repository.KVStore
	logger  logger.Logger
	metrics *metrics.Metrics

	onRemoved func(id string)
}

// NewShipmentTracker creates a new tracker backed by the given store
func NewShipmentTracker(store repository.KVStore, logger logger.Logger, metrics *metrics.Metrics) *ShipmentTracker {
	return &ShipmentTracker{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// OnShipmentRemoved registers a hook invoked after a shipment is deleted, so
// the presentation layer can close a details view that was open on it
func (t *ShipmentTracker) OnShipmentRemoved(fn func(id string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRemoved = fn
}

// Load hydrates both collections from the store. A missing or unusable
// collection is seeded with the built-in defaults, which are persisted
// immediately. An unreachable store degrades to in-memory-only operation.
func (t *ShipmentTracker) Load(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.shipments = entity.DefaultShipments()
	t.activities = entity.DefaultActivities()

	result, err := t.store.Get(ctx, shipmentsKey)
	switch {
	case err != nil:
		t.logger.Warn("shipment store unavailable, running with defaults", "error", err)
		t.metrics.StoreErrors.WithLabelValues("get_shipments").Inc()
	case result.State == repository.ReadOk:
		var stored []entity.Shipment
		if uerr := json.Unmarshal([]byte(result.Raw), &stored); uerr != nil {
			t.logger.Warn("stored shipments are not a shipment list, reseeding", "error", uerr)
			t.persistShipmentsLocked(ctx)
		} else {
			t.shipments = stored
		}
	case result.State == repository.ReadMalformed:
		t.logger.Warn("stored shipments malformed, reseeding", "raw_length", len(result.Raw))
		t.persistShipmentsLocked(ctx)
	default:
		t.persistShipmentsLocked(ctx)
	}

	result, err = t.store.Get(ctx, activitiesKey)
	switch {
	case err != nil:
		t.logger.Warn("activity store unavailable, running with defaults", "error", err)
		t.metrics.StoreErrors.WithLabelValues("get_activities").Inc()
	case result.State == repository.ReadOk:
		var stored []entity.Activity
		if uerr := json.Unmarshal([]byte(result.Raw), &stored); uerr != nil {
			t.logger.Warn("stored activities are not an activity list, reseeding", "error", uerr)
			t.persistActivitiesLocked(ctx)
		} else {
			t.activities = stored
		}
	case result.State == repository.ReadMalformed:
		t.logger.Warn("stored activities malformed, reseeding", "raw_length", len(result.Raw))
		t.persistActivitiesLocked(ctx)
	default:
		t.persistActivitiesLocked(ctx)
	}

	t.logger.Info("collections hydrated",
		"shipments", len(t.shipments),
		"activities", len(t.activities))
}

// ShipmentInput carries the form fields accepted when creating a shipment
type ShipmentInput struct {
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	Carrier           string          `json:"carrier"`
	Status            entity.Status   `json:"status"`
	Priority          entity.Priority `json:"priority"`
	EstimatedDelivery string          `json:"estimatedDelivery"`
	Weight            string          `json:"weight"`
}

// CreateShipment assigns an id and tracking number, prepends the shipment,
// logs a shipment activity and persists both collections
func (t *ShipmentTracker) CreateShipment(ctx context.Context, input ShipmentInput) (entity.Shipment, error) {
	shipment := entity.Shipment{
		ID:                utils.NewShipmentID(),
		TrackingNumber:    utils.NewTrackingNumber(),
		Origin:            input.Origin,
		Destination:       input.Destination,
		Carrier:           input.Carrier,
		Status:            input.Status,
		Priority:          input.Priority,
		EstimatedDelivery: input.EstimatedDelivery,
		Weight:            input.Weight,
	}
	if shipment.Status == "" {
		shipment.Status = entity.StatusPending
	}
	if shipment.Priority == "" {
		shipment.Priority = entity.PriorityStandard
	}
	if err := shipment.ValidateNew(); err != nil {
		return entity.Shipment{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.shipments = append([]entity.Shipment{shipment}, t.shipments...)
	t.persistShipmentsLocked(ctx)
	t.appendActivityLocked(ctx, entity.ActivityShipment, templates.ShipmentCreated(shipment))
	t.metrics.MutationsTotal.WithLabelValues("create").Inc()

	t.logger.Info("shipment created",
		"id", shipment.ID,
		"trackingNumber", shipment.TrackingNumber)
	return shipment, nil
}

// DeleteShipment removes the shipment with the given id. Deletion is
// destructive and irreversible; confirming with the user is the caller's
// responsibility. Deleting an unknown id is a no-op.
func (t *ShipmentTracker) DeleteShipment(ctx context.Context, id string) {
	t.mu.Lock()

	var removed *entity.Shipment
	next := make([]entity.Shipment, 0, len(t.shipments))
	for _, s := range t.shipments {
		if s.ID == id && removed == nil {
			copied := s
			removed = &copied
			continue
		}
		next = append(next, s)
	}

	if removed == nil {
		t.mu.Unlock()
		t.logger.Debug("delete for unknown shipment id", "id", id)
		return
	}

	t.shipments = next
	t.persistShipmentsLocked(ctx)
	t.appendActivityLocked(ctx, entity.ActivityAlert, templates.ShipmentRemoved(*removed))
	t.metrics.MutationsTotal.WithLabelValues("delete").Inc()
	hook := t.onRemoved
	t.mu.Unlock()

	t.logger.Info("shipment removed", "id", id, "trackingNumber", removed.TrackingNumber)
	if hook != nil {
		hook(id)
	}
}

// ApplyStatusUpdate overwrites the status of every shipment matching the
// tracking number. Tracking numbers are expected unique but not enforced, so
// all matches are updated explicitly rather than silently picking one.
// An unknown tracking number is a no-op.
func (t *ShipmentTracker) ApplyStatusUpdate(ctx context.Context, trackingNumber string, status entity.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", entity.ErrInvalidValue, status)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var updated []entity.Shipment
	for i := range t.shipments {
		if t.shipments[i].TrackingNumber == trackingNumber {
			t.shipments[i].Status = status
			updated = append(updated, t.shipments[i])
		}
	}

	if len(updated) == 0 {
		t.logger.Debug("status update for unknown tracking number", "trackingNumber", trackingNumber)
		return nil
	}

	t.persistShipmentsLocked(ctx)
	for _, s := range updated {
		if status == entity.StatusDelivered {
			t.appendActivityLocked(ctx, entity.ActivityDelivery, templates.ShipmentDelivered(s))
		} else {
			t.appendActivityLocked(ctx, entity.ActivityAlert, templates.StatusChanged(s))
		}
	}
	t.metrics.MutationsTotal.WithLabelValues("status_update").Inc()

	t.logger.Info("status updated",
		"trackingNumber", trackingNumber,
		"status", status,
		"matches", len(updated))
	return nil
}

// ApplyIncomingShipment prepends a fully-formed shipment pushed over the
// live channel. Ids arrive pre-assigned, so an id already in the collection
// means the push was applied before and the call is a no-op.
func (t *ShipmentTracker) ApplyIncomingShipment(ctx context.Context, shipment entity.Shipment) error {
	if err := shipment.ValidateIncoming(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.shipments {
		if s.ID == shipment.ID {
			t.logger.Debug("incoming shipment already applied", "id", shipment.ID)
			return nil
		}
	}

	t.shipments = append([]entity.Shipment{shipment}, t.shipments...)
	t.persistShipmentsLocked(ctx)
	t.appendActivityLocked(ctx, entity.ActivityShipment, templates.ShipmentCreated(shipment))
	t.metrics.MutationsTotal.WithLabelValues("incoming").Inc()

	t.logger.Info("incoming shipment applied",
		"id", shipment.ID,
		"trackingNumber", shipment.TrackingNumber)
	return nil
}

// Shipments returns a read snapshot of the collection, most recent first
func (t *ShipmentTracker) Shipments() []entity.Shipment {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]entity.Shipment, len(t.shipments))
	copy(out, t.shipments)
	return out
}

// FindShipment returns the shipment with the given id
func (t *ShipmentTracker) FindShipment(id string) (entity.Shipment, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.shipments {
		if s.ID == id {
			return s, true
		}
	}
	return entity.Shipment{}, false
}

// Activities returns a read snapshot of the most recent entries. The cap
// applies to display only; storage keeps everything. A non-positive limit
// returns the full log.
func (t *ShipmentTracker) Activities(limit int) []entity.Activity {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.activities)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]entity.Activity, n)
	copy(out, t.activities[:n])
	return out
}

// appendActivityLocked prepends a freshly stamped entry and persists the
// activity log. Callers hold the tracker lock.
func (t *ShipmentTracker) appendActivityLocked(ctx context.Context, typ entity.ActivityType, message string) {
	activity := entity.Activity{
		ID:      utils.NewActivityID(),
		Type:    typ,
		Message: message,
		Time:    entity.TimeJustNow,
	}
	t.activities = append([]entity.Activity{activity}, t.activities...)
	t.persistActivitiesLocked(ctx)
}

func (t *ShipmentTracker) persistShipmentsLocked(ctx context.Context) {
	encoded, err := json.Marshal(t.shipments)
	if err != nil {
		t.logger.Error("failed to encode shipments", "error", err)
		return
	}
	if err := t.store.Set(ctx, shipmentsKey, string(encoded)); err != nil {
		t.logger.Error("failed to persist shipments", "error", err)
		t.metrics.StoreErrors.WithLabelValues("set_shipments").Inc()
	}
}

func (t *ShipmentTracker) persistActivitiesLocked(ctx context.Context) {
	encoded, err := json.Marshal(t.activities)
	if err != nil {
		t.logger.Error("failed to encode activities", "error", err)
		return
	}
	if err := t.store.Set(ctx, activitiesKey, string(encoded)); err != nil {
		t.logger.Error("failed to persist activities", "error", err)
		t.metrics.StoreErrors.WithLabelValues("set_activities").Inc()
	}
}
