package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"logisticshub-service/internal/domain/entity"
	"logisticshub-service/internal/usecase"
	"logisticshub-service/pkg/logger"
)

// Handler exposes the dashboard-facing REST interface. It renders nothing
// itself; the UI consumes these endpoints.
type Handler struct {
	tracker *usecase.ShipmentTracker
	logger  logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(tracker *usecase.ShipmentTracker, logger logger.Logger) *Handler {
	return &Handler{
		tracker: tracker,
		logger:  logger,
	}
}

// Register mounts the API routes on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/stats", h.getStats)
	mux.HandleFunc("GET /api/shipments", h.listShipments)
	mux.HandleFunc("POST /api/shipments", h.createShipment)
	mux.HandleFunc("DELETE /api/shipments/{id}", h.deleteShipment)
	mux.HandleFunc("GET /api/shipments/{id}/tracking", h.getTracking)
	mux.HandleFunc("GET /api/activities", h.listActivities)
}

// shipmentListResponse distinguishes "no match" (empty items with a non-zero
// total) from "no data loaded" (total zero)
type shipmentListResponse struct {
	Items []entity.Shipment `json:"items"`
	Total int               `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats := usecase.ComputeStats(h.tracker.Shipments())
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	snapshot := h.tracker.Shipments()
	items := usecase.FilterShipments(snapshot, query.Get("tab"), query.Get("status"), query.Get("search"))

	writeJSON(w, http.StatusOK, shipmentListResponse{
		Items: items,
		Total: len(snapshot),
	})
}

func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var input usecase.ShipmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	shipment, err := h.tracker.CreateShipment(r.Context(), input)
	if err != nil {
		if errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidValue) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("failed to create shipment", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, shipment)
}

func (h *Handler) deleteShipment(w http.ResponseWriter, r *http.Request) {
	// Delete is idempotent; an unknown id still answers 204
	h.tracker.DeleteShipment(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTracking(w http.ResponseWriter, r *http.Request) {
	shipment, ok := h.tracker.FindShipment(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "shipment not found"})
		return
	}
	writeJSON(w, http.StatusOK, usecase.TrackingEvents(shipment))
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}
	writeJSON(w, http.StatusOK, h.tracker.Activities(limit))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
