// internal/domain/entity/shipment.go
package entity

import (
	"errors"
	"fmt"
)

// Status is the operational state of a shipment, the only field that changes
// after creation
type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in-transit"
	StatusDelivered Status = "delivered"
	StatusDelayed   Status = "delayed"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusDelayed:
		return true
	}
	return false
}

// Priority is the service level of a shipment, immutable after creation
type Priority string

const (
	PriorityStandard  Priority = "standard"
	PriorityExpress   Priority = "express"
	PriorityOvernight Priority = "overnight"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityStandard, PriorityExpress, PriorityOvernight:
		return true
	}
	return false
}

// Shipment represents a tracked parcel
type Shipment struct {
	ID                string   `json:"id"`
	TrackingNumber    string   `json:"trackingNumber"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	Status            Status   `json:"status"`
	Carrier           string   `json:"carrier"`
	EstimatedDelivery string   `json:"estimatedDelivery"`
	Weight            string   `json:"weight"`
	Priority          Priority `json:"priority"`
}

var (
	// ErrMissingField marks a validation failure for an absent required field
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidValue marks a validation failure for an out-of-range enum value
	ErrInvalidValue = errors.New("invalid value")
)

// ValidateNew checks the fields a caller must supply when creating a
// shipment. ID and tracking number are assigned afterwards and are not
// checked here.
func (s *Shipment) ValidateNew() error {
	if s.Origin == "" {
		return fmt.Errorf("%w: origin", ErrMissingField)
	}
	if s.Destination == "" {
		return fmt.Errorf("%w: destination", ErrMissingField)
	}
	if s.Carrier == "" {
		return fmt.Errorf("%w: carrier", ErrMissingField)
	}
	if !s.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidValue, s.Status)
	}
	if !s.Priority.Valid() {
		return fmt.Errorf("%w: priority %q", ErrInvalidValue, s.Priority)
	}
	return nil
}

// ValidateIncoming checks a fully-formed shipment pushed over the live
// channel. Externally sourced shipments arrive with id and tracking number
// pre-assigned, so both are required.
func (s *Shipment) ValidateIncoming() error {
	if s.ID == "" {
		return fmt.Errorf("%w: id", ErrMissingField)
	}
	if s.TrackingNumber == "" {
		return fmt.Errorf("%w: trackingNumber", ErrMissingField)
	}
	return s.ValidateNew()
}
