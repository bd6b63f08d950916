// internal/domain/entity/envelope.go
package entity

import (
	"encoding/json"
	"fmt"
)

// UpdateKind tags the decoded form of a live-update envelope
type UpdateKind int

const (
	UpdateUnrecognized UpdateKind = iota
	UpdateNewShipment
	UpdateStatus
)

// LiveUpdate is the tagged union of messages accepted from the live-update
// channel. Envelopes are decoded exactly once, at the channel boundary;
// unknown shapes map to UpdateUnrecognized rather than an error so the
// channel stays connected.
type LiveUpdate struct {
	Kind    UpdateKind
	RawType string

	// set when Kind == UpdateNewShipment
	Shipment Shipment

	// set when Kind == UpdateStatus
	TrackingNumber string
	Status         Status
}

type envelope struct {
	Type           string    `json:"type"`
	Shipment       *Shipment `json:"shipment,omitempty"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	Status         Status    `json:"status,omitempty"`
}

// DecodeLiveUpdate decodes a raw envelope received over either transport.
// Undecodable payloads return an error; well-formed envelopes with an
// unknown type decode to UpdateUnrecognized.
func DecodeLiveUpdate(raw []byte) (LiveUpdate, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return LiveUpdate{}, fmt.Errorf("failed to decode envelope: %w", err)
	}

	switch env.Type {
	case "new-shipment":
		if env.Shipment == nil {
			return LiveUpdate{}, fmt.Errorf("%w: shipment", ErrMissingField)
		}
		return LiveUpdate{
			Kind:     UpdateNewShipment,
			RawType:  env.Type,
			Shipment: *env.Shipment,
		}, nil
	case "status-update":
		if env.TrackingNumber == "" {
			return LiveUpdate{}, fmt.Errorf("%w: trackingNumber", ErrMissingField)
		}
		return LiveUpdate{
			Kind:           UpdateStatus,
			RawType:        env.Type,
			TrackingNumber: env.TrackingNumber,
			Status:         env.Status,
		}, nil
	default:
		return LiveUpdate{Kind: UpdateUnrecognized, RawType: env.Type}, nil
	}
}
