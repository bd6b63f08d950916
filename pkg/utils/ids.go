package utils

import (
	"crypto/rand"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	trackingPrefix   = "TRK"
	trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingLength   = 9
)

// NewShipmentID returns a new opaque shipment identifier
func NewShipmentID() string {
	return uuid.New().String()
}

// NewTrackingNumber returns a display identifier of the form
// TRK followed by nine uppercase alphanumeric characters.
// Uniqueness is probabilistic, not enforced.
func NewTrackingNumber() string {
	buf := make([]byte, trackingLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to a
		// time-derived suffix so creation still succeeds
		return fmt.Sprintf("%s%09d", trackingPrefix, time.Now().UnixNano()%1_000_000_000)
	}

	out := make([]byte, trackingLength)
	for i, b := range buf {
		out[i] = trackingAlphabet[int(b)%len(trackingAlphabet)]
	}
	return trackingPrefix + string(out)
}

var activitySeq atomic.Uint64

// NewActivityID returns a time-based identifier used only for list keying.
// The sequence suffix keeps ids distinct when entries land on the same tick.
func NewActivityID() string {
	return fmt.Sprintf("act-%d-%d", time.Now().UnixNano(), activitySeq.Add(1))
}
