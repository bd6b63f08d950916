package repository

import "context"

// ReadState classifies the outcome of a key-value read
type ReadState int

const (
	// ReadOk means Raw holds decodable JSON text
	ReadOk ReadState = iota
	// ReadAbsent means the key has no stored value
	ReadAbsent
	// ReadMalformed means the stored value could not be decoded; Raw holds
	// the unparsed text so the caller's type check can reject it
	ReadMalformed
)

// ReadResult carries the stored text alongside its classification
type ReadResult struct {
	State ReadState
	Raw   string
}

// KVStore defines the interface for the persistent key-value store backing
// the shipment and activity collections. Get errors indicate the store
// itself is unreachable; content problems are reported through ReadResult.
// Set failures must be absorbed by callers, never surfaced to the user.
type KVStore interface {
	Get(ctx context.Context, key string) (ReadResult, error)
	Set(ctx context.Context, key, value string) error
}
