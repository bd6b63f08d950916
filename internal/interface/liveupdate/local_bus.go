package liveupdate

import "context"

const localBusBuffer = 64

// LocalBus is the in-process live-update transport, for environments without
// a broker. Published envelopes reach the running consumer in publish order
// and carry the same shape as AMQP deliveries.
type LocalBus struct {
	ch chan []byte
}

// NewLocalBus creates a new in-process bus
func NewLocalBus() *LocalBus {
	return &LocalBus{
		ch: make(chan []byte, localBusBuffer),
	}
}

// Publish enqueues a raw envelope without blocking the caller. It reports
// whether the envelope was accepted; a full buffer drops it.
func (b *LocalBus) Publish(raw []byte) bool {
	select {
	case b.ch <- raw:
		return true
	default:
		return false
	}
}

// Run delivers published envelopes to handler until ctx is cancelled.
// Handler failures are the handler's to log; the bus keeps delivering.
func (b *LocalBus) Run(ctx context.Context, handler func([]byte) error) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw := <-b.ch:
			_ = handler(raw)
		}
	}
}
