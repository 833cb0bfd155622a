package bus

import "context"

// Callback handles one delivered event.
type Callback func(ctx context.Context, event string, data []byte)

// Subscription is one revocable event subscription.
type Subscription interface {
	// Close stops delivery to this subscription.
	Close() error
}

// Bus is a named-event bus with multiple simultaneous listeners per event.
// The host application publishes lifecycle events onto it; the settings
// propagator subscribes.
type Bus interface {
	// Publish delivers data to every subscriber of event.
	Publish(ctx context.Context, event string, data []byte) error
	// Subscribe registers a callback for event.
	Subscribe(ctx context.Context, event string, cb Callback) (Subscription, error)
	// Close shuts down the bus and all of its subscriptions.
	Close() error
}
