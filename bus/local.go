package bus

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("bus is closed")

type localSubscription struct {
	bus   *localBus
	event string
	id    int
}

func (s *localSubscription) Close() error {
	s.bus.mutex.Lock()
	defer s.bus.mutex.Unlock()
	subs := s.bus.subscribers[s.event]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.subscribers[s.event] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	return nil
}

type localSubscriber struct {
	id int
	cb Callback
}

type localBus struct {
	mutex       sync.Mutex
	subscribers map[string][]localSubscriber
	nextID      int
	closed      bool
}

var _ Bus = (*localBus)(nil)

// NewLocal returns an in-process Bus. Publish dispatches synchronously on the
// calling goroutine, in subscription order, so a publisher observes every
// side effect of its event before Publish returns.
func NewLocal() Bus {
	return &localBus{
		subscribers: make(map[string][]localSubscriber),
	}
}

func (b *localBus) Publish(ctx context.Context, event string, data []byte) error {
	b.mutex.Lock()
	if b.closed {
		b.mutex.Unlock()
		return ErrClosed
	}
	subs := make([]localSubscriber, len(b.subscribers[event]))
	copy(subs, b.subscribers[event])
	b.mutex.Unlock()

	for _, sub := range subs {
		sub.cb(ctx, event, data)
	}
	return nil
}

func (b *localBus) Subscribe(_ context.Context, event string, cb Callback) (Subscription, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	b.nextID++
	b.subscribers[event] = append(b.subscribers[event], localSubscriber{id: b.nextID, cb: cb})
	return &localSubscription{bus: b, event: event, id: b.nextID}, nil
}

func (b *localBus) Close() error {
	b.mutex.Lock()
	b.closed = true
	b.subscribers = make(map[string][]localSubscriber)
	b.mutex.Unlock()
	return nil
}
