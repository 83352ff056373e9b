package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultBufferSize = 64

// Broker fans out roster events to any number of subscribers.
type Broker struct {
	mu         sync.RWMutex
	subs       map[chan Event]struct{}
	closed     bool
	bufferSize int
}

// NewBroker creates a broker with the default per-subscriber buffer.
func NewBroker() *Broker {
	return NewBrokerWithBuffer(defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscriber channels hold
// up to size undelivered events.
func NewBrokerWithBuffer(size int) *Broker {
	return &Broker{
		subs:       make(map[chan Event]struct{}),
		bufferSize: size,
	}
}

// Subscribe registers a new subscriber. The returned channel is closed
// when ctx is cancelled or the broker shuts down. Subscribing to a
// closed broker yields an already-closed channel.
func (b *Broker) Subscribe(ctx context.Context) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.subs[ch] = struct{}{}
	go b.evict(ctx, ch)

	return ch
}

// evict removes a subscriber once its context ends.
func (b *Broker) evict(ctx context.Context, ch chan Event) {
	<-ctx.Done()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	delete(b.subs, ch)
	close(ch)
}

// Publish delivers an event to every subscriber. Delivery never blocks:
// a subscriber whose buffer is full misses the event.
func (b *Broker) Publish(eventType EventType, activity, email string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event := Event{
		ID:        uuid.New(),
		Type:      eventType,
		Activity:  activity,
		Email:     email,
		Timestamp: time.Now(),
	}

	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Slow subscriber, drop rather than stall signups.
		}
	}
}

// Close shuts the broker down and closes all subscriber channels.
// Safe to call more than once.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

// SubscriberCount reports how many subscribers are registered.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
