package notify

import (
	"context"
	"route-planner-service/internal/domain"
	"sync"
)

// Broker fans session events out to in-process subscribers. Delivery is
// best effort: a subscriber whose buffer is full misses the event rather
// than blocking the publisher.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan domain.Event]struct{} // session id -> channels
}

func NewBroker() *Broker {
	return &Broker{subs: map[string]map[chan domain.Event]struct{}{}}
}

func (b *Broker) Subscribe(sessionID string) chan domain.Event {
	ch := make(chan domain.Event, 16)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[sessionID] == nil {
		b.subs[sessionID] = map[chan domain.Event]struct{}{}
	}
	b.subs[sessionID][ch] = struct{}{}
	return ch
}

func (b *Broker) Unsubscribe(sessionID string, ch chan domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := b.subs[sessionID]
	if m == nil {
		return
	}
	if _, ok := m[ch]; !ok {
		return
	}
	delete(m, ch)
	if len(m) == 0 {
		delete(b.subs, sessionID)
	}
	close(ch)
}

func (b *Broker) Subscribers(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[sessionID])
}

// Notify implements ports.Notifier.
func (b *Broker) Notify(_ context.Context, evt domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[evt.SessionID] {
		select {
		case ch <- evt:
		default:
		}
	}
}
