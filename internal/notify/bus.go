// Package notify fans UI notifications out to SSE subscribers: transient
// toasts and store-change events that trigger re-renders.
package notify

import "sync"

// Level is a toast severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Kind discriminates event payloads.
type Kind string

const (
	KindToast Kind = "toast"
	KindStore Kind = "store"
)

// Event is one UI notification.
type Event struct {
	Kind     Kind
	Level    Level  // toast severity
	Message  string // toast text
	Detail   string // optional toast description
	Resource string // changed resource for store events ("points", "shapes")
}

// Bus is a simple fan-out pub/sub for UI events.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[chan Event]struct{})}
}

// Publish sends an event to all subscribers (non-blocking).
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			// subscriber too slow, skip
		}
	}
}

// Subscribe returns a buffered channel that receives events.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}

// Toast publishes a transient toast.
func (b *Bus) Toast(level Level, message, detail string) {
	b.Publish(Event{Kind: KindToast, Level: level, Message: message, Detail: detail})
}

// StoreChanged publishes a store-change event for a resource.
func (b *Bus) StoreChanged(resource string) {
	b.Publish(Event{Kind: KindStore, Resource: resource})
}
