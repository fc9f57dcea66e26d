package events

import "sync"

// Event names broadcast on the bus.
const (
	AuthLogin  = "auth:login"
	AuthLogout = "auth:logout"
)

// LoginDetail is the payload attached to AuthLogin events.
type LoginDetail struct {
	Username string
}

// Handler receives the detail value passed to Dispatch.
type Handler func(detail any)

// Subscription identifies a registered handler so it can be removed again.
type Subscription int

type entry struct {
	id Subscription
	fn Handler
}

// Bus is a process-wide synchronous publish/subscribe broker. Dispatch invokes
// every current subscriber in subscription order before returning, which is
// what lets a logout reset dependent state before control returns to the
// caller.
type Bus struct {
	mu       sync.Mutex
	nextID   Subscription
	handlers map[string][]entry
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{handlers: make(map[string][]entry)}
}

// On registers a handler for an event name and returns its subscription.
func (b *Bus) On(name string, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[name] = append(b.handlers[name], entry{id: b.nextID, fn: fn})
	return b.nextID
}

// Off removes a previously registered handler. Unknown subscriptions are a
// no-op.
func (b *Bus) Off(name string, sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[name]
	for i, e := range list {
		if e.id == sub {
			b.handlers[name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Dispatch synchronously notifies all subscribers to name, in the order they
// subscribed.
func (b *Bus) Dispatch(name string, detail any) {
	b.mu.Lock()
	list := make([]entry, len(b.handlers[name]))
	copy(list, b.handlers[name])
	b.mu.Unlock()

	for _, e := range list {
		e.fn(detail)
	}
}
