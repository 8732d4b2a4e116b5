package event

import (
	"sync"

	"go.uber.org/zap"
)

// Subscription identifies a registered observer for Unsubscribe.
type Subscription struct {
	kind Kind
	id   uint64
}

type observer struct {
	id uint64
	fn func(Event)
}

// Dispatcher routes events to observers registered for their Kind.
// It is safe for concurrent use; observers run on the publishing goroutine.
type Dispatcher struct {
	log *zap.Logger

	mu        sync.RWMutex
	nextID    uint64
	observers [kindCount][]observer

	queueMu sync.Mutex
	queue   []Event
}

// NewDispatcher creates an empty dispatcher. A nil logger discards output.
func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{log: log}
}

// Subscribe registers fn for events of type E. The zero value of E must
// report the Kind it is dispatched under, which holds for every event type
// in this package.
func Subscribe[E Event](d *Dispatcher, fn func(E)) Subscription {
	var zero E
	kind := zero.Kind()
	return d.subscribe(kind, func(e Event) {
		if typed, ok := e.(E); ok {
			fn(typed)
		}
	})
}

func (d *Dispatcher) subscribe(kind Kind, fn func(Event)) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	d.observers[kind] = append(d.observers[kind], observer{id: d.nextID, fn: fn})
	d.log.Debug("observer subscribed", zap.Stringer("kind", kind), zap.Uint64("id", d.nextID))
	return Subscription{kind: kind, id: d.nextID}
}

// Unsubscribe removes an observer. Unknown subscriptions are ignored.
func (d *Dispatcher) Unsubscribe(s Subscription) {
	if s.kind <= KindNone || s.kind >= kindCount {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.observers[s.kind]
	for i, o := range list {
		if o.id == s.id {
			// Copy so a Publish iterating the old slice is unaffected.
			next := make([]observer, 0, len(list)-1)
			next = append(next, list[:i]...)
			d.observers[s.kind] = append(next, list[i+1:]...)
			return
		}
	}
}

// Publish delivers e synchronously to its observers in subscription order,
// stopping at the first observer that marks it handled. It reports whether
// the event was handled.
func (d *Dispatcher) Publish(e Event) bool {
	kind := e.Kind()
	if kind <= KindNone || kind >= kindCount {
		d.log.Warn("event with unknown kind dropped", zap.Int("kind", int(kind)))
		return false
	}

	d.mu.RLock()
	list := d.observers[kind]
	d.mu.RUnlock()

	for _, o := range list {
		o.fn(e)
		if e.Handled() {
			break
		}
	}
	return e.Handled()
}

// Post queues e for delivery by the next Flush. Use it from goroutines that
// must not run observers themselves, such as background loaders.
func (d *Dispatcher) Post(e Event) {
	d.queueMu.Lock()
	d.queue = append(d.queue, e)
	d.queueMu.Unlock()
}

// Flush publishes every queued event in posting order and returns how many
// were delivered. Events posted by observers during Flush wait for the next
// call.
func (d *Dispatcher) Flush() int {
	d.queueMu.Lock()
	pending := d.queue
	d.queue = nil
	d.queueMu.Unlock()

	for _, e := range pending {
		d.Publish(e)
	}
	return len(pending)
}

// Count returns the number of observers registered for kind.
func (d *Dispatcher) Count(kind Kind) int {
	if kind < 0 || kind >= kindCount {
		return 0
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.observers[kind])
}
