package common

import "sync"

// ListenerID identifies one subscription on an Event. The zero value never refers to a listener.
type ListenerID uint64

// Event is a listener registry for notifications carrying a payload of type T.
// Subscribe returns a token that removes exactly that listener, so a subscriber can detach without
// holding a reference to its own callback. Listeners run synchronously on the emitting goroutine
// in subscription order. Emit snapshots the listener list, so a listener may unsubscribe itself.
type Event[T any] struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners []listener[T]
}

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// Subscribe registers fn and returns its token. A nil fn is ignored and yields the zero ID.
//
// Parameters:
//   - fn: the callback invoked on every Emit
//
// Returns:
//   - ListenerID: the token to pass to Unsubscribe
func (e *Event[T]) Subscribe(fn func(T)) ListenerID {
	if fn == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: fn})
	return e.nextID
}

// Unsubscribe removes the listener registered under id.
//
// Parameters:
//   - id: the token returned by Subscribe
//
// Returns:
//   - bool: true if a listener was removed
func (e *Event[T]) Unsubscribe(id ListenerID) bool {
	if id == 0 {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Emit calls every listener with payload.
func (e *Event[T]) Emit(payload T) {
	e.mu.Lock()
	snapshot := make([]listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		l.fn(payload)
	}
}

// Len returns the number of registered listeners.
func (e *Event[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
