package contio

import "sync"

// Hub broadcasts values to subscribers and keeps the last published value.
// Subscribers are invoked synchronously on the publishing goroutine and must
// not call Publish or SubscribeWithReplay on the same hub.
type Hub[T any] struct {
	deliver sync.Mutex

	mu      sync.RWMutex
	subs    map[uint64]func(T)
	next    uint64
	last    T
	lastSeq uint64
	hasLast bool
}

// NewHub returns an empty hub
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: map[uint64]func(T){}}
}

// Publish records v as the last value and hands it to current subscribers.
func (h *Hub[T]) Publish(v T) {
	h.publish(v, 0, false)
}

// PublishAt is Publish for values ordered by seq. Subscribers always receive
// v but Last only moves forward: a seq lower than the recorded one leaves the
// last value in place.
func (h *Hub[T]) PublishAt(seq uint64, v T) {
	h.publish(v, seq, true)
}

func (h *Hub[T]) publish(v T, seq uint64, ordered bool) {
	h.deliver.Lock()
	defer h.deliver.Unlock()

	h.mu.Lock()
	if !ordered || !h.hasLast || seq >= h.lastSeq {
		h.last = v
		h.hasLast = true
		if ordered {
			h.lastSeq = seq
		}
	}
	subs := make([]func(T), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn for future values only. The returned function
// removes the subscription and is safe to call more than once.
func (h *Hub[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// SubscribeWithReplay registers fn and, if a value was already published,
// delivers it to fn before any later value.
func (h *Hub[T]) SubscribeWithReplay(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	h.deliver.Lock()
	defer h.deliver.Unlock()

	unsubscribe := h.Subscribe(fn)
	if last, ok := h.Last(); ok {
		fn(last)
	}
	return unsubscribe
}

// Last returns the most recently published value
func (h *Hub[T]) Last() (T, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last, h.hasLast
}

// Len returns the number of active subscribers
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
