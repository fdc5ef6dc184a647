package metadata

import (
	"iter"
	"maps"
	"strconv"
)

// ValueFunc handles one resolved value of a key.
type ValueFunc[C any] func(key Key, value any, ctx C)

// ValuesFunc handles the accumulated values of a repeating key.
type ValuesFunc[C any] func(key Key, values iter.Seq[any], ctx C)

// Handler is an immutable dispatch table mapping keys to handling
// callbacks. Handlers are stateless and freely shared across goroutines;
// per-call state travels in the context value C supplied to [Process].
type Handler[C any] struct {
	single          map[Key]ValueFunc[C]
	repeated        map[Key]ValuesFunc[C]
	defaultSingle   ValueFunc[C]
	defaultRepeated ValuesFunc[C]
}

// invoke dispatches one resolved value for key.
func (h *Handler[C]) invoke(key Key, value any, ctx C) {
	if fn, ok := h.single[key]; ok {
		fn(key, value, ctx)

		return
	}

	h.defaultSingle(key, value, ctx)
}

// invokeRepeated dispatches the value sequence of a repeatable key. A
// single handler registered for the key receives each value in order;
// without any registration the repeated default applies, and without
// that, the single default applies per value.
func (h *Handler[C]) invokeRepeated(key Key, values iter.Seq[any], ctx C) {
	if fn, ok := h.repeated[key]; ok {
		fn(key, values, ctx)

		return
	}

	if fn, ok := h.single[key]; ok {
		for v := range values {
			fn(key, v, ctx)
		}

		return
	}

	if h.defaultRepeated != nil {
		h.defaultRepeated(key, values, ctx)

		return
	}

	for v := range values {
		h.defaultSingle(key, v, ctx)
	}
}

// HandlerBuilder accumulates registrations for a [Handler]. A key holds
// at most one active handling strategy: registering one kind clears any
// registration of the other kind for the same key.
type HandlerBuilder[C any] struct {
	single          map[Key]ValueFunc[C]
	repeated        map[Key]ValuesFunc[C]
	defaultSingle   ValueFunc[C]
	defaultRepeated ValuesFunc[C]
}

// NewHandlerBuilder returns a builder whose handler dispatches
// defaultSingle for keys without an explicit registration. It panics on a
// nil default.
func NewHandlerBuilder[C any](defaultSingle ValueFunc[C]) *HandlerBuilder[C] {
	if defaultSingle == nil {
		panic("metadata: nil default handler")
	}

	return &HandlerBuilder[C]{
		single:        map[Key]ValueFunc[C]{},
		repeated:      map[Key]ValuesFunc[C]{},
		defaultSingle: defaultSingle,
	}
}

// Handle registers fn to receive values of key. For repeatable keys, fn
// is invoked once per value in order.
func (b *HandlerBuilder[C]) Handle(key Key, fn ValueFunc[C]) *HandlerBuilder[C] {
	delete(b.repeated, key)
	b.single[key] = fn

	return b
}

// HandleRepeated registers fn to receive the full value sequence of key.
// It panics when key cannot repeat.
func (b *HandlerBuilder[C]) HandleRepeated(key Key, fn ValuesFunc[C]) *HandlerBuilder[C] {
	if !key.CanRepeat() {
		panic("metadata: repeated handler for single-valued key " + strconv.Quote(key.Label()))
	}

	delete(b.single, key)
	b.repeated[key] = fn

	return b
}

// DefaultRepeated registers the fallback for repeatable keys without an
// explicit registration. Without it, such keys dispatch the single
// default once per value.
func (b *HandlerBuilder[C]) DefaultRepeated(fn ValuesFunc[C]) *HandlerBuilder[C] {
	b.defaultRepeated = fn

	return b
}

// Ignore registers keys to be dropped silently instead of reaching the
// default handlers.
func (b *HandlerBuilder[C]) Ignore(keys ...Key) *HandlerBuilder[C] {
	for _, key := range keys {
		if key.CanRepeat() {
			delete(b.single, key)
			b.repeated[key] = func(Key, iter.Seq[any], C) {}
		} else {
			delete(b.repeated, key)
			b.single[key] = func(Key, any, C) {}
		}
	}

	return b
}

// Remove drops any explicit registration for keys, reverting them to the
// default handlers.
func (b *HandlerBuilder[C]) Remove(keys ...Key) *HandlerBuilder[C] {
	for _, key := range keys {
		delete(b.single, key)
		delete(b.repeated, key)
	}

	return b
}

// Build returns an immutable handler. The builder remains usable and
// later changes do not affect handlers already built.
func (b *HandlerBuilder[C]) Build() *Handler[C] {
	return &Handler[C]{
		single:          maps.Clone(b.single),
		repeated:        maps.Clone(b.repeated),
		defaultSingle:   b.defaultSingle,
		defaultRepeated: b.defaultRepeated,
	}
}
