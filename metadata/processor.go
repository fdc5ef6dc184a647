package metadata

import (
	"iter"
	"math/bits"
	"strconv"

	"github.com/google/flogger-sub002/pkg"
)

// compactLimit is the maximum combined element count the compact
// processor form can encode: a value index occupies five bits and the
// remaining 27 bits of an entry mask additional positions 1 through 27.
const compactLimit = 28

const (
	indexBits = 5
	indexMask = 1<<indexBits - 1
)

// Processor merges a scope Metadata and a log-site Metadata into one
// read-only view. Distinct keys appear in first-encounter order scanning
// scope before logged; single keys resolve to the last value seen and
// repeated keys accumulate every value in position order.
//
// A processor is built and consumed within one log statement on one
// goroutine. It never mutates its source Metadata and must not outlive
// them.
type Processor struct {
	scope  Metadata
	logged Metadata

	// order and values realize the general form: distinct keys by first
	// encounter, each mapped to its resolved value ([]any when repeating).
	order  []Key
	values map[Key]any

	// keyMap realizes the compact form. Entry i describes the i-th
	// distinct key: the low five bits index its winning value and the
	// high bits mask additional value positions, offset by one since a
	// duplicate can never occupy position zero.
	keyMap   [compactLimit]int32
	keyCount int

	compact bool
}

// ForScopeAndLogSite builds a processor over the concatenation of scope
// and logged. Nil arguments are treated as empty. The compact form is
// selected whenever the combined element count fits its fixed capacity;
// the two forms are observably identical.
func ForScopeAndLogSite(scope, logged Metadata) *Processor {
	if scope == nil {
		scope = Empty()
	}

	if logged == nil {
		logged = Empty()
	}

	return newProcessor(scope, logged, scope.Len()+logged.Len() <= compactLimit)
}

// newProcessor prepares the requested representation eagerly so that all
// lookups afterward are read-only.
func newProcessor(scope, logged Metadata, compact bool) *Processor {
	p := &Processor{scope: scope, logged: logged, compact: compact}

	if compact {
		p.prepareKeyMap()
	} else {
		p.prepareOrderedMap()
	}

	return p
}

// total returns the combined element count.
func (p *Processor) total() int { return p.scope.Len() + p.logged.Len() }

// key returns the key at combined position n, scope entries first.
func (p *Processor) key(n int) Key {
	s := p.scope.Len()
	if n < s {
		return p.scope.Key(n)
	}

	return p.logged.Key(n - s)
}

// value returns the value at combined position n, scope entries first.
func (p *Processor) value(n int) any {
	s := p.scope.Len()
	if n < s {
		return p.scope.Value(n)
	}

	return p.logged.Value(n - s)
}

// prepareKeyMap scans every element once, maintaining a rolling Bloom
// accumulator. An element whose key mask is not covered by the
// accumulator is definitely a new key; covered masks are confirmed by a
// linear scan over the keys collected so far, and a false positive is
// treated as a new key. Duplicates either overwrite the stored index
// (single keys, last wins) or set the position bit in the entry's mask
// (repeated keys).
func (p *Processor) prepareKeyMap() {
	var bloom uint64

	for n := range p.total() {
		key := p.key(n)

		if mask := key.BloomMask(); bloom&mask != mask {
			bloom |= mask
			p.keyMap[p.keyCount] = int32(n)
			p.keyCount++

			continue
		}

		i := p.indexOf(key)
		if i < 0 {
			p.keyMap[p.keyCount] = int32(n)
			p.keyCount++

			continue
		}

		if key.CanRepeat() {
			p.keyMap[i] |= int32(uint32(1) << (indexBits + n - 1))
		} else {
			p.keyMap[i] = p.keyMap[i]&^indexMask | int32(n)
		}
	}
}

// indexOf returns the keyMap entry holding key, or -1.
func (p *Processor) indexOf(key Key) int {
	for i := range p.keyCount {
		if p.key(entryIndex(p.keyMap[i])) == key {
			return i
		}
	}

	return -1
}

// entryIndex extracts the winning value position of an entry.
func entryIndex(entry int32) int { return int(entry & indexMask) }

// entryExtras extracts the additional-position mask of an entry, where
// bit j marks combined position j+1.
func entryExtras(entry int32) uint32 { return uint32(entry) >> indexBits }

// prepareOrderedMap builds the general form: an insertion-ordered key
// slice and a key-to-resolved-value map.
func (p *Processor) prepareOrderedMap() {
	total := p.total()
	p.order = make([]Key, 0, total)
	p.values = make(map[Key]any, total)

	for n := range total {
		key := p.key(n)
		value := p.value(n)
		existing, seen := p.values[key]

		switch {
		case !seen:
			p.order = append(p.order, key)

			if key.CanRepeat() {
				p.values[key] = []any{value}
			} else {
				p.values[key] = value
			}
		case key.CanRepeat():
			p.values[key] = append(existing.([]any), value) //nolint:forcetypeassert
		default:
			p.values[key] = value
		}
	}
}

// entryValues returns a lazy, single-pass iterator over an entry's values
// in ascending combined-position order.
func (p *Processor) entryValues(entry int32) iter.Seq[any] {
	return func(yield func(any) bool) {
		if !yield(p.value(entryIndex(entry))) {
			return
		}

		for extras := entryExtras(entry); extras != 0; extras &= extras - 1 {
			if !yield(p.value(bits.TrailingZeros32(extras) + 1)) {
				return
			}
		}
	}
}

// KeyCount returns the number of distinct keys.
func (p *Processor) KeyCount() int {
	if p.compact {
		return p.keyCount
	}

	return len(p.order)
}

// Keys returns the distinct keys in first-encounter order.
func (p *Processor) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		if p.compact {
			for i := range p.keyCount {
				if !yield(p.key(entryIndex(p.keyMap[i]))) {
					return
				}
			}

			return
		}

		for _, key := range p.order {
			if !yield(key) {
				return
			}
		}
	}
}

// Process invokes handler once per distinct key in first-encounter order.
// Single keys dispatch their resolved value; repeated keys dispatch a
// lazy, single-pass sequence over every value in position order.
func Process[C any](p *Processor, handler *Handler[C], ctx C) {
	if p.compact {
		for i := range p.keyCount {
			dispatchEntry(p, p.keyMap[i], handler, ctx)
		}

		return
	}

	for _, key := range p.order {
		dispatchGeneral(p, key, handler, ctx)
	}
}

// Handle dispatches only the entry for key, if present.
func Handle[C any](p *Processor, key Key, handler *Handler[C], ctx C) {
	if p.compact {
		if i := p.indexOf(key); i >= 0 {
			dispatchEntry(p, p.keyMap[i], handler, ctx)
		}

		return
	}

	if _, ok := p.values[key]; ok {
		dispatchGeneral(p, key, handler, ctx)
	}
}

// SingleValue returns the resolved value of a single-valued key, or
// reports absent. It panics when key is repeatable; accumulated values
// have no single resolution.
func SingleValue[T any](p *Processor, key *TypedKey[T]) (T, bool) {
	if key.CanRepeat() {
		panic("metadata: single value of repeatable key " + strconv.Quote(key.Label()))
	}

	var (
		raw   any
		found bool
	)

	if p.compact {
		if i := p.indexOf(key); i >= 0 {
			raw, found = p.value(entryIndex(p.keyMap[i])), true
		}
	} else {
		raw, found = p.values[key]
	}

	if !found {
		var zero T

		return zero, false
	}

	v, err := key.Cast(raw)

	return v, err == nil
}

func dispatchEntry[C any](p *Processor, entry int32, handler *Handler[C], ctx C) {
	key := p.key(entryIndex(entry))

	if key.CanRepeat() {
		handler.invokeRepeated(key, p.entryValues(entry), ctx)
	} else {
		handler.invoke(key, p.value(entryIndex(entry)), ctx)
	}
}

func dispatchGeneral[C any](p *Processor, key Key, handler *Handler[C], ctx C) {
	if key.CanRepeat() {
		values := p.values[key].([]any) //nolint:forcetypeassert

		handler.invokeRepeated(key, pkg.AnyValues(values...), ctx)
	} else {
		handler.invoke(key, p.values[key], ctx)
	}
}
