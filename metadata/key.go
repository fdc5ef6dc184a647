package metadata

import (
	"encoding/binary"
	"fmt"
	"iter"
	"log/slog"
	"math/bits"
	"strconv"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/google/flogger-sub002/pkg"
)

// Predefined errors (sentinel values).
var (
	// ErrTypeMismatch is returned when a value's runtime type disagrees
	// with the declared type of the key it is stored under.
	ErrTypeMismatch = pkg.NewError("value type mismatch")
)

// MaxEmitDepth is the logging reentrancy depth beyond which custom key
// emission routines are bypassed in favor of the raw label/value pair.
// Custom routines may themselves log; the bound guarantees termination
// when one of them misbehaves.
const MaxEmitDepth = 20

// bloomBits is the number of set bits in every key's Bloom filter mask.
const bloomBits = 5

// Emitter receives the label/value pairs produced when a key renders a
// value, for example into a human-readable context suffix.
type Emitter func(label string, value any)

// Key identifies one metadata slot and its handling strategy. Keys
// compare by identity only; the interface is satisfied solely by
// [TypedKey] so that identity semantics cannot be subverted.
type Key interface {
	// Label returns the key's identifier as it appears in rendered output.
	Label() string
	// CanRepeat reports whether the key accumulates values rather than
	// overwriting them.
	CanRepeat() bool
	// BloomMask returns a 64-bit mask with exactly five set bits derived
	// from the key's identity. A mask not fully covered by an accumulated
	// filter of previously seen keys proves the key is unseen; full
	// coverage proves nothing.
	BloomMask() uint64
	// SafeEmit renders one value through the key's emission routine,
	// falling back to the raw label/value pair past MaxEmitDepth.
	SafeEmit(value any, emit Emitter, depth int)
	// SafeEmitRepeated renders a value sequence through the key's
	// emission routine, with the same depth fallback as SafeEmit.
	SafeEmitRepeated(values iter.Seq[any], emit Emitter, depth int)

	// metadataKey restricts implementations to this package.
	metadataKey()
}

// TypedKey is the sole Key implementation. The type parameter fixes the
// value type accepted by the slot; [TypedKey.Cast] recovers it.
type TypedKey[T any] struct {
	emitOne func(T, Emitter)
	emitSeq func(iter.Seq[T], Emitter)
	label   string
	mask    uint64
	repeat  bool
}

// KeyOption applies a configuration option to a key under construction.
type KeyOption[T any] func(keyConfig[T]) keyConfig[T]

// keyConfig holds the optional configuration of a key.
type keyConfig[T any] struct {
	emitOne func(T, Emitter)
	emitSeq func(iter.Seq[T], Emitter)
}

// applyKey applies multiple options to a keyConfig.
func applyKey[T any](cfg keyConfig[T], opts ...KeyOption[T]) keyConfig[T] {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithEmitter returns a key option that installs a custom routine invoked
// to render each value of the key. The routine may emit any number of
// label/value pairs.
func WithEmitter[T any](fn func(value T, emit Emitter)) KeyOption[T] {
	return func(cfg keyConfig[T]) keyConfig[T] {
		cfg.emitOne = fn

		return cfg
	}
}

// WithRepeatedEmitter returns a key option that installs a custom routine
// invoked once with the full value sequence of a repeatable key.
func WithRepeatedEmitter[T any](fn func(values iter.Seq[T], emit Emitter)) KeyOption[T] {
	return func(cfg keyConfig[T]) keyConfig[T] {
		cfg.emitSeq = fn

		return cfg
	}
}

// Single returns a new key whose duplicates resolve to the last value.
// The label must start with an ASCII letter and contain only ASCII
// letters, digits, or underscores; Single panics otherwise.
func Single[T any](label string, opts ...KeyOption[T]) *TypedKey[T] {
	return newKey(label, false, opts)
}

// Repeated returns a new key that accumulates every value in order.
// Label rules match [Single].
func Repeated[T any](label string, opts ...KeyOption[T]) *TypedKey[T] {
	return newKey(label, true, opts)
}

func newKey[T any](label string, repeat bool, opts []KeyOption[T]) *TypedKey[T] {
	if !IsValidLabel(label) {
		panic("metadata: invalid key label " + strconv.Quote(label))
	}

	cfg := applyKey(keyConfig[T]{}, opts...)

	return &TypedKey[T]{
		emitOne: cfg.emitOne,
		emitSeq: cfg.emitSeq,
		label:   label,
		mask:    newBloomMask(keySequence.Add(1)),
		repeat:  repeat,
	}
}

// Label returns the key's identifier.
func (k *TypedKey[T]) Label() string { return k.label }

// CanRepeat reports whether the key accumulates values.
func (k *TypedKey[T]) CanRepeat() bool { return k.repeat }

// BloomMask returns the key's identity-derived Bloom filter mask.
func (k *TypedKey[T]) BloomMask() uint64 { return k.mask }

// String returns the key's label.
func (k *TypedKey[T]) String() string { return k.label }

func (k *TypedKey[T]) metadataKey() {}

// Cast returns value as the key's declared type. Values reach metadata
// through typed insertion, so a mismatch indicates the value was stored
// under the wrong key.
func (k *TypedKey[T]) Cast(value any) (T, error) {
	v, ok := value.(T)
	if !ok {
		return v, ErrTypeMismatch.With(
			slog.String("label", k.label),
			slog.String("type", fmt.Sprintf("%T", value)),
		)
	}

	return v, nil
}

// custom reports whether the key carries a custom emission routine.
func (k *TypedKey[T]) custom() bool {
	return k.emitOne != nil || k.emitSeq != nil
}

// SafeEmit renders one value of the key. Past MaxEmitDepth nested logging
// calls, custom routines are bypassed and the raw label/value pair is
// emitted so a recursing custom key terminates.
func (k *TypedKey[T]) SafeEmit(value any, emit Emitter, depth int) {
	if depth > MaxEmitDepth && k.custom() {
		emit(k.label, value)

		return
	}

	k.emit(value, emit)
}

// SafeEmitRepeated renders a value sequence of the key, with the same
// depth fallback as SafeEmit.
func (k *TypedKey[T]) SafeEmitRepeated(values iter.Seq[any], emit Emitter, depth int) {
	if depth > MaxEmitDepth && k.custom() {
		for v := range values {
			emit(k.label, v)
		}

		return
	}

	k.emitRepeated(values, emit)
}

// emit renders one value, using the custom routine when present. A value
// failing the type cast is emitted raw rather than dropped.
func (k *TypedKey[T]) emit(value any, emit Emitter) {
	if k.emitOne != nil {
		if v, err := k.Cast(value); err == nil {
			k.emitOne(v, emit)

			return
		}
	}

	emit(k.label, value)
}

// emitRepeated renders a value sequence, using the custom sequence
// routine when present and falling back to per-value emission otherwise.
func (k *TypedKey[T]) emitRepeated(values iter.Seq[any], emit Emitter) {
	if k.emitSeq != nil {
		k.emitSeq(castSeq(k, values), emit)

		return
	}

	for v := range values {
		k.emit(v, emit)
	}
}

// castSeq adapts an untyped value sequence to the key's value type,
// skipping values that fail the cast.
func castSeq[T any](k *TypedKey[T], values iter.Seq[any]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range values {
			t, err := k.Cast(v)
			if err != nil {
				continue
			}

			if !yield(t) {
				return
			}
		}
	}
}

// keySequence orders key allocations; each key's Bloom mask is derived
// from its allocation number.
var keySequence atomic.Uint64 //nolint:gochecknoglobals

// newBloomMask derives a 64-bit mask with exactly bloomBits set bits by
// drawing 6-bit positions from successive hashes of the key's allocation
// number. Collisions draw again, so every mask has the same population.
func newBloomMask(id uint64) uint64 {
	var buf [16]byte

	binary.LittleEndian.PutUint64(buf[:8], id)

	var mask uint64

	for salt := uint64(0); bits.OnesCount64(mask) < bloomBits; salt++ {
		binary.LittleEndian.PutUint64(buf[8:], salt)

		for h := xxh3.Hash(buf[:]); h != 0 && bits.OnesCount64(mask) < bloomBits; h >>= 6 {
			mask |= 1 << (h & 63)
		}
	}

	return mask
}

// IsValidLabel reports whether label is a legal key identifier: an
// ASCII letter followed by ASCII letters, digits, or underscores. Key
// construction enforces the rule; it is exported for callers whose own
// identifiers, such as tag names, become emission labels.
func IsValidLabel(label string) bool {
	for i := range len(label) {
		c := label[i]

		switch {
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case i > 0 && (c >= '0' && c <= '9' || c == '_'):
		default:
			return false
		}
	}

	return label != ""
}
