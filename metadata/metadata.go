package metadata

// Metadata is an ordered sequence of key/value pairs attached to one log
// statement or one ambient scope. Duplicate keys are allowed at this
// layer; single-vs-repeated resolution is deferred to [Processor].
type Metadata interface {
	// Len returns the number of entries.
	Len() int
	// Key returns the key of entry n. It panics when n is out of range.
	Key(n int) Key
	// Value returns the value of entry n, never nil. It panics when n is
	// out of range.
	Value(n int) any
}

// emptyMetadata is the canonical zero-entry Metadata.
type emptyMetadata struct{}

func (emptyMetadata) Len() int { return 0 }

func (emptyMetadata) Key(int) Key { panic("metadata: index out of range") }

func (emptyMetadata) Value(int) any { panic("metadata: index out of range") }

// Empty returns the immutable empty Metadata.
func Empty() Metadata { return emptyMetadata{} }

// List is an append-only Metadata accumulating the key/value pairs of one
// log statement or scope. The zero value is ready to use.
type List struct {
	keys   []Key
	values []any
}

// Add appends a key/value pair, preserving insertion order, and returns
// the list. It panics on a nil key or nil value; absence is modeled by
// omission, never by nil.
func (l *List) Add(key Key, value any) *List {
	if key == nil {
		panic("metadata: nil key")
	}

	if value == nil {
		panic("metadata: nil value")
	}

	l.keys = append(l.keys, key)
	l.values = append(l.values, value)

	return l
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.keys) }

// Key returns the key of entry n.
func (l *List) Key(n int) Key { return l.keys[n] }

// Value returns the value of entry n.
func (l *List) Value(n int) any { return l.values[n] }

// Find returns the value of the first entry for key, scanning positions
// in order. It reports absent when no entry matches or when the first
// matching value does not hold the key's type.
func Find[T any](md Metadata, key *TypedKey[T]) (T, bool) {
	for n := range md.Len() {
		if md.Key(n) == Key(key) {
			v, err := key.Cast(md.Value(n))

			return v, err == nil
		}
	}

	var zero T

	return zero, false
}

// Concat returns a Metadata presenting the entries of mds in order,
// without copying. Nil and empty parts contribute nothing. The view
// reads through to its parts, so entries added to a [List] part later
// are visible through it.
func Concat(mds ...Metadata) Metadata {
	parts := make([]Metadata, 0, len(mds))

	for _, md := range mds {
		if md == nil || md.Len() == 0 {
			continue
		}

		parts = append(parts, md)
	}

	switch len(parts) {
	case 0:
		return Empty()
	case 1:
		return parts[0]
	default:
		return concatMetadata(parts)
	}
}

// concatMetadata chains the entries of its parts end to end.
type concatMetadata []Metadata

func (c concatMetadata) Len() int {
	total := 0
	for _, part := range c {
		total += part.Len()
	}

	return total
}

func (c concatMetadata) Key(n int) Key {
	for _, part := range c {
		if n < part.Len() {
			return part.Key(n)
		}

		n -= part.Len()
	}

	panic("metadata: index out of range")
}

func (c concatMetadata) Value(n int) any {
	for _, part := range c {
		if n < part.Len() {
			return part.Value(n)
		}

		n -= part.Len()
	}

	panic("metadata: index out of range")
}
