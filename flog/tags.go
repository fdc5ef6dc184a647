package flog

import (
	"slices"
	"strconv"
	"strings"

	"github.com/google/flogger-sub002/metadata"
)

// Tags is an immutable set of named tag values. A name holds zero or
// more distinct string values; a name without values is a bare marker.
// Names and values are kept sorted, so equal sets render identically
// regardless of construction order. The zero value is the empty set.
//
// Attached to a statement with [Context.WithTags], a set emits one
// metadata pair per value, the tag name as the label, and bare markers
// emit the name with a true value.
type Tags struct {
	entries []tagEntry
}

// tagEntry holds one name's sorted distinct values.
type tagEntry struct {
	name   string
	values []string
}

// With returns a set extended by the given tag. Values union with any
// already held under name. The name must satisfy
// [metadata.IsValidLabel]; With panics otherwise.
func (t Tags) With(name string, values ...string) Tags {
	if !metadata.IsValidLabel(name) {
		panic("flog: invalid tag name " + strconv.Quote(name))
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return t.Merge(Tags{entries: []tagEntry{
		{name: name, values: slices.Compact(sorted)},
	}})
}

// Merge returns the union of two sets. Values of a shared name union;
// a bare marker dissolves into any values the other set holds for the
// same name.
func (t Tags) Merge(other Tags) Tags {
	if len(other.entries) == 0 {
		return t
	}

	if len(t.entries) == 0 {
		return other
	}

	merged := make([]tagEntry, 0, len(t.entries)+len(other.entries))

	i, j := 0, 0
	for i < len(t.entries) && j < len(other.entries) {
		a, b := t.entries[i], other.entries[j]

		switch {
		case a.name < b.name:
			merged = append(merged, a)
			i++
		case a.name > b.name:
			merged = append(merged, b)
			j++
		default:
			merged = append(merged, tagEntry{
				name:   a.name,
				values: mergeValues(a.values, b.values),
			})
			i++
			j++
		}
	}

	merged = append(merged, t.entries[i:]...)
	merged = append(merged, other.entries[j:]...)

	return Tags{entries: merged}
}

// Len returns the number of distinct tag names.
func (t Tags) Len() int { return len(t.entries) }

// String renders the set as "[a=1 a=2 b]" for diagnostics.
func (t Tags) String() string {
	var b strings.Builder

	b.WriteByte('[')

	for _, entry := range t.entries {
		if len(entry.values) == 0 {
			pad(&b)
			b.WriteString(entry.name)

			continue
		}

		for _, value := range entry.values {
			pad(&b)
			b.WriteString(entry.name)
			b.WriteByte('=')
			b.WriteString(value)
		}
	}

	b.WriteByte(']')

	return b.String()
}

func pad(b *strings.Builder) {
	if b.Len() > 1 {
		b.WriteByte(' ')
	}
}

// mergeValues unions two sorted distinct value slices.
func mergeValues(a, b []string) []string {
	values := make([]string, 0, len(a)+len(b))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			values = append(values, a[i])
			i++
		case a[i] > b[j]:
			values = append(values, b[j])
			j++
		default:
			values = append(values, a[i])
			i++
			j++
		}
	}

	values = append(values, a[i:]...)

	return append(values, b[j:]...)
}

// emitTags is the [KeyTags] emission routine.
func emitTags(tags Tags, emit metadata.Emitter) {
	for _, entry := range tags.entries {
		if len(entry.values) == 0 {
			emit(entry.name, true)

			continue
		}

		for _, value := range entry.values {
			emit(entry.name, value)
		}
	}
}
