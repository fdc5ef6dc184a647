package backend

import (
	"iter"

	"github.com/google/flogger-sub002/metadata"
)

// Fields returns the record's metadata in label-keyed form for sinks
// built around field maps. Keys render through their emission routines,
// colliding labels aggregate into a slice in emission order, and the
// cause is excluded.
func Fields(r *Record) map[string]any {
	p := r.Processor()
	s := &fieldState{fields: make(map[string]any, p.KeyCount()), depth: r.Depth}

	metadata.Process(p, fieldHandler, s)

	return s.fields
}

// fieldState flattens one record's metadata into label-keyed fields.
type fieldState struct {
	fields map[string]any
	depth  int
}

// emit stores one pair. A label seen before collects its values into a
// slice; a map cannot carry the duplicates the suffix form renders
// side by side.
func (s *fieldState) emit(label string, value any) {
	prev, ok := s.fields[label]
	if !ok {
		s.fields[label] = value

		return
	}

	if list, ok := prev.([]any); ok {
		s.fields[label] = append(list, value)

		return
	}

	s.fields[label] = []any{prev, value}
}

//nolint:gochecknoglobals
var fieldHandler = metadata.NewHandlerBuilder[*fieldState](
	func(key metadata.Key, value any, s *fieldState) {
		key.SafeEmit(value, s.emit, s.depth)
	}).
	DefaultRepeated(func(key metadata.Key, values iter.Seq[any], s *fieldState) {
		key.SafeEmitRepeated(values, s.emit, s.depth)
	}).
	Ignore(KeyCause).
	Build()
