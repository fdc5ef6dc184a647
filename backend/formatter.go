package backend

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/google/flogger-sub002/metadata"
)

// FormatterOption applies a configuration option to a formatter under
// construction.
type FormatterOption func(formatterConfig) formatterConfig

// formatterConfig holds the optional configuration of a formatter.
type formatterConfig struct {
	omit []metadata.Key
}

// OmitKeys returns a formatter option that excludes keys from the
// context suffix. The cause is always excluded; backends attach it in
// their native form instead.
func OmitKeys(keys ...metadata.Key) FormatterOption {
	return func(cfg formatterConfig) formatterConfig {
		cfg.omit = append(cfg.omit, keys...)

		return cfg
	}
}

// Formatter renders the merged metadata of a record as a context suffix
// appended to the message:
//
//	request failed [CONTEXT path="/v1/items" attempt=3 skipped=17]
//
// Distinct keys appear in first-encounter order; single keys resolve to
// their last value and repeated keys contribute one pair per value. A
// key carrying a custom emission routine renders whatever pairs that
// routine produces. A formatter is immutable and freely shared.
type Formatter struct {
	handler *metadata.Handler[*suffixState]
}

// NewFormatter returns a formatter with the given options applied.
func NewFormatter(opts ...FormatterOption) *Formatter {
	cfg := formatterConfig{omit: []metadata.Key{KeyCause}}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	handler := metadata.NewHandlerBuilder[*suffixState](
		func(key metadata.Key, value any, s *suffixState) {
			key.SafeEmit(value, s.emit, s.depth)
		}).
		DefaultRepeated(func(key metadata.Key, values iter.Seq[any], s *suffixState) {
			key.SafeEmitRepeated(values, s.emit, s.depth)
		}).
		Ignore(cfg.omit...).
		Build()

	return &Formatter{handler: handler}
}

// Format returns the record's message followed by its context suffix,
// if any metadata survives omission.
func (f *Formatter) Format(r *Record) string {
	var b strings.Builder

	b.WriteString(r.Message())
	f.AppendContext(&b, r)

	return b.String()
}

// FormatContext returns only the context suffix, including its leading
// space, or the empty string.
func (f *Formatter) FormatContext(r *Record) string {
	var b strings.Builder

	f.AppendContext(&b, r)

	return b.String()
}

// AppendContext writes the record's context suffix to b, or nothing
// when no metadata survives omission.
func (f *Formatter) AppendContext(b *strings.Builder, r *Record) {
	s := &suffixState{b: b, depth: r.Depth}

	metadata.Process(r.Processor(), f.handler, s)

	if s.count > 0 {
		b.WriteByte(']')
	}
}

// suffixState accumulates one record's context suffix.
type suffixState struct {
	b     *strings.Builder
	depth int
	count int
}

// emit appends one label/value pair, opening the suffix on the first.
func (s *suffixState) emit(label string, value any) {
	if s.count == 0 {
		s.b.WriteString(" [CONTEXT ")
	} else {
		s.b.WriteByte(' ')
	}

	s.count++

	s.b.WriteString(label)
	s.b.WriteByte('=')
	appendValue(s.b, value)
}

// appendValue writes a context value. Strings and stringly values are
// quoted so pair boundaries stay unambiguous.
func appendValue(b *strings.Builder, v any) {
	switch t := v.(type) {
	case string:
		b.WriteString(strconv.Quote(t))

	case bool:
		b.WriteString(strconv.FormatBool(t))

	case int:
		b.WriteString(strconv.Itoa(t))

	case int64:
		b.WriteString(strconv.FormatInt(t, 10))

	case uint64:
		b.WriteString(strconv.FormatUint(t, 10))

	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))

	case time.Duration:
		b.WriteString(t.String())

	case error:
		b.WriteString(strconv.Quote(t.Error()))

	case fmt.Stringer:
		b.WriteString(strconv.Quote(t.String()))

	default:
		fmt.Fprintf(b, "%v", t)
	}
}
