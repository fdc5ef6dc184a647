package metadata

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"testing"
)

// traceEntry records one handler dispatch for comparison in tests.
type traceEntry struct {
	key    string
	value  any
	values []any
	single bool
}

func (e traceEntry) String() string {
	if e.single {
		return fmt.Sprintf("%s=%v", e.key, e.value)
	}

	return fmt.Sprintf("%s=%v", e.key, e.values)
}

// traceHandler appends every dispatch to the trace slice addressed by the
// context value.
func traceHandler() *Handler[*[]traceEntry] {
	return NewHandlerBuilder(func(key Key, value any, out *[]traceEntry) {
		*out = append(*out, traceEntry{key: key.Label(), value: value, single: true})
	}).DefaultRepeated(func(key Key, values iter.Seq[any], out *[]traceEntry) {
		entry := traceEntry{key: key.Label()}
		for v := range values {
			entry.values = append(entry.values, v)
		}

		*out = append(*out, entry)
	}).Build()
}

func processTrace(p *Processor) []traceEntry {
	var trace []traceEntry

	Process(p, traceHandler(), &trace)

	return trace
}

func traceString(trace []traceEntry) string {
	parts := make([]string, len(trace))
	for i, e := range trace {
		parts[i] = e.String()
	}

	return strings.Join(parts, " ")
}

func keyLabels(p *Processor) []string {
	var labels []string
	for key := range p.Keys() {
		labels = append(labels, key.Label())
	}

	return labels
}

func TestProcessor_Keys_FirstEncounterOrder(t *testing.T) {
	a := Single[string]("a")
	b := Repeated[int]("b")
	c := Single[string]("c")

	scope := new(List).Add(a, "s1").Add(b, 1)
	logged := new(List).Add(c, "l1").Add(a, "l2").Add(b, 2)

	p := ForScopeAndLogSite(scope, logged)

	if got := keyLabels(p); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("expected keys [a b c], got %v", got)
	}

	if p.KeyCount() != 3 {
		t.Errorf("expected 3 distinct keys, got %d", p.KeyCount())
	}
}

func TestProcessor_SingleValue_LogSiteOverridesScope(t *testing.T) {
	tag := Single[string]("tag")

	scope := new(List).Add(tag, "scope")
	logged := new(List).Add(tag, "site")

	p := ForScopeAndLogSite(scope, logged)

	v, ok := SingleValue(p, tag)
	if !ok || v != "site" {
		t.Errorf("expected log-site value to win, got %q (found %t)", v, ok)
	}
}

func TestProcessor_SingleValue_AbsentKey(t *testing.T) {
	tag := Single[string]("tag")

	p := ForScopeAndLogSite(Empty(), Empty())

	if _, ok := SingleValue(p, tag); ok {
		t.Error("expected absent key to report not found")
	}
}

func TestProcessor_SingleValue_PanicsOnRepeatableKey(t *testing.T) {
	id := Repeated[int]("id")

	p := ForScopeAndLogSite(Empty(), new(List).Add(id, 7))

	defer func() {
		if recover() == nil {
			t.Error("expected SingleValue on a repeatable key to panic")
		}
	}()

	SingleValue(p, id)
}

func TestProcessor_Process_AccumulatesRepeatedValues(t *testing.T) {
	id := Repeated[int]("id")

	scope := new(List).Add(id, 1).Add(id, 2)
	logged := new(List).Add(id, 1)

	p := ForScopeAndLogSite(scope, logged)

	trace := processTrace(p)
	if len(trace) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(trace))
	}

	// Duplicated values are preserved, never deduplicated.
	if !slices.Equal(trace[0].values, []any{1, 2, 1}) {
		t.Errorf("expected values [1 2 1], got %v", trace[0].values)
	}
}

func TestProcessor_Process_EmptyInvokesNothing(t *testing.T) {
	p := ForScopeAndLogSite(Empty(), Empty())

	if p.KeyCount() != 0 {
		t.Errorf("expected no keys, got %d", p.KeyCount())
	}

	if trace := processTrace(p); len(trace) != 0 {
		t.Errorf("expected no dispatches, got %v", trace)
	}
}

func TestProcessor_NilMetadataTreatedAsEmpty(t *testing.T) {
	p := ForScopeAndLogSite(nil, nil)

	if p.KeyCount() != 0 {
		t.Errorf("expected no keys, got %d", p.KeyCount())
	}
}

func TestProcessor_EndToEnd(t *testing.T) {
	tag := Single[string]("tag")
	id := Repeated[int]("id")

	scope := new(List).Add(tag, "t1")
	logged := new(List).Add(tag, "t2").Add(id, 7)

	p := ForScopeAndLogSite(scope, logged)

	if p.KeyCount() != 2 {
		t.Errorf("expected 2 distinct keys, got %d", p.KeyCount())
	}

	v, ok := SingleValue(p, tag)
	if !ok || v != "t2" {
		t.Errorf("expected tag to resolve to t2, got %q", v)
	}

	trace := processTrace(p)
	if got := traceString(trace); got != "tag=t2 id=[7]" {
		t.Errorf("expected trace %q, got %q", "tag=t2 id=[7]", got)
	}
}

func TestProcessor_Handle_DispatchesOnlyNamedKey(t *testing.T) {
	tag := Single[string]("tag")
	id := Repeated[int]("id")
	missing := Single[string]("missing")

	p := ForScopeAndLogSite(
		new(List).Add(tag, "t").Add(id, 1).Add(id, 2),
		Empty(),
	)

	var trace []traceEntry

	Handle(p, id, traceHandler(), &trace)

	if got := traceString(trace); got != "id=[1 2]" {
		t.Errorf("expected only the id dispatch, got %q", got)
	}

	trace = nil

	Handle(p, missing, traceHandler(), &trace)

	if len(trace) != 0 {
		t.Errorf("expected absent key to dispatch nothing, got %v", trace)
	}
}

// buildLists constructs scope and logged metadata from compact specs of
// the form "label=value", using a shared key per label so duplicates
// resolve against the same identity.
type listBuilder struct {
	singles map[string]*TypedKey[string]
	repeats map[string]*TypedKey[string]
}

func newListBuilder() *listBuilder {
	return &listBuilder{
		singles: map[string]*TypedKey[string]{},
		repeats: map[string]*TypedKey[string]{},
	}
}

func (b *listBuilder) key(spec string) (*TypedKey[string], string) {
	label, value, _ := strings.Cut(spec, "=")

	if repeated := strings.HasSuffix(label, "R"); repeated {
		key, ok := b.repeats[label]
		if !ok {
			key = Repeated[string](label)
			b.repeats[label] = key
		}

		return key, value
	}

	key, ok := b.singles[label]
	if !ok {
		key = Single[string](label)
		b.singles[label] = key
	}

	return key, value
}

func (b *listBuilder) list(specs ...string) *List {
	list := new(List)
	for _, spec := range specs {
		key, value := b.key(spec)
		list.Add(key, value)
	}

	return list
}

func TestProcessor_Representations_Agree(t *testing.T) {
	tests := []struct {
		name   string
		scope  []string
		logged []string
	}{
		{
			name:   "disjoint keys",
			scope:  []string{"a=1", "b=2"},
			logged: []string{"c=3"},
		},
		{
			name:   "single override",
			scope:  []string{"a=1", "b=2"},
			logged: []string{"a=3", "a=4"},
		},
		{
			name:   "repeated accumulation",
			scope:  []string{"xR=1", "xR=2", "a=5"},
			logged: []string{"xR=3", "a=6", "xR=1"},
		},
		{
			name:   "interleaved duplicates",
			scope:  []string{"a=1", "xR=1", "a=2", "yR=9"},
			logged: []string{"xR=2", "b=7", "yR=8", "a=3", "xR=3"},
		},
		{
			name:   "empty scope",
			scope:  nil,
			logged: []string{"a=1", "xR=1", "xR=2"},
		},
		{
			name:   "empty logged",
			scope:  []string{"a=1", "xR=1"},
			logged: nil,
		},
		{
			name:   "all duplicates of one key",
			scope:  []string{"xR=1", "xR=2", "xR=3"},
			logged: []string{"xR=4", "xR=5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := newListBuilder()
			scope := builder.list(tt.scope...)
			logged := builder.list(tt.logged...)

			compact := newProcessor(scope, logged, true)
			general := newProcessor(scope, logged, false)

			if !compact.compact || general.compact {
				t.Fatal("expected one processor per representation")
			}

			if compact.KeyCount() != general.KeyCount() {
				t.Errorf(
					"key counts disagree: compact %d, general %d",
					compact.KeyCount(), general.KeyCount(),
				)
			}

			if ck, gk := keyLabels(compact), keyLabels(general); !slices.Equal(ck, gk) {
				t.Errorf("key sets disagree: compact %v, general %v", ck, gk)
			}

			ct := traceString(processTrace(compact))
			gt := traceString(processTrace(general))

			if ct != gt {
				t.Errorf("traces disagree:\ncompact: %s\ngeneral: %s", ct, gt)
			}

			for label, key := range builder.singles {
				cv, cok := SingleValue(compact, key)
				gv, gok := SingleValue(general, key)

				if cv != gv || cok != gok {
					t.Errorf(
						"single value %q disagrees: compact %q (%t), general %q (%t)",
						label, cv, cok, gv, gok,
					)
				}
			}
		})
	}
}

func TestProcessor_GeneralForm_SelectedWhenOverCapacity(t *testing.T) {
	builder := newListBuilder()

	var specs []string
	for i := range compactLimit + 1 {
		specs = append(specs, fmt.Sprintf("k%d=%d", i, i))
	}

	p := ForScopeAndLogSite(builder.list(specs...), Empty())

	if p.compact {
		t.Error("expected general form above the compact capacity")
	}

	if p.KeyCount() != compactLimit+1 {
		t.Errorf("expected %d keys, got %d", compactLimit+1, p.KeyCount())
	}
}

func TestProcessor_CompactForm_AtCapacity(t *testing.T) {
	builder := newListBuilder()

	// One distinct key followed by 27 duplicates fills every mask bit.
	specs := make([]string, 0, compactLimit)
	for i := range compactLimit {
		specs = append(specs, fmt.Sprintf("idR=%d", i))
	}

	scope := builder.list(specs...)

	p := ForScopeAndLogSite(scope, Empty())
	if !p.compact {
		t.Fatal("expected compact form at capacity")
	}

	trace := processTrace(p)
	if len(trace) != 1 || len(trace[0].values) != compactLimit {
		t.Fatalf("expected one key with %d values, got %v", compactLimit, trace)
	}

	for i, v := range trace[0].values {
		if v != fmt.Sprintf("%d", i) {
			t.Errorf("value %d: expected %d, got %v", i, i, v)
		}
	}
}

func TestProcessor_RepeatedIterator_IsLazy(t *testing.T) {
	id := Repeated[int]("id")

	p := ForScopeAndLogSite(
		new(List).Add(id, 1).Add(id, 2).Add(id, 3),
		Empty(),
	)

	var seen []any

	handler := NewHandlerBuilder(func(Key, any, *int) {}).
		DefaultRepeated(func(_ Key, values iter.Seq[any], _ *int) {
			for v := range values {
				seen = append(seen, v)

				break // early stop must not panic or overrun
			}
		}).
		Build()

	var ctx int

	Process(p, handler, &ctx)

	if !slices.Equal(seen, []any{1}) {
		t.Errorf("expected early stop after first value, got %v", seen)
	}
}
