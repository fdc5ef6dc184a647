package flog

import "testing"

func TestTags_With_SortsNamesAndValues(t *testing.T) {
	tags := Tags{}.With("shard", "b", "a").With("env", "prod")

	if got := tags.String(); got != "[env=prod shard=a shard=b]" {
		t.Errorf("expected sorted rendering, got %q", got)
	}
}

func TestTags_With_DeduplicatesValues(t *testing.T) {
	tags := Tags{}.With("a", "1", "1").With("a", "1")

	if got := tags.String(); got != "[a=1]" {
		t.Errorf("expected deduplicated values, got %q", got)
	}
}

func TestTags_With_InvalidNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected invalid tag name to panic")
		}
	}()

	Tags{}.With("bad name")
}

func TestTags_Merge_UnionsValues(t *testing.T) {
	a := Tags{}.With("a", "1", "2")
	b := Tags{}.With("a", "2", "3").With("b")

	merged := a.Merge(b)

	if got := merged.String(); got != "[a=1 a=2 a=3 b]" {
		t.Errorf("expected union, got %q", got)
	}

	if merged.Len() != 2 {
		t.Errorf("expected 2 names, got %d", merged.Len())
	}
}

func TestTags_Merge_EmptyIdentity(t *testing.T) {
	tags := Tags{}.With("a", "1")

	if got := tags.Merge(Tags{}); got.String() != tags.String() {
		t.Errorf("expected merge with empty to preserve set, got %q", got)
	}

	if got := (Tags{}).Merge(tags); got.String() != tags.String() {
		t.Errorf("expected merge into empty to adopt set, got %q", got)
	}
}

func TestTags_Merge_BareMarkerDissolvesIntoValues(t *testing.T) {
	bare := Tags{}.With("a")
	valued := Tags{}.With("a", "x")

	if got := bare.Merge(valued).String(); got != "[a=x]" {
		t.Errorf("expected values to absorb the bare marker, got %q", got)
	}
}

func TestTags_ZeroValue(t *testing.T) {
	var tags Tags

	if tags.Len() != 0 {
		t.Errorf("expected empty set, got %d names", tags.Len())
	}

	if got := tags.String(); got != "[]" {
		t.Errorf("expected empty rendering, got %q", got)
	}
}

func TestTags_WithDoesNotMutateReceiver(t *testing.T) {
	base := Tags{}.With("a", "1")
	_ = base.With("b", "2")

	if got := base.String(); got != "[a=1]" {
		t.Errorf("expected receiver to be unchanged, got %q", got)
	}
}

func TestTags_EmitOrder(t *testing.T) {
	tags := Tags{}.With("env", "prod").With("flag")

	var pairs []string

	emitTags(tags, func(label string, value any) {
		pairs = append(pairs, label)

		switch v := value.(type) {
		case string:
			if v != "prod" {
				t.Errorf("expected value prod, got %q", v)
			}
		case bool:
			if !v || label != "flag" {
				t.Errorf("expected bare marker to emit true, got %v for %q", v, label)
			}
		default:
			t.Errorf("unexpected value type %T", value)
		}
	})

	if len(pairs) != 2 || pairs[0] != "env" || pairs[1] != "flag" {
		t.Errorf("expected pairs in name order, got %v", pairs)
	}
}
