package backend

import (
	"log/slog"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"
)

// Filter gates another backend behind a compiled predicate. A record
// reaches the decorated backend only when the predicate holds.
type Filter struct {
	next    Backend
	program *vm.Program
	source  string
}

// NewFilter decorates next with the predicate source, an expr-lang
// expression over these names:
//
//	message  the record's message (string)
//	level    the level name, for example "error" (string)
//	site     the call site as "file.go:line" (string)
//	cause    the cause's Error text, "" when none (string)
//	skipped  suppressed statements accounted for (int)
//	meta     label-keyed metadata, as produced by [Fields] (map)
//
// The expression must yield a boolean. Compiled programs are cached by
// source text, so rebuilding filters from unchanged configuration
// compiles nothing.
func NewFilter(next Backend, source string) (*Filter, error) {
	program, err := compileFilter(source)
	if err != nil {
		return nil, err
	}

	return &Filter{next: next, program: program, source: source}, nil
}

// Name identifies the sink in error reports.
func (f *Filter) Name() string { return "filter(" + f.next.Name() + ")" }

// Enabled reports whether the decorated backend accepts records at
// level. The predicate sees full records, not bare levels, so it
// cannot gate here.
func (f *Filter) Enabled(level Level) bool { return f.next.Enabled(level) }

// Log evaluates the predicate and forwards the record on true.
func (f *Filter) Log(r *Record) error {
	result, err := vm.Run(f.program, f.environ(r))
	if err != nil {
		return ErrFilterEvaluate.Wrap(err).
			With(slog.String("source", f.source))
	}

	pass, _ := result.(bool)
	if !pass {
		return nil
	}

	return f.next.Log(r)
}

// environ builds the runtime environment for one record.
func (f *Filter) environ(r *Record) map[string]any {
	env := map[string]any{
		"message": r.Message(),
		"level":   r.Level.String(),
		"site":    r.Site.String(),
		"cause":   "",
		"skipped": r.SkippedCount(),
		"meta":    Fields(r),
	}

	if cause := r.Cause(); cause != nil {
		env["cause"] = cause.Error()
	}

	return env
}

// filterEnv fixes the names and exemplar types visible to predicate
// compilation.
//
//nolint:gochecknoglobals
var filterEnv = map[string]any{
	"message": "",
	"level":   "",
	"site":    "",
	"cause":   "",
	"skipped": int64(0),
	"meta":    map[string]any{},
}

// programCache memoizes compiled predicates by source hash.
var programCache sync.Map //nolint:gochecknoglobals

func compileFilter(source string) (*vm.Program, error) {
	key := xxh3.HashString(source)
	if cached, ok := programCache.Load(key); ok {
		return cached.(*vm.Program), nil //nolint:forcetypeassert
	}

	program, err := expr.Compile(source, expr.Env(filterEnv), expr.AsBool())
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("source", source))
	}

	cached, _ := programCache.LoadOrStore(key, program)

	return cached.(*vm.Program), nil //nolint:forcetypeassert
}
