package flog

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/flogger-sub002/backend"
	"github.com/google/flogger-sub002/metadata"
)

func TestLogger_Log_DeliversRecord(t *testing.T) {
	mem := backend.NewMemory(backend.LevelTrace)
	when := time.Date(2023, 10, 15, 9, 30, 0, 0, time.UTC)

	logger := New(mem, WithClock(func() time.Time { return when }))

	logger.AtInfo().Log("server started")

	records := mem.All()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]

	if r.Message() != "server started" {
		t.Errorf("expected message %q, got %q", "server started", r.Message())
	}

	if r.Level != LevelInfo {
		t.Errorf("expected level info, got %v", r.Level)
	}

	if !r.Time.Equal(when) {
		t.Errorf("expected clock time %v, got %v", when, r.Time)
	}
}

func TestLogger_At_DisabledLevelReturnsNil(t *testing.T) {
	mem := backend.NewMemory(backend.LevelWarn)
	logger := New(mem)

	if logger.AtInfo() != nil {
		t.Error("expected nil context below the backend threshold")
	}

	if logger.AtDebug().IsEnabled() {
		t.Error("expected disabled statement to report not enabled")
	}

	if !logger.AtError().IsEnabled() {
		t.Error("expected error statement to report enabled")
	}
}

func TestLogger_DisabledChainIsInert(t *testing.T) {
	mem := backend.NewMemory(backend.LevelWarn)
	logger := New(mem)

	logger.AtInfo().
		WithCause(errors.New("x")).
		WithTags(Tags{}.With("env", "test")).
		Every(3).
		AtMostEvery(time.Second).
		OnAverageEvery(2).
		Per("bucket").
		WithSite(Site("f", "x.go", 1)).
		Logf("n=%d", 1)

	if mem.Len() != 0 {
		t.Errorf("expected no records, got %d", mem.Len())
	}
}

func TestLogger_Logf_FormatsMessage(t *testing.T) {
	mem := backend.NewMemory(backend.LevelTrace)
	logger := New(mem)

	logger.AtInfo().Logf("attempt %d of %d", 2, 5)

	if got := mem.All()[0].Message(); got != "attempt 2 of 5" {
		t.Errorf("expected formatted message, got %q", got)
	}
}

func TestLogger_CapturesCallerSite(t *testing.T) {
	mem := backend.NewMemory(backend.LevelTrace)
	logger := New(mem)

	logger.AtInfo().Log("m")

	site := mem.All()[0].Site

	if !site.Valid() {
		t.Fatal("expected a valid call site")
	}

	if !strings.HasSuffix(site.File, "logger_test.go") {
		t.Errorf("expected site in this file, got %q", site.File)
	}

	if site.Line <= 0 {
		t.Errorf("expected positive line, got %d", site.Line)
	}
}

func TestLogger_WithSite_OverridesCapture(t *testing.T) {
	mem := backend.NewMemory(backend.LevelTrace)
	logger := New(mem)

	injected := Site("main.run", "run.go", 42)

	logger.AtInfo().WithSite(injected).Log("m")

	if got := mem.All()[0].Site; got != injected {
		t.Errorf("expected injected site %v, got %v", injected, got)
	}
}

func TestLogger_ScopeMetadata_StatementWins(t *testing.T) {
	attempt := metadata.Single[int]("attempt")
	region := metadata.Single[string]("region")

	mem := backend.NewMemory(backend.LevelTrace)
	logger := New(mem, WithScope(
		new(metadata.List).Add(attempt, 1).Add(region, "us-east"),
	))

	With(logger.AtInfo(), attempt, 2).Log("m")
	logger.AtInfo().Log("again")

	first := backend.Fields(mem.All()[0])

	if first["attempt"] != 2 {
		t.Errorf("expected statement value to win, got %v", first["attempt"])
	}

	if first["region"] != "us-east" {
		t.Errorf("expected scope value to remain, got %v", first["region"])
	}

	second := backend.Fields(mem.All()[1])

	if second["attempt"] != 1 {
		t.Errorf("expected scope value alone, got %v", second["attempt"])
	}
}

func TestLogger_ErrorHandler_ReceivesWrappedFailure(t *testing.T) {
	var captured error

	logger := New(failBackend{},
		WithName("api"),
		WithErrorHandler(func(err error) { captured = err }))

	logger.AtInfo().Log("m")

	if captured == nil {
		t.Fatal("expected the dispatch failure to reach the handler")
	}

	if !errors.Is(captured, ErrDispatch) {
		t.Errorf("expected ErrDispatch, got %v", captured)
	}

	if !strings.Contains(captured.Error(), "sink broke") {
		t.Errorf("expected the cause in the message, got %q", captured.Error())
	}
}

func TestLogger_Name(t *testing.T) {
	if got := New(backend.NewMemory(LevelTrace), WithName("api")).Name(); got != "api" {
		t.Errorf("expected name api, got %q", got)
	}

	if got := New(backend.NewMemory(LevelTrace)).Name(); got != "" {
		t.Errorf("expected empty default name, got %q", got)
	}
}

func TestNew_NilBackendUsesConsole(t *testing.T) {
	if got := New(nil).Backend().Name(); got != "console" {
		t.Errorf("expected console fallback, got %q", got)
	}
}

// failBackend accepts every level and fails every write.
type failBackend struct{}

func (failBackend) Name() string { return "fail" }

func (failBackend) Enabled(backend.Level) bool { return true }

func (failBackend) Log(*backend.Record) error { return errors.New("sink broke") }
