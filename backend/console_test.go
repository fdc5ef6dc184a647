package backend

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/flogger-sub002/metadata"
)

func TestConsole_Log_PlainLine(t *testing.T) {
	var buf bytes.Buffer

	c := NewConsole(&buf, WithColor(false), WithTimeLayout("none"))

	r := &Record{Level: LevelInfo}
	r.SetMessage("ready")

	if err := c.Log(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "INFO  ready\n"
	if got := buf.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestConsole_Log_ContextAndCause(t *testing.T) {
	var buf bytes.Buffer

	c := NewConsole(&buf, WithColor(false), WithTimeLayout("none"))

	count := metadata.Single[int]("count")

	r := &Record{
		Level: LevelError,
		Logged: new(metadata.List).
			Add(count, 2).
			Add(KeyCause, errors.New("boom")),
	}
	r.SetMessage("request failed")

	if err := c.Log(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "ERROR request failed [CONTEXT count=2]\n  cause: boom\n"
	if got := buf.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestConsole_Log_CallerSite(t *testing.T) {
	var buf bytes.Buffer

	c := NewConsole(&buf, WithColor(false), WithTimeLayout("none"), WithCaller(true))

	r := &Record{Level: LevelWarn, Site: Site("f", "x/y.go", 3)}
	r.SetMessage("m")

	if err := c.Log(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "WARN  y.go:3 m\n"
	if got := buf.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestConsole_Log_TimeLayout(t *testing.T) {
	var buf bytes.Buffer

	c := NewConsole(&buf, WithColor(false), WithTimeLayout("2006-01-02"))

	r := &Record{
		Time:  time.Date(2023, 10, 15, 14, 30, 45, 0, time.UTC),
		Level: LevelInfo,
	}
	r.SetMessage("m")

	if err := c.Log(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "2023-10-15 INFO  m\n"
	if got := buf.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestConsole_Enabled_Threshold(t *testing.T) {
	c := NewConsole(nil, WithLevel(LevelWarn))

	if c.Enabled(LevelInfo) {
		t.Error("expected info to be disabled at warn threshold")
	}

	if !c.Enabled(LevelWarn) {
		t.Error("expected warn to be enabled at warn threshold")
	}
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestConsole_Log_WriteErrorWrapsSentinel(t *testing.T) {
	c := NewConsole(errWriter{}, WithColor(false))

	r := &Record{Level: LevelInfo}
	r.SetMessage("m")

	err := c.Log(r)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("expected ErrWrite, got %v", err)
	}
}

func TestNewConsole_NilWriterDiscards(t *testing.T) {
	c := NewConsole(nil)

	r := &Record{Level: LevelInfo}
	r.SetMessage("m")

	if err := c.Log(r); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConsole_Name(t *testing.T) {
	if got := NewConsole(nil).Name(); got != "console" {
		t.Errorf("expected %q, got %q", "console", got)
	}

	if got := NewConsole(nil, WithName("stderr")).Name(); got != "stderr" {
		t.Errorf("expected %q, got %q", "stderr", got)
	}
}
