package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/flogger-sub002/metadata"
)

func TestLogrus_Log_DeliversFields(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)

	l := NewLogrus(logger)

	count := metadata.Single[int]("count")
	when := time.Date(2023, 10, 15, 9, 30, 0, 0, time.UTC)

	r := &Record{
		Time:  when,
		Level: LevelWarn,
		Logged: new(metadata.List).
			Add(count, 3).
			Add(KeyCause, errors.New("boom")),
	}
	r.SetMessage("disk low")

	require.NoError(t, l.Log(r), "log should not fail")

	entry := hook.LastEntry()
	require.NotNil(t, entry, "exactly one entry should be written")

	assert.Equal(t, "disk low", entry.Message, "message should pass through")
	assert.Equal(t, logrus.WarnLevel, entry.Level, "level should map to logrus warn")
	assert.Equal(t, when, entry.Time, "record time should pass through")
	assert.Equal(t, 3, entry.Data["count"], "metadata should become entry fields")

	cause, ok := entry.Data[logrus.ErrorKey].(error)
	require.True(t, ok, "cause should ride the standard error key")
	assert.Equal(t, "boom", cause.Error())
}

func TestLogrus_Log_CollidingLabelsAggregate(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)

	l := NewLogrus(logger)

	tag := metadata.Repeated[string]("tag")

	r := &Record{
		Time:   time.Now(),
		Level:  LevelInfo,
		Logged: new(metadata.List).Add(tag, "a").Add(tag, "b"),
	}
	r.SetMessage("m")

	require.NoError(t, l.Log(r), "log should not fail")

	entry := hook.LastEntry()
	require.NotNil(t, entry, "exactly one entry should be written")

	assert.Equal(t, []any{"a", "b"}, entry.Data["tag"],
		"colliding labels should aggregate in order")
}

func TestLogrus_Enabled(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	l := NewLogrus(logger)

	assert.False(t, l.Enabled(LevelDebug), "debug should be disabled at info threshold")
	assert.True(t, l.Enabled(LevelError), "error should be enabled at info threshold")
}

func TestLogrusLevel_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		expected logrus.Level
	}{
		{name: "trace", level: LevelTrace, expected: logrus.TraceLevel},
		{name: "debug", level: LevelDebug, expected: logrus.DebugLevel},
		{name: "info", level: LevelInfo, expected: logrus.InfoLevel},
		{name: "warn", level: LevelWarn, expected: logrus.WarnLevel},
		{name: "error", level: LevelError, expected: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LogrusLevel(tt.level))
		})
	}
}

func TestNewLogrus_NilUsesStandard(t *testing.T) {
	l := NewLogrus(nil)

	assert.Same(t, logrus.StandardLogger(), l.log,
		"nil should fall back to the standard logger")
}
