package backend

import (
	"slices"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Level
	}{
		{"trace lowercase", "trace", LevelTrace},
		{"trace uppercase", "TRACE", LevelTrace},
		{"debug", "debug", LevelDebug},
		{"info", "INFO", LevelInfo},
		{"warn mixed case", "Warn", LevelWarn},
		{"error", "error", LevelError},
		{"offset", "WARN+2", LevelWarn + 2},
		{"unknown falls back to default", "loud", DefaultLevel},
		{"empty falls back to default", "", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)

			if got != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(2), "Level(2)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLevels_OrderedBySeverity(t *testing.T) {
	expected := []string{"trace", "debug", "info", "warn", "error"}

	got := slices.Collect(Levels())

	if !slices.Equal(got, expected) {
		t.Errorf("expected levels %v, got %v", expected, got)
	}
}
