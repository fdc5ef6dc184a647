package backend

import (
	"strings"
	"testing"
)

func TestSite_InjectedFields(t *testing.T) {
	site := Site("pkg.fn", "dir/file.go", 42)

	if site.Function != "pkg.fn" || site.File != "dir/file.go" || site.Line != 42 {
		t.Errorf("expected injected fields to pass through, got %+v", site)
	}

	if site.PC != 0 {
		t.Errorf("expected injected site to carry no PC, got %v", site.PC)
	}

	if !site.Valid() {
		t.Error("expected injected site to be valid")
	}
}

func TestCallerSite_CapturesCaller(t *testing.T) {
	site := CallerSite(0)

	if !site.Valid() {
		t.Fatal("expected a valid site for the calling frame")
	}

	if !strings.HasSuffix(site.File, "site_test.go") {
		t.Errorf("expected file site_test.go, got %q", site.File)
	}

	if !strings.Contains(site.Function, "TestCallerSite_CapturesCaller") {
		t.Errorf("expected the test function, got %q", site.Function)
	}

	if site.Line <= 0 {
		t.Errorf("expected a positive line, got %d", site.Line)
	}

	if site.PC == 0 {
		t.Error("expected a caller PC")
	}
}

func TestCallerSite_BeyondStackIsUnknown(t *testing.T) {
	site := CallerSite(10_000)

	if site.Valid() {
		t.Errorf("expected the unknown site, got %+v", site)
	}
}

func TestLogSite_String(t *testing.T) {
	tests := []struct {
		name     string
		site     LogSite
		expected string
	}{
		{"file and line", Site("f", "a/b/c.go", 7), "c.go:7"},
		{"function only", LogSite{Function: "main.run"}, "main.run"},
		{"unknown", LogSite{}, "<unknown>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.site.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
