package version

import (
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	if info.Version == "" {
		t.Error("expected non-empty version")
	}
	if info.GoVersion == "" {
		t.Error("expected non-empty Go version")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("expected platform as os/arch, got %q", info.Platform)
	}
}

func TestString(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		Commit:    "abcdef1234567890",
		Date:      "2026-01-02",
		GoVersion: "go1.24",
		Platform:  "linux/amd64",
	}

	s := info.String()
	if !strings.Contains(s, "edudash 1.2.3") {
		t.Errorf("expected version in string, got %q", s)
	}
	if !strings.Contains(s, "abcdef12") || strings.Contains(s, "abcdef1234567890") {
		t.Errorf("expected shortened commit, got %q", s)
	}
}

func TestShort(t *testing.T) {
	info := Info{Version: "1.2.3"}
	if info.Short() != "1.2.3" {
		t.Errorf("expected 1.2.3, got %q", info.Short())
	}
}
