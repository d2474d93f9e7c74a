package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/edumanage/edudash/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name:   "default config",
			config: DefaultConfig(),
		},
		{
			name:   "development config",
			config: DevelopmentConfig(),
		},
		{
			name: "custom config json",
			config: Config{
				Level:     LevelDebug,
				Format:    FormatJSON,
				Output:    OutputStdout(),
				AddSource: true,
			},
		},
		{
			name: "custom config text",
			config: Config{
				Level:     LevelWarn,
				Format:    FormatText,
				Output:    OutputStderr(),
				AddSource: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.config)
			if logger == nil {
				t.Fatal("expected logger, got nil")
			}
			if logger.slog == nil {
				t.Fatal("expected slog logger, got nil")
			}
			if logger.config.Level != tt.config.Level {
				t.Errorf("expected level %v, got %v", tt.config.Level, logger.config.Level)
			}
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	config := Config{
		Level:     LevelWarn,
		Format:    FormatJSON,
		Output:    NewOutput(&buf),
		AddSource: false,
	}
	logger := New(config)

	// Debug and Info should be filtered out
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("expected debug message to be filtered")
	}
	if strings.Contains(output, "info message") {
		t.Error("expected info message to be filtered")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("expected warn message in output")
	}
	if !strings.Contains(output, "error message") {
		t.Error("expected error message in output")
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: NewOutput(&buf),
	})

	err := errors.New(errors.ErrCodeFetchCourses, "courses query failed").
		WithSuggestion("check backend connectivity")
	logger.WithError(err).Info("fetch skipped")

	var entry map[string]any
	if jsonErr := json.Unmarshal(buf.Bytes(), &entry); jsonErr != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), jsonErr)
	}
	if entry["error_code"] != "FETCH-001" {
		t.Errorf("expected error_code FETCH-001, got %v", entry["error_code"])
	}
	if entry["error"] != "courses query failed" {
		t.Errorf("expected error message, got %v", entry["error"])
	}
}

func TestWithErrorNil(t *testing.T) {
	logger := Default()
	if logger.WithError(nil) != logger {
		t.Error("expected WithError(nil) to return the same logger")
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: NewOutput(&buf),
	})

	logger.LogError(errors.NewSessionMissingError())

	output := buf.String()
	if !strings.Contains(output, "SESSION-001") {
		t.Errorf("expected error code in output, got %q", output)
	}
	if !strings.Contains(output, "operation failed") {
		t.Errorf("expected standard message in output, got %q", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warning", LevelWarn},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGlobalLogger(t *testing.T) {
	custom := Development()
	SetDefaultLogger(custom)
	if DefaultLogger() != custom {
		t.Error("expected DefaultLogger to return the configured logger")
	}

	SetDefaultLogger(nil)
	if DefaultLogger() == nil {
		t.Error("expected lazy fallback logger")
	}
}
