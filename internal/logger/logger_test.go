package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func newBufferLogger(level LogLevel, format LogFormat) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Format: format, Output: &buf, Component: "test"}), &buf
}

func decode(t *testing.T, line string) LogEntry {
	t.Helper()
	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("Line is not valid JSON: %v (%s)", err, line)
	}
	return entry
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  int
	}{
		{DEBUG, 4},
		{INFO, 3},
		{WARN, 2},
		{ERROR, 1},
	}
	for _, tt := range tests {
		logger, buf := newBufferLogger(tt.level, JSONFormat)
		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")
		logger.Error("error", nil)

		out := strings.TrimSpace(buf.String())
		got := 0
		if out != "" {
			got = len(strings.Split(out, "\n"))
		}
		if got != tt.want {
			t.Errorf("Level %s: expected %d lines, got %d", tt.level, tt.want, got)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(INFO, JSONFormat)
	logger.Info("chart rebuilt", map[string]interface{}{
		"lines": 2,
		"mode":  "daily",
	})

	entry := decode(t, buf.String())
	if entry.Level != "INFO" || entry.Message != "chart rebuilt" || entry.Component != "test" {
		t.Errorf("Unexpected entry %+v", entry)
	}
	if entry.Fields["lines"] != float64(2) || entry.Fields["mode"] != "daily" {
		t.Errorf("Unexpected fields %v", entry.Fields)
	}
	if entry.File != "logger_test.go" {
		t.Errorf("Expected caller file logger_test.go, got %s", entry.File)
	}
}

func TestTextFormatSortsFields(t *testing.T) {
	logger, buf := newBufferLogger(INFO, TextFormat)
	logger.Info("resized", map[string]interface{}{"width": 800, "height": 500})

	out := buf.String()
	for _, want := range []string{"INFO", "[test]", "resized", "fields={height=500, width=800}"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %s", want, out)
		}
	}
}

func TestDerivedLoggersShareSink(t *testing.T) {
	base, buf := newBufferLogger(INFO, JSONFormat)
	derived := base.WithComponent("server").WithFields(map[string]interface{}{"session": "s1"})

	base.SetLevel(WARN)
	derived.Info("filtered")
	derived.Warn("kept", map[string]interface{}{"route": "/state"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	entry := decode(t, lines[0])
	if entry.Component != "server" {
		t.Errorf("Expected component server, got %s", entry.Component)
	}
	if entry.Fields["session"] != "s1" || entry.Fields["route"] != "/state" {
		t.Errorf("Expected merged fields, got %v", entry.Fields)
	}
}

func TestErrorLogging(t *testing.T) {
	logger, buf := newBufferLogger(ERROR, JSONFormat)
	logger.Error("fetch failed", errors.New("connection refused"), map[string]interface{}{"url": "http://x"})

	entry := decode(t, buf.String())
	if entry.Error != "connection refused" {
		t.Errorf("Expected error message, got %s", entry.Error)
	}
	if entry.Fields["url"] != "http://x" {
		t.Errorf("Expected url field, got %v", entry.Fields["url"])
	}
}

func TestFormattedLogging(t *testing.T) {
	logger, buf := newBufferLogger(INFO, JSONFormat)
	logger.Infof("Loaded %d series for %s", 3, "weekly")

	if entry := decode(t, buf.String()); entry.Message != "Loaded 3 series for weekly" {
		t.Errorf("Unexpected message %q", entry.Message)
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	logger, buf := newBufferLogger(INFO, JSONFormat)
	SetGlobalLogger(logger)

	Info("global info")
	Warn("global warn")
	Debug("global debug")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d", len(lines))
	}
	if e := decode(t, lines[1]); e.Level != "WARN" || e.Message != "global warn" {
		t.Errorf("Unexpected second line %+v", e)
	}

	Configure("debug", "text")
	Debug("now visible")
	if !strings.Contains(buf.String(), "] DEBUG [test] now visible") {
		t.Errorf("Expected text debug line, got %s", buf.String())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	levels := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{"warning", WARN, true},
		{" error ", ERROR, true},
		{"verbose", INFO, false},
		{"", INFO, false},
	}
	for _, tt := range levels {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	if f, ok := ParseFormat("TEXT"); f != TextFormat || !ok {
		t.Errorf("Expected TextFormat, got %v %v", f, ok)
	}
	if _, ok := ParseFormat("xml"); ok {
		t.Error("Expected xml to be rejected")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, test := range tests {
		if test.level.String() != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, test.level.String())
		}
	}
}

func BenchmarkJSONLogging(b *testing.B) {
	var buf bytes.Buffer
	logger := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", map[string]interface{}{"iteration": i})
	}
}

func BenchmarkLevelFiltering(b *testing.B) {
	var buf bytes.Buffer
	logger := New(Config{Level: WARN, Format: JSONFormat, Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("filtered")
	}
}
