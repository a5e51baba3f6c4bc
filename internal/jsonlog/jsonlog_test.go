package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  string
	}{
		{name: "debug", level: LevelDebug, want: "DEBUG"},
		{name: "info", level: LevelInfo, want: "INFO"},
		{name: "error", level: LevelError, want: "ERROR"},
		{name: "fatal", level: LevelFatal, want: "FATAL"},
		{name: "off", level: LevelOff, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("got %q; want %q", got, tt.want)
			}
		})
	}
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.PrintInfo("catalogue loaded", map[string]string{"books": "8"})

	var entry struct {
		Level      string            `json:"level"`
		Time       string            `json:"time"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties"`
		Trace      string            `json:"trace"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unable to unmarshal log entry: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("got level %q; want %q", entry.Level, "INFO")
	}
	if entry.Message != "catalogue loaded" {
		t.Errorf("got message %q; want %q", entry.Message, "catalogue loaded")
	}
	if entry.Properties["books"] != "8" {
		t.Errorf("got properties %v; want books=8", entry.Properties)
	}
	if entry.Trace != "" {
		t.Errorf("expected no trace at INFO level; got %q", entry.Trace)
	}
	if _, err := time.Parse(time.RFC3339, entry.Time); err != nil {
		t.Errorf("time %q is not RFC 3339: %v", entry.Time, err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("expected log entry to end with a newline")
	}
}

func TestPrintErrorIncludesTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.PrintError(errors.New("persist failed"), nil)

	var entry struct {
		Level   string `json:"level"`
		Message string `json:"message"`
		Trace   string `json:"trace"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unable to unmarshal log entry: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("got level %q; want %q", entry.Level, "ERROR")
	}
	if entry.Message != "persist failed" {
		t.Errorf("got message %q; want %q", entry.Message, "persist failed")
	}
	if entry.Trace == "" {
		t.Error("expected a stack trace at ERROR level")
	}
}

func TestMinLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		minLevel Level
		log      func(l *Logger)
		want     bool
	}{
		{
			name:     "debug suppressed at info",
			minLevel: LevelInfo,
			log:      func(l *Logger) { l.PrintDebug("noise", nil) },
			want:     false,
		},
		{
			name:     "debug emitted at debug",
			minLevel: LevelDebug,
			log:      func(l *Logger) { l.PrintDebug("noise", nil) },
			want:     true,
		},
		{
			name:     "info suppressed at error",
			minLevel: LevelError,
			log:      func(l *Logger) { l.PrintInfo("routine", nil) },
			want:     false,
		},
		{
			name:     "error emitted at error",
			minLevel: LevelError,
			log:      func(l *Logger) { l.PrintError(errors.New("boom"), nil) },
			want:     true,
		},
		{
			name:     "everything suppressed at off",
			minLevel: LevelOff,
			log:      func(l *Logger) { l.PrintError(errors.New("boom"), nil) },
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.minLevel)
			tt.log(logger)
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("got output=%v; want output=%v", got, tt.want)
			}
		})
	}
}

func TestWriteSatisfiesIOWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	n, err := logger.Write([]byte("http server error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n == 0 {
		t.Fatal("expected a non-zero write count")
	}

	var entry struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unable to unmarshal log entry: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("got level %q; want %q", entry.Level, "ERROR")
	}
	if entry.Message != "http server error" {
		t.Errorf("got message %q; want %q", entry.Message, "http server error")
	}
}
