package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

type logEntry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.PrintInfo("should be dropped", nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for INFO below min level; got %q", buf.String())
	}
}

func TestLoggerPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.PrintInfo("starting server", map[string]string{
		"addr": ":4000",
		"env":  "development",
	})
	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("expected level INFO; got %s", entry.Level)
	}
	if entry.Message != "starting server" {
		t.Errorf("expected message %q; got %q", "starting server", entry.Message)
	}
	if entry.Properties["addr"] != ":4000" {
		t.Errorf("expected addr property %q; got %q", ":4000", entry.Properties["addr"])
	}
	if entry.Trace != "" {
		t.Error("expected no stack trace at INFO level")
	}
}

func TestLoggerPrintErrorIncludesTrace(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.PrintError(errors.New("boom"), nil)
	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("expected level ERROR; got %s", entry.Level)
	}
	if entry.Trace == "" {
		t.Error("expected a stack trace at ERROR level")
	}
}

func TestLoggerWriteUsesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	if _, err := l.Write([]byte("written via io.Writer")); err != nil {
		t.Fatal(err)
	}
	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("expected level ERROR; got %s", entry.Level)
	}
	if entry.Message != "written via io.Writer" {
		t.Errorf("unexpected message %q", entry.Message)
	}
}
