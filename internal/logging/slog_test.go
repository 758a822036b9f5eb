package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSlogLogger_WritesStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	logger.Info(context.Background(), "hello", "user", "alice")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON record: %v", err)
	}
	if rec["msg"] != "hello" || rec["user"] != "alice" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	child := logger.With("component", "httpapi")
	child.Error(context.Background(), "request failed")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON record: %v", err)
	}
	if rec["component"] != "httpapi" {
		t.Fatalf("child logger lost bound attribute: %v", rec)
	}
}
