package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	valid := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"Warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"info":    LevelInfo,
	}
	for raw, want := range valid {
		got, err := ParseLevel(raw)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	for _, raw := range []string{"verbose", "fatal", "panic"} {
		if _, err := ParseLevel(raw); err == nil {
			t.Fatalf("ParseLevel(%q) should fail", raw)
		}
	}
}

func TestNewWritesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:          LevelInfo,
		Output:         &buf,
		ServiceName:    "club-lineup-api",
		ServiceVersion: "v1.2.3",
		Environment:    "dev",
	})

	logger.Debug("hidden")
	logger.Info("lineup saved", "match_id", "m-1", zap.Int("starters", 11))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record must be filtered at info level: %s", out)
	}
	for _, want := range []string{`"msg":"lineup saved"`, `"match_id":"m-1"`, `"starters":11`, `"service":"club-lineup-api"`, `"version":"v1.2.3"`, `"env":"dev"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output: %s", want, out)
		}
	}
}

func TestContextRecordsCarrySpanIDs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.WarnContext(ctx, "ledger conflict", "attempt", 2, "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("missing span fields: %+v", fields)
	}
	if fields["error"] != "boom" || fields["attempt"] != int64(2) {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestOddArgsKeepTrailingKey(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	FromZap(zap.New(core)).Info("odd", "side", "home", "dangling")

	fields := logs.All()[0].ContextMap()
	if fields["side"] != "home" {
		t.Fatalf("unexpected fields %+v", fields)
	}
	if v, ok := fields["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling key with nil value, got %+v", fields)
	}
}

func TestMirrorGetsBoundArgsFirst(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	logger := FromZap(zap.New(core)).With("component", "gateway")

	var (
		mu   sync.Mutex
		msgs []string
		args [][]any
	)
	SetMirror(func(_ context.Context, _ Level, msg string, a ...any) {
		mu.Lock()
		defer mu.Unlock()
		msgs = append(msgs, msg)
		args = append(args, a)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("filtered")
	logger.Info("request sent", "status", 200)

	mu.Lock()
	defer mu.Unlock()
	if len(msgs) != 1 || msgs[0] != "request sent" {
		t.Fatalf("unexpected mirrored messages: %v", msgs)
	}
	if len(args[0]) != 4 || args[0][0] != "component" || args[0][2] != "status" {
		t.Fatalf("unexpected mirrored args: %v", args[0])
	}
}

func TestNilLoggerUsesDefault(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := Default()
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(prev) })

	var logger *Logger
	logger.Info("routed")
	if logs.Len() != 1 {
		t.Fatalf("expected the default logger to receive the record")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}
