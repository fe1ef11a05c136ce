package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestSkipMirror(t *testing.T) {
	cases := []struct {
		msg  string
		args []any
		skip bool
	}{
		{"http_request", []any{"http_method", "GET", "http_path", "/healthz"}, true},
		{"http_request", []any{"http_path", "/openapi.yaml"}, true},
		{"http_request", []any{"http_path", "/v1/formations"}, false},
		{"gateway request", []any{"http_path", "/healthz"}, false},
		{"http_request", []any{"http_path"}, false},
	}
	for _, tc := range cases {
		if got := skipMirror(tc.msg, tc.args); got != tc.skip {
			t.Fatalf("skipMirror(%q, %v) = %t, want %t", tc.msg, tc.args, got, tc.skip)
		}
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"match_id", "m-1", 42, 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "match_id" || attrs[0].Value.AsString() != "m-1" {
		t.Fatalf("unexpected match_id attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "arg_1" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("expected positional key for non-string key, got %+v", attrs[1])
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute: %+v", attrs[2])
	}
}

type side string

func TestToLogValue(t *testing.T) {
	m := toLogValue(map[string]any{"goals": 2, "home": true}, 0)
	if m.Kind() != otellog.KindMap || len(m.AsMap()) != 2 || m.AsMap()[0].Key != "goals" {
		t.Fatalf("expected sorted map with 2 items, got %s", m.Kind())
	}

	s := toLogValue([]string{"a@riverside.test", "b@riverside.test"}, 0)
	if s.Kind() != otellog.KindSlice || len(s.AsSlice()) != 2 {
		t.Fatalf("expected slice with 2 items, got %s", s.Kind())
	}

	if v := toLogValue(side("home"), 0); v.AsString() != "home" {
		t.Fatalf("expected named string type to map to its value, got %v", v)
	}
	if v := toLogValue(errors.New("boom"), 0); v.AsString() != "boom" {
		t.Fatalf("unexpected error value: %v", v)
	}
	if v := toLogValue(int32(7), 0); v.AsInt64() != 7 {
		t.Fatalf("unexpected int32 value: %v", v)
	}
	if v := toLogValue(1500*time.Millisecond, 0); v.AsInt64() != 1500 {
		t.Fatalf("expected durations in milliseconds, got %v", v)
	}
	var nilPtr *int
	if v := toLogValue(nilPtr, 0); v.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil pointer, got %s", v.Kind())
	}
}

func TestToOTelSeverity(t *testing.T) {
	cases := map[zapcore.Level]otellog.Severity{
		zapcore.DebugLevel:  otellog.SeverityDebug,
		zapcore.InfoLevel:   otellog.SeverityInfo,
		zapcore.WarnLevel:   otellog.SeverityWarn,
		zapcore.ErrorLevel:  otellog.SeverityError,
		zapcore.DPanicLevel: otellog.SeverityFatal,
	}
	for level, want := range cases {
		if got := toOTelSeverity(level); got != want {
			t.Fatalf("severity for %s = %v, want %v", level, got, want)
		}
	}
}
