package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestHandlerSpan_NoParentIsNoop(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/matches/m-1/events", nil)
	ctx, span := handlerSpan(r, "ListMatchEvents")
	defer span.End()

	if ctx != r.Context() {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected noop span without a parent")
	}
}

func TestHandlerSpan_WithParent(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	mux := http.NewServeMux()
	var seen trace.SpanContext
	mux.HandleFunc("GET /v1/matches/{matchID}/events", func(w http.ResponseWriter, r *http.Request) {
		_, span := handlerSpan(r, "ListMatchEvents")
		defer span.End()
		seen = trace.SpanFromContext(r.Context()).SpanContext()
	})
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/matches/m-1/events", nil).WithContext(ctx))

	if seen.TraceID() != parent.TraceID() {
		t.Fatalf("expected handler to run under the parent trace")
	}
}
