package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("club-lineup/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// Path values copied onto handler spans.
var spanPathValues = []struct {
	name string
	key  attribute.Key
}{
	{"matchID", "club_lineup.match_id"},
	{"side", "club_lineup.side"},
	{"clubName", "club_lineup.club_name"},
	{"formationID", "club_lineup.formation_id"},
}

// handlerSpan starts the span of one handler call. The server span opened
// by RequestTracing only knows the raw path, so it is renamed to the matched
// route here. Requests the tracing filter skipped carry no parent and get a
// noop span.
func handlerSpan(r *http.Request, op string) (context.Context, trace.Span) {
	ctx := r.Context()
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if r.Pattern != "" {
		parent.SetName(r.Pattern)
		parent.SetAttributes(attribute.String("http.route", r.Pattern))
	}

	attrs := make([]attribute.KeyValue, 0, len(spanPathValues))
	for _, pv := range spanPathValues {
		if v := r.PathValue(pv.name); v != "" {
			attrs = append(attrs, pv.key.String(v))
		}
	}
	return apiTracer.Start(ctx, handlerSpanPrefix+op, trace.WithAttributes(attrs...))
}
