package usecase

import (
	"context"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("club-lineup/internal/usecase")

// startUsecaseSpan only creates a child span. Calls without a traced parent,
// such as the bootstrap seed, stay untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func matchAttr(matchID string) attribute.KeyValue {
	return attribute.String("club_lineup.match_id", matchID)
}

func scopeAttrs(scope club.Scope) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("club_lineup.club_name", scope.ClubName),
		attribute.String("club_lineup.age_group", scope.AgeGroup),
		attribute.String("club_lineup.division", scope.Division),
	}
}
