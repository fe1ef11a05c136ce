package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// toFields turns alternating key/value args into zap fields. A zap.Field
// passed as an arg is used as is. A trailing key without a value is kept
// with a nil value.
func toFields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		if f, ok := args[i].(zap.Field); ok {
			out = append(out, f)
			continue
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg"
		}
		if i+1 == len(args) {
			out = append(out, zap.Any(key, nil))
			break
		}
		i++
		switch v := args[i].(type) {
		case error:
			out = append(out, zap.NamedError(key, v))
		case string:
			out = append(out, zap.String(key, v))
		case int:
			out = append(out, zap.Int(key, v))
		case bool:
			out = append(out, zap.Bool(key, v))
		default:
			out = append(out, zap.Any(key, v))
		}
	}
	return out
}

func spanFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.Stringer("trace_id", sc.TraceID()),
		zap.Stringer("span_id", sc.SpanID()),
	}
}
