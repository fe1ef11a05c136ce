package observability

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/club-lineup/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"
)

const (
	logMirrorInstrumentation = "club-lineup/internal/platform/logging"
	maxLogValueDepth         = 3
)

// Request logs for these paths are probes and doc fetches.
var unmirroredRequestPaths = []string{"/healthz", "/openapi.yaml", "/docs"}

func newLogMirror(serviceVersion string) logging.MirrorFunc {
	otelLogger := otelglobal.Logger(
		logMirrorInstrumentation,
		otellog.WithInstrumentationVersion(serviceVersion),
	)

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if skipMirror(msg, args) {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}

		severity := toOTelSeverity(level)
		if !otelLogger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}

		otelLogger.Emit(ctx, newLogRecord(level, severity, msg, args))
	}
}

func newLogRecord(level logging.Level, severity otellog.Severity, msg string, args []any) otellog.Record {
	now := time.Now().UTC()
	var record otellog.Record
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetSeverity(severity)
	record.SetSeverityText(strings.ToUpper(level.String()))
	record.SetEventName(msg)
	record.SetBody(otellog.StringValue(msg))
	if attrs := logAttributes(args); len(attrs) > 0 {
		record.AddAttributes(attrs...)
	}
	return record
}

func skipMirror(msg string, args []any) bool {
	if msg != "http_request" {
		return false
	}
	path, ok := argValue(args, "http_path").(string)
	return ok && slices.Contains(unmirroredRequestPaths, path)
}

func argValue(args []any, key string) any {
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok && k == key {
			return args[i+1]
		}
	}
	return nil
}

// logAttributes pairs the key/value args. A key that is not a string is
// replaced by its position and a dangling key becomes an empty attribute.
func logAttributes(args []any) []otellog.KeyValue {
	if len(args) == 0 {
		return nil
	}

	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || strings.TrimSpace(key) == "" {
			key = fmt.Sprintf("arg_%d", i/2)
		}
		if i+1 == len(args) {
			attrs = append(attrs, otellog.Empty(key))
			break
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: toLogValue(args[i+1], 0)})
	}
	return attrs
}

func toOTelSeverity(level zapcore.Level) otellog.Severity {
	switch level {
	case zapcore.DebugLevel:
		return otellog.SeverityDebug
	case zapcore.InfoLevel:
		return otellog.SeverityInfo
	case zapcore.WarnLevel:
		return otellog.SeverityWarn
	case zapcore.ErrorLevel:
		return otellog.SeverityError
	}
	if level < zapcore.DebugLevel {
		return otellog.SeverityTrace
	}
	return otellog.SeverityFatal
}

func toLogValue(value any, depth int) otellog.Value {
	switch v := value.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int64:
		return otellog.Int64Value(v)
	case float64:
		return otellog.Float64Value(v)
	case []byte:
		return otellog.BytesValue(slices.Clone(v))
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case time.Duration:
		return otellog.Int64Value(v.Milliseconds())
	case error:
		return otellog.StringValue(v.Error())
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	}
	if depth >= maxLogValueDepth {
		return otellog.StringValue(fmt.Sprint(value))
	}
	return reflectLogValue(reflect.ValueOf(value), depth)
}

func reflectLogValue(rv reflect.Value, depth int) otellog.Value {
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return otellog.Int64Value(rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return otellog.Int64Value(int64(rv.Uint()))
	case reflect.Float32:
		return otellog.Float64Value(rv.Float())
	case reflect.String:
		return otellog.StringValue(rv.String())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return toLogValue(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		items := make([]otellog.Value, rv.Len())
		for i := range items {
			items[i] = toLogValue(rv.Index(i).Interface(), depth+1)
		}
		return otellog.SliceValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
		kvs := make([]otellog.KeyValue, 0, len(keys))
		for _, k := range keys {
			kvs = append(kvs, otellog.KeyValue{Key: k.String(), Value: toLogValue(rv.MapIndex(k).Interface(), depth+1)})
		}
		return otellog.MapValue(kvs...)
	}
	return otellog.StringValue(fmt.Sprint(rv.Interface()))
}
