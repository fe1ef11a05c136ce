package observability

import (
	"context"

	"github.com/riskibarqy/club-lineup/internal/config"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

func noopShutdown(context.Context) error { return nil }

// initTracing points the global OpenTelemetry providers at Uptrace and,
// when log export is on, mirrors application logs into it.
func initTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logging.SetMirror(nil)
		reason := "UPTRACE_ENABLED=false"
		if cfg.UptraceEnabled {
			reason = "UPTRACE_DSN empty"
		}
		logger.Info("uptrace disabled", "reason", reason)
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
		uptrace.WithResourceAttributes(attribute.String("club_lineup.data_backend", cfg.DataBackend)),
	)

	mirror := logging.MirrorFunc(nil)
	if cfg.UptraceLogsEnabled {
		mirror = newLogMirror(cfg.ServiceVersion)
	}
	logging.SetMirror(mirror)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}
