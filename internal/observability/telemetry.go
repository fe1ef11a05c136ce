// Package observability starts and stops the process-wide tracing, log
// export and profiling integrations.
package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/riskibarqy/club-lineup/internal/config"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
)

// Telemetry owns everything Setup started.
type Telemetry struct {
	logger        *logging.Logger
	shutdownTrace func(context.Context) error
	stopProfiler  func() error
	pprof         *http.Server
}

// Setup brings up tracing first so the profiler and pprof listener log
// through the mirrored logger. A failure tears down whatever already started.
func Setup(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	shutdownTrace, err := initTracing(cfg, logger)
	if err != nil {
		return nil, err
	}
	t.shutdownTrace = shutdownTrace

	stopProfiler, err := startProfiler(cfg, logger)
	if err != nil {
		return nil, errors.Join(err, t.Shutdown(context.Background()))
	}
	t.stopProfiler = stopProfiler

	t.pprof = startPprofServer(cfg, logger)
	return t, nil
}

// Shutdown stops the components in reverse start order and reports every
// failure.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs []error
	if t.pprof != nil {
		if err := t.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			t.logger.Info("pprof server stopped")
		}
		t.pprof = nil
	}
	if t.stopProfiler != nil {
		errs = append(errs, t.stopProfiler())
		t.stopProfiler = nil
	}
	if t.shutdownTrace != nil {
		errs = append(errs, t.shutdownTrace(ctx))
		t.shutdownTrace = nil
	}
	return errors.Join(errs...)
}
