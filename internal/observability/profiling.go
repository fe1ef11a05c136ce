package observability

import (
	"errors"
	"net/http"
	"net/http/pprof"
	"runtime"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/club-lineup/internal/config"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
)

func noopStop() error { return nil }

// profileTypes adds the mutex profiles only when contention sampling is on;
// without it they upload empty.
func profileTypes(mutexFraction int) []pyroscope.ProfileType {
	types := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocObjects,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseObjects,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileGoroutines,
	}
	if mutexFraction > 0 {
		types = append(types, pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration)
	}
	return types
}

func startProfiler(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return noopStop, nil
	}

	previousFraction := -1
	if cfg.PyroscopeMutexFraction > 0 {
		previousFraction = runtime.SetMutexProfileFraction(cfg.PyroscopeMutexFraction)
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":          cfg.AppEnv,
			"service":      cfg.ServiceName,
			"version":      cfg.ServiceVersion,
			"data_backend": cfg.DataBackend,
		},
		ProfileTypes: profileTypes(cfg.PyroscopeMutexFraction),
	})
	if err != nil {
		if previousFraction >= 0 {
			runtime.SetMutexProfileFraction(previousFraction)
		}
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"mutex_fraction", cfg.PyroscopeMutexFraction,
	)

	return func() error {
		err := profiler.Stop()
		if previousFraction >= 0 {
			runtime.SetMutexProfileFraction(previousFraction)
		}
		return err
	}, nil
}

// startPprofServer serves the runtime profiles on their own listener. It
// returns nil when disabled.
func startPprofServer(cfg config.Config, logger *logging.Logger) *http.Server {
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil
	}

	srv := &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           pprofMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("pprof server starting", "addr", cfg.PprofAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()

	return srv
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("POST /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	return mux
}
