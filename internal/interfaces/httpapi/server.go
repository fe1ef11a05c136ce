package httpapi

import (
	"net/http"
	"runtime/debug"

	"github.com/riskibarqy/club-lineup/internal/platform/logging"
)

type route struct {
	pattern string
	handle  http.HandlerFunc
}

func (h *Handler) routes(swaggerEnabled bool) []route {
	rs := []route{
		{"GET /healthz", h.Healthz},

		{"GET /v1/formations", h.ListFormations},
		{"GET /v1/formations/{formationID}", h.GetFormation},

		{"GET /v1/clubs/{clubName}/roster", h.ListRoster},
		{"GET /v1/clubs/{clubName}/roster/available", h.ListAvailablePlayers},

		{"PUT /v1/matches/{matchID}/lineups/{side}", h.SaveLineup},
		{"GET /v1/matches/{matchID}/lineups/{side}", h.GetLineup},
		// Re-issues gamesPlayed updates that failed during a lineup save.
		{"POST /v1/participation/retry", h.RetryParticipation},

		{"GET /v1/matches/{matchID}/events", h.ListMatchEvents},
		{"POST /v1/matches/{matchID}/events", h.RecordMatchEvent},
		{"POST /v1/events/bulk", h.RecordMatchEventsBulk},
	}
	if swaggerEnabled {
		rs = append(rs,
			route{"GET /openapi.yaml", h.OpenAPI},
			route{"GET /docs", h.SwaggerUI},
			route{"GET /docs/", h.SwaggerUI},
		)
	}
	return rs
}

// NewRouter wires the routes behind, from outermost in: tracing, access
// logging, CORS and panic recovery.
func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	for _, rt := range handler.routes(swaggerEnabled) {
		mux.HandleFunc(rt.pattern, rt.handle)
	}

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered",
				"panic", rec,
				"route", r.Pattern,
				"stack", string(debug.Stack()),
			)
			writeInternalError(r.Context(), w)
		}()
		next.ServeHTTP(w, r)
	})
}
