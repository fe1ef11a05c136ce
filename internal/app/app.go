package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-lineup/external/gateway"
	"github.com/riskibarqy/club-lineup/internal/config"
	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	"github.com/riskibarqy/club-lineup/internal/domain/playerstats"
	"github.com/riskibarqy/club-lineup/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/club-lineup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-lineup/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/club-lineup/internal/interfaces/httpapi"
	"github.com/riskibarqy/club-lineup/internal/platform/id"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
	"github.com/riskibarqy/club-lineup/internal/platform/resilience"
	"github.com/riskibarqy/club-lineup/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	players player.Repository
	lineups lineup.Repository
	events  matchevent.Repository
	stats   playerstats.Repository
	close   func() error
}

// NewHTTPServer wires the configured storage backend into the use cases
// and returns the server with a cleanup func for the backend resources.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheEnabled {
		repos.players = cache.NewPlayerRepository(repos.players, cfg.CacheTTL)
		repos.lineups = cache.NewLineupRepository(repos.lineups, cfg.CacheTTL)
	}

	rosterSvc := usecase.NewRosterService(repos.players)
	participationSvc := usecase.NewParticipationService(repos.stats, usecase.ParticipationConfig{
		Timeout:    cfg.StatUpdateTimeout,
		MaxWorkers: cfg.ParticipationMaxWorkers,
	}, logger)
	lineupSvc := usecase.NewLineupService(
		formation.Default(),
		repos.lineups,
		rosterSvc,
		participationSvc,
		usecase.LineupConfig{SaveTimeout: cfg.LineupSaveTimeout},
		logger,
	)
	matchEventSvc := usecase.NewMatchEventService(repos.events, id.NewUUIDGenerator(), usecase.MatchEventConfig{
		Timeout:        cfg.EventLedgerTimeout,
		MaxAttempts:    cfg.EventLedgerMaxAttempts,
		BulkMaxWorkers: cfg.BulkEventMaxWorkers,
	}, logger)

	handler := httpapi.NewHandler(lineupSvc, rosterSvc, participationSvc, matchEventSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("application wired",
		"data_backend", cfg.DataBackend,
		"cache_enabled", cfg.CacheEnabled,
		"swagger_enabled", cfg.SwaggerEnabled,
	)
	return server, repos.close, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		return repositories{
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			lineups: memory.NewLineupRepository(),
			events:  memory.NewMatchEventRepository(),
			stats:   memory.NewPlayerStatsRepository(),
			close:   func() error { return nil },
		}, nil
	case config.BackendPostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("database seed checked")
		}
		return repositories{
			players: postgres.NewPlayerRepository(db),
			lineups: postgres.NewLineupRepository(db),
			events:  postgres.NewMatchEventRepository(db),
			stats:   postgres.NewPlayerStatsRepository(db),
			close:   db.Close,
		}, nil
	case config.BackendGateway:
		client, err := gateway.NewClient(gateway.ClientConfig{
			BaseURL:    cfg.GatewayBaseURL,
			Token:      cfg.GatewayToken,
			Timeout:    cfg.GatewayTimeout,
			MaxRetries: cfg.GatewayMaxRetries,
			Logger:     logger,
			Breaker: resilience.BreakerConfig{
				Enabled:   cfg.GatewayCircuitEnabled,
				Threshold: cfg.GatewayCircuitFailureCount,
				Cooldown:  cfg.GatewayCircuitOpenTimeout,
				Probes:    cfg.GatewayCircuitHalfOpenMaxReq,
			},
		})
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			players: gateway.NewPlayerRepository(client),
			lineups: gateway.NewLineupRepository(client),
			events:  gateway.NewMatchEventRepository(client),
			stats:   gateway.NewPlayerStatsRepository(client),
			close:   func() error { return nil },
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping database: %w", err), db.Close())
	}
	return db, nil
}
