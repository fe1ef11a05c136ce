package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	"github.com/riskibarqy/club-lineup/internal/domain/playerstats"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultParticipationMaxWorkers = 8

type ParticipationConfig struct {
	Timeout    time.Duration
	MaxWorkers int
}

// ParticipationResult is the outcome of one starter's gamesPlayed update.
type ParticipationResult struct {
	PlayerEmail string
	PlayerName  string
	Err         error
}

func (r ParticipationResult) Succeeded() bool {
	return r.Err == nil
}

type ParticipationReport struct {
	Scope      club.Scope
	IsHomeGame bool
	Results    []ParticipationResult
}

func (r ParticipationReport) Failed() []ParticipationResult {
	out := make([]ParticipationResult, 0)
	for _, item := range r.Results {
		if !item.Succeeded() {
			out = append(out, item)
		}
	}
	return out
}

func (r ParticipationReport) SucceededCount() int {
	return len(r.Results) - len(r.Failed())
}

// ParticipationTarget names one player to credit.
type ParticipationTarget struct {
	PlayerEmail string
	PlayerName  string
}

// ParticipationService credits starters with a played game. Updates fan
// out concurrently and are not atomic: succeeded updates stay applied when
// others fail.
type ParticipationService struct {
	stats  playerstats.Repository
	cfg    ParticipationConfig
	logger *logging.Logger
}

func NewParticipationService(stats playerstats.Repository, cfg ParticipationConfig, logger *logging.Logger) *ParticipationService {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultParticipationMaxWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ParticipationService{
		stats:  stats,
		cfg:    cfg,
		logger: logger,
	}
}

// RecordParticipation issues one gamesPlayed increment per starter of lu.
// Substitutes are not credited. Names come from names and fall back to
// the email.
func (s *ParticipationService) RecordParticipation(
	ctx context.Context,
	lu lineup.Lineup,
	isHomeGame bool,
	names player.NameLookup,
) (ParticipationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.RecordParticipation", matchAttr(lu.MatchID))
	defer span.End()

	starters := lu.Starters()
	targets := make([]ParticipationTarget, 0, len(starters))
	for _, email := range starters {
		name := email
		if names != nil {
			if resolved, ok := names(email); ok {
				name = resolved
			}
		}
		targets = append(targets, ParticipationTarget{PlayerEmail: email, PlayerName: name})
	}

	return s.record(ctx, lu.Scope, isHomeGame, targets)
}

// Retry re-issues the increments of the given players only.
func (s *ParticipationService) Retry(
	ctx context.Context,
	scope club.Scope,
	isHomeGame bool,
	targets []ParticipationTarget,
) (ParticipationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.Retry", scopeAttrs(scope)...)
	defer span.End()

	normalized := make([]ParticipationTarget, 0, len(targets))
	seen := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		email := player.NormalizeEmail(target.PlayerEmail)
		if email == "" {
			return ParticipationReport{}, fmt.Errorf("%w: player email is required", ErrInvalidInput)
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}

		name := strings.TrimSpace(target.PlayerName)
		if name == "" {
			name = email
		}
		normalized = append(normalized, ParticipationTarget{PlayerEmail: email, PlayerName: name})
	}

	return s.record(ctx, scope, isHomeGame, normalized)
}

func (s *ParticipationService) record(
	ctx context.Context,
	scope club.Scope,
	isHomeGame bool,
	targets []ParticipationTarget,
) (ParticipationReport, error) {
	scope = scope.Normalize()
	if err := scope.Validate(); err != nil {
		return ParticipationReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	report := ParticipationReport{
		Scope:      scope,
		IsHomeGame: isHomeGame,
		Results:    make([]ParticipationResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return report, nil
	}

	order := make(map[string]int, len(targets))
	for idx, target := range targets {
		order[target.PlayerEmail] = idx
	}

	p := pool.NewWithResults[ParticipationResult]().
		WithContext(ctx).
		WithMaxGoroutines(min(s.cfg.MaxWorkers, len(targets)))
	for _, target := range targets {
		p.Go(func(ctx context.Context) (ParticipationResult, error) {
			return s.increment(ctx, scope, isHomeGame, target), nil
		})
	}
	results, _ := p.Wait()

	sort.Slice(results, func(i, j int) bool {
		return order[results[i].PlayerEmail] < order[results[j].PlayerEmail]
	})
	report.Results = results

	failed := report.Failed()
	if len(failed) == 0 {
		s.logger.InfoContext(ctx, "participation recorded",
			"scope", scope.Key(),
			"is_home_game", isHomeGame,
			"player_count", len(results),
		)
		return report, nil
	}

	failedEmails := make([]string, 0, len(failed))
	for _, item := range failed {
		failedEmails = append(failedEmails, item.PlayerEmail)
	}
	s.logger.WarnContext(ctx, "participation partially recorded",
		"scope", scope.Key(),
		"is_home_game", isHomeGame,
		"player_count", len(results),
		"failed_count", len(failed),
		"failed_players", failedEmails,
	)
	return report, fmt.Errorf("%w: %d of %d participation updates failed", ErrPartialFailure, len(failed), len(results))
}

func (s *ParticipationService) increment(
	ctx context.Context,
	scope club.Scope,
	isHomeGame bool,
	target ParticipationTarget,
) ParticipationResult {
	result := ParticipationResult{PlayerEmail: target.PlayerEmail, PlayerName: target.PlayerName}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	err := s.stats.Increment(ctx, playerstats.Increment{
		Scope:       scope,
		PlayerEmail: target.PlayerEmail,
		PlayerName:  target.PlayerName,
		StatKey:     playerstats.StatGamesPlayed,
		IsHomeGame:  isHomeGame,
	})
	if err != nil {
		result.Err = fmt.Errorf("increment games played for %s: %w", target.PlayerEmail, err)
	}
	return result
}
