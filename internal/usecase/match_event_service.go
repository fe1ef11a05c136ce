package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/platform/id"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultLedgerMaxAttempts = 3

type MatchEventConfig struct {
	Timeout        time.Duration
	MaxAttempts    int
	BulkMaxWorkers int
}

type RecordEventResult struct {
	MatchID   string
	Event     matchevent.Event
	Duplicate bool
	Version   int64
	Attempts  int
}

// MatchEventService appends events to the shared per-match ledger with a
// read, merge, write cycle guarded by the ledger version.
type MatchEventService struct {
	repo   matchevent.Repository
	ids    id.Generator
	cfg    MatchEventConfig
	logger *logging.Logger
	now    func() time.Time
}

func NewMatchEventService(
	repo matchevent.Repository,
	ids id.Generator,
	cfg MatchEventConfig,
	logger *logging.Logger,
) *MatchEventService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultLedgerMaxAttempts
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchEventService{
		repo:   repo,
		ids:    ids,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *MatchEventService) ListEvents(ctx context.Context, matchID string) (matchevent.Ledger, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.ListEvents", matchAttr(matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return matchevent.Ledger{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ledger, err := s.repo.Get(ctx, matchID)
	if err != nil {
		return matchevent.Ledger{}, fmt.Errorf("get match event ledger: %w", err)
	}
	ledger.MatchID = matchID
	return ledger, nil
}

// RecordEvent merges event into the ledger of matchID. A duplicate of an
// event already stored is reported without writing. When the ledger moved
// between read and write the cycle is repeated up to MaxAttempts times.
func (s *MatchEventService) RecordEvent(ctx context.Context, matchID string, event matchevent.Event) (RecordEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.RecordEvent",
		matchAttr(matchID), attribute.String("club_lineup.event_type", string(event.Type)))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return RecordEventResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	event = event.Normalize()
	if err := event.Validate(); err != nil {
		return RecordEventResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if event.ID == "" {
		eventID, err := s.ids.NewID()
		if err != nil {
			return RecordEventResult{}, fmt.Errorf("generate event id: %w", err)
		}
		event.ID = eventID
	}
	if event.RecordedAt.IsZero() {
		event.RecordedAt = s.now().UTC()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		ledger, err := s.repo.Get(ctx, matchID)
		if err != nil {
			return RecordEventResult{}, fmt.Errorf("get match event ledger: %w", err)
		}

		if matchevent.Contains(ledger.Events, event) {
			s.logger.DebugContext(ctx, "match event already recorded",
				"match_id", matchID,
				"event_type", event.Type,
				"minute", event.Minute,
			)
			return RecordEventResult{
				MatchID:   matchID,
				Event:     event,
				Duplicate: true,
				Version:   ledger.Version,
				Attempts:  attempt,
			}, nil
		}

		merged := make([]matchevent.Event, 0, len(ledger.Events)+1)
		merged = append(merged, ledger.Events...)
		merged = matchevent.Dedupe(append(merged, event))

		version, err := s.repo.Replace(ctx, matchID, merged, ledger.Version)
		if errors.Is(err, matchevent.ErrVersionConflict) {
			s.logger.WarnContext(ctx, "match event ledger changed between read and write",
				"match_id", matchID,
				"expected_version", ledger.Version,
				"attempt", attempt,
				"max_attempts", s.cfg.MaxAttempts,
			)
			continue
		}
		if err != nil {
			return RecordEventResult{}, fmt.Errorf("replace match event ledger: %w", err)
		}

		s.logger.InfoContext(ctx, "match event recorded",
			"match_id", matchID,
			"event_id", event.ID,
			"event_type", event.Type,
			"version", version,
			"ledger_size", len(merged),
		)
		return RecordEventResult{
			MatchID:  matchID,
			Event:    event,
			Version:  version,
			Attempts: attempt,
		}, nil
	}

	return RecordEventResult{}, fmt.Errorf("%w: match event ledger for match=%s kept changing after %d attempts", ErrConflict, matchID, s.cfg.MaxAttempts)
}

func (s *MatchEventService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}
