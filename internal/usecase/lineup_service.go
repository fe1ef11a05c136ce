package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
)

type LineupConfig struct {
	SaveTimeout time.Duration
}

type SaveLineupInput struct {
	Session *lineup.Session
	MatchID string
	Scope   club.Scope
	Side    lineup.Side
}

type SaveLineupResult struct {
	Lineup        lineup.Lineup
	Participation ParticipationReport
}

// BuildSessionInput describes a lineup in wire form: slot keys such as
// "CB-1-2" mapped to player emails.
type BuildSessionInput struct {
	FormationID string
	Assignments map[string]string
	Substitutes []string
}

type LineupService struct {
	catalog       *formation.Catalog
	lineupRepo    lineup.Repository
	roster        *RosterService
	participation *ParticipationService
	cfg           LineupConfig
	logger        *logging.Logger
	now           func() time.Time
}

func NewLineupService(
	catalog *formation.Catalog,
	lineupRepo lineup.Repository,
	roster *RosterService,
	participation *ParticipationService,
	cfg LineupConfig,
	logger *logging.Logger,
) *LineupService {
	if catalog == nil {
		catalog = formation.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		catalog:       catalog,
		lineupRepo:    lineupRepo,
		roster:        roster,
		participation: participation,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *LineupService) Formations() []formation.Formation {
	return s.catalog.All()
}

func (s *LineupService) Formation(formationID string) (formation.Formation, error) {
	f, err := s.catalog.Lookup(strings.TrimSpace(formationID))
	if err != nil {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return f, nil
}

// BuildSession reconstructs an edit session from its wire form. Input that
// the session would silently repair, like a player bound to two slots, is
// rejected instead.
func (s *LineupService) BuildSession(input BuildSessionInput) (*lineup.Session, error) {
	session := lineup.NewSession(s.catalog)
	if err := session.ChooseFormation(strings.TrimSpace(input.FormationID), false); err != nil {
		if errors.Is(err, formation.ErrUnknownFormation) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	keys := make([]string, 0, len(input.Assignments))
	for key := range input.Assignments {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]string, len(keys))
	for _, key := range keys {
		slot, err := formation.ParseSlotKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		email := player.NormalizeEmail(input.Assignments[key])
		if email == "" {
			continue
		}
		if other, ok := seen[email]; ok {
			return nil, fmt.Errorf("%w: player %s assigned to both %s and %s", ErrInvalidInput, email, other, key)
		}
		seen[email] = key

		if _, err := session.Assign(slot, email); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	for _, email := range input.Substitutes {
		outcome := session.AddSubstitute(email)
		if outcome != lineup.AddOutcomeAdded {
			return nil, fmt.Errorf("%w: substitute %q: %s", ErrInvalidInput, email, outcome)
		}
	}

	return session, nil
}

// Save validates the session, sends it to the match service and then
// credits every starter with a played game. Validation failures never
// reach the network. A failed save leaves the session untouched.
func (s *LineupService) Save(ctx context.Context, input SaveLineupInput) (SaveLineupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Save", matchAttr(input.MatchID))
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Scope = input.Scope.Normalize()
	if input.Session == nil {
		return SaveLineupResult{}, fmt.Errorf("%w: lineup session is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return SaveLineupResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if err := input.Scope.Validate(); err != nil {
		return SaveLineupResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Side != lineup.SideHome && input.Side != lineup.SideAway {
		return SaveLineupResult{}, fmt.Errorf("%w: invalid lineup side %q", ErrInvalidInput, input.Side)
	}
	if messages := input.Session.Validate(); len(messages) > 0 {
		return SaveLineupResult{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
	}

	item, err := input.Session.Lineup(input.MatchID, input.Scope, input.Side)
	if err != nil {
		return SaveLineupResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.saveLineup(ctx, item); err != nil {
		return SaveLineupResult{}, err
	}

	if ctx.Err() == nil && !input.Session.Disposed() {
		input.Session.MarkSaved()
	}
	s.logger.InfoContext(ctx, "lineup saved",
		"match_id", item.MatchID,
		"scope", item.Scope.Key(),
		"side", item.Side,
		"formation", item.FormationID,
		"starter_count", len(item.Assignments),
		"substitute_count", len(item.Substitutes),
	)

	result := SaveLineupResult{Lineup: item}
	if s.participation == nil {
		return result, nil
	}

	var names player.NameLookup
	if s.roster != nil {
		names, err = s.roster.NameLookup(ctx, item.Scope)
		if err != nil {
			s.logger.WarnContext(ctx, "roster lookup failed, crediting players by email",
				"scope", item.Scope.Key(),
				"error", err,
			)
		}
	}

	report, err := s.participation.RecordParticipation(ctx, item, item.Side == lineup.SideHome, names)
	result.Participation = report
	if err != nil {
		return result, fmt.Errorf("record participation: %w", err)
	}
	return result, nil
}

func (s *LineupService) Get(ctx context.Context, matchID string, scope club.Scope, side lineup.Side) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Get", append(scopeAttrs(scope), matchAttr(matchID))...)
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	scope = scope.Normalize()
	if matchID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if err := scope.Validate(); err != nil {
		return lineup.Lineup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, exists, err := s.lineupRepo.Get(ctx, matchID, scope, side)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup match=%s side=%s", ErrNotFound, matchID, side)
	}
	return item, nil
}

func (s *LineupService) saveLineup(ctx context.Context, item lineup.Lineup) error {
	if s.cfg.SaveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SaveTimeout)
		defer cancel()
	}

	if err := s.lineupRepo.SaveLineup(ctx, item.Payload()); err != nil {
		return fmt.Errorf("save lineup: %w", err)
	}
	return nil
}
