package memory

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
)

// LineupRepository keeps one save payload per match and club scope. Each
// save only overwrites the half it carries, like the remote match service.
type LineupRepository struct {
	mu      sync.RWMutex
	items   map[string]lineup.SavePayload
	updated map[string]time.Time
	now     func() time.Time
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{
		items:   make(map[string]lineup.SavePayload),
		updated: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *LineupRepository) SaveLineup(_ context.Context, payload lineup.SavePayload) error {
	scope := club.Scope{ClubName: payload.ClubName, AgeGroup: payload.AgeGroup, Division: payload.Division}
	key := lineupKey(payload.MatchID, scope)

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[key]
	if !ok {
		stored = lineup.SavePayload{
			MatchID:  strings.TrimSpace(payload.MatchID),
			ClubName: payload.ClubName,
			AgeGroup: payload.AgeGroup,
			Division: payload.Division,
		}
	}
	if payload.FormationID != "" {
		stored.FormationID = payload.FormationID
	}
	if payload.HomeTeamLineup != nil {
		stored.HomeTeamLineup = maps.Clone(payload.HomeTeamLineup)
		stored.HomeSubstitutes = append([]string{}, payload.HomeSubstitutes...)
	}
	if payload.AwayTeamLineup != nil {
		stored.AwayTeamLineup = maps.Clone(payload.AwayTeamLineup)
		stored.AwaySubstitutes = append([]string{}, payload.AwaySubstitutes...)
	}

	r.items[key] = stored
	r.updated[key] = r.now().UTC()
	return nil
}

func (r *LineupRepository) Get(_ context.Context, matchID string, scope club.Scope, side lineup.Side) (lineup.Lineup, bool, error) {
	key := lineupKey(matchID, scope)

	r.mu.RLock()
	stored, ok := r.items[key]
	updatedAt := r.updated[key]
	r.mu.RUnlock()
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	if side == lineup.SideAway && stored.AwayTeamLineup == nil {
		return lineup.Lineup{}, false, nil
	}
	if side != lineup.SideAway && stored.HomeTeamLineup == nil {
		return lineup.Lineup{}, false, nil
	}

	item, err := lineup.FromPayload(stored, side)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	item.UpdatedAt = updatedAt
	return item, true, nil
}

func lineupKey(matchID string, scope club.Scope) string {
	return strings.TrimSpace(matchID) + "::" + scope.Key()
}
