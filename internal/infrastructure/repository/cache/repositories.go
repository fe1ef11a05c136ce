package cache

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	basecache "github.com/riskibarqy/club-lineup/internal/platform/cache"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{next: next, cache: basecache.NewStore[[]player.Player](ttl)}
}

func (r *PlayerRepository) ListByScope(ctx context.Context, scope club.Scope) ([]player.Player, error) {
	items, err := r.cache.GetOrLoad(ctx, "roster:"+scope.Key(), func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListByScope(ctx, scope)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}

type cachedLineup struct {
	value  lineup.Lineup
	exists bool
}

// LineupRepository caches lineup reads; every save drops the cached sides
// of that match.
type LineupRepository struct {
	next  lineup.Repository
	cache *basecache.Store[cachedLineup]
}

func NewLineupRepository(next lineup.Repository, ttl time.Duration) *LineupRepository {
	return &LineupRepository{next: next, cache: basecache.NewStore[cachedLineup](ttl)}
}

func (r *LineupRepository) Get(ctx context.Context, matchID string, scope club.Scope, side lineup.Side) (lineup.Lineup, bool, error) {
	key := lineupPrefix(matchID, scope) + string(side)
	cached, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedLineup, error) {
		item, exists, err := r.next.Get(ctx, matchID, scope, side)
		if err != nil {
			return cachedLineup{}, err
		}
		return cachedLineup{value: item, exists: exists}, nil
	})
	if err != nil {
		return lineup.Lineup{}, false, err
	}

	return cloneLineup(cached.value), cached.exists, nil
}

func (r *LineupRepository) SaveLineup(ctx context.Context, payload lineup.SavePayload) error {
	if err := r.next.SaveLineup(ctx, payload); err != nil {
		return err
	}
	scope := club.Scope{ClubName: payload.ClubName, AgeGroup: payload.AgeGroup, Division: payload.Division}
	r.cache.DeletePrefix(ctx, lineupPrefix(payload.MatchID, scope))
	return nil
}

func lineupPrefix(matchID string, scope club.Scope) string {
	return "lineup:" + strings.TrimSpace(matchID) + ":" + scope.Key() + ":"
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.Assignments = maps.Clone(item.Assignments)
	copied.Substitutes = append([]string(nil), item.Substitutes...)
	return copied
}
