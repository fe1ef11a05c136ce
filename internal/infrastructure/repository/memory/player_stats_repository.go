package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	"github.com/riskibarqy/club-lineup/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	items map[string]playerstats.Aggregate
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{items: make(map[string]playerstats.Aggregate)}
}

func (r *PlayerStatsRepository) Increment(_ context.Context, inc playerstats.Increment) error {
	if err := inc.Validate(); err != nil {
		return err
	}

	email := player.NormalizeEmail(inc.PlayerEmail)
	key := statsKey(inc.Scope, email)

	r.mu.Lock()
	defer r.mu.Unlock()

	agg, ok := r.items[key]
	if !ok {
		agg = playerstats.Aggregate{Scope: inc.Scope.Normalize(), PlayerEmail: email}
	}
	agg.Apply(inc)
	r.items[key] = agg
	return nil
}

func (r *PlayerStatsRepository) Get(_ context.Context, scope club.Scope, email string) (playerstats.Aggregate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agg, ok := r.items[statsKey(scope, player.NormalizeEmail(email))]
	return agg, ok
}

func statsKey(scope club.Scope, email string) string {
	return scope.Key() + "::" + email
}
