package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	byScope map[string][]player.Player
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	repo := &PlayerRepository{byScope: make(map[string][]player.Player)}
	for _, p := range seed {
		key := p.Scope.Key()
		p.Email = player.NormalizeEmail(p.Email)
		p.Scope = p.Scope.Normalize()
		repo.byScope[key] = append(repo.byScope[key], p)
	}
	return repo
}

func (r *PlayerRepository) ListByScope(_ context.Context, scope club.Scope) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]player.Player(nil), r.byScope[scope.Key()]...), nil
}
