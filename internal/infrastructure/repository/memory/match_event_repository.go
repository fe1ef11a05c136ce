package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
)

// MatchEventRepository stores ledgers with a version that advances on
// every replace.
type MatchEventRepository struct {
	mu      sync.RWMutex
	ledgers map[string]matchevent.Ledger
}

func NewMatchEventRepository() *MatchEventRepository {
	return &MatchEventRepository{ledgers: make(map[string]matchevent.Ledger)}
}

func (r *MatchEventRepository) Get(_ context.Context, matchID string) (matchevent.Ledger, error) {
	matchID = strings.TrimSpace(matchID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	ledger, ok := r.ledgers[matchID]
	if !ok {
		return matchevent.Ledger{MatchID: matchID}, nil
	}
	ledger.Events = append([]matchevent.Event(nil), ledger.Events...)
	return ledger, nil
}

func (r *MatchEventRepository) Replace(_ context.Context, matchID string, events []matchevent.Event, expectedVersion int64) (int64, error) {
	matchID = strings.TrimSpace(matchID)

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.ledgers[matchID]
	if current.Version != expectedVersion {
		return current.Version, matchevent.ErrVersionConflict
	}

	next := matchevent.Ledger{
		MatchID: matchID,
		Events:  append([]matchevent.Event(nil), events...),
		Version: current.Version + 1,
	}
	r.ledgers[matchID] = next
	return next.Version, nil
}
