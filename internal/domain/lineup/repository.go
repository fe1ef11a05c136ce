package lineup

import (
	"context"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
)

// Gateway sends saved lineups to the match service.
type Gateway interface {
	SaveLineup(ctx context.Context, payload SavePayload) error
}

// Repository reads lineups back where the backing store keeps them.
type Repository interface {
	Gateway
	Get(ctx context.Context, matchID string, scope club.Scope, side Side) (Lineup, bool, error)
}
