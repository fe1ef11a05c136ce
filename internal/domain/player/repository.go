package player

import (
	"context"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
)

// Repository describes roster lookups needed by use cases.
type Repository interface {
	ListByScope(ctx context.Context, scope club.Scope) ([]Player, error)
}
