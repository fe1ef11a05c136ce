package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-lineup/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo roster into an empty players table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	repo := NewPlayerRepository(db)
	for _, p := range memory.SeedPlayers() {
		if err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed player %s: %w", p.Email, err)
		}
	}
	return nil
}
