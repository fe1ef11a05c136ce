package matchevent

import "context"

type Repository interface {
	// Get returns the ledger of matchID; a match without events yields an
	// empty ledger, not an error.
	Get(ctx context.Context, matchID string) (Ledger, error)
	// Replace overwrites the full event list. A positive expectedVersion
	// must match the stored version or ErrVersionConflict is returned.
	Replace(ctx context.Context, matchID string, events []Event, expectedVersion int64) (int64, error)
}
