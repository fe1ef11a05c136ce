package usecase

import (
	"testing"

	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/infrastructure/repository/memory"
)

// seedAssignments binds the first n seeded players to the slots of
// formationID in row-major order.
func seedAssignments(t *testing.T, formationID string, n int) map[string]string {
	t.Helper()

	slots := formation.Default().Slots(formationID)
	if len(slots) == 0 {
		t.Fatalf("unknown formation %s", formationID)
	}
	players := memory.SeedPlayers()
	out := make(map[string]string, n)
	for i := 0; i < n; i++ {
		out[slots[i].String()] = players[i].Email
	}
	return out
}
