package lineup

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

func TestSubstitutePool_AddIsIdempotentScenarioC(t *testing.T) {
	pool := NewSubstitutePool()

	if got := pool.Add("b@x.com"); got != AddOutcomeAdded {
		t.Fatalf("expected added, got %s", got)
	}
	if got := pool.Add("b@x.com"); got != AddOutcomeAlreadyPresent {
		t.Fatalf("expected already present, got %s", got)
	}
	if pool.Len() != 1 {
		t.Fatalf("expected pool size 1, got %d", pool.Len())
	}
	if emails := pool.Emails(); len(emails) != 1 || emails[0] != "b@x.com" {
		t.Fatalf("unexpected pool contents: %v", emails)
	}
}

func TestSubstitutePool_Capacity(t *testing.T) {
	pool := NewSubstitutePool()
	for i := 0; i < MaxSubstitutes; i++ {
		if got := pool.Add(fmt.Sprintf("s%d@x.com", i)); got != AddOutcomeAdded {
			t.Fatalf("add %d: expected added, got %s", i, got)
		}
	}

	got := pool.Add("extra@x.com")
	if got != AddOutcomeCapacityReached {
		t.Fatalf("expected capacity warning, got %s", got)
	}
	if !got.Warning() {
		t.Fatalf("capacity outcome must be a warning")
	}
	if pool.Len() != MaxSubstitutes {
		t.Fatalf("expected pool to stay at %d, got %d", MaxSubstitutes, pool.Len())
	}
}

func TestSubstitutePool_RemoveKeepsOrder(t *testing.T) {
	pool := NewSubstitutePool()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		pool.Add(email)
	}

	if !pool.Remove("B@x.com") {
		t.Fatalf("expected remove to succeed")
	}
	if pool.Remove("missing@x.com") {
		t.Fatalf("expected remove of missing email to be a no-op")
	}

	emails := pool.Emails()
	if len(emails) != 2 || emails[0] != "a@x.com" || emails[1] != "c@x.com" {
		t.Fatalf("unexpected order after remove: %v", emails)
	}
}

func TestAvailable_DisjointFromAssigned(t *testing.T) {
	roster := []player.Player{
		{Email: "a@x.com", Name: "A"},
		{Email: "b@x.com", Name: "B"},
		{Email: "C@x.com", Name: "C"},
		{Email: "d@x.com", Name: "D"},
	}
	assigned := []string{"b@x.com", "c@x.com", "zzz@x.com"}

	got := Available(roster, assigned)
	if len(got) != 2 || got[0].Email != "a@x.com" || got[1].Email != "d@x.com" {
		t.Fatalf("unexpected available players: %+v", got)
	}

	taken := map[string]struct{}{}
	for _, email := range assigned {
		taken[player.NormalizeEmail(email)] = struct{}{}
	}
	for _, p := range got {
		if _, ok := taken[player.NormalizeEmail(p.Email)]; ok {
			t.Fatalf("available list contains assigned player %s", p.Email)
		}
	}
}
