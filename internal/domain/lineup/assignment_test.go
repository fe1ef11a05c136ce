package lineup

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/riskibarqy/club-lineup/internal/domain/formation"
)

func mustFormation(t *testing.T, id string) formation.Formation {
	t.Helper()

	f, err := formation.Default().Lookup(id)
	if err != nil {
		t.Fatalf("lookup formation %s: %v", id, err)
	}
	return f
}

func assertInjective(t *testing.T, table *AssignmentTable) {
	t.Helper()

	seen := make(map[string]formation.SlotKey)
	for slot, email := range table.Snapshot() {
		if other, ok := seen[email]; ok {
			t.Fatalf("email %s bound to both %s and %s", email, other, slot)
		}
		seen[email] = slot
	}
	if len(seen) != table.Filled() {
		t.Fatalf("filled count %d does not match distinct emails %d", table.Filled(), len(seen))
	}
}

func TestAssignmentTable_ValidateScenarioA(t *testing.T) {
	f := mustFormation(t, "4-4-2")
	table := NewAssignmentTable(f)

	for i, slot := range f.Slots() {
		if _, err := table.Assign(slot, fmt.Sprintf("p%02d@x.com", i)); err != nil {
			t.Fatalf("assign %s: %v", slot, err)
		}
	}
	if msgs := table.Validate(f.SlotCount()); len(msgs) != 0 {
		t.Fatalf("expected no validation messages, got %v", msgs)
	}

	table.Unassign(f.Slots()[5])
	msgs := table.Validate(f.SlotCount())
	if len(msgs) != 1 {
		t.Fatalf("expected exactly one message, got %v", msgs)
	}
	if msgs[0] != "1 positions still need to be filled" {
		t.Fatalf("unexpected message: %q", msgs[0])
	}
}

func TestAssignmentTable_MoveScenarioB(t *testing.T) {
	f := mustFormation(t, "4-4-2")
	slots := f.Slots()
	table := NewAssignmentTable(f)

	if _, err := table.Assign(slots[1], "a@x.com"); err != nil {
		t.Fatalf("assign s1: %v", err)
	}
	if _, err := table.Assign(slots[9], "c@x.com"); err != nil {
		t.Fatalf("assign filler: %v", err)
	}
	before := table.Filled()

	result, err := table.Assign(slots[2], "a@x.com")
	if err != nil {
		t.Fatalf("assign s2: %v", err)
	}

	if _, ok := table.Get(slots[1]); ok {
		t.Fatalf("expected S1 to be empty after move")
	}
	if got, _ := table.Get(slots[2]); got != "a@x.com" {
		t.Fatalf("expected S2 to hold a@x.com, got %q", got)
	}
	if table.Filled() != before {
		t.Fatalf("filled count changed: before=%d after=%d", before, table.Filled())
	}
	if result.MovedFrom == nil || *result.MovedFrom != slots[1] {
		t.Fatalf("expected move from %s, got %+v", slots[1], result.MovedFrom)
	}
}

func TestAssignmentTable_DisplacesPreviousOccupant(t *testing.T) {
	f := mustFormation(t, "4-3-3")
	slots := f.Slots()
	table := NewAssignmentTable(f)

	_, _ = table.Assign(slots[0], "keeper@x.com")
	_, _ = table.Assign(slots[1], "back@x.com")

	result, err := table.Assign(slots[0], "back@x.com")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if result.Displaced != "keeper@x.com" {
		t.Fatalf("expected keeper to be displaced, got %q", result.Displaced)
	}
	if table.IsAssigned("keeper@x.com") {
		t.Fatalf("displaced player must be unassigned, not swapped")
	}
	if _, ok := table.Get(slots[1]); ok {
		t.Fatalf("expected original slot of moved player to be empty")
	}
	if table.Filled() != 1 {
		t.Fatalf("expected one filled slot, got %d", table.Filled())
	}
}

func TestAssignmentTable_EmptyEmailIsUnassign(t *testing.T) {
	f := mustFormation(t, "4-4-2")
	slot := f.Slots()[3]

	viaAssign := NewAssignmentTable(f)
	viaUnassign := NewAssignmentTable(f)
	for _, table := range []*AssignmentTable{viaAssign, viaUnassign} {
		_, _ = table.Assign(slot, "a@x.com")
	}

	if _, err := viaAssign.Assign(slot, "  "); err != nil {
		t.Fatalf("assign empty: %v", err)
	}
	viaUnassign.Unassign(slot)

	if viaAssign.Filled() != viaUnassign.Filled() || viaAssign.Filled() != 0 {
		t.Fatalf("expected both tables to be empty: %d vs %d", viaAssign.Filled(), viaUnassign.Filled())
	}
	if viaAssign.IsAssigned("a@x.com") {
		t.Fatalf("expected a@x.com to be released")
	}
}

func TestAssignmentTable_UnassignMissingIsNoop(t *testing.T) {
	f := mustFormation(t, "4-4-2")
	table := NewAssignmentTable(f)

	if got := table.Unassign(f.Slots()[0]); got != "" {
		t.Fatalf("expected no-op, got %q", got)
	}
}

func TestAssignmentTable_Reset(t *testing.T) {
	f := mustFormation(t, "4-4-2")
	table := NewAssignmentTable(f)
	for i, slot := range f.Slots()[:6] {
		_, _ = table.Assign(slot, fmt.Sprintf("p%d@x.com", i))
	}

	table.Reset()
	if table.Filled() != 0 {
		t.Fatalf("expected zero filled slots after reset, got %d", table.Filled())
	}
	if len(table.Emails()) != 0 {
		t.Fatalf("expected no emails after reset")
	}
}

func TestAssignmentTable_RejectsForeignSlot(t *testing.T) {
	table := NewAssignmentTable(mustFormation(t, "4-4-2"))

	_, err := table.Assign(formation.SlotKey{Role: formation.RoleCDM, Row: 2, Column: 1}, "a@x.com")
	if !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}

func TestAssignmentTable_InjectiveUnderRandomOperations(t *testing.T) {
	f := mustFormation(t, "3-5-2")
	slots := f.Slots()
	emails := []string{"", "a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com", "A@X.COM"}
	rng := rand.New(rand.NewSource(42))
	table := NewAssignmentTable(f)

	for i := 0; i < 5000; i++ {
		slot := slots[rng.Intn(len(slots))]
		if rng.Intn(4) == 0 {
			table.Unassign(slot)
		} else if _, err := table.Assign(slot, emails[rng.Intn(len(emails))]); err != nil {
			t.Fatalf("assign: %v", err)
		}
		assertInjective(t, table)
	}
}
