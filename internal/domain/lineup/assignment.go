package lineup

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

var ErrUnknownSlot = errors.New("slot is not part of formation")

// AssignResult describes what an Assign call changed.
type AssignResult struct {
	// Previous is the email that held the slot before, if any.
	Previous string
	// Displaced is set when Previous was a different player who is now unassigned.
	Displaced string
	// MovedFrom is the slot the player occupied before the move.
	MovedFrom *formation.SlotKey
}

// AssignmentTable binds formation slots to player emails. The binding is
// injective: one email occupies at most one slot.
// Not safe for concurrent use.
type AssignmentTable struct {
	formation formation.Formation
	bySlot    map[formation.SlotKey]string
	byEmail   map[string]formation.SlotKey
}

func NewAssignmentTable(f formation.Formation) *AssignmentTable {
	return &AssignmentTable{
		formation: f,
		bySlot:    make(map[formation.SlotKey]string, f.SlotCount()),
		byEmail:   make(map[string]formation.SlotKey, f.SlotCount()),
	}
}

func (t *AssignmentTable) Formation() formation.Formation {
	return t.formation
}

func (t *AssignmentTable) Slots() []formation.SlotKey {
	return t.formation.Slots()
}

// Assign binds email to slot. An empty email clears the slot. A player
// already placed elsewhere is moved; the slot's previous occupant is
// unassigned, not swapped.
func (t *AssignmentTable) Assign(slot formation.SlotKey, email string) (AssignResult, error) {
	if !t.formation.Contains(slot) {
		return AssignResult{}, fmt.Errorf("%w: %s in %s", ErrUnknownSlot, slot, t.formation.ID)
	}

	email = player.NormalizeEmail(email)
	if email == "" {
		previous := t.Unassign(slot)
		return AssignResult{Previous: previous, Displaced: previous}, nil
	}

	result := AssignResult{Previous: t.bySlot[slot]}
	if current, ok := t.byEmail[email]; ok {
		if current == slot {
			return result, nil
		}
		from := current
		result.MovedFrom = &from
		delete(t.bySlot, current)
	}

	if result.Previous != "" && result.Previous != email {
		delete(t.byEmail, result.Previous)
		result.Displaced = result.Previous
	}

	t.bySlot[slot] = email
	t.byEmail[email] = slot
	return result, nil
}

// Unassign clears slot and returns the email that held it.
func (t *AssignmentTable) Unassign(slot formation.SlotKey) string {
	email, ok := t.bySlot[slot]
	if !ok {
		return ""
	}
	delete(t.bySlot, slot)
	delete(t.byEmail, email)
	return email
}

func (t *AssignmentTable) Reset() {
	clear(t.bySlot)
	clear(t.byEmail)
}

// Validate returns human readable messages; empty when the table is complete.
func (t *AssignmentTable) Validate(required int) []string {
	messages := make([]string, 0, 1)
	if filled := len(t.bySlot); filled < required {
		messages = append(messages, fmt.Sprintf("%d positions still need to be filled", required-filled))
	}
	return messages
}

func (t *AssignmentTable) Get(slot formation.SlotKey) (string, bool) {
	email, ok := t.bySlot[slot]
	return email, ok
}

func (t *AssignmentTable) SlotOf(email string) (formation.SlotKey, bool) {
	slot, ok := t.byEmail[player.NormalizeEmail(email)]
	return slot, ok
}

func (t *AssignmentTable) IsAssigned(email string) bool {
	_, ok := t.byEmail[player.NormalizeEmail(email)]
	return ok
}

func (t *AssignmentTable) Filled() int {
	return len(t.bySlot)
}

// Emails lists starters in formation order.
func (t *AssignmentTable) Emails() []string {
	out := make([]string, 0, len(t.bySlot))
	for _, slot := range t.formation.Slots() {
		if email, ok := t.bySlot[slot]; ok {
			out = append(out, email)
		}
	}
	return out
}

// Snapshot copies the current bindings.
func (t *AssignmentTable) Snapshot() map[formation.SlotKey]string {
	out := make(map[formation.SlotKey]string, len(t.bySlot))
	for slot, email := range t.bySlot {
		out[slot] = email
	}
	return out
}
