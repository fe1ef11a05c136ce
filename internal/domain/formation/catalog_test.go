package formation

import (
	"errors"
	"testing"

	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

func TestDefaultCatalog_AllFormationsHaveElevenSlots(t *testing.T) {
	catalog := Default()
	for _, id := range catalog.IDs() {
		if got := catalog.SlotCount(id); got != 11 {
			t.Fatalf("formation %s: expected 11 slots, got %d", id, got)
		}

		f, err := catalog.Lookup(id)
		if err != nil {
			t.Fatalf("lookup %s: %v", id, err)
		}
		if len(f.Rows) == 0 || len(f.Rows[0]) != 1 || f.Rows[0][0] != RoleGK {
			t.Fatalf("formation %s: first row must be a single GK", id)
		}
	}
}

func TestCatalog_SlotsAreUniqueAndOrdered(t *testing.T) {
	slots := Default().Slots("4-4-2")
	if len(slots) != 11 {
		t.Fatalf("expected 11 slots, got %d", len(slots))
	}

	seen := make(map[SlotKey]struct{}, len(slots))
	for _, slot := range slots {
		if _, ok := seen[slot]; ok {
			t.Fatalf("duplicate slot key %s", slot)
		}
		seen[slot] = struct{}{}
	}

	if slots[0] != (SlotKey{Role: RoleGK, Row: 0, Column: 0}) {
		t.Fatalf("unexpected first slot: %s", slots[0])
	}
	if slots[2] != (SlotKey{Role: RoleCB, Row: 1, Column: 1}) {
		t.Fatalf("unexpected third slot: %s", slots[2])
	}
	if slots[3] == slots[2] {
		t.Fatalf("both CB slots must have distinct keys")
	}
}

func TestCatalog_UnknownFormation(t *testing.T) {
	catalog := Default()
	if _, err := catalog.Lookup("2-2-6"); !errors.Is(err, ErrUnknownFormation) {
		t.Fatalf("expected ErrUnknownFormation, got %v", err)
	}
	if catalog.SlotCount("2-2-6") != 0 {
		t.Fatalf("expected zero slot count for unknown formation")
	}
	if catalog.Slots("2-2-6") != nil {
		t.Fatalf("expected nil slots for unknown formation")
	}
}

func TestParseSlotKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    SlotKey
		wantErr bool
	}{
		{raw: "CB-1-2", want: SlotKey{Role: RoleCB, Row: 1, Column: 2}},
		{raw: " gk-0-0 ", want: SlotKey{Role: RoleGK, Row: 0, Column: 0}},
		{raw: "CB-1", wantErr: true},
		{raw: "XX-1-2", wantErr: true},
		{raw: "CB-a-2", wantErr: true},
		{raw: "CB-1--2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSlotKey(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSlotKey) {
					t.Fatalf("expected ErrInvalidSlotKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse slot key: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected slot key: got=%+v want=%+v", got, tt.want)
			}
			if round, _ := ParseSlotKey(got.String()); round != got {
				t.Fatalf("slot key string form does not round trip: %s", got.String())
			}
		})
	}
}

func TestFormation_Contains(t *testing.T) {
	f, _ := Default().Lookup("4-3-3")
	if !f.Contains(SlotKey{Role: RoleCDM, Row: 2, Column: 1}) {
		t.Fatalf("expected CDM-2-1 to be part of 4-3-3")
	}
	if f.Contains(SlotKey{Role: RoleCM, Row: 2, Column: 1}) {
		t.Fatalf("role must match the layout")
	}
	if f.Contains(SlotKey{Role: RoleST, Row: 9, Column: 0}) {
		t.Fatalf("row out of range must not match")
	}
}

func TestRole_Category(t *testing.T) {
	pos, ok := RoleLWB.Category()
	if !ok || pos != player.PositionDefender {
		t.Fatalf("expected LWB to be a defender, got %s", pos)
	}
	if _, ok := Role("SW").Category(); ok {
		t.Fatalf("unexpected category for unknown role")
	}
}
