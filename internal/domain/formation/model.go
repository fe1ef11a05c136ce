package formation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

var (
	ErrUnknownFormation = errors.New("unknown formation")
	ErrInvalidSlotKey   = errors.New("invalid slot key")
)

// Role is a position label inside a formation row.
type Role string

const (
	RoleGK  Role = "GK"
	RoleLB  Role = "LB"
	RoleCB  Role = "CB"
	RoleRB  Role = "RB"
	RoleLWB Role = "LWB"
	RoleRWB Role = "RWB"
	RoleCDM Role = "CDM"
	RoleCM  Role = "CM"
	RoleCAM Role = "CAM"
	RoleLM  Role = "LM"
	RoleRM  Role = "RM"
	RoleLW  Role = "LW"
	RoleRW  Role = "RW"
	RoleST  Role = "ST"
)

var roleCategories = map[Role]player.Position{
	RoleGK:  player.PositionGoalkeeper,
	RoleLB:  player.PositionDefender,
	RoleCB:  player.PositionDefender,
	RoleRB:  player.PositionDefender,
	RoleLWB: player.PositionDefender,
	RoleRWB: player.PositionDefender,
	RoleCDM: player.PositionMidfielder,
	RoleCM:  player.PositionMidfielder,
	RoleCAM: player.PositionMidfielder,
	RoleLM:  player.PositionMidfielder,
	RoleRM:  player.PositionMidfielder,
	RoleLW:  player.PositionForward,
	RoleRW:  player.PositionForward,
	RoleST:  player.PositionForward,
}

// Category returns the player position category a role belongs to.
func (r Role) Category() (player.Position, bool) {
	pos, ok := roleCategories[r]
	return pos, ok
}

func (r Role) Valid() bool {
	_, ok := roleCategories[r]
	return ok
}

// Row is one line of a formation, ordered left to right.
type Row []Role

// Formation is a named layout of position rows, goalkeeper row first.
type Formation struct {
	ID   string
	Rows []Row
}

// SlotCount is the number of starters the formation requires.
func (f Formation) SlotCount() int {
	total := 0
	for _, row := range f.Rows {
		total += len(row)
	}
	return total
}

// Slots lists slot keys in row-major order.
func (f Formation) Slots() []SlotKey {
	out := make([]SlotKey, 0, f.SlotCount())
	for rowIdx, row := range f.Rows {
		for colIdx, role := range row {
			out = append(out, SlotKey{Role: role, Row: rowIdx, Column: colIdx})
		}
	}
	return out
}

// Contains reports whether the slot belongs to this layout.
func (f Formation) Contains(slot SlotKey) bool {
	if slot.Row < 0 || slot.Row >= len(f.Rows) {
		return false
	}
	row := f.Rows[slot.Row]
	if slot.Column < 0 || slot.Column >= len(row) {
		return false
	}
	return row[slot.Column] == slot.Role
}

// SlotKey identifies one placeholder of a formation. It is comparable and
// safe to use as a map key.
type SlotKey struct {
	Role   Role
	Row    int
	Column int
}

func (k SlotKey) String() string {
	return string(k.Role) + "-" + strconv.Itoa(k.Row) + "-" + strconv.Itoa(k.Column)
}

// ParseSlotKey parses the ROLE-row-column wire form.
func ParseSlotKey(raw string) (SlotKey, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return SlotKey{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, raw)
	}

	role := Role(strings.ToUpper(strings.TrimSpace(parts[0])))
	if !role.Valid() {
		return SlotKey{}, fmt.Errorf("%w: unknown role %q", ErrInvalidSlotKey, parts[0])
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil || row < 0 {
		return SlotKey{}, fmt.Errorf("%w: invalid row in %q", ErrInvalidSlotKey, raw)
	}
	col, err := strconv.Atoi(parts[2])
	if err != nil || col < 0 {
		return SlotKey{}, fmt.Errorf("%w: invalid column in %q", ErrInvalidSlotKey, raw)
	}

	return SlotKey{Role: role, Row: row, Column: col}, nil
}
