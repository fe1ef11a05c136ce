package lineup

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/formation"
)

// Side says which team of a match a lineup belongs to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func ParseSide(raw string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(raw))) {
	case SideHome:
		return SideHome, nil
	case SideAway:
		return SideAway, nil
	default:
		return "", fmt.Errorf("invalid lineup side %q: valid values are %s, %s", raw, SideHome, SideAway)
	}
}

// Lineup is the save unit of one team's starters and bench for a match.
type Lineup struct {
	MatchID     string
	Scope       club.Scope
	FormationID string
	Side        Side
	Assignments map[formation.SlotKey]string
	Substitutes []string
	UpdatedAt   time.Time
}

// Starters lists bound emails ordered by row, then column.
func (l Lineup) Starters() []string {
	keys := make([]formation.SlotKey, 0, len(l.Assignments))
	for slot := range l.Assignments {
		keys = append(keys, slot)
	}
	slices.SortFunc(keys, compareSlotKeys)

	out := make([]string, 0, len(keys))
	for _, slot := range keys {
		out = append(out, l.Assignments[slot])
	}
	return out
}

// Lineup serializes the session into a save unit.
func (s *Session) Lineup(matchID string, scope club.Scope, side Side) (Lineup, error) {
	if s.table == nil {
		return Lineup{}, ErrNoFormation
	}
	return Lineup{
		MatchID:     strings.TrimSpace(matchID),
		Scope:       scope.Normalize(),
		FormationID: s.table.Formation().ID,
		Side:        side,
		Assignments: s.table.Snapshot(),
		Substitutes: s.pool.Emails(),
	}, nil
}

// SavePayload is the wire shape sent to the match service. Only the half
// matching the coached side is populated.
type SavePayload struct {
	MatchID         string            `json:"matchId"`
	ClubName        string            `json:"clubName"`
	AgeGroup        string            `json:"ageGroup"`
	Division        string            `json:"division"`
	FormationID     string            `json:"formation,omitempty"`
	HomeTeamLineup  map[string]string `json:"homeTeamLineup,omitempty"`
	AwayTeamLineup  map[string]string `json:"awayTeamLineup,omitempty"`
	HomeSubstitutes []string          `json:"homeSubstitutes,omitempty"`
	AwaySubstitutes []string          `json:"awaySubstitutes,omitempty"`
}

func (l Lineup) Payload() SavePayload {
	bySlot := make(map[string]string, len(l.Assignments))
	for slot, email := range l.Assignments {
		bySlot[slot.String()] = email
	}

	payload := SavePayload{
		MatchID:     l.MatchID,
		ClubName:    l.Scope.ClubName,
		AgeGroup:    l.Scope.AgeGroup,
		Division:    l.Scope.Division,
		FormationID: l.FormationID,
	}
	subs := append([]string(nil), l.Substitutes...)
	if l.Side == SideAway {
		payload.AwayTeamLineup = bySlot
		payload.AwaySubstitutes = subs
	} else {
		payload.HomeTeamLineup = bySlot
		payload.HomeSubstitutes = subs
	}
	return payload
}

// FromPayload rebuilds the lineup of one side from a stored payload.
func FromPayload(payload SavePayload, side Side) (Lineup, error) {
	raw := payload.HomeTeamLineup
	subs := payload.HomeSubstitutes
	if side == SideAway {
		raw = payload.AwayTeamLineup
		subs = payload.AwaySubstitutes
	}

	assignments := make(map[formation.SlotKey]string, len(raw))
	for key, email := range raw {
		slot, err := formation.ParseSlotKey(key)
		if err != nil {
			return Lineup{}, err
		}
		assignments[slot] = email
	}

	return Lineup{
		MatchID: payload.MatchID,
		Scope: club.Scope{
			ClubName: payload.ClubName,
			AgeGroup: payload.AgeGroup,
			Division: payload.Division,
		},
		FormationID: payload.FormationID,
		Side:        side,
		Assignments: assignments,
		Substitutes: append([]string(nil), subs...),
	}, nil
}

func compareSlotKeys(a, b formation.SlotKey) int {
	if a.Row != b.Row {
		return cmp.Compare(a.Row, b.Row)
	}
	return cmp.Compare(a.Column, b.Column)
}
