package player

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
)

// Position represents the position category a player is registered under.
type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionForward    Position = "Forward"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is a registered member of a club roster. Email is the identity.
type Player struct {
	Email    string
	Name     string
	Position Position
	UID      string
	Scope    club.Scope
}

func (p Player) Validate() error {
	if NormalizeEmail(p.Email) == "" {
		return fmt.Errorf("player email is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}

// NormalizeEmail returns the canonical identity form of an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Emails returns the normalized emails of players in roster order.
func Emails(players []Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, NormalizeEmail(p.Email))
	}
	return out
}

// NameLookup resolves a display name for a player email.
type NameLookup func(email string) (string, bool)

// NewNameLookup indexes players by normalized email.
func NewNameLookup(players []Player) NameLookup {
	names := make(map[string]string, len(players))
	for _, p := range players {
		email := NormalizeEmail(p.Email)
		if email == "" {
			continue
		}
		names[email] = strings.TrimSpace(p.Name)
	}

	return func(email string) (string, bool) {
		name, ok := names[NormalizeEmail(email)]
		if !ok || name == "" {
			return "", false
		}
		return name, true
	}
}
