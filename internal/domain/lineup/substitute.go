package lineup

import (
	"slices"

	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

const MaxSubstitutes = 10

// AddOutcome reports how a substitute add request was handled.
type AddOutcome string

const (
	AddOutcomeAdded           AddOutcome = "added"
	AddOutcomeAlreadyPresent  AddOutcome = "already_present"
	AddOutcomeCapacityReached AddOutcome = "capacity_reached"
	AddOutcomeStarterRejected AddOutcome = "starter_rejected"
	AddOutcomeRejected        AddOutcome = "rejected"
)

// Warning reports whether the outcome should be surfaced to the coach.
func (o AddOutcome) Warning() bool {
	return o == AddOutcomeCapacityReached || o == AddOutcomeStarterRejected
}

// SubstitutePool is the ordered, bounded bench of one lineup.
type SubstitutePool struct {
	emails []string
}

func NewSubstitutePool() *SubstitutePool {
	return &SubstitutePool{emails: make([]string, 0, MaxSubstitutes)}
}

func (p *SubstitutePool) Add(email string) AddOutcome {
	email = player.NormalizeEmail(email)
	if email == "" {
		return AddOutcomeRejected
	}
	if p.Contains(email) {
		return AddOutcomeAlreadyPresent
	}
	if len(p.emails) >= MaxSubstitutes {
		return AddOutcomeCapacityReached
	}
	p.emails = append(p.emails, email)
	return AddOutcomeAdded
}

func (p *SubstitutePool) Remove(email string) bool {
	email = player.NormalizeEmail(email)
	idx := slices.Index(p.emails, email)
	if idx < 0 {
		return false
	}
	p.emails = slices.Delete(p.emails, idx, idx+1)
	return true
}

func (p *SubstitutePool) Contains(email string) bool {
	return slices.Contains(p.emails, player.NormalizeEmail(email))
}

func (p *SubstitutePool) Len() int {
	return len(p.emails)
}

func (p *SubstitutePool) Clear() {
	p.emails = p.emails[:0]
}

// Emails returns a copy in insertion order.
func (p *SubstitutePool) Emails() []string {
	return append([]string(nil), p.emails...)
}

// Available returns roster members that are not assigned, in roster order.
func Available(roster []player.Player, assigned []string) []player.Player {
	taken := make(map[string]struct{}, len(assigned))
	for _, email := range assigned {
		taken[player.NormalizeEmail(email)] = struct{}{}
	}

	out := make([]player.Player, 0, len(roster))
	for _, p := range roster {
		if _, ok := taken[player.NormalizeEmail(p.Email)]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
