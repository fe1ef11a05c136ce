package club

import (
	"fmt"
	"strings"
)

// Scope identifies one squad of a club: the unit rosters, lineups and
// stats are kept under.
type Scope struct {
	ClubName string
	AgeGroup string
	Division string
}

func (s Scope) Normalize() Scope {
	return Scope{
		ClubName: strings.TrimSpace(s.ClubName),
		AgeGroup: strings.TrimSpace(s.AgeGroup),
		Division: strings.TrimSpace(s.Division),
	}
}

func (s Scope) Validate() error {
	s = s.Normalize()
	if s.ClubName == "" {
		return fmt.Errorf("club name is required")
	}
	if s.AgeGroup == "" {
		return fmt.Errorf("age group is required")
	}
	if s.Division == "" {
		return fmt.Errorf("division is required")
	}
	return nil
}

// Key is a stable string form used for cache keys and logs.
func (s Scope) Key() string {
	s = s.Normalize()
	return strings.ToLower(s.ClubName) + "::" + strings.ToLower(s.AgeGroup) + "::" + strings.ToLower(s.Division)
}
