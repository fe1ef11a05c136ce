package playerstats

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

// StatKey names a counter of the player stat aggregate.
type StatKey string

const (
	StatGoals       StatKey = "goals"
	StatAssists     StatKey = "assists"
	StatYellowCards StatKey = "yellowCards"
	StatRedCards    StatKey = "redCards"
	StatGamesPlayed StatKey = "gamesPlayed"
)

var validStatKeys = map[StatKey]struct{}{
	StatGoals:       {},
	StatAssists:     {},
	StatYellowCards: {},
	StatRedCards:    {},
	StatGamesPlayed: {},
}

func (k StatKey) Valid() bool {
	_, ok := validStatKeys[k]
	return ok
}

// Increment adds one to a player's counter, credited to the home or away split.
type Increment struct {
	Scope       club.Scope
	PlayerEmail string
	PlayerName  string
	StatKey     StatKey
	IsHomeGame  bool
}

func (i Increment) Validate() error {
	if err := i.Scope.Validate(); err != nil {
		return err
	}
	if player.NormalizeEmail(i.PlayerEmail) == "" {
		return fmt.Errorf("player email is required")
	}
	if strings.TrimSpace(i.PlayerName) == "" {
		return fmt.Errorf("player name is required")
	}
	if !i.StatKey.Valid() {
		return fmt.Errorf("invalid stat key: %s", i.StatKey)
	}
	return nil
}

type Split struct {
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
	GamesPlayed int
}

func (s *Split) add(key StatKey, delta int) {
	switch key {
	case StatGoals:
		s.Goals += delta
	case StatAssists:
		s.Assists += delta
	case StatYellowCards:
		s.YellowCards += delta
	case StatRedCards:
		s.RedCards += delta
	case StatGamesPlayed:
		s.GamesPlayed += delta
	}
}

// Aggregate is the per-player stat record kept by the stats store.
type Aggregate struct {
	Scope       club.Scope
	PlayerEmail string
	PlayerName  string
	Home        Split
	Away        Split
}

// Apply adds inc to the matching split.
func (a *Aggregate) Apply(inc Increment) {
	if name := strings.TrimSpace(inc.PlayerName); name != "" {
		a.PlayerName = name
	}
	if inc.IsHomeGame {
		a.Home.add(inc.StatKey, 1)
		return
	}
	a.Away.add(inc.StatKey, 1)
}

func (a Aggregate) Total() Split {
	return Split{
		Goals:       a.Home.Goals + a.Away.Goals,
		Assists:     a.Home.Assists + a.Away.Assists,
		YellowCards: a.Home.YellowCards + a.Away.YellowCards,
		RedCards:    a.Home.RedCards + a.Away.RedCards,
		GamesPlayed: a.Home.GamesPlayed + a.Away.GamesPlayed,
	}
}
