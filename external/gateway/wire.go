package gateway

import (
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

type eventDTO struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	PlayerEmail   string    `json:"playerEmail"`
	Minute        string    `json:"minute"`
	SubbedInEmail string    `json:"subbedIn,omitempty"`
	RecordedAt    time.Time `json:"recordedAt"`
}

type ledgerDTO struct {
	MatchID string     `json:"matchId"`
	Version int64      `json:"version"`
	Events  []eventDTO `json:"events"`
}

type replaceEventsRequest struct {
	Events []eventDTO `json:"events"`
}

type replaceEventsResponse struct {
	Version int64 `json:"version"`
}

type statIncrementRequest struct {
	ClubName    string `json:"clubName"`
	AgeGroup    string `json:"ageGroup"`
	Division    string `json:"division"`
	PlayerEmail string `json:"playerEmail"`
	PlayerName  string `json:"playerName"`
	StatKey     string `json:"statKey"`
	IsHomeGame  bool   `json:"isHomeGame"`
}

type playerDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Position string `json:"position"`
	UID      string `json:"uid,omitempty"`
}

type rosterResponse struct {
	Players []playerDTO `json:"players"`
}

func eventToDTO(e matchevent.Event) eventDTO {
	return eventDTO{
		ID:            e.ID,
		Type:          string(e.Type),
		PlayerEmail:   e.PlayerEmail,
		Minute:        e.Minute,
		SubbedInEmail: e.SubbedInEmail,
		RecordedAt:    e.RecordedAt.UTC(),
	}
}

func eventFromDTO(d eventDTO) matchevent.Event {
	return matchevent.Event{
		ID:            d.ID,
		Type:          matchevent.Type(d.Type),
		PlayerEmail:   d.PlayerEmail,
		Minute:        d.Minute,
		SubbedInEmail: d.SubbedInEmail,
		RecordedAt:    d.RecordedAt,
	}
}

func playerFromDTO(d playerDTO, scope club.Scope) player.Player {
	return player.Player{
		Email:    player.NormalizeEmail(d.Email),
		Name:     d.Name,
		Position: player.Position(d.Position),
		UID:      d.UID,
		Scope:    scope,
	}
}
